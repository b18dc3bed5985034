// Package render turns the result of a single API call into the lines shown
// by a Target. Every call overwrites the target exactly once.
package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"employeedir/internal/dummyapi"
	"employeedir/internal/telemetry"
)

type Kind int

const (
	// KindItem is one entry of a rendered list.
	KindItem Kind = iota
	// KindMessage is an informational line that replaces a list.
	KindMessage
	// KindError is a user visible failure.
	KindError
	// KindPreformatted is text whose whitespace must be kept.
	KindPreformatted
)

type Line struct {
	Kind Kind
	Text string
}

// Target is a display surface whose whole content is replaced by Replace.
type Target interface {
	Replace(lines []Line)
}

const (
	MessageRateLimited = "Too Many Requests. Please try again later."
	MessageHttpFailure = "Network response was not ok"
	MessageNoEmployees = "No employee data found."
)

type Outcome string

const (
	OutcomeRendered         Outcome = "rendered"
	OutcomeTransportFailure Outcome = "transport_failure"
	OutcomeRateLimited      Outcome = "rate_limited"
	OutcomeHttpFailure      Outcome = "http_failure"
	OutcomeNoData           Outcome = "no_data"
)

const (
	report_render_employees  = "render.employees"
	report_render_submission = "render.submission"
)

// renderFailure renders the line for a failed call, the 429 case is checked
// before any other status.
func renderFailure(tel telemetry.API, id string, target Target, err error) Outcome {
	switch dummyapi.KindOf(err) {
	case dummyapi.RateLimited:
		tel.ReportWarning(id, "API rate limit exceeded (429)", err)
		target.Replace([]Line{{Kind: KindError, Text: MessageRateLimited}})
		return OutcomeRateLimited
	case dummyapi.HttpFailure:
		tel.ReportBroken(id, err)
		target.Replace([]Line{{Kind: KindError, Text: MessageHttpFailure}})
		return OutcomeHttpFailure
	default:
		tel.ReportBroken(id, err)
		target.Replace([]Line{{Kind: KindError, Text: err.Error()}})
		return OutcomeTransportFailure
	}
}

// Employees renders the result of a list call: one item per employee in
// response order, or a single message/error line.
func Employees(tel telemetry.API, target Target, env dummyapi.Envelope, err error) Outcome {
	if err != nil {
		return renderFailure(tel, report_render_employees, target, err)
	}

	records, err := env.Employees()
	if errors.Is(err, dummyapi.ErrNoEmployeeData) {
		tel.ReportWarning(report_render_employees, err)
		target.Replace([]Line{{Kind: KindMessage, Text: MessageNoEmployees}})
		return OutcomeNoData
	}
	if err != nil {
		return renderFailure(tel, report_render_employees, target, err)
	}

	lines := make([]Line, len(records))
	for i, r := range records {
		lines[i] = Line{Kind: KindItem, Text: r.EmployeeName}
	}
	target.Replace(lines)
	return OutcomeRendered
}

// Submission renders the result of a create call, a successful response is
// shown as indented JSON.
func Submission(tel telemetry.API, target Target, body json.RawMessage, err error) Outcome {
	if err != nil {
		return renderFailure(tel, report_render_submission, target, err)
	}

	var pretty bytes.Buffer
	err = json.Indent(&pretty, body, "", "  ")
	if err != nil {
		return renderFailure(tel, report_render_submission, target, fmt.Errorf("indent response: %w", err))
	}
	target.Replace([]Line{{Kind: KindPreformatted, Text: pretty.String()}})
	return OutcomeRendered
}
