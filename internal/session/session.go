// Package session runs the user facing actions: each action performs one
// API call and renders its result into a target.
package session

import (
	"context"
	"encoding/json"

	"employeedir/internal/dummyapi"
	"employeedir/internal/render"
	"employeedir/internal/telemetry"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OutcomeSuperseded is returned by actions that were replaced by a newer
// action before they could render.
const OutcomeSuperseded render.Outcome = "superseded"

const (
	actionPopulate = "populate"
	actionSubmit   = "submit"
)

const (
	report_session_populate = "session.populate"
	report_session_submit   = "session.submit"
)

var tracer = otel.Tracer("employeedir/session")
var meter = otel.Meter("employeedir/session")
var outcomeCounter, _ = meter.Int64Counter(
	"employeedir.render.outcomes",
	metric.WithDescription("Number of finished actions by outcome."),
)

// API is the capability the actions fetch with.
type API interface {
	FetchEmployees(ctx context.Context) (dummyapi.Envelope, error)
	CreateEmployee(ctx context.Context, payload dummyapi.RecordPayload) (json.RawMessage, error)
}

type Session struct {
	api      API
	tel      telemetry.API
	populate Guard
	submit   Guard
}

func New(api API, tel telemetry.API) *Session {
	return &Session{
		api: api,
		tel: telemetry.NewScopedAPI("session", tel),
	}
}

func (s *Session) record(ctx context.Context, action string, outcome render.Outcome) {
	outcomeCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", action),
		attribute.String("outcome", string(outcome)),
	))
}

// Populate fetches the employee list and renders it into `target`.
func (s *Session) Populate(ctx context.Context, target render.Target) render.Outcome {
	ctx, span := tracer.Start(ctx, "Session.Populate")
	defer span.End()

	ctx, token := s.populate.Begin(ctx)
	s.tel.ReportDebug(report_session_populate, "started", token.String())

	env, err := s.api.FetchEmployees(ctx)

	outcome := OutcomeSuperseded
	s.populate.Finish(token, func() {
		outcome = render.Employees(s.tel, target, env, err)
	})
	if outcome == OutcomeSuperseded {
		s.tel.ReportDebug(report_session_populate, "superseded", token.String())
	}
	span.SetAttributes(attribute.String("outcome", string(outcome)))
	s.record(ctx, actionPopulate, outcome)
	return outcome
}

// Submit creates an employee and renders the response into `target`.
func (s *Session) Submit(ctx context.Context, target render.Target, payload dummyapi.RecordPayload) render.Outcome {
	ctx, span := tracer.Start(ctx, "Session.Submit")
	defer span.End()

	ctx, token := s.submit.Begin(ctx)
	s.tel.ReportDebug(report_session_submit, "started", token.String(), payload.Name)

	body, err := s.api.CreateEmployee(ctx, payload)

	outcome := OutcomeSuperseded
	s.submit.Finish(token, func() {
		outcome = render.Submission(s.tel, target, body, err)
	})
	if outcome == OutcomeSuperseded {
		s.tel.ReportDebug(report_session_submit, "superseded", token.String())
	}
	span.SetAttributes(attribute.String("outcome", string(outcome)))
	s.record(ctx, actionSubmit, outcome)
	return outcome
}
