package dummyapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"employeedir/internal/telemetry"
	"employeedir/lib/restyutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const DefaultBaseUrl = "https://dummy.restapiexample.com"

const (
	report_client_fetch_employees = "client.fetch-employees"
	report_client_create_employee = "client.create-employee"
)

type ClientOptions struct {
	BaseUrl string
	// Timeout bounds a single request, zero means no timeout.
	Timeout   time.Duration
	UserAgent string
	// CloudflareBypass wraps the transport so that requests look like they
	// come from a browser.
	CloudflareBypass bool
	// RateLimit is the number of requests allowed per second, zero disables
	// client side rate limiting.
	RateLimit rate.Limit
	Burst     int
	// HttpDump receives the full request and response of every call when set.
	HttpDump restyutil.MessageOutput
}

// Client talks to the dummy employee REST API.
type Client struct {
	http *resty.Client
	tel  telemetry.API
}

func NewClient(opts ClientOptions, tel telemetry.API) Client {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	client.SetHeader("Accept", "application/json")
	if opts.UserAgent != "" {
		client.SetHeader("User-Agent", opts.UserAgent)
	}
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}
	if opts.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		client.SetRateLimiter(rate.NewLimiter(opts.RateLimit, burst))
	}

	telemetry.InstrumentResty(client, tel, "employeedir/dummyapi/http", opts.HttpDump)

	return Client{http: client, tel: tel}
}

func classify(res *resty.Response, err error) error {
	if errors.Is(err, resty.ErrRateLimitExceeded) {
		return &FetchError{Kind: RateLimited, Err: err}
	}
	if err != nil {
		return &FetchError{Kind: TransportFailure, Err: err}
	}
	if res.StatusCode() == http.StatusTooManyRequests {
		return &FetchError{Kind: RateLimited, StatusCode: res.StatusCode()}
	}
	if !res.IsSuccess() {
		return &FetchError{Kind: HttpFailure, StatusCode: res.StatusCode()}
	}
	return nil
}

// FetchEmployees performs a single GET of the employee list.
func (c Client) FetchEmployees(ctx context.Context) (Envelope, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get("/api/v1/employees")
	err = classify(res, err)
	if err != nil {
		c.tel.ReportDebug(report_client_fetch_employees, err)
		return Envelope{}, err
	}

	env, err := ParseEnvelope(res.Body())
	if err != nil {
		return Envelope{}, &FetchError{
			Kind:       TransportFailure,
			StatusCode: res.StatusCode(),
			Err:        fmt.Errorf("parse employees: %w", err),
		}
	}
	return env, nil
}

// CreateEmployee performs a single POST of `payload` and returns the JSON
// body of the response untouched.
func (c Client) CreateEmployee(ctx context.Context, payload RecordPayload) (json.RawMessage, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post("/api/v1/create")
	err = classify(res, err)
	if err != nil {
		c.tel.ReportDebug(report_client_create_employee, err)
		return nil, err
	}

	body := res.Body()
	if !json.Valid(body) {
		return nil, &FetchError{
			Kind:       TransportFailure,
			StatusCode: res.StatusCode(),
			Err:        fmt.Errorf("parse create response: %w", errMalformedBody),
		}
	}
	return json.RawMessage(body), nil
}
