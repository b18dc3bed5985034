package dummyapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"employeedir/internal/telemetry"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ClientOptions) Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	opts.BaseUrl = server.URL
	return NewClient(opts, &telemetry.Recorder{})
}

func TestFetchEmployees(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/v1/employees", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"status":"success","data":[{"employee_name":"Alice"},{"employee_name":"Bob"}]}`)
	}, ClientOptions{})

	env, err := client.FetchEmployees(context.Background())
	require.NoError(t, err)
	require.Equal(t, StatusSuccess, env.Status)

	records, err := env.Employees()
	require.NoError(t, err)
	require.Equal(t, []string{"Alice", "Bob"}, names(records))
}

type memoryDump struct {
	mu       sync.Mutex
	messages map[string]string
}

func (d *memoryDump) Write(id, contents string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.messages == nil {
		d.messages = map[string]string{}
	}
	d.messages[id] = contents
}

func TestHttpDump(t *testing.T) {
	dump := &memoryDump{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			io.WriteString(w, `{"status":"success","data":{"id":123}}`)
			return
		}
		io.WriteString(w, `{"status":"success","data":[{"employee_name":"Alice"}]}`)
	}, ClientOptions{HttpDump: dump})

	env, err := client.FetchEmployees(context.Background())
	require.NoError(t, err)
	require.Equal(t, StatusSuccess, env.Status)

	_, err = client.CreateEmployee(context.Background(), RecordPayload{Name: "Jane Smith"})
	require.NoError(t, err)

	dump.mu.Lock()
	defer dump.mu.Unlock()
	require.Len(t, dump.messages, 2)
	require.True(t, strings.HasPrefix(dump.messages["1"], "---- REQUEST ----\n\nGET "))
	require.Contains(t, dump.messages["1"], "<NO BODY AVAILABLE>")
	require.Contains(t, dump.messages["1"], "Alice")
	require.Contains(t, dump.messages["2"], "POST ")
	require.Contains(t, dump.messages["2"], `{"status":"success","data":{"id":123}}`)
}

func TestFetchEmployeesStatusCodes(t *testing.T) {
	table := []struct {
		status int
		kind   ErrorKind
	}{
		{status: http.StatusTooManyRequests, kind: RateLimited},
		{status: http.StatusInternalServerError, kind: HttpFailure},
		{status: http.StatusNotFound, kind: HttpFailure},
	}

	for _, row := range table {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(row.status)
			io.WriteString(w, `{"status":"success","data":[{"employee_name":"Alice"}]}`)
		}, ClientOptions{})

		_, err := client.FetchEmployees(context.Background())
		require.Error(t, err)
		require.Equal(t, row.kind, KindOf(err))

		var fetchErr *FetchError
		require.ErrorAs(t, err, &fetchErr)
		require.Equal(t, row.status, fetchErr.StatusCode)
	}
}

func TestFetchEmployeesMalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<html>not json</html>`)
	}, ClientOptions{})

	_, err := client.FetchEmployees(context.Background())
	require.Equal(t, TransportFailure, KindOf(err))
}

func TestFetchEmployeesUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(ClientOptions{BaseUrl: url}, &telemetry.Recorder{})
	_, err := client.FetchEmployees(context.Background())
	require.Equal(t, TransportFailure, KindOf(err))
}

func TestFetchEmployeesClientRateLimit(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		io.WriteString(w, `{"status":"success","data":[]}`)
	}, ClientOptions{RateLimit: 0.001, Burst: 1})

	_, err := client.FetchEmployees(context.Background())
	require.NoError(t, err)

	_, err = client.FetchEmployees(context.Background())
	require.Equal(t, RateLimited, KindOf(err))
	require.Equal(t, 1, calls)
}

func TestCreateEmployee(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/create", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload RecordPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, RecordPayload{Name: "Jane Smith", Salary: "54321", Age: "28"}, payload)

		io.WriteString(w, `{"status":"success","data":{"name":"Jane Smith","salary":"54321","age":"28","id":123}}`)
	}, ClientOptions{})

	body, err := client.CreateEmployee(context.Background(), RecordPayload{
		Name:   "Jane Smith",
		Salary: "54321",
		Age:    "28",
	})
	require.NoError(t, err)
	require.JSONEq(t, `{"status":"success","data":{"name":"Jane Smith","salary":"54321","age":"28","id":123}}`, string(body))
}

func TestCreateEmployeeFailures(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}, ClientOptions{})
	_, err := client.CreateEmployee(context.Background(), RecordPayload{})
	require.Equal(t, RateLimited, KindOf(err))

	client = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `not json`)
	}, ClientOptions{})
	_, err = client.CreateEmployee(context.Background(), RecordPayload{})
	require.Equal(t, TransportFailure, KindOf(err))
}
