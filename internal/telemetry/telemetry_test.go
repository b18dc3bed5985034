package telemetry

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

func TestScopedAPI(t *testing.T) {
	rec := &Recorder{}
	scoped := NewScopedAPI("session", rec)

	scoped.ReportBroken("render.employees", "boom")
	scoped.ReportWarning("render.employees")
	scoped.ReportDebug("populate started")
	scoped.ReportCount("employees", 3)

	require.Equal(t, []string{"session: render.employees"}, rec.Ids(ReportKindBroken))
	require.Equal(t, []string{"session: render.employees"}, rec.Ids(ReportKindWarning))
	require.Equal(t, []string{"session: populate started"}, rec.Ids(ReportKindDebug))
	require.Equal(t, []any{int64(3)}, rec.Reports(ReportKindCount)[0].Params)
	require.Equal(t, []any{"boom"}, rec.Reports(ReportKindBroken)[0].Params)
}

type memoryOutput struct {
	mu       sync.Mutex
	messages map[string]string
}

func (o *memoryOutput) Write(id string, contents string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.messages[id] = contents
}

func TestInstrumentResty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status":"success"}`)
	}))
	defer server.Close()

	rec := &Recorder{}
	output := &memoryOutput{messages: map[string]string{}}
	client := resty.New()
	InstrumentResty(client, rec, "test", output)

	_, err := client.R().Get(server.URL + "/api/v1/employees")
	require.NoError(t, err)

	require.Equal(t, []string{report_resty_request, report_resty_response}, rec.Ids(ReportKindDebug))
	require.Contains(t, output.messages["1"], "GET "+server.URL+"/api/v1/employees")
	require.Contains(t, output.messages["1"], `{"status":"success"}`)
}

func TestInstrumentRestyError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	rec := &Recorder{}
	client := resty.New()
	InstrumentResty(client, rec, "test", nil)

	_, err := client.R().Get(url)
	require.Error(t, err)
	require.Equal(t, []string{report_resty_response}, rec.Ids(ReportKindWarning))
}
