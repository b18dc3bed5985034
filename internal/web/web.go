// Package web serves a page whose buttons run the session actions and
// render their results into the page.
package web

import (
	"bytes"
	"context"
	_ "embed"
	"net/http"

	"employeedir/internal/dom"
	"employeedir/internal/dummyapi"
	"employeedir/internal/render"
	"employeedir/internal/telemetry"
)

//go:embed index.html
var indexHtml []byte

const (
	ListElementId     = "employeeList"
	ResponseElementId = "postResponse"
)

var DefaultPayload = dummyapi.RecordPayload{
	Name:   "Jane Smith",
	Salary: "54321",
	Age:    "28",
}

const (
	report_server_index  = "server.index"
	report_server_fetch  = "server.fetch"
	report_server_create = "server.create"
)

// Actions is what the page buttons trigger.
type Actions interface {
	Populate(ctx context.Context, target render.Target) render.Outcome
	Submit(ctx context.Context, target render.Target, payload dummyapi.RecordPayload) render.Outcome
}

type Server struct {
	doc     *dom.Document
	actions Actions
	tel     telemetry.API
}

// NewIndexDocument parses the default page.
func NewIndexDocument() (*dom.Document, error) {
	return dom.Parse(bytes.NewReader(indexHtml))
}

func NewServer(doc *dom.Document, actions Actions, tel telemetry.API) *Server {
	return &Server{
		doc:     doc,
		actions: actions,
		tel:     telemetry.NewScopedAPI("web", tel),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /employees/fetch", s.handleFetch)
	mux.HandleFunc("POST /employees/create", s.handleCreate)
	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var out bytes.Buffer
	err := s.doc.Render(&out)
	if err != nil {
		s.tel.ReportBroken(report_server_index, err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(out.Bytes())
}

func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	list, ok := s.doc.LookupElement(ListElementId)
	if !ok {
		s.tel.ReportWarning(report_server_fetch, "Element with id 'employeeList' not found.")
	} else {
		s.actions.Populate(r.Context(), list)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func formValue(r *http.Request, key, fallback string) string {
	if _, ok := r.PostForm[key]; !ok {
		return fallback
	}
	return r.PostForm.Get(key)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		s.tel.ReportWarning(report_server_create, err)
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	payload := dummyapi.RecordPayload{
		Name:   formValue(r, "name", DefaultPayload.Name),
		Salary: formValue(r, "salary", DefaultPayload.Salary),
		Age:    formValue(r, "age", DefaultPayload.Age),
	}
	target := s.doc.LookupOrCreate("div", ResponseElementId, ListElementId)
	s.actions.Submit(r.Context(), target, payload)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
