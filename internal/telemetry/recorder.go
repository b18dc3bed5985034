package telemetry

import "sync"

type ReportKind int

const (
	ReportKindBroken ReportKind = iota
	ReportKindWarning
	ReportKindDebug
	ReportKindCount
)

// Report is a single call made on a Recorder.
type Report struct {
	Kind   ReportKind
	Id     string
	Params []any
}

// Recorder is an API that keeps every report in memory so that tests can
// assert on what a component reported.
type Recorder struct {
	mu      sync.Mutex
	reports []Report
}

func (r *Recorder) add(report Report) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, report)
}

func (r *Recorder) ReportBroken(id string, params ...any) {
	r.add(Report{Kind: ReportKindBroken, Id: id, Params: params})
}

func (r *Recorder) ReportWarning(id string, params ...any) {
	r.add(Report{Kind: ReportKindWarning, Id: id, Params: params})
}

func (r *Recorder) ReportDebug(msg string, params ...any) {
	r.add(Report{Kind: ReportKindDebug, Id: msg, Params: params})
}

func (r *Recorder) ReportCount(id string, count int64) {
	r.add(Report{Kind: ReportKindCount, Id: id, Params: []any{count}})
}

// Reports returns a copy of every report of the given kind, in call order.
func (r *Recorder) Reports(kind ReportKind) []Report {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Report
	for _, report := range r.reports {
		if report.Kind == kind {
			out = append(out, report)
		}
	}
	return out
}

// Ids returns the ids of every report of the given kind, in call order.
func (r *Recorder) Ids(kind ReportKind) []string {
	var ids []string
	for _, report := range r.Reports(kind) {
		ids = append(ids, report.Id)
	}
	return ids
}
