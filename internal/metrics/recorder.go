package metrics

import "time"

// LinkResult enumerates link check outcomes.
type LinkResult string

const (
	LinkOK      LinkResult = "ok"
	LinkBroken  LinkResult = "broken"
	LinkSkipped LinkResult = "skipped"
)

// Recorder defines observability hooks for loading, serving and checking
// navigation trees.
type Recorder interface {
	ObserveLoadDuration(format string, d time.Duration)
	SetTreeNodes(n int)
	IncReload(success bool)
	IncLinkResult(result LinkResult)
	ObserveLinkCheckDuration(d time.Duration)
	IncHTTPRequest(route string, status int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveLoadDuration(string, time.Duration) {}
func (NoopRecorder) SetTreeNodes(int)                          {}
func (NoopRecorder) IncReload(bool)                            {}
func (NoopRecorder) IncLinkResult(LinkResult)                  {}
func (NoopRecorder) ObserveLinkCheckDuration(time.Duration)    {}
func (NoopRecorder) IncHTTPRequest(string, int)                {}

// OrNoop returns r, or NoopRecorder when r is nil.
func OrNoop(r Recorder) Recorder {
	if r == nil {
		return NoopRecorder{}
	}
	return r
}
