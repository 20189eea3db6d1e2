// internal/metrics/recorder.go
package metrics

import "time"

// PollOutcome labels one polling cycle.
type PollOutcome string

const (
	PollSuccess   PollOutcome = "success"
	PollTransport PollOutcome = "transport_error"
	PollDecode    PollOutcome = "decode_error"
)

// Recorder receives observability hooks from the polling pipeline.
// NoopRecorder is the default so components never nil-check.
type Recorder interface {
	IncPoll(outcome PollOutcome)
	SetConsecutiveFailures(n int)
	IncDispatch(available bool)
	IncConsumerFailure(consumer string)
	ObserveRender(d time.Duration)
	SetRegionCounts(full, partial, noData, nothing int)
}

// NoopRecorder is a Recorder that does nothing.
type NoopRecorder struct{}

func (NoopRecorder) IncPoll(PollOutcome)                {}
func (NoopRecorder) SetConsecutiveFailures(int)         {}
func (NoopRecorder) IncDispatch(bool)                   {}
func (NoopRecorder) IncConsumerFailure(string)          {}
func (NoopRecorder) ObserveRender(time.Duration)        {}
func (NoopRecorder) SetRegionCounts(int, int, int, int) {}
