package model

import "time"

// Outcome tells what the pipeline did with a frame submission.
type Outcome string

const (
	// OutcomeEmpty is a nil submission or one without layers, forwarded as is.
	OutcomeEmpty Outcome = "empty"
	// OutcomeIdentity is a submission forwarded as is because the factor is one.
	OutcomeIdentity Outcome = "identity"
	// OutcomeRewritten is a submission whose projection layers were copied and amplified.
	OutcomeRewritten Outcome = "rewritten"
)

// Outcomes lists every outcome in pipeline order.
var Outcomes = []Outcome{OutcomeEmpty, OutcomeIdentity, OutcomeRewritten}

// Stage names of the frame flow, around the outcomes.
const (
	StartStage = "xrEndFrame"
	EndStage   = "next"
)

// FrameInfo describes one pass of a submission through the pipeline.
type FrameInfo struct {
	Session          Session
	Outcome          Outcome
	Factor           float32
	Layers           int
	ProjectionLayers int
	Views            int
	SkippedLayers    int
}

// PipelineOption defines the interface for pipeline options.
//
// OnFrame is called on the frame submission path, once per frame and possibly from several
// sessions at the same time; implementations must be safe for concurrent use and must not
// keep frame after returning.
type PipelineOption interface {
	// New initialises the pipeline option.
	New() error
	// OnFrame runs every time a frame went through the pipeline.
	OnFrame(frame *FrameInfo, computationDuration time.Duration)
	// Finish runs when the pipeline is closed.
	Finish() error
}
