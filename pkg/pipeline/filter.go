package pipeline

import (
	"time"

	"github.com/askiada/headturn/pkg/pipeline/model"
)

// Filter amplifies the frames of one session. It is not safe for concurrent use.
type Filter struct {
	pipe    *Pipeline
	session model.Session
	scratch scratch
	info    model.FrameInfo
}

// Session returns the session the filter was created for.
func (f *Filter) Session() model.Session {
	return f.session
}

// FilterSubmission returns the submission to forward in place of sub.
//
// A nil submission, a submission without layers or a factor of one give sub back. Otherwise
// the result is a shallow copy of sub whose projection layers are replaced by amplified copies
// and whose null layers are dropped. It points into the filter's scratch buffers and is only
// valid until the next call.
func (f *Filter) FilterSubmission(sub *model.FrameSubmission) *model.FrameSubmission {
	if len(f.pipe.opts) == 0 {
		return f.filter(sub)
	}

	start := time.Now()
	out := f.filter(sub)
	elapsed := time.Since(start)

	for _, opt := range f.pipe.opts {
		opt.OnFrame(&f.info, elapsed)
	}

	return out
}

// EndFrame filters sub and forwards it to next. The result of next is returned as is.
func (f *Filter) EndFrame(sub *model.FrameSubmission, next model.EndFrameFunc) model.Result {
	if next == nil {
		return model.ResultErrorFunctionUnsupported
	}

	return next(f.session, f.FilterSubmission(sub))
}

func (f *Filter) filter(sub *model.FrameSubmission) *model.FrameSubmission {
	f.info = model.FrameInfo{Session: f.session, Outcome: model.OutcomeEmpty}

	if sub == nil || len(sub.Layers) == 0 {
		return sub
	}

	f.info.Layers = len(sub.Layers)

	factor := f.pipe.source.Amplification()
	f.info.Factor = factor

	if IsIdentity(factor) {
		f.info.Outcome = model.OutcomeIdentity

		return sub
	}

	f.info.Outcome = model.OutcomeRewritten
	f.scratch.reset(sub.Layers)

	for _, l := range sub.Layers {
		if model.IsNil(l) {
			f.info.SkippedLayers++

			continue
		}

		src, ok := l.(*model.ProjectionLayer)
		if !ok {
			f.scratch.layers = append(f.scratch.layers, l)

			continue
		}

		copied := f.scratch.copyProjection(src)
		for i := range copied.Views {
			pose := &copied.Views[i].Pose
			pose.Orientation = f.pipe.strategy.Amplify(pose.Orientation, factor)
		}

		f.info.ProjectionLayers++
		f.info.Views += len(copied.Views)
		f.scratch.layers = append(f.scratch.layers, copied)
	}

	f.scratch.frame = *sub
	f.scratch.frame.Layers = f.scratch.layers

	return &f.scratch.frame
}
