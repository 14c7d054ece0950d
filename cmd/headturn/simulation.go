package main

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/headturn/internal/xrsim"
	"github.com/askiada/headturn/pkg/layer"
	"github.com/askiada/headturn/pkg/orientation"
	"github.com/askiada/headturn/pkg/pipeline"
	"github.com/askiada/headturn/pkg/pipeline/drawer"
	"github.com/askiada/headturn/pkg/pipeline/measure"
	"github.com/askiada/headturn/pkg/pipeline/model"
)

// simulation runs frames through a negotiated layer on top of a simulated runtime.
type simulation struct {
	logger   *zap.Logger
	source   pipeline.FactorSource
	strategy orientation.Strategy
	sessions int
	// dot receives the frame flow graph when not nil.
	dot io.Writer
}

type sessionResult struct {
	session   model.Session
	delivered []model.FrameSubmission
}

type simulationResult struct {
	sessions []sessionResult
	measure  measure.Measure
}

func (s *simulation) run(ctx context.Context, frames []*model.FrameSubmission) (*simulationResult, error) {
	if s.sessions < 1 {
		return nil, ErrInvalidSessions
	}

	msr := measure.NewDefaultMeasure()

	opts := []model.PipelineOption{measure.PipelineMeasure(msr)}
	if s.dot != nil {
		opts = append(opts, drawer.PipelineDrawer(drawer.NewDOTDrawer(s.dot), msr))
	}

	pipe, err := pipeline.New(s.source, pipeline.WithStrategy(s.strategy), pipeline.WithPipelineOptions(opts...))
	if err != nil {
		return nil, errors.Wrap(err, "unable to create pipeline")
	}

	l, err := layer.New(pipe, layer.WithLogger(s.logger))
	if err != nil {
		return nil, errors.Wrap(err, "unable to create layer")
	}

	runtime := xrsim.NewRuntime()

	loader, err := xrsim.NewLoader(runtime, l)
	if err != nil {
		return nil, errors.Wrap(err, "unable to load layer")
	}

	instance, err := loader.CreateInstance(&layer.InstanceCreateInfo{
		ApplicationName:      "headturn-simulate",
		APIVersion:           layer.CurrentAPIVersion,
		EnabledAPILayerNames: []string{layer.Name},
	})
	if err != nil {
		return nil, err
	}

	sessions := make([]model.Session, 0, s.sessions)
	for range s.sessions {
		session, err := loader.CreateSession(instance)
		if err != nil {
			loader.DestroyInstance(instance)

			return nil, err
		}

		sessions = append(sessions, session)
	}

	submitErr := s.submit(ctx, loader, instance, sessions, frames)

	res := &simulationResult{measure: msr}
	for _, session := range sessions {
		res.sessions = append(res.sessions, sessionResult{session: session, delivered: runtime.Frames(session)})

		if r := loader.DestroySession(instance, session); r.Failed() {
			s.logger.Warn("unable to destroy session", zap.Uint64("session", uint64(session)), zap.Stringer("result", r))
		}
	}

	if r := loader.DestroyInstance(instance); r.Failed() {
		s.logger.Warn("unable to destroy instance", zap.Stringer("result", r))
	}

	if submitErr != nil {
		return nil, submitErr
	}

	err = pipe.Close()
	if err != nil {
		return nil, errors.Wrap(err, "unable to close pipeline")
	}

	return res, nil
}

// submit sends every frame on every session, each session from its own goroutine.
func (s *simulation) submit(ctx context.Context, loader *xrsim.Loader, instance model.Instance,
	sessions []model.Session, frames []*model.FrameSubmission,
) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, session := range sessions {
		g.Go(func() error {
			for i, sub := range frames {
				if err := gctx.Err(); err != nil {
					return err
				}

				res := loader.EndFrame(instance, session, sub)
				if res.Failed() {
					return errors.Wrapf(ErrFrameRejected, "session %d frame %d: %s", session, i, res)
				}
			}

			s.logger.Debug("submitted frames", zap.Uint64("session", uint64(session)), zap.Int("frames", len(frames)))

			return nil
		})
	}

	err := g.Wait()
	if err != nil {
		return errors.Wrap(err, "unable to submit frames")
	}

	return nil
}
