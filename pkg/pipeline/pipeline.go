package pipeline

import (
	"github.com/pkg/errors"

	"github.com/askiada/headturn/pkg/orientation"
	"github.com/askiada/headturn/pkg/pipeline/model"
)

const (
	// Two views per projection layer and a couple of overlay layers cover most applications.
	defaultLayerCapacity = 4
	defaultViewCapacity  = 2
)

// Pipeline is the configuration shared by the filters of every session.
type Pipeline struct {
	source        FactorSource
	strategy      orientation.Strategy
	opts          []model.PipelineOption
	layerCapacity int
	viewCapacity  int
}

// New creates a new pipeline reading the amplification factor from source.
func New(source FactorSource, opts ...Option) (*Pipeline, error) {
	if source == nil {
		return nil, ErrSourceMustBeSet
	}

	pipe := &Pipeline{
		source:        source,
		strategy:      orientation.Decoupled,
		layerCapacity: defaultLayerCapacity,
		viewCapacity:  defaultViewCapacity,
	}

	for _, opt := range opts {
		opt(pipe)
	}

	if pipe.layerCapacity < 0 || pipe.viewCapacity < 0 {
		return nil, ErrNegativeCapacity
	}

	for _, opt := range pipe.opts {
		err := opt.New()
		if err != nil {
			return nil, errors.Wrap(err, "unable to apply pipeline option")
		}
	}

	return pipe, nil
}

// Strategy returns the amplification strategy of the pipeline.
func (p *Pipeline) Strategy() orientation.Strategy {
	return p.strategy
}

// NewFilter creates the filter of one session, with its own scratch buffers.
func (p *Pipeline) NewFilter(session model.Session) *Filter {
	return &Filter{
		pipe:    p,
		session: session,
		scratch: newScratch(p.layerCapacity, p.viewCapacity),
	}
}

// Close finishes the pipeline options. Filters must not be used afterwards.
func (p *Pipeline) Close() error {
	for _, opt := range p.opts {
		err := opt.Finish()
		if err != nil {
			return errors.Wrap(err, "unable to finish pipeline option")
		}
	}

	return nil
}
