package pipeline

import (
	"github.com/askiada/headturn/pkg/orientation"
	"github.com/askiada/headturn/pkg/pipeline/model"
)

type Option func(p *Pipeline)

// WithStrategy selects the amplification strategy. Defaults to orientation.Decoupled.
func WithStrategy(strategy orientation.Strategy) Option {
	return func(p *Pipeline) {
		p.strategy = strategy
	}
}

// WithPipelineOptions registers options observing every frame of every filter.
func WithPipelineOptions(opts ...model.PipelineOption) Option {
	return func(p *Pipeline) {
		p.opts = append(p.opts, opts...)
	}
}

// WithCapacity sizes the scratch buffers of new filters for frames of up to layers layers and
// views views in total. Larger frames still work, the buffers grow on first use.
func WithCapacity(layers, views int) Option {
	return func(p *Pipeline) {
		p.layerCapacity = layers
		p.viewCapacity = views
	}
}
