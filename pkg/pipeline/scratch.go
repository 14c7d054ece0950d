package pipeline

import (
	"github.com/askiada/headturn/pkg/pipeline/model"
)

// scratch holds the copies made for one frame. Everything is overwritten by the next frame.
type scratch struct {
	projections []model.ProjectionLayer
	views       []model.View
	layers      []model.Layer
	frame       model.FrameSubmission
}

func newScratch(layers, views int) scratch {
	return scratch{
		projections: make([]model.ProjectionLayer, 0, layers),
		views:       make([]model.View, 0, views),
		layers:      make([]model.Layer, 0, layers),
	}
}

// reset empties the buffers and makes sure they can hold every copy of layers without growing,
// so that pointers into them stay valid for the whole frame.
func (s *scratch) reset(layers []model.Layer) {
	projections, views := 0, 0

	for _, l := range layers {
		if src, ok := l.(*model.ProjectionLayer); ok && src != nil {
			projections++
			views += len(src.Views)
		}
	}

	// Drop the references of the previous frame so they can be collected.
	clear(s.projections)
	clear(s.views)
	clear(s.layers)
	s.frame = model.FrameSubmission{}

	if cap(s.projections) < projections {
		s.projections = make([]model.ProjectionLayer, 0, projections)
	}
	if cap(s.views) < views {
		s.views = make([]model.View, 0, views)
	}
	if cap(s.layers) < len(layers) {
		s.layers = make([]model.Layer, 0, len(layers))
	}

	s.projections = s.projections[:0]
	s.views = s.views[:0]
	s.layers = s.layers[:0]
}

// copyProjection copies src and its views into the buffers and returns the copy.
func (s *scratch) copyProjection(src *model.ProjectionLayer) *model.ProjectionLayer {
	s.projections = append(s.projections, *src)
	copied := &s.projections[len(s.projections)-1]

	if len(src.Views) == 0 {
		// Keeps nil and empty apart without sharing the caller's array.
		copied.Views = src.Views[:0:0]

		return copied
	}

	offset := len(s.views)
	s.views = append(s.views, src.Views...)
	copied.Views = s.views[offset:len(s.views):len(s.views)]

	return copied
}
