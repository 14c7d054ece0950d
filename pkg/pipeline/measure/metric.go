package measure

import (
	"sync"
	"time"
)

// DefaultMetric is a Metric safe for concurrent use.
type DefaultMetric struct {
	mu               sync.Mutex
	EndDuration      time.Duration
	stepElapsed      time.Duration
	total            int64
	projectionLayers int64
	views            int64
}

func (mt *DefaultMetric) AddDuration(elapsed time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.total++
	mt.stepElapsed += elapsed
}

func (mt *DefaultMetric) AddFrame(projectionLayers, views int) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.projectionLayers += int64(projectionLayers)
	mt.views += int64(views)
}

func (mt *DefaultMetric) SetTotalDuration(endDuration time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.EndDuration = endDuration
}

func (mt *DefaultMetric) GetTotalDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.EndDuration
}

func (mt *DefaultMetric) Total() int64 {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.total
}

func (mt *DefaultMetric) ProjectionLayers() int64 {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.projectionLayers
}

func (mt *DefaultMetric) Views() int64 {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.views
}

func (mt *DefaultMetric) AVGDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	if mt.total == 0 {
		return time.Duration(0)
	}

	return round(time.Duration(float64(mt.stepElapsed) / float64(mt.total)))
}

func round(d time.Duration) time.Duration {
	switch {
	case d > time.Second:
		d = d.Round(time.Second)
	case d > time.Millisecond:
		d = d.Round(time.Millisecond)
	case d > time.Microsecond:
		d = d.Round(time.Microsecond)
	}

	return d
}

var _ Metric = (*DefaultMetric)(nil)
