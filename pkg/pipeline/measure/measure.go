package measure

import (
	"sync"
)

// DefaultMeasure keeps its metrics in memory.
type DefaultMeasure struct {
	mu    sync.RWMutex
	steps map[string]Metric
}

// NewDefaultMeasure creates an empty measure.
func NewDefaultMeasure() *DefaultMeasure {
	return &DefaultMeasure{
		steps: make(map[string]Metric),
	}
}

// AddMetric creates the metric called name, replacing any previous one.
func (m *DefaultMeasure) AddMetric(name string) Metric {
	mt := &DefaultMetric{}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.steps[name] = mt

	return mt
}

// GetMetric returns the metric called name, nil if there is none.
func (m *DefaultMeasure) GetMetric(name string) Metric {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.steps[name]
}

// AllMetrics returns a copy of the metrics by name.
func (m *DefaultMeasure) AllMetrics() map[string]Metric {
	m.mu.RLock()
	defer m.mu.RUnlock()

	res := make(map[string]Metric, len(m.steps))
	for name, mt := range m.steps {
		res[name] = mt
	}

	return res
}

var _ Measure = (*DefaultMeasure)(nil)
