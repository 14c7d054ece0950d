package measure

import "time"

// Measure groups the metrics of a pipeline by name.
type Measure interface {
	AddMetric(name string) Metric
	GetMetric(name string) Metric
	AllMetrics() map[string]Metric
}

// Metric accumulates the frames that went through one stage of the pipeline.
type Metric interface {
	AddDuration(elapsed time.Duration)
	AddFrame(projectionLayers, views int)
	AVGDuration() time.Duration
	Total() int64
	ProjectionLayers() int64
	Views() int64
	SetTotalDuration(endDuration time.Duration)
	GetTotalDuration() time.Duration
}
