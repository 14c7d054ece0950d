package measure

import (
	"time"

	"github.com/askiada/headturn/pkg/pipeline/model"
)

type pipelineMeasure struct {
	Measure
	startTime time.Time
}

func (pm *pipelineMeasure) New() error {
	pm.startTime = time.Now()
	for _, outcome := range model.Outcomes {
		pm.AddMetric(string(outcome))
	}

	return nil
}

func (pm *pipelineMeasure) OnFrame(frame *model.FrameInfo, computationDuration time.Duration) {
	mt := pm.GetMetric(string(frame.Outcome))
	if mt == nil {
		return
	}

	mt.AddDuration(computationDuration)
	mt.AddFrame(frame.ProjectionLayers, frame.Views)
}

func (pm *pipelineMeasure) Finish() error {
	total := time.Since(pm.startTime)
	for _, mt := range pm.AllMetrics() {
		mt.SetTotalDuration(total)
	}

	return nil
}

// PipelineMeasure records every frame of the pipeline in measure, one metric per outcome.
func PipelineMeasure(measure Measure) model.PipelineOption {
	return &pipelineMeasure{Measure: measure}
}
