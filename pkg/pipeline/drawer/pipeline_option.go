package drawer

import (
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/headturn/pkg/pipeline/measure"
	"github.com/askiada/headturn/pkg/pipeline/model"
)

type pipelineDrawer struct {
	Drawer
	m measure.Measure
}

func (pd *pipelineDrawer) New() error {
	err := pd.AddStep(model.StartStage)
	if err != nil {
		return errors.Wrap(err, "unable to add start stage to drawer")
	}

	err = pd.AddStep(model.EndStage)
	if err != nil {
		return errors.Wrap(err, "unable to add end stage to drawer")
	}

	for _, outcome := range model.Outcomes {
		err = pd.AddStep(string(outcome))
		if err != nil {
			return err
		}

		err = pd.AddLink(model.StartStage, string(outcome))
		if err != nil {
			return err
		}

		err = pd.AddLink(string(outcome), model.EndStage)
		if err != nil {
			return err
		}
	}

	return nil
}

func (pd *pipelineDrawer) OnFrame(_ *model.FrameInfo, _ time.Duration) {}

func (pd *pipelineDrawer) Finish() error {
	if pd.m != nil {
		err := pd.AddMeasure(pd.m)
		if err != nil {
			return errors.Wrap(err, "unable to add measure")
		}
	}

	err := pd.Draw()
	if err != nil {
		return errors.Wrap(err, "unable to draw pipeline")
	}

	return nil
}

// PipelineDrawer draws the frame flow when the pipeline is closed, annotated with measure when
// it is not nil. measure should be registered as a pipeline option before the drawer so that
// its metrics are final when the drawing happens.
func PipelineDrawer(drawer Drawer, measure measure.Measure) model.PipelineOption {
	return &pipelineDrawer{drawer, measure}
}
