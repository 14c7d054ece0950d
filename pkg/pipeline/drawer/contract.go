package drawer

import (
	"github.com/askiada/headturn/pkg/pipeline/measure"
)

// Drawer is an interface that defines the methods for drawing the frame flow of a pipeline.
type Drawer interface {
	// AddStep adds a stage to the drawing.
	AddStep(stepName string) error
	// AddLink adds a link between parent and children stages.
	AddLink(parentStepName, childrenStepName string) error
	// AddMeasure annotates the stages and links with measure.
	AddMeasure(measure measure.Measure) error
	// Draw renders the drawing.
	Draw() error
}
