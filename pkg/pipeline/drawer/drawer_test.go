package drawer_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/headturn/pkg/pipeline"
	"github.com/askiada/headturn/pkg/pipeline/drawer"
	"github.com/askiada/headturn/pkg/pipeline/measure"
	"github.com/askiada/headturn/pkg/pipeline/model"
)

func TestDOTDrawerDuplicateStep(t *testing.T) {
	t.Parallel()

	d := drawer.NewDOTDrawer(&bytes.Buffer{})
	require.NoError(t, d.AddStep("a"))
	assert.Error(t, d.AddStep("a"))
	assert.Error(t, d.AddLink("a", "missing"))
}

func TestPipelineDrawerWithoutMeasure(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	pipe, err := pipeline.New(pipeline.ConstantFactor(2),
		pipeline.WithPipelineOptions(drawer.PipelineDrawer(drawer.NewDOTDrawer(buf), nil)))
	require.NoError(t, err)
	require.NoError(t, pipe.Close())

	out := buf.String()
	assert.Contains(t, out, "strict digraph {")
	assert.Contains(t, out, `"xrEndFrame" -> "rewritten"`)
	assert.Contains(t, out, `"identity" -> "next"`)
	assert.NotContains(t, out, "frames, avg")
}

func TestPipelineDrawerWithMeasure(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	msr := measure.NewDefaultMeasure()
	pipe, err := pipeline.New(pipeline.ConstantFactor(2), pipeline.WithPipelineOptions(
		measure.PipelineMeasure(msr),
		drawer.PipelineDrawer(drawer.NewDOTDrawer(buf), msr),
	))
	require.NoError(t, err)

	filter := pipe.NewFilter(1)
	sub := &model.FrameSubmission{Layers: []model.Layer{&model.ProjectionLayer{Views: make([]model.View, 2)}}}
	for i := 0; i < 3; i++ {
		filter.FilterSubmission(sub)
	}
	filter.FilterSubmission(nil)

	require.NoError(t, pipe.Close())

	out := buf.String()
	assert.Contains(t, out, `<rewritten <BR /> <FONT POINT-SIZE="12">3 frames, avg`)
	assert.Contains(t, out, `<empty <BR /> <FONT POINT-SIZE="12">1 frames, avg`)
	assert.Contains(t, out, `label="6 views"`)
	assert.Contains(t, out, `label="3"`)
}

func TestPipelineDrawerStableOutput(t *testing.T) {
	t.Parallel()

	render := func() string {
		buf := &bytes.Buffer{}
		pipe, err := pipeline.New(pipeline.ConstantFactor(2),
			pipeline.WithPipelineOptions(drawer.PipelineDrawer(drawer.NewDOTDrawer(buf), nil)))
		require.NoError(t, err)
		require.NoError(t, pipe.Close())

		return buf.String()
	}

	assert.Equal(t, render(), render())
}
