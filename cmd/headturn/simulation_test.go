package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/askiada/headturn/internal/config"
	"github.com/askiada/headturn/pkg/orientation"
	"github.com/askiada/headturn/pkg/pipeline"
	"github.com/askiada/headturn/pkg/pipeline/model"
)

func TestSimulationRun(t *testing.T) {
	t.Parallel()

	sc := loadTestScenario(t)
	frames := sc.Submissions()
	dot := &bytes.Buffer{}

	sim := &simulation{
		logger:   zap.NewNop(),
		source:   pipeline.ConstantFactor(2),
		strategy: orientation.Decoupled,
		sessions: 4,
		dot:      dot,
	}

	res, err := sim.run(context.Background(), frames)
	require.NoError(t, err)
	require.Len(t, res.sessions, 4)

	for _, session := range res.sessions {
		require.Len(t, session.delivered, len(frames))

		first := projections(session.delivered[0].Layers)
		require.Len(t, first, 1)
		for _, view := range first[0].Views {
			assert.InDelta(t, radians(20), orientation.ToEuler(view.Pose.Orientation).Yaw, 1e-4)
		}

		// The null layer is dropped.
		assert.Len(t, session.delivered[1].Layers, 2)
		assert.Empty(t, session.delivered[2].Layers)
	}

	rewritten := res.measure.GetMetric(string(model.OutcomeRewritten))
	require.NotNil(t, rewritten)
	assert.Equal(t, int64(8), rewritten.Total())
	assert.Equal(t, int64(8), rewritten.ProjectionLayers())
	assert.Equal(t, int64(16), rewritten.Views())
	assert.Equal(t, int64(4), res.measure.GetMetric(string(model.OutcomeEmpty)).Total())

	assert.Contains(t, dot.String(), "digraph")
	assert.Contains(t, dot.String(), model.StartStage)
}

func TestSimulationRunIdentity(t *testing.T) {
	t.Parallel()

	frames := loadTestScenario(t).Submissions()

	sim := &simulation{
		logger:   zap.NewNop(),
		source:   pipeline.ConstantFactor(1),
		strategy: orientation.Euler,
		sessions: 1,
	}

	res, err := sim.run(context.Background(), frames)
	require.NoError(t, err)

	for i, delivered := range res.sessions[0].delivered {
		assert.Equal(t, *frames[i], delivered)
	}
}

func TestSimulationRunNoSession(t *testing.T) {
	t.Parallel()

	sim := &simulation{logger: zap.NewNop(), source: pipeline.ConstantFactor(2)}

	_, err := sim.run(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidSessions)
}

func TestSimulationRunCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sim := &simulation{
		logger:   zap.NewNop(),
		source:   pipeline.ConstantFactor(2),
		sessions: 2,
	}

	_, err := sim.run(ctx, loadTestScenario(t).Submissions())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFactorSource(t *testing.T) {
	t.Parallel()

	source, err := factorSource(true, 1.5, &Scenario{Amplify: 4})
	require.NoError(t, err)
	assert.Equal(t, float32(1.5), source.Amplification())

	source, err = factorSource(false, config.DefaultAmplify, &Scenario{Amplify: 4})
	require.NoError(t, err)
	assert.Equal(t, float32(4), source.Amplification())

	source, err = factorSource(false, config.DefaultAmplify, &Scenario{})
	require.NoError(t, err)
	assert.IsType(t, &config.Env{}, source)

	for _, invalid := range []float32{0, -2} {
		_, err = factorSource(true, invalid, &Scenario{})
		assert.ErrorIs(t, err, ErrInvalidAmplify)
	}
}
