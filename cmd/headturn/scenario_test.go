package main

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/headturn/pkg/orientation"
	"github.com/askiada/headturn/pkg/pipeline/model"
)

func loadTestScenario(t *testing.T) *Scenario {
	t.Helper()

	f, err := os.Open("testdata/look_around.yaml")
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })

	sc, err := LoadScenario(f)
	require.NoError(t, err)

	return sc
}

func TestLoadScenario(t *testing.T) {
	t.Parallel()

	sc := loadTestScenario(t)
	assert.Equal(t, "look around", sc.Name)
	assert.Equal(t, "decoupled", sc.Strategy)
	require.Len(t, sc.Frames, 3)

	subs := sc.Submissions()
	require.Len(t, subs, 3)

	first := subs[0]
	assert.Equal(t, model.Time(1000000), first.DisplayTime)
	assert.Equal(t, model.BlendModeOpaque, first.EnvironmentBlendMode)
	require.Len(t, first.Layers, 2)

	projection, ok := first.Layers[0].(*model.ProjectionLayer)
	require.True(t, ok)
	assert.Equal(t, model.Space(1), projection.Space)
	require.Len(t, projection.Views, 2)

	view := projection.Views[1]
	assert.InDelta(t, radians(10), orientation.ToEuler(view.Pose.Orientation).Yaw, 1e-5)
	assert.Equal(t, orientation.Vec3{X: 0.032, Y: 1.6}, view.Pose.Position)
	assert.InDelta(t, radians(-45), view.Fov.AngleLeft, 1e-6)
	assert.Equal(t, uint32(1), view.SubImage.ImageArrayIndex)

	quad, ok := first.Layers[1].(*model.QuadLayer)
	require.True(t, ok)
	assert.InDelta(t, float32(0.5), quad.Height, 1e-6)

	second := subs[1]
	require.Len(t, second.Layers, 3)
	assert.True(t, model.IsNil(second.Layers[0]))
	assert.Equal(t, model.TypeCompositionLayerCylinderKHR, second.Layers[2].Type())

	assert.Empty(t, subs[2].Layers)
	assert.Equal(t, model.BlendModeAlphaBlend, subs[2].EnvironmentBlendMode)
}

func TestLoadScenarioErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		err   error
	}{
		"no frames": {
			input: "name: empty\n",
			err:   ErrNoFrames,
		},
		"unknown layer": {
			input: "frames:\n  - layers:\n      - type: cube\n",
			err:   ErrUnknownLayerType,
		},
		"unknown blend mode": {
			input: "frames:\n  - blend_mode: multiply\n",
			err:   ErrUnknownBlendMode,
		},
		"missing type": {
			input: "frames:\n  - layers:\n      - space: 1\n",
			err:   ErrUnknownLayerType,
		},
		"opaque without type": {
			input: "frames:\n  - layers:\n      - type: opaque\n",
			err:   ErrMissingStructureType,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := LoadScenario(strings.NewReader(tc.input))
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestLoadScenarioNullLayer(t *testing.T) {
	t.Parallel()

	tcs := map[string]string{
		"unquoted":    "frames:\n  - layers:\n      - type: null\n      - type: quad\n",
		"quoted":      "frames:\n  - layers:\n      - type: \"null\"\n      - type: quad\n",
		"tilde":       "frames:\n  - layers:\n      - type: ~\n      - type: quad\n",
		"upper case":  "frames:\n  - layers:\n      - type: NULL\n      - type: quad\n",
		"string case": "frames:\n  - layers:\n      - type: 'Null'\n      - type: quad\n",
	}

	for name, input := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			sc, err := LoadScenario(strings.NewReader(input))
			require.NoError(t, err)

			subs := sc.Submissions()
			require.Len(t, subs, 1)
			require.Len(t, subs[0].Layers, 2)
			assert.True(t, model.IsNil(subs[0].Layers[0]))
			assert.IsType(t, &model.QuadLayer{}, subs[0].Layers[1])
		})
	}
}

func TestLoadScenarioUnknownField(t *testing.T) {
	t.Parallel()

	_, err := LoadScenario(strings.NewReader("frames:\n  - display_time: 1\n    colour: red\n"))
	assert.Error(t, err)
}
