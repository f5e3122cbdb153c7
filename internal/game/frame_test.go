package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundStateText(t *testing.T) {
	t.Parallel()

	for _, s := range []RoundState{AwaitingHand, Playing, GameOver} {
		b, err := s.MarshalText()
		assert.NoError(t, err)

		var back RoundState
		assert.NoError(t, back.UnmarshalText(b))
		assert.Equal(t, s, back)
	}

	var s RoundState
	assert.Error(t, s.UnmarshalText([]byte("paused")))
}

func TestFrameJSON(t *testing.T) {
	t.Parallel()

	f := Frame{
		State:     Playing,
		Bounds:    FieldBounds{Width: 800, Height: 600},
		Score:     3,
		Remaining: 12,
		Target:    &Circle{Label: "Ring", X: 300, Y: 200, Radius: TargetRadius},
	}

	b, err := json.Marshal(f)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"state":"playing"`)
	assert.NotContains(t, string(b), `"hotspot"`)

	var back Frame
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, Playing, back.State)
	assert.Equal(t, f.Target, back.Target)
}
