package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

func TestGameMode(t *testing.T) {
	cases := []struct {
		name     string
		mode     tictactoe.Mode
		opponent entity.PlayerKind
	}{
		{config.ModeLocal, tictactoe.ModeLocal, entity.Human},
		{config.ModeMinimax, tictactoe.ModeSinglePlayer, entity.AutomatedMinimax},
		{config.ModeNaiveBayes, tictactoe.ModeSinglePlayer, entity.AutomatedNaiveBayes},
		{config.ModeRandom, tictactoe.ModeSinglePlayer, entity.AutomatedRandom},
		{config.ModeSelfPlay, tictactoe.ModeSelfPlay, entity.AutomatedMinimax},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mode, opponent, err := GameMode(tc.name)

			require.NoError(t, err)
			assert.Equal(t, tc.mode, mode)
			assert.Equal(t, tc.opponent, opponent)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, _, err := GameMode("online")

		require.ErrorIs(t, err, config.ErrInvalidMode)
	})
}
