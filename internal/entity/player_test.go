package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlayerKind(t *testing.T) {
	assert.False(t, Human.IsAutomated())
	assert.True(t, AutomatedMinimax.IsAutomated())
	assert.True(t, AutomatedNaiveBayes.IsAutomated())
	assert.True(t, AutomatedRandom.IsAutomated())

	assert.Equal(t, "random", AutomatedRandom.String())
	assert.Equal(t, "unknown", PlayerKind(99).String())
}

func TestPlayerIndex_Other(t *testing.T) {
	assert.Equal(t, PlayerTwo, PlayerOne.Other())
	assert.Equal(t, PlayerOne, PlayerTwo.Other())
	assert.Equal(t, "Player 2", PlayerTwo.String())
}
