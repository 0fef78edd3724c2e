package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateConsumedOnce(t *testing.T) {
	repo := NewStateRepository()

	repo.Save("abc123")

	assert.True(t, repo.Consume("abc123"))
	assert.False(t, repo.Consume("abc123"), "a state must not be redeemable twice")
}

func TestUnknownStateRejected(t *testing.T) {
	repo := NewStateRepository()

	assert.False(t, repo.Consume("never-issued"))
}
