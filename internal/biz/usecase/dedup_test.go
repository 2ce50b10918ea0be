package usecase

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupGuard_MarkAndCheck(t *testing.T) {
	g := NewDedupGuard(DefaultDedupCapacity, DefaultDedupEvict)

	assert.False(t, g.AlreadyProcessed("m1"))
	g.MarkProcessed("m1")
	assert.True(t, g.AlreadyProcessed("m1"))

	assert.False(t, g.CheckAndMark("m2"))
	assert.True(t, g.CheckAndMark("m2"))
}

func TestDedupGuard_EvictsEarliestInsertions(t *testing.T) {
	g := NewDedupGuard(DefaultDedupCapacity, DefaultDedupEvict)

	for i := 0; i < 101; i++ {
		g.MarkProcessed(fmt.Sprintf("m%d", i))
		require.LessOrEqual(t, g.Len(), DefaultDedupCapacity)
	}

	assert.Equal(t, 51, g.Len())
	for i := 0; i < 50; i++ {
		assert.False(t, g.AlreadyProcessed(fmt.Sprintf("m%d", i)), "m%d should be evicted", i)
	}
	for i := 50; i < 101; i++ {
		assert.True(t, g.AlreadyProcessed(fmt.Sprintf("m%d", i)), "m%d should be kept", i)
	}
}

func TestDedupGuard_RecheckDoesNotRefreshPosition(t *testing.T) {
	g := NewDedupGuard(4, 2)

	g.MarkProcessed("a")
	g.MarkProcessed("b")
	g.MarkProcessed("a")
	g.MarkProcessed("c")
	g.MarkProcessed("d")
	g.MarkProcessed("e")

	assert.False(t, g.AlreadyProcessed("a"))
	assert.False(t, g.AlreadyProcessed("b"))
	assert.True(t, g.AlreadyProcessed("e"))
	assert.Equal(t, 3, g.Len())
}
