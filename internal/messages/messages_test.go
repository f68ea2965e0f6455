package messages

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListIsNonEmptyAndOrdered(t *testing.T) {
	t.Parallel()

	list := List()
	require.NotEmpty(t, list)
	assert.Equal(t, list, List(), "order is stable across calls")
}

func TestSomeTemplatesCarryTimePlaceholder(t *testing.T) {
	t.Parallel()

	found := false
	for _, template := range List() {
		if strings.Contains(template, "[time]") {
			found = true
			break
		}
	}
	assert.True(t, found)
}

func TestPickReturnsTemplateFromList(t *testing.T) {
	t.Parallel()

	source := NewSourceWith(List(), rand.New(rand.NewSource(1)))
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		picked := source.Pick()
		assert.Contains(t, List(), picked)
		seen[picked] = true
	}
	assert.Greater(t, len(seen), 1, "uniform pick covers multiple templates")
}

func TestNewSourceWithRejectsEmptyList(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		NewSourceWith(nil, rand.New(rand.NewSource(1)))
	})
}
