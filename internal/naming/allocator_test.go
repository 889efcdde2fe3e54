package naming

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAllocate_FreeBase verifies that a free base name is used unchanged.
func TestAllocate_FreeBase(t *testing.T) {
	a := NewAllocator("Dog")

	name, err := a.Allocate("Cat")
	require.NoError(t, err)
	assert.Equal(t, "Cat", name)
	assert.True(t, a.IsTaken("Cat"), "allocated names must be reserved")
}

// TestAllocate_Suffixes verifies the "(n)" counter sequence, including the
// stem handling for names that already carry a counter.
func TestAllocate_Suffixes(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		base     string
		want     string
	}{
		{"first copy", []string{"testSound"}, "testSound", "testSound (1)"},
		{"skips taken counter", []string{"testSound", "testSound (1)"}, "testSound", "testSound (2)"},
		{"copy of a copy", []string{"testSound", "testSound (1)"}, "testSound (1)", "testSound (2)"},
		{"copy of a high counter", []string{"meow (7)"}, "meow (7)", "meow (8)"},
		{"parenthesised text is not a counter", []string{"cat (big)"}, "cat (big)", "cat (big) (1)"},
		{"bare counter is not a stem", []string{" (3)"}, " (3)", " (3) (1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UniqueName(tt.base, tt.existing)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestAllocate_Batch verifies that consecutive allocations never collide
// with each other.
func TestAllocate_Batch(t *testing.T) {
	a := NewAllocator("Cat")

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		name, err := a.Allocate("Cat")
		require.NoError(t, err)
		assert.False(t, seen[name], "name %q allocated twice", name)
		seen[name] = true
		assert.Equal(t, fmt.Sprintf("Cat (%d)", i+1), name)
	}
}

// TestAllocate_EmptyBase rejects blank names.
func TestAllocate_EmptyBase(t *testing.T) {
	_, err := NewAllocator().Allocate("  ")
	assert.Error(t, err)
}

// TestAllocate_Exhausted verifies the bounded search reports an error.
func TestAllocate_Exhausted(t *testing.T) {
	a := NewAllocator("x")
	for n := 1; n <= maxSuffix; n++ {
		a.Reserve(fmt.Sprintf("x (%d)", n))
	}

	_, err := a.Allocate("x")
	assert.Error(t, err)
}
