package diff

import (
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeWordLevelDiffDetectsChangedWord(t *testing.T) {
	diffs := ComputeWordLevelDiff("The quick brown fox", "The quick red fox")

	var removed, added string
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			removed += d.Text
		case diffmatchpatch.DiffInsert:
			added += d.Text
		}
	}
	assert.Contains(t, removed, "brown")
	assert.Contains(t, added, "red")
}

func TestComputeWordLevelDiffIdenticalStringsHaveNoEdits(t *testing.T) {
	diffs := ComputeWordLevelDiff("Hello Alice", "Hello Alice")
	for _, d := range diffs {
		assert.Equal(t, diffmatchpatch.DiffEqual, d.Type)
	}
}

func TestComputeWordLevelDiffEmptyToValue(t *testing.T) {
	diffs := ComputeWordLevelDiff("", "Hello Alice")
	require.Len(t, diffs, 1)
	assert.Equal(t, diffmatchpatch.DiffInsert, diffs[0].Type)
	assert.Equal(t, "Hello Alice", diffs[0].Text)
}

func TestDefaultEngineComputesDiff(t *testing.T) {
	diffs := DefaultEngine.ComputeWordLevelDiff("a", "b")
	assert.NotEmpty(t, diffs)
}
