// Package diff computes word-level differences between two strings, used
// by the HTML reporter to highlight what changed between an assertion's
// expected and actual values. Adapted from a line-oriented file-diff
// engine down to the single operation the reporter needs.
package diff

import (
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Engine wraps diffmatchpatch with settings tuned for short assertion
// values rather than whole files.
type Engine struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// NewEngine creates a diff engine with semantic cleanup enabled and no
// timeout, since assertion values are short.
func NewEngine() *Engine {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	return &Engine{dmp: dmp}
}

// DefaultEngine is shared by every caller; it holds no per-call state.
var DefaultEngine = NewEngine()

// ComputeWordLevelDiff returns the diffmatchpatch operations transforming
// oldText into newText, after semantic cleanup groups adjacent edits into
// more readable chunks.
func (e *Engine) ComputeWordLevelDiff(oldText, newText string) []diffmatchpatch.Diff {
	diffs := e.dmp.DiffMain(oldText, newText, false)
	return e.dmp.DiffCleanupSemantic(diffs)
}

// ComputeWordLevelDiff is a convenience wrapper around DefaultEngine.
func ComputeWordLevelDiff(oldText, newText string) []diffmatchpatch.Diff {
	return DefaultEngine.ComputeWordLevelDiff(oldText, newText)
}
