// Package state implements the archive reconciliation routine.
//
// Extracted is the single entry point: given a desired outcome ("this
// archive's contents exist, extracted, under this target"), it inspects
// current state, performs at most the work needed to reach it, and reports
// what changed. The phases run strictly in order (presence check, cache
// resolution, extraction dispatch, outcome accounting) because each
// phase's precondition depends on the previous one's completion.
//
// All collaborators (filesystem, fetcher, extractor, shell runner) are
// explicit dependencies in Deps, so tests substitute fakes. Preview mode
// short-circuits before any mutation, including the fetch. The package
// assumes no concurrent reconciliation of the same presence marker;
// callers serialize such calls externally.
package state
