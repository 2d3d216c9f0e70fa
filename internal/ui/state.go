// Package ui holds explicit view state for rendering generation results.
// The state that the original UI kept in ambient module-level sets (revealed
// answers, favorite saves in flight) lives here on a struct passed by
// reference, so nothing in the process is a singleton.
package ui

import (
	"github.com/jonathan/interview-prep/internal/types"
)

// ViewState tracks per-question presentation state across one rendering
// session: which questions have had their answers revealed (or, in the CLI,
// already been printed) and which favorite saves are still in flight.
type ViewState struct {
	ActiveCategory types.Category

	revealed map[string]bool
	saving   map[string]bool
}

// NewViewState returns an empty view state focused on the technical tab.
func NewViewState() *ViewState {
	return &ViewState{
		ActiveCategory: types.CategoryTechnical,
		revealed:       make(map[string]bool),
		saving:         make(map[string]bool),
	}
}

// Reveal marks a question's answer as revealed. It reports whether the
// question was newly revealed, so incremental renderers can print each
// arriving question exactly once.
func (v *ViewState) Reveal(id string) bool {
	if v.revealed[id] {
		return false
	}
	v.revealed[id] = true
	return true
}

// Revealed reports whether a question's answer has been revealed.
func (v *ViewState) Revealed(id string) bool {
	return v.revealed[id]
}

// BeginSave marks a favorite save as in flight. It reports false when a save
// for the same question is already running, so duplicate submissions are
// suppressed.
func (v *ViewState) BeginSave(id string) bool {
	if v.saving[id] {
		return false
	}
	v.saving[id] = true
	return true
}

// EndSave clears the in-flight marker for a question.
func (v *ViewState) EndSave(id string) {
	delete(v.saving, id)
}

// Saving reports whether a favorite save for the question is in flight.
func (v *ViewState) Saving(id string) bool {
	return v.saving[id]
}

// Reset clears all presentation state for a new search.
func (v *ViewState) Reset() {
	v.revealed = make(map[string]bool)
	v.saving = make(map[string]bool)
	v.ActiveCategory = types.CategoryTechnical
}
