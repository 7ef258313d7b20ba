package pipeline

import "github.com/poiesic/minuteman/core"

// Delta is the partial state update produced by one stage. A nil list
// field means "unchanged"; a non-nil list replaces the state's field
// wholesale. Errors is the exception: its entries are appended, never
// replaced, preserving diagnostics from earlier stages.
type Delta struct {
	Summary      *string
	KeyTopics    []string
	Participants []string
	ActionItems  []core.ActionItem
	EmailsSent   []string
	Errors       []string
	Step         string
}

// Apply merges the delta into the state.
func (d *Delta) Apply(state *core.ProcessingState) {
	if d.Summary != nil {
		state.Summary = *d.Summary
	}
	if d.KeyTopics != nil {
		state.KeyTopics = d.KeyTopics
	}
	if d.Participants != nil {
		state.Participants = d.Participants
	}
	if d.ActionItems != nil {
		state.ActionItems = d.ActionItems
	}
	if d.EmailsSent != nil {
		state.EmailsSent = d.EmailsSent
	}
	state.Errors = append(state.Errors, d.Errors...)
	if d.Step != "" {
		state.ProcessingStep = d.Step
	}
}
