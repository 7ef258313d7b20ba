package pipeline

import "github.com/poiesic/minuteman/core"

// stage identifies one step of the processing pipeline.
type stage int

const (
	stageIntake stage = iota
	stageSummarize
	stageExtract
	stageAssignOwners
	stageDeadlines
	stageNotify
	stageTerminal
)

// Stage names, exposed through the streaming entry point.
const (
	StepIntake       = "intake"
	StepSummarize    = "summarize"
	StepExtract      = "extract_action_items"
	StepAssignOwners = "assign_owners"
	StepDeadlines    = "determine_deadlines"
	StepNotify       = "send_emails"
)

func (s stage) String() string {
	switch s {
	case stageIntake:
		return StepIntake
	case stageSummarize:
		return StepSummarize
	case stageExtract:
		return StepExtract
	case stageAssignOwners:
		return StepAssignOwners
	case stageDeadlines:
		return StepDeadlines
	case stageNotify:
		return StepNotify
	default:
		return "terminal"
	}
}

// nextStage is the pipeline's transition table. The only data-dependent
// edge is after extraction: with no action items the owner, deadline and
// notification stages are skipped entirely.
func nextStage(s stage, state *core.ProcessingState) stage {
	switch s {
	case stageIntake:
		return stageSummarize
	case stageSummarize:
		return stageExtract
	case stageExtract:
		if len(state.ActionItems) == 0 {
			return stageTerminal
		}
		return stageAssignOwners
	case stageAssignOwners:
		return stageDeadlines
	case stageDeadlines:
		return stageNotify
	default:
		return stageTerminal
	}
}
