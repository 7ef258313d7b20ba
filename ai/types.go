package ai

// MeetingSummary is the structured result of summarizing a transcript.
type MeetingSummary struct {
	// Summary is a concise recap of decisions and outcomes.
	Summary string

	// KeyTopics lists the main topics discussed, in order of appearance.
	KeyTopics []string

	// Participants lists the names of participants mentioned.
	Participants []string
}

// DraftActionItem is an action item as extracted from a transcript, before
// the pipeline assigns its stable id.
type DraftActionItem struct {
	// Description states what needs to be done.
	Description string

	// Assignee is the name mentioned in the transcript, or empty if unclear.
	Assignee string

	// Priority is HIGH, MEDIUM or LOW as judged by the model.
	Priority string

	// Deadline is the raw phrase from the transcript ("by Friday"), or empty.
	Deadline string

	// Context is a brief note on why the task matters.
	Context string
}

// Candidate is a team member retrieved as a potential owner for a task.
type Candidate struct {
	Name    string
	Role    string
	Email   string
	Profile string // full directory passage for the member
}

// AssigneeRequest carries everything needed to match a task to an owner.
type AssigneeRequest struct {
	TaskDescription   string
	TaskContext       string
	MentionedAssignee string // "not specified" when the transcript named nobody
	Candidates        []Candidate
}

// AssigneeMatch is the result of matching an action item to a team member.
// It is consumed immediately to patch an action item, never persisted.
type AssigneeMatch struct {
	Name      string
	Email     string
	Reasoning string // brief reason for the match, diagnostic only
}

// DeadlineItem pairs an action item's index with the material the resolver
// needs to produce an absolute date.
type DeadlineItem struct {
	Index       int // 0-based index into the pipeline's action item list
	Description string
	RawDeadline string // raw phrase, may be empty
}

// DeadlineEntry is a single resolved deadline.
type DeadlineEntry struct {
	Index    int    // 0-based index of the action item
	Deadline string // resolved ISO date YYYY-MM-DD
}

// QueryClassification is the routing decision for a user question.
type QueryClassification struct {
	Category  string // "team", "meeting" or "general"
	Reasoning string // diagnostic only
}

// MessageRole identifies the author of a conversation turn.
type MessageRole string

const (
	// RoleHuman marks a user turn.
	RoleHuman MessageRole = "human"
	// RoleAI marks an assistant turn.
	RoleAI MessageRole = "ai"
)

// Message is a single prior conversation turn.
type Message struct {
	Role    MessageRole
	Content string
}

// AnswerMode selects the prompt used to generate an answer.
type AnswerMode string

const (
	// AnswerTeam answers using team directory context.
	AnswerTeam AnswerMode = "team"
	// AnswerMeeting answers using meeting history context.
	AnswerMeeting AnswerMode = "meeting"
	// AnswerGeneral answers with no retrieved context.
	AnswerGeneral AnswerMode = "general"
)

// AnswerRequest carries a question plus its assembled grounding material.
type AnswerRequest struct {
	Mode     AnswerMode
	Question string
	Context  string // formatted context blocks; empty for AnswerGeneral
	History  []Message
}
