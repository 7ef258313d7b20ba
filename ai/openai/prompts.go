package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/minuteman/ai"
)

const summarizeSystemPrompt = "You are an expert meeting analyst. Produce a concise, structured summary " +
	"of the meeting transcript provided. " + jsonOnlyInstruction + `
{
  "summary": "2-4 sentence summary capturing the key decisions and outcomes",
  "key_topics": ["main topics discussed"],
  "participants": ["names of all participants mentioned"]
}`

const extractSystemPrompt = "You are an expert at identifying action items from meeting transcripts. " +
	"Extract every task, assignment, or commitment made during the meeting. " +
	"If no action items exist, return an empty list. " + jsonOnlyInstruction + `
{
  "action_items": [
    {
      "description": "what needs to be done",
      "assignee": "name as mentioned in the transcript, or empty if unclear",
      "priority": "HIGH (urgent, blocking, ASAP), MEDIUM (normal), or LOW (nice-to-have, no rush)",
      "deadline": "deadline as mentioned in the transcript (e.g. 'by Friday', 'next week', 'end of Q2'), or empty",
      "context": "brief context from the discussion about why this task matters"
    }
  ]
}`

const assignOwnerSystemPrompt = "You are matching action items to team members. Given a task description " +
	"and a list of candidate team members, select the single best match based on their role, expertise, " +
	"and current projects. If a specific person was mentioned by name in the transcript, prefer them. " +
	jsonOnlyInstruction + `
{
  "name": "full name of the best matching team member",
  "email": "email of the matched team member",
  "reasoning": "brief reason for this match"
}`

const deadlineSystemPrompt = "You are resolving relative date references into absolute ISO dates (YYYY-MM-DD). " +
	"Use the meeting date as the reference point for relative dates. " + jsonOnlyInstruction + `
{
  "deadlines": [
    {"index": 0, "deadline": "YYYY-MM-DD"}
  ]
}`

const classifySystemPrompt = "Classify the user's question into one of three categories:\n" +
	"- 'team': Questions about team members, roles, expertise, projects, or who someone is/does " +
	"(e.g. 'Who is the PM?', 'Who knows Python?')\n" +
	"- 'meeting': Questions about past meetings, discussions, decisions, or what was talked about " +
	"(e.g. 'What was discussed with Todd?', 'What are the action items from sprint planning?')\n" +
	"- 'general': Everything else: general knowledge, definitions, opinions, or questions unrelated " +
	"to the team or meetings\n" +
	jsonOnlyInstruction + `
{
  "category": "team, meeting or general",
  "reasoning": "brief reason for classification"
}`

const teamAnswerSystemPrompt = "You are a helpful assistant for a team. Answer the user's question " +
	"using the team directory information provided below. Be concise and direct. If the information " +
	"doesn't fully answer the question, say so.\n\nTEAM DIRECTORY CONTEXT:\n%s"

const meetingAnswerSystemPrompt = "You are a helpful assistant that answers questions about past meetings. " +
	"Use the meeting transcript excerpts provided below to answer the user's question. Be specific and " +
	"reference details from the transcripts. If the information doesn't fully answer the question, say " +
	"so.\n\nMEETING CONTEXT:\n%s"

const generalAnswerSystemPrompt = "You are a helpful assistant. Answer the user's question clearly and concisely."

const jsonOnlyInstruction = "Output ONLY valid JSON. Do not include any preamble, explanation, greeting, " +
	"or acknowledgment. Start your response directly with the opening brace and end with the closing " +
	"brace. No trailing commas, no extra keys, and no extraneous text outside the object. " +
	"Your output must exactly follow this shape:"

func renderSummarizeUser(transcript string) string {
	return fmt.Sprintf(`Analyze the following meeting transcript and produce a structured summary.

TRANSCRIPT:
%s

Provide:
1. A concise summary (2-4 sentences) capturing the key decisions and outcomes
2. The main topics discussed
3. The names of all participants mentioned`, transcript)
}

func renderExtractUser(transcript, summary string) string {
	return fmt.Sprintf(`Extract all action items from this meeting transcript.

TRANSCRIPT:
%s

MEETING SUMMARY:
%s

If no action items are found, return an empty list.`, transcript, summary)
}

func renderAssignOwnerUser(req ai.AssigneeRequest) string {
	var candidates strings.Builder
	for _, c := range req.Candidates {
		fmt.Fprintf(&candidates, "- %s (%s), Email: %s\n  %s\n", c.Name, c.Role, c.Email, c.Profile)
	}

	return fmt.Sprintf(`Match this action item to the best team member.

TASK: %s
CONTEXT: %s
MENTIONED ASSIGNEE: %s

CANDIDATE TEAM MEMBERS:
%s
Select the team member who best matches. If a specific person was mentioned by name in the transcript, prefer them.
Return their full name and email.`,
		req.TaskDescription, req.TaskContext, req.MentionedAssignee, candidates.String())
}

func renderDeadlineUser(meetingDate, itemsJSON string) string {
	return fmt.Sprintf(`Resolve the deadlines for these action items into absolute dates.

MEETING DATE: %s

ACTION ITEMS:
%s

Rules:
- "by Friday" or "end of this week" -> the next upcoming Friday from the meeting date
- "next week" -> the following Monday from the meeting date
- "next Monday", "next Wednesday" etc. -> the next occurrence of that day
- "ASAP" or "immediately" -> 2 business days from the meeting date
- "end of month" -> last day of the meeting's month
- "end of Q1/Q2/Q3/Q4" -> last day of that quarter
- If no deadline was mentioned -> 7 days from the meeting date
- Specific dates like "February 12th" -> use that date directly

Return a list where each entry has the action item index (0-based) and the resolved ISO date.`,
		meetingDate, itemsJSON)
}
