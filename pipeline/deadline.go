// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package pipeline

import (
	"regexp"
	"strings"
	"time"
)

const isoDate = "2006-01-02"

// Anchor date patterns, tried in order: a labeled date in prose or ISO
// form, then any bare "Month D, YYYY" substring.
var meetingDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`Date:\s*(\w+ \d{1,2},?\s*\d{4})`),
	regexp.MustCompile(`Date:\s*(\d{4}-\d{2}-\d{2})`),
	regexp.MustCompile(`(\w+ \d{1,2},?\s*\d{4})`),
}

var anchorLayouts = []string{
	isoDate,
	"January 2, 2006",
	"January 2 2006",
}

// extractMeetingDate scans the transcript for the meeting date.
// Falls back to the current date when no parseable date is present.
func extractMeetingDate(transcript string, now time.Time) time.Time {
	for _, pattern := range meetingDatePatterns {
		match := pattern.FindStringSubmatch(transcript)
		if match == nil {
			continue
		}
		for _, layout := range anchorLayouts {
			if t, err := time.Parse(layout, match[1]); err == nil {
				return t
			}
		}
	}
	return now
}

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// resolveDeadlinePhrase applies the fixed deadline policy to a raw
// phrase. Returns the resolved ISO date and true when the phrase is
// covered by the policy; phrases outside the policy (free-form dates
// like "mid July") are left to the gateway.
//
// Policy, anchored to the meeting date:
//   - already ISO            -> unchanged
//   - empty / no deadline    -> 7 days out
//   - by Friday, end of week -> next upcoming Friday
//   - next week              -> following Monday
//   - next <weekday>         -> next occurrence of that weekday
//   - ASAP, immediately      -> 2 business days out
//   - end of month           -> last day of the anchor's month
//   - end of Q1..Q4          -> last day of that quarter
func resolveDeadlinePhrase(raw string, anchor time.Time) (string, bool) {
	phrase := strings.ToLower(strings.TrimSpace(raw))

	if isoDatePattern.MatchString(phrase) {
		return phrase, true
	}

	switch phrase {
	case "":
		return anchor.AddDate(0, 0, 7).Format(isoDate), true
	case "by friday", "end of this week", "end of the week", "end of week", "by end of week":
		return nextWeekday(anchor, time.Friday).Format(isoDate), true
	case "next week":
		return nextWeekday(anchor, time.Monday).Format(isoDate), true
	case "asap", "immediately":
		return addBusinessDays(anchor, 2).Format(isoDate), true
	case "end of month", "end of the month":
		return endOfMonth(anchor).Format(isoDate), true
	}

	if name, ok := strings.CutPrefix(phrase, "next "); ok {
		if wd, known := weekdays[name]; known {
			return nextWeekday(anchor, wd).Format(isoDate), true
		}
	}

	if name, ok := strings.CutPrefix(phrase, "end of q"); ok && len(name) == 1 && name[0] >= '1' && name[0] <= '4' {
		return endOfQuarter(anchor.Year(), int(name[0]-'0')).Format(isoDate), true
	}

	return "", false
}

// nextWeekday returns the next occurrence of wd strictly after anchor.
func nextWeekday(anchor time.Time, wd time.Weekday) time.Time {
	days := (int(wd) - int(anchor.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return anchor.AddDate(0, 0, days)
}

// addBusinessDays advances n weekdays past anchor, skipping weekends.
func addBusinessDays(anchor time.Time, n int) time.Time {
	t := anchor
	for n > 0 {
		t = t.AddDate(0, 0, 1)
		if t.Weekday() != time.Saturday && t.Weekday() != time.Sunday {
			n--
		}
	}
	return t
}

// endOfMonth returns the last day of the anchor's month.
func endOfMonth(anchor time.Time) time.Time {
	return time.Date(anchor.Year(), anchor.Month()+1, 0, 0, 0, 0, 0, anchor.Location())
}

// endOfQuarter returns the last day of the given quarter in year.
func endOfQuarter(year, quarter int) time.Time {
	return time.Date(year, time.Month(quarter*3+1), 0, 0, 0, 0, 0, time.UTC)
}
