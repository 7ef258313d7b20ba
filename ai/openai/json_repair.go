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


package openai

import "strings"

// repairJSON attempts to fix common JSON formatting issues from LLM
// responses. It handles missing opening quotes before object keys
// (`, index":` becomes `, "index":`) and trailing commas before a
// closing bracket or brace.
func repairJSON(s string) string {
	in := []rune(s)
	var out strings.Builder
	out.Grow(len(in) + 16)

	i := 0
	for i < len(in) {
		ch := in[i]
		out.WriteRune(ch)
		i++

		if ch != '{' && ch != ',' {
			continue
		}

		// Copy whitespace following the separator.
		for i < len(in) && (in[i] == ' ' || in[i] == '\n' || in[i] == '\t') {
			out.WriteRune(in[i])
			i++
		}

		// Trailing comma directly before a closer: drop the comma we wrote.
		if ch == ',' && i < len(in) && (in[i] == '}' || in[i] == ']') {
			repaired := strings.TrimRight(out.String(), " \n\t")
			repaired = strings.TrimSuffix(repaired, ",")
			out.Reset()
			out.WriteString(repaired)
			continue
		}

		// Bare word ending in ": indicates a key missing its opening quote.
		if i < len(in) && in[i] != '"' && isIdentRune(in[i]) {
			start := i
			for i < len(in) && isIdentRune(in[i]) {
				i++
			}
			if i+1 < len(in) && in[i] == '"' && in[i+1] == ':' {
				out.WriteRune('"')
			}
			out.WriteString(string(in[start:i]))
		}
	}

	return out.String()
}

// isIdentRune returns true for runes that may appear in an unquoted JSON key.
func isIdentRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}
