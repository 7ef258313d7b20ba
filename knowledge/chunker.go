package knowledge

import "strings"

const defaultChunkSize = 500

// transcriptHeader holds the metadata lines from the top of a transcript.
type transcriptHeader struct {
	Meeting   string
	Date      string
	Attendees string
}

// parseTranscriptHeader extracts metadata from the first transcript lines.
func parseTranscriptHeader(text string) transcriptHeader {
	var header transcriptHeader
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) > 5 {
		lines = lines[:5]
	}
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "Date:"):
			header.Date = strings.TrimSpace(strings.TrimPrefix(line, "Date:"))
		case strings.HasPrefix(line, "Attendees:"):
			header.Attendees = strings.TrimSpace(strings.TrimPrefix(line, "Attendees:"))
		case strings.HasPrefix(line, "Meeting:"):
			header.Meeting = strings.TrimSpace(strings.TrimPrefix(line, "Meeting:"))
		}
	}
	return header
}

// isHeaderLine reports whether a line belongs to the transcript header
// rather than the spoken body.
func isHeaderLine(line string) bool {
	for _, prefix := range []string{"Meeting:", "Date:", "Duration:", "Attendees:"} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return !strings.Contains(line, ":")
}

// splitTranscript splits a transcript into chunks for indexing.
// The body is split near speaker-turn boundaries at roughly chunkSize
// characters, and the header block is prepended to every chunk so each
// one retrieves with its meeting context.
func splitTranscript(text string, chunkSize int) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	lines := strings.Split(trimmed, "\n")

	var headerLines, bodyLines []string
	inBody := false
	for _, line := range lines {
		if !inBody && !isHeaderLine(line) {
			inBody = true
		}
		if inBody {
			bodyLines = append(bodyLines, line)
		} else {
			headerLines = append(headerLines, line)
		}
	}

	header := strings.TrimSpace(strings.Join(headerLines, "\n"))
	if len(bodyLines) == 0 {
		return []string{trimmed}
	}

	var chunks []string
	current := header + "\n\n"
	for _, line := range bodyLines {
		if len(current)+len(line) > chunkSize && len(current) > len(header)+10 {
			chunks = append(chunks, strings.TrimSpace(current))
			current = header + "\n\n" + line + "\n"
		} else {
			current += line + "\n"
		}
	}
	if strings.TrimSpace(current) != "" && len(current) > len(header)+10 {
		chunks = append(chunks, strings.TrimSpace(current))
	}

	if len(chunks) == 0 {
		return []string{trimmed}
	}
	return chunks
}
