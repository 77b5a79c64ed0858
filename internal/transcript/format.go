// Package transcript renders fetched transcripts into the stable text
// documents that get uploaded, along with their filenames and the display
// dates that go into the index sheet. Everything here is pure: no I/O, no
// clock access beyond the injected now function.
package transcript

import (
	"strings"
	"time"
	"unicode"

	"github.com/fathomsync/fathomsync/internal/fathom"
)

// displayTimePattern is the human-readable pattern used for index rows,
// e.g. "02 Jan 2024, 03:04 PM".
const displayTimePattern = "02 Jan 2006, 03:04 PM"

// headerRule separates the document header from the body.
const headerRule = "=================================================="

// FormatDocument renders a transcript into a deterministic, human-readable
// text document: a header block with the title, date, optional recording
// range, and optional participant list, followed by one line per entry.
func FormatDocument(title string, m fathom.Meeting, tr *fathom.Transcript) string {
	startTime := m.RecordingStartTime
	if startTime == "" {
		startTime = m.CreatedAt
	}
	endTime := m.RecordingEndTime

	var participants []string
	for _, invitee := range m.CalendarInvitees {
		participants = append(participants, invitee.DisplayName())
	}

	lines := []string{
		headerRule,
		"Meeting: " + title,
		"Date: " + startTime,
	}
	if startTime != "" && endTime != "" {
		lines = append(lines, "Recording: "+startTime+" to "+endTime)
	}
	if len(participants) > 0 {
		lines = append(lines, "Participants: "+strings.Join(participants, ", "))
	}
	lines = append(lines, headerRule, "")

	if tr != nil && len(tr.Entries) > 0 {
		for _, entry := range tr.Entries {
			speaker := entry.Speaker.DisplayName
			if speaker == "" {
				speaker = "Unknown"
			}
			lines = append(lines, "["+entry.Timestamp+"] "+speaker+": "+entry.Text)
		}
	} else {
		lines = append(lines, "[No transcript content available]")
	}

	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

// DisplayDate extracts the meeting date for the index row. Preference order:
// recording start, scheduled start, created-at, else the current time. The
// raw value is reparsed from ISO-8601 and reformatted to the display pattern;
// on parse failure the raw string is returned unchanged.
func DisplayDate(m fathom.Meeting, now func() time.Time) string {
	raw := m.RecordingStartTime
	if raw == "" {
		raw = m.ScheduledStartTime
	}
	if raw == "" {
		raw = m.CreatedAt
	}
	if raw == "" {
		return now().Format(displayTimePattern)
	}

	t, err := parseISO(raw)
	if err != nil {
		return raw
	}
	return t.Format(displayTimePattern)
}

// parseISO parses an ISO-8601 timestamp with an optional trailing Z or
// numeric offset, tolerating a missing offset entirely.
func parseISO(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", raw)
}

// Filename builds a safe, unique filename for a transcript document, e.g.
// "118794290_Q1_Planning.txt". Every character of the title that is not
// alphanumeric or a space is stripped, spaces become underscores, and an
// empty result falls back to "untitled". The recording id prefix makes names
// collision-free across distinct recordings.
func Filename(recordingID, title string) string {
	var b strings.Builder
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			b.WriteRune(r)
		}
	}
	safe := strings.TrimSpace(b.String())
	safe = strings.ReplaceAll(safe, " ", "_")
	if safe == "" {
		safe = "untitled"
	}
	return recordingID + "_" + safe + ".txt"
}
