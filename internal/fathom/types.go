package fathom

import (
	"bytes"
	"encoding/json"
)

// Meeting is one recorded meeting as returned by the /meetings listing.
// Identity is RecordingID; every other field is informational and may change
// between observations.
type Meeting struct {
	RecordingID        FlexID    `json:"recording_id"`
	Title              string    `json:"title"`
	MeetingTitle       string    `json:"meeting_title"`
	ScheduledStartTime string    `json:"scheduled_start_time"`
	RecordingStartTime string    `json:"recording_start_time"`
	RecordingEndTime   string    `json:"recording_end_time"`
	CreatedAt          string    `json:"created_at"`
	CalendarInvitees   []Invitee `json:"calendar_invitees"`
}

// DisplayTitle returns the best available title for the meeting,
// falling back to a default when the upstream left both title fields empty.
func (m Meeting) DisplayTitle() string {
	if m.Title != "" {
		return m.Title
	}
	if m.MeetingTitle != "" {
		return m.MeetingTitle
	}
	return "Untitled Meeting"
}

// Invitee is a calendar invitee attached to a meeting.
type Invitee struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// DisplayName returns the invitee's name, falling back to the email address.
func (i Invitee) DisplayName() string {
	if i.Name != "" {
		return i.Name
	}
	if i.Email != "" {
		return i.Email
	}
	return "Unknown"
}

// Transcript is the transcript payload for one recording.
type Transcript struct {
	Entries []TranscriptEntry `json:"transcript"`
}

// TranscriptEntry is a single utterance within a transcript.
type TranscriptEntry struct {
	Speaker   Speaker `json:"speaker"`
	Text      string  `json:"text"`
	Timestamp string  `json:"timestamp"`
}

// Speaker identifies who spoke a transcript entry.
type Speaker struct {
	DisplayName string `json:"display_name"`
}

// FlexID is a string identifier that tolerates being encoded as either a
// JSON string or a JSON number upstream.
type FlexID string

// UnmarshalJSON accepts "123", 123, and null.
func (f *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexID(n.String())
	return nil
}

// String returns the identifier as a plain string.
func (f FlexID) String() string {
	return string(f)
}

// itemKeys are the wrapper keys the listing endpoint has been observed to use
// for the meeting array, tried in order.
var itemKeys = []string{"meetings", "items", "recordings"}

// decodePage decodes one listing page body. The body is either a bare array
// of meetings or an object carrying the array under one of itemKeys plus an
// optional next_cursor. Anything unrecognized decodes to zero items.
func decodePage(data []byte) ([]Meeting, string) {
	var asList []Meeting
	if err := json.Unmarshal(data, &asList); err == nil {
		return asList, ""
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, ""
	}

	var meetings []Meeting
	for _, key := range itemKeys {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		var decoded []Meeting
		if err := json.Unmarshal(raw, &decoded); err == nil && len(decoded) > 0 {
			meetings = decoded
			break
		}
	}

	var cursor string
	if raw, ok := obj["next_cursor"]; ok {
		// The cursor is opaque; a non-string value is treated as absent.
		_ = json.Unmarshal(raw, &cursor)
	}

	return meetings, cursor
}
