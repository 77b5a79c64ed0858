package fathom

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePageBareArray(t *testing.T) {
	body := `[{"recording_id": "1", "title": "Standup"}, {"recording_id": 2, "title": "Retro"}]`

	meetings, cursor := decodePage([]byte(body))

	require.Len(t, meetings, 2)
	assert.Equal(t, "1", meetings[0].RecordingID.String())
	assert.Equal(t, "2", meetings[1].RecordingID.String())
	assert.Empty(t, cursor)
}

func TestDecodePageWrapperKeys(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"meetings key", `{"meetings": [{"recording_id": "7"}], "next_cursor": "abc"}`},
		{"items key", `{"items": [{"recording_id": "7"}], "next_cursor": "abc"}`},
		{"recordings key", `{"recordings": [{"recording_id": "7"}], "next_cursor": "abc"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meetings, cursor := decodePage([]byte(tt.body))
			require.Len(t, meetings, 1)
			assert.Equal(t, "7", meetings[0].RecordingID.String())
			assert.Equal(t, "abc", cursor)
		})
	}
}

func TestDecodePageCandidateOrder(t *testing.T) {
	// When more than one wrapper key is present, "meetings" wins.
	body := `{"recordings": [{"recording_id": "bad"}], "meetings": [{"recording_id": "good"}]}`

	meetings, _ := decodePage([]byte(body))

	require.Len(t, meetings, 1)
	assert.Equal(t, "good", meetings[0].RecordingID.String())
}

func TestDecodePageMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `garbage`},
		{"scalar", `42`},
		{"unknown wrapper", `{"conferences": [{"recording_id": "1"}]}`},
		{"empty object", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meetings, cursor := decodePage([]byte(tt.body))
			assert.Empty(t, meetings)
			assert.Empty(t, cursor)
		})
	}
}

func TestDecodePageNonStringCursor(t *testing.T) {
	body := `{"meetings": [{"recording_id": "1"}], "next_cursor": 17}`

	meetings, cursor := decodePage([]byte(body))

	require.Len(t, meetings, 1)
	assert.Empty(t, cursor, "non-string cursor should be treated as absent")
}

func TestFlexIDUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"string id", `{"recording_id": "118794290"}`, "118794290"},
		{"numeric id", `{"recording_id": 118794290}`, "118794290"},
		{"null id", `{"recording_id": null}`, ""},
		{"absent id", `{}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Meeting
			require.NoError(t, json.Unmarshal([]byte(tt.body), &m))
			assert.Equal(t, tt.want, m.RecordingID.String())
		})
	}
}

func TestMeetingDisplayTitle(t *testing.T) {
	assert.Equal(t, "Standup", Meeting{Title: "Standup"}.DisplayTitle())
	assert.Equal(t, "Weekly", Meeting{MeetingTitle: "Weekly"}.DisplayTitle())
	assert.Equal(t, "Standup", Meeting{Title: "Standup", MeetingTitle: "Weekly"}.DisplayTitle())
	assert.Equal(t, "Untitled Meeting", Meeting{}.DisplayTitle())
}

func TestInviteeDisplayName(t *testing.T) {
	assert.Equal(t, "Ada", Invitee{Name: "Ada", Email: "ada@example.com"}.DisplayName())
	assert.Equal(t, "ada@example.com", Invitee{Email: "ada@example.com"}.DisplayName())
	assert.Equal(t, "Unknown", Invitee{}.DisplayName())
}

func TestTranscriptDecode(t *testing.T) {
	body := `{"transcript": [
		{"speaker": {"display_name": "Ada"}, "text": "hello", "timestamp": "00:00:01"},
		{"speaker": {"display_name": "Grace"}, "text": "hi", "timestamp": "00:00:04"}
	]}`

	var tr Transcript
	require.NoError(t, json.Unmarshal([]byte(body), &tr))

	require.Len(t, tr.Entries, 2)
	assert.Equal(t, "Ada", tr.Entries[0].Speaker.DisplayName)
	assert.Equal(t, "hello", tr.Entries[0].Text)
	assert.Equal(t, "00:00:04", tr.Entries[1].Timestamp)
}
