package whatsapp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExtractContentText(t *testing.T) {
	c := extractContent(Message{Type: "text", Text: &TextMsg{Body: "hello"}})

	assert.Equal(t, "hello", c.Text)
	assert.Nil(t, c.MediaID)
}

func TestExtractContentImage(t *testing.T) {
	c := extractContent(Message{
		Type:  "image",
		Image: &MediaMsg{ID: "media-1", MimeType: "image/jpeg", Caption: "our office"},
	})

	assert.Equal(t, "our office", c.Text)
	if assert.NotNil(t, c.MediaID) {
		assert.Equal(t, "media-1", *c.MediaID)
	}
	if assert.NotNil(t, c.MediaMimeType) {
		assert.Equal(t, "image/jpeg", *c.MediaMimeType)
	}
}

func TestExtractContentImageWithoutCaption(t *testing.T) {
	c := extractContent(Message{Type: "image", Image: &MediaMsg{ID: "media-2", MimeType: "image/png"}})

	assert.Equal(t, "[image message]", c.Text)
}

func TestExtractContentLocation(t *testing.T) {
	c := extractContent(Message{
		Type:     "location",
		Location: &LocationMsg{Latitude: 40.7128, Longitude: -74.006},
	})

	assert.Equal(t, "Location: 40.712800, -74.006000", c.Text)
}

func TestExtractContentButton(t *testing.T) {
	c := extractContent(Message{Type: "button", Button: &ButtonMsg{Text: "Yes please", Payload: "CONFIRM"}})

	assert.Equal(t, "Yes please", c.Text)
}

func TestExtractContentInteractive(t *testing.T) {
	c := extractContent(Message{
		Type:        "interactive",
		Interactive: &Interactive{Type: "button_reply", ButtonReply: &ReplyOption{ID: "opt-1", Title: "Get a quote"}},
	})
	assert.Equal(t, "Get a quote", c.Text)

	c = extractContent(Message{
		Type:        "interactive",
		Interactive: &Interactive{Type: "list_reply", ListReply: &ReplyOption{ID: "opt-2", Title: "Managed IT"}},
	})
	assert.Equal(t, "Managed IT", c.Text)
}

func TestExtractContentUnknownType(t *testing.T) {
	c := extractContent(Message{Type: "sticker"})

	assert.Equal(t, "[sticker message]", c.Text)
	assert.Nil(t, c.MediaID)
}

func TestExtractContentMissingPayload(t *testing.T) {
	// Declared type without its payload degrades to the placeholder.
	c := extractContent(Message{Type: "text"})

	assert.Equal(t, "[text message]", c.Text)
}

func TestParseTimestamp(t *testing.T) {
	ts := parseTimestamp("1700000000")
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), ts)

	// Malformed timestamps fall back to roughly now.
	ts = parseTimestamp("not-a-number")
	assert.WithinDuration(t, time.Now().UTC(), ts, 5*time.Second)
}
