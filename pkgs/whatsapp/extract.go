package whatsapp

import (
	"fmt"
	"strconv"
	"time"
)

// extractedContent is the normalized form of an inbound message: one text
// column no matter the original type, plus media identifiers when present.
type extractedContent struct {
	Text          string
	MediaID       *string
	MediaMimeType *string
}

// extractContent flattens a Cloud API message into storable content. Media
// messages keep their caption (or a type placeholder) as text; unrecognized
// types degrade to a placeholder rather than failing the batch.
func extractContent(msg Message) extractedContent {
	switch msg.Type {
	case "text":
		if msg.Text != nil {
			return extractedContent{Text: msg.Text.Body}
		}
	case "image":
		if msg.Image != nil {
			return mediaContent(msg.Image, "image")
		}
	case "video":
		if msg.Video != nil {
			return mediaContent(msg.Video, "video")
		}
	case "audio":
		if msg.Audio != nil {
			return mediaContent(msg.Audio, "audio")
		}
	case "document":
		if msg.Document != nil {
			return mediaContent(msg.Document, "document")
		}
	case "location":
		if msg.Location != nil {
			return extractedContent{
				Text: fmt.Sprintf("Location: %f, %f", msg.Location.Latitude, msg.Location.Longitude),
			}
		}
	case "button":
		if msg.Button != nil {
			return extractedContent{Text: msg.Button.Text}
		}
	case "interactive":
		if msg.Interactive != nil {
			if msg.Interactive.ButtonReply != nil {
				return extractedContent{Text: msg.Interactive.ButtonReply.Title}
			}
			if msg.Interactive.ListReply != nil {
				return extractedContent{Text: msg.Interactive.ListReply.Title}
			}
		}
	}
	return extractedContent{Text: fmt.Sprintf("[%s message]", msg.Type)}
}

func mediaContent(m *MediaMsg, kind string) extractedContent {
	text := m.Caption
	if text == "" {
		text = fmt.Sprintf("[%s message]", kind)
	}
	id := m.ID
	mime := m.MimeType
	return extractedContent{Text: text, MediaID: &id, MediaMimeType: &mime}
}

// parseTimestamp reads the provider's Unix-seconds string. A malformed value
// falls back to now so the message is still recorded.
func parseTimestamp(ts string) time.Time {
	secs, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return time.Now().UTC()
	}
	return time.Unix(secs, 0).UTC()
}
