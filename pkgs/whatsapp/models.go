package whatsapp

type WebhookVerifyInput struct {
	Mode      string `query:"hub.mode" doc:"Should be 'subscribe'"`
	Token     string `query:"hub.verify_token" doc:"Your verify token"`
	Challenge string `query:"hub.challenge" doc:"Challenge string to return"`
}

// Webhook verification response. Body is raw bytes so the challenge echoes
// back verbatim; Meta compares it byte-for-byte and a JSON-quoted string
// fails the handshake.
type WebhookVerifyOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

// Webhook event structures
type WebhookInput struct {
	Body WebhookPayload
}

type WebhookPayload struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

type Entry struct {
	ID      string   `json:"id"`
	Changes []Change `json:"changes"`
}

type Change struct {
	Value Value  `json:"value"`
	Field string `json:"field"`
}

type Value struct {
	MessagingProduct string    `json:"messaging_product"`
	Metadata         Metadata  `json:"metadata"`
	Contacts         []Contact `json:"contacts,omitempty"`
	Messages         []Message `json:"messages,omitempty"`
	Statuses         []Status  `json:"statuses,omitempty"`
}

type Metadata struct {
	DisplayPhoneNumber string `json:"display_phone_number"`
	PhoneNumberID      string `json:"phone_number_id"`
}

type Contact struct {
	Profile Profile `json:"profile"`
	WaID    string  `json:"wa_id"`
}

type Profile struct {
	Name string `json:"name"`
}

type Message struct {
	From        string       `json:"from"`
	ID          string       `json:"id"`
	Timestamp   string       `json:"timestamp"` // Unix seconds, as a string
	Type        string       `json:"type"`      // "text", "image", "location", "interactive", etc.
	Text        *TextMsg     `json:"text,omitempty"`
	Image       *MediaMsg    `json:"image,omitempty"`
	Video       *MediaMsg    `json:"video,omitempty"`
	Audio       *MediaMsg    `json:"audio,omitempty"`
	Document    *MediaMsg    `json:"document,omitempty"`
	Location    *LocationMsg `json:"location,omitempty"`
	Button      *ButtonMsg   `json:"button,omitempty"`
	Interactive *Interactive `json:"interactive,omitempty"`
}

type TextMsg struct {
	Body string `json:"body"`
}

type MediaMsg struct {
	ID       string `json:"id"` // Media ID to download
	MimeType string `json:"mime_type"`
	SHA256   string `json:"sha256"`
	Caption  string `json:"caption,omitempty"`
	Filename string `json:"filename,omitempty"`
}

type LocationMsg struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name,omitempty"`
	Address   string  `json:"address,omitempty"`
}

type ButtonMsg struct {
	Text    string `json:"text"`
	Payload string `json:"payload"`
}

type Interactive struct {
	Type        string       `json:"type"` // "button_reply" or "list_reply"
	ButtonReply *ReplyOption `json:"button_reply,omitempty"`
	ListReply   *ReplyOption `json:"list_reply,omitempty"`
}

type ReplyOption struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Status is a delivery-status callback for a message this service sent.
type Status struct {
	ID          string        `json:"id"`
	Status      string        `json:"status"` // "sent", "delivered", "read", "failed"
	Timestamp   string        `json:"timestamp"`
	RecipientID string        `json:"recipient_id"`
	Errors      []StatusError `json:"errors,omitempty"`
}

type StatusError struct {
	Code    int    `json:"code"`
	Title   string `json:"title,omitempty"`
	Message string `json:"message,omitempty"`
}

type WebhookOutput struct {
	Body AckBody
}

// AckBody acknowledges receipt to Meta. It says nothing about whether every
// item in the batch was processed.
type AckBody struct {
	Success bool `json:"success"`
}

// MediaURLResponse represents the response from WhatsApp when getting media URL
type MediaURLResponse struct {
	URL              string `json:"url"`
	MimeType         string `json:"mime_type"`
	SHA256           string `json:"sha256"`
	FileSize         int64  `json:"file_size"`
	ID               string `json:"id"`
	MessagingProduct string `json:"messaging_product"`
}
