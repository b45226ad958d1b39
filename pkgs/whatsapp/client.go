package whatsapp

import (
	"context"
	"fmt"

	"meridianit/inbox-project/pkgs/conf"

	"github.com/go-resty/resty/v2"
	"github.com/juju/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Sender is the outbound half of the Cloud API. Sends are best-effort: a
// failed send is logged by the caller and never retried, because the sender
// already received their message and Meta rate limits aggressive retries.
type Sender interface {
	// SendText delivers a text message and returns the provider message ID.
	SendText(ctx context.Context, to, body string) (string, error)
	// MarkRead flags an inbound message as read (blue ticks).
	MarkRead(ctx context.Context, messageID string) error
}

// GraphClient talks to the Meta Graph API for one phone number. All calls
// share a client-side rate limiter so a webhook burst cannot trip the
// platform's throughput limits.
type GraphClient struct {
	rest          *resty.Client
	limiter       *rate.Limiter
	phoneNumberID string
	version       string
}

func NewGraphClient(cfg conf.WhatsappConfig) *GraphClient {
	rest := resty.New().
		SetBaseURL(cfg.GraphBaseURL).
		SetTimeout(cfg.SendTimeout).
		SetAuthToken(cfg.AccessToken).
		SetHeader("Content-Type", "application/json")

	return &GraphClient{
		rest:          rest,
		limiter:       rate.NewLimiter(rate.Limit(cfg.SendRate), cfg.SendBurst),
		phoneNumberID: cfg.PhoneNumberID,
		version:       cfg.GraphVersion,
	}
}

type sendMessageRequest struct {
	MessagingProduct string       `json:"messaging_product"`
	To               string       `json:"to,omitempty"`
	Type             string       `json:"type,omitempty"`
	Text             *textPayload `json:"text,omitempty"`
	Status           string       `json:"status,omitempty"`
	MessageID        string       `json:"message_id,omitempty"`
}

type textPayload struct {
	Body string `json:"body"`
}

type sendMessageResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

func (c *GraphClient) messagesPath() string {
	return fmt.Sprintf("/%s/%s/messages", c.version, c.phoneNumberID)
}

func (c *GraphClient) SendText(ctx context.Context, to, body string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", errors.Trace(err)
	}

	var out sendMessageResponse
	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(sendMessageRequest{
			MessagingProduct: "whatsapp",
			To:               to,
			Type:             "text",
			Text:             &textPayload{Body: body},
		}).
		SetResult(&out).
		Post(c.messagesPath())
	if err != nil {
		return "", errors.Annotatef(err, "failed to send text to %s", to)
	}
	if resp.IsError() {
		return "", errors.Errorf("send to %s failed with status %d: %s", to, resp.StatusCode(), resp.String())
	}
	if len(out.Messages) == 0 {
		return "", errors.Errorf("send to %s returned no message id", to)
	}

	log.Debug().Str("to", to).Str("provider_message_id", out.Messages[0].ID).Msg("sent whatsapp text")
	return out.Messages[0].ID, nil
}

func (c *GraphClient) MarkRead(ctx context.Context, messageID string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return errors.Trace(err)
	}

	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(sendMessageRequest{
			MessagingProduct: "whatsapp",
			Status:           "read",
			MessageID:        messageID,
		}).
		Post(c.messagesPath())
	if err != nil {
		return errors.Annotatef(err, "failed to mark message %s read", messageID)
	}
	if resp.IsError() {
		return errors.Errorf("mark read for %s failed with status %d: %s", messageID, resp.StatusCode(), resp.String())
	}
	return nil
}
