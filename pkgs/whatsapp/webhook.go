package whatsapp

import (
	"context"
	"strconv"
	"time"

	"meridianit/inbox-project/pkgs/cache"
	"meridianit/inbox-project/pkgs/db"
	"meridianit/inbox-project/pkgs/events"
	"meridianit/inbox-project/pkgs/locker"
	"meridianit/inbox-project/pkgs/responder"
	"meridianit/inbox-project/pkgs/utils"

	"github.com/danielgtaylor/huma/v2"
	"github.com/juju/errors"
	"github.com/rs/zerolog/log"
)

// Store is the persistence surface the webhook needs. *db.Queries satisfies
// it; tests substitute an in-memory fake.
type Store interface {
	GetOrganizationByPhoneNumberID(ctx context.Context, phoneNumberID string) (*db.Organization, error)
	UpsertContact(ctx context.Context, arg db.UpsertContactParams) (*db.Contact, error)
	EnsureActiveConversation(ctx context.Context, organizationID, contactID string) (*db.Conversation, bool, error)
	TouchConversation(ctx context.Context, id string, at time.Time) error
	UpdateConversationStatus(ctx context.Context, id string, status db.ConversationStatus) error
	TriageConversation(ctx context.Context, id string, category string) error
	InsertMessage(ctx context.Context, arg db.InsertMessageParams) (bool, error)
	ApplyMessageStatus(ctx context.Context, arg db.ApplyMessageStatusParams) (int64, error)
	InsertAnalyticsEvent(ctx context.Context, organizationID, eventType string, payload map[string]any) error
}

// Processor handles webhook batches. Everything past payload validation is
// best-effort per item: one bad message must not fail the batch, because Meta
// redelivers the whole batch on any non-200 and the rest was already applied.
type Processor struct {
	store     Store
	sender    Sender
	locker    locker.Locker
	orgCache  cache.Cache[db.Organization]
	publisher events.Publisher
	media     *MediaFetcher
	now       func() time.Time
}

// ProcessorOptions are the optional collaborators. Zero values disable the
// corresponding feature.
type ProcessorOptions struct {
	Locker    locker.Locker
	OrgCache  cache.Cache[db.Organization]
	Publisher events.Publisher
	Media     *MediaFetcher
}

func NewProcessor(store Store, sender Sender, opts ProcessorOptions) *Processor {
	lk := opts.Locker
	if lk == nil {
		lk = locker.NopLocker{}
	}
	return &Processor{
		store:     store,
		sender:    sender,
		locker:    lk,
		orgCache:  opts.OrgCache,
		publisher: opts.Publisher,
		media:     opts.Media,
		now:       time.Now,
	}
}

func (p *Processor) HandleWebhookEvent(ctx context.Context, input *WebhookInput) (*WebhookOutput, error) {
	payload := input.Body

	if payload.Object != "whatsapp_business_account" {
		return nil, huma.Error400BadRequest("unsupported webhook object: " + payload.Object)
	}

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			if change.Field != "messages" {
				continue
			}
			for _, msg := range change.Value.Messages {
				if err := p.processMessage(ctx, change.Value, msg); err != nil {
					log.Error().Err(err).
						Str("provider_message_id", msg.ID).
						Str("from", msg.From).
						Msg("failed to process inbound message")
				}
			}
			for _, st := range change.Value.Statuses {
				if err := p.processStatus(ctx, change.Value, st); err != nil {
					log.Error().Err(err).
						Str("provider_message_id", st.ID).
						Str("status", st.Status).
						Msg("failed to process status update")
				}
			}
		}
	}

	// Always ack recognized payloads, even when items inside failed.
	return &WebhookOutput{Body: AckBody{Success: true}}, nil
}

// resolveOrg maps the receiving phone-number ID onto its tenant, via the
// cache when one is configured.
func (p *Processor) resolveOrg(ctx context.Context, phoneNumberID string) (*db.Organization, error) {
	if p.orgCache != nil {
		if org, err := p.orgCache.Get(ctx, phoneNumberID); err == nil && org != nil {
			return org, nil
		}
	}

	org, err := p.store.GetOrganizationByPhoneNumberID(ctx, phoneNumberID)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if org == nil {
		return nil, errors.Errorf("no organization registered for phone number id %s", phoneNumberID)
	}

	if p.orgCache != nil {
		if err := p.orgCache.Set(ctx, phoneNumberID, *org, &cache.DefaultDuration); err != nil {
			log.Warn().Err(err).Str("phone_number_id", phoneNumberID).Msg("failed to cache organization")
		}
	}
	return org, nil
}

func (p *Processor) processMessage(ctx context.Context, value Value, msg Message) error {
	org, err := p.resolveOrg(ctx, value.Metadata.PhoneNumberID)
	if err != nil {
		return errors.Trace(err)
	}

	phone, err := utils.NormalizePhoneNumber(msg.From)
	if err != nil {
		return errors.Trace(err)
	}

	content := extractContent(msg)
	ts := parseTimestamp(msg.Timestamp)

	var mediaPath *string
	if p.media != nil && content.MediaID != nil {
		if saved, err := p.media.Fetch(ctx, *content.MediaID); err != nil {
			log.Warn().Err(err).Str("media_id", *content.MediaID).Msg("media download failed, storing media id only")
		} else {
			mediaPath = &saved.FilePath
		}
	}

	var (
		conv    *db.Conversation
		created bool
	)
	err = p.locker.WithLock(ctx, "contact:"+phone, func(ctx context.Context) error {
		contact, err := p.store.UpsertContact(ctx, db.UpsertContactParams{
			OrganizationID: org.ID,
			PhoneNumber:    phone,
			Name:           profileName(value.Contacts, msg.From),
		})
		if err != nil {
			return errors.Trace(err)
		}

		conv, _, err = p.store.EnsureActiveConversation(ctx, org.ID, contact.ID)
		if err != nil {
			return errors.Trace(err)
		}

		created, err = p.store.InsertMessage(ctx, db.InsertMessageParams{
			OrganizationID:    org.ID,
			ConversationID:    conv.ID,
			ProviderMessageID: msg.ID,
			Direction:         db.DirectionInbound,
			SenderType:        db.SenderContact,
			MessageType:       msg.Type,
			Content:           content.Text,
			MediaID:           content.MediaID,
			MediaMimeType:     content.MediaMimeType,
			MediaPath:         mediaPath,
			Status:            db.MessageDelivered,
			Timestamp:         ts,
		})
		return errors.Trace(err)
	})
	if err != nil {
		return errors.Trace(err)
	}

	if !created {
		// Redelivery of an already-recorded message; side effects ran the
		// first time.
		log.Debug().Str("provider_message_id", msg.ID).Msg("duplicate message delivery ignored")
		return nil
	}

	if err := p.store.TouchConversation(ctx, conv.ID, ts); err != nil {
		log.Warn().Err(err).Str("conversation_id", conv.ID).Msg("failed to touch conversation")
	}

	if err := p.sender.MarkRead(ctx, msg.ID); err != nil {
		log.Warn().Err(err).Str("provider_message_id", msg.ID).Msg("failed to mark message read")
	}

	p.route(ctx, org, conv, phone, content.Text)
	p.recordAnalytics(ctx, org.ID, "message_received", map[string]any{
		"conversation_id": conv.ID,
		"message_type":    msg.Type,
	})

	return nil
}

// route decides what happens after an inbound message lands: nothing when an
// agent owns the conversation, an auto-reply when the chatbot feature is on.
func (p *Processor) route(ctx context.Context, org *db.Organization, conv *db.Conversation, phone, text string) {
	if conv.AssignedAgentID != nil {
		return
	}
	if !org.Features.AIChatbot {
		// Queue for human pickup; a pending conversation reopens.
		if err := p.store.UpdateConversationStatus(ctx, conv.ID, db.ConversationOpen); err != nil {
			log.Warn().Err(err).Str("conversation_id", conv.ID).Msg("failed to reopen conversation")
		}
		return
	}

	reply := responder.Respond(text)

	providerID, err := p.sender.SendText(ctx, phone, reply.Text)
	if err != nil {
		// No retry: the inbound message is already stored and an agent will
		// see the conversation.
		log.Error().Err(err).Str("to", phone).Msg("failed to send auto-reply")
	} else {
		if _, err := p.store.InsertMessage(ctx, db.InsertMessageParams{
			OrganizationID:    org.ID,
			ConversationID:    conv.ID,
			ProviderMessageID: providerID,
			Direction:         db.DirectionOutbound,
			SenderType:        db.SenderBot,
			MessageType:       "text",
			Content:           reply.Text,
			Status:            db.MessageSent,
			Timestamp:         p.now().UTC(),
		}); err != nil {
			log.Error().Err(err).Str("conversation_id", conv.ID).Msg("failed to record auto-reply")
		}
	}

	if !reply.AssignAgent {
		return
	}

	open, err := responder.IsOpen(org.Settings.BusinessHours, p.now())
	if err != nil {
		log.Warn().Err(err).Str("organization_id", org.ID).Msg("business hours check failed, treating as closed")
		open = false
	}
	if !open {
		return
	}

	if err := p.store.TriageConversation(ctx, conv.ID, responder.Categorize(text)); err != nil {
		log.Error().Err(err).Str("conversation_id", conv.ID).Msg("failed to triage conversation")
	}
}

func (p *Processor) processStatus(ctx context.Context, value Value, st Status) error {
	org, err := p.resolveOrg(ctx, value.Metadata.PhoneNumberID)
	if err != nil {
		return errors.Trace(err)
	}

	status, ok := mapStatus(st.Status)
	if !ok {
		log.Debug().Str("status", st.Status).Msg("ignoring unknown status value")
		return nil
	}

	arg := db.ApplyMessageStatusParams{
		ProviderMessageID: st.ID,
		Status:            status,
		Timestamp:         parseTimestamp(st.Timestamp),
	}
	if len(st.Errors) > 0 {
		codeStr := strconv.Itoa(st.Errors[0].Code)
		detail := st.Errors[0].Message
		if detail == "" {
			detail = st.Errors[0].Title
		}
		arg.ErrorCode = &codeStr
		arg.ErrorMessage = &detail
	}

	rows, err := p.store.ApplyMessageStatus(ctx, arg)
	if err != nil {
		return errors.Trace(err)
	}
	if rows == 0 {
		// Status for a message this service never stored. The provider
		// replays callbacks, so this is expected noise.
		log.Debug().Str("provider_message_id", st.ID).Msg("status update for unknown message ignored")
		return nil
	}

	if status == db.MessageFailed {
		p.recordAnalytics(ctx, org.ID, "message_failed", map[string]any{
			"provider_message_id": st.ID,
		})
	}
	return nil
}

func (p *Processor) recordAnalytics(ctx context.Context, organizationID, eventType string, payload map[string]any) {
	if err := p.store.InsertAnalyticsEvent(ctx, organizationID, eventType, payload); err != nil {
		log.Warn().Err(err).Str("event_type", eventType).Msg("failed to record analytics event")
	}
	if p.publisher == nil {
		return
	}
	evt := events.Event{
		OrganizationID: organizationID,
		Type:           eventType,
		Payload:        payload,
	}
	if err := p.publisher.Publish(ctx, "inbox."+eventType, evt); err != nil {
		log.Warn().Err(err).Str("event_type", eventType).Msg("failed to publish analytics event")
	}
}

func mapStatus(s string) (db.MessageStatus, bool) {
	switch s {
	case "sent":
		return db.MessageSent, true
	case "delivered":
		return db.MessageDelivered, true
	case "read":
		return db.MessageRead, true
	case "failed":
		return db.MessageFailed, true
	default:
		return "", false
	}
}

func profileName(contacts []Contact, waID string) string {
	for _, c := range contacts {
		if c.WaID == waID {
			return c.Profile.Name
		}
	}
	return ""
}
