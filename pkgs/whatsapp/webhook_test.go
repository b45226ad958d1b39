package whatsapp

import (
	"context"
	"fmt"
	"testing"
	"time"

	"meridianit/inbox-project/pkgs/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPhoneNumberID = "pnid-100"

type fakeStore struct {
	org           *db.Organization
	contacts      map[string]*db.Contact      // by phone number
	conversations map[string]*db.Conversation // by contact id
	messages      map[string]db.InsertMessageParams
	statuses      map[string]db.MessageStatus
	triage        map[string]string // conversation id -> category
	analytics     []string
	nextID        int
}

func newFakeStore(features db.OrgFeatures, hours db.BusinessHours) *fakeStore {
	return &fakeStore{
		org: &db.Organization{
			ID:            "org-1",
			Name:          "Meridian IT Partners",
			PhoneNumberID: testPhoneNumberID,
			Settings:      db.OrgSettings{BusinessHours: hours},
			Features:      features,
		},
		contacts:      map[string]*db.Contact{},
		conversations: map[string]*db.Conversation{},
		messages:      map[string]db.InsertMessageParams{},
		statuses:      map[string]db.MessageStatus{},
		triage:        map[string]string{},
	}
}

func (f *fakeStore) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *fakeStore) GetOrganizationByPhoneNumberID(ctx context.Context, phoneNumberID string) (*db.Organization, error) {
	if f.org != nil && f.org.PhoneNumberID == phoneNumberID {
		return f.org, nil
	}
	return nil, nil
}

func (f *fakeStore) UpsertContact(ctx context.Context, arg db.UpsertContactParams) (*db.Contact, error) {
	if c, ok := f.contacts[arg.PhoneNumber]; ok {
		c.LastInteractionAt = time.Now()
		if arg.Name != "" {
			c.Name = arg.Name
		}
		return c, nil
	}
	c := &db.Contact{
		ID:             f.id("contact"),
		OrganizationID: arg.OrganizationID,
		PhoneNumber:    arg.PhoneNumber,
		Name:           arg.Name,
	}
	f.contacts[arg.PhoneNumber] = c
	return c, nil
}

func (f *fakeStore) EnsureActiveConversation(ctx context.Context, organizationID, contactID string) (*db.Conversation, bool, error) {
	if conv, ok := f.conversations[contactID]; ok && conv.Status != db.ConversationClosed {
		return conv, false, nil
	}
	conv := &db.Conversation{
		ID:             f.id("conv"),
		OrganizationID: organizationID,
		ContactID:      contactID,
		Status:         db.ConversationOpen,
	}
	f.conversations[contactID] = conv
	return conv, true, nil
}

func (f *fakeStore) TouchConversation(ctx context.Context, id string, at time.Time) error {
	for _, conv := range f.conversations {
		if conv.ID == id {
			conv.LastMessageAt = at
		}
	}
	return nil
}

func (f *fakeStore) UpdateConversationStatus(ctx context.Context, id string, status db.ConversationStatus) error {
	for _, conv := range f.conversations {
		if conv.ID == id {
			conv.Status = status
		}
	}
	return nil
}

func (f *fakeStore) TriageConversation(ctx context.Context, id string, category string) error {
	f.triage[id] = category
	for _, conv := range f.conversations {
		if conv.ID == id {
			conv.Status = db.ConversationPending
			conv.Category = &category
		}
	}
	return nil
}

func (f *fakeStore) InsertMessage(ctx context.Context, arg db.InsertMessageParams) (bool, error) {
	if _, ok := f.messages[arg.ProviderMessageID]; ok {
		return false, nil
	}
	f.messages[arg.ProviderMessageID] = arg
	return true, nil
}

func (f *fakeStore) ApplyMessageStatus(ctx context.Context, arg db.ApplyMessageStatusParams) (int64, error) {
	if _, ok := f.messages[arg.ProviderMessageID]; !ok {
		return 0, nil
	}
	f.statuses[arg.ProviderMessageID] = arg.Status
	return 1, nil
}

func (f *fakeStore) InsertAnalyticsEvent(ctx context.Context, organizationID, eventType string, payload map[string]any) error {
	f.analytics = append(f.analytics, eventType)
	return nil
}

func (f *fakeStore) inbound() []db.InsertMessageParams {
	var out []db.InsertMessageParams
	for _, m := range f.messages {
		if m.Direction == db.DirectionInbound {
			out = append(out, m)
		}
	}
	return out
}

type sentText struct {
	to   string
	body string
}

type fakeSender struct {
	sent []sentText
	read []string
	next int
}

func (f *fakeSender) SendText(ctx context.Context, to, body string) (string, error) {
	f.next++
	f.sent = append(f.sent, sentText{to: to, body: body})
	return fmt.Sprintf("wamid.out.%d", f.next), nil
}

func (f *fakeSender) MarkRead(ctx context.Context, messageID string) error {
	f.read = append(f.read, messageID)
	return nil
}

func textEvent(msgID, from, body string) *WebhookInput {
	return &WebhookInput{Body: WebhookPayload{
		Object: "whatsapp_business_account",
		Entry: []Entry{{
			ID: "entry-1",
			Changes: []Change{{
				Field: "messages",
				Value: Value{
					MessagingProduct: "whatsapp",
					Metadata:         Metadata{PhoneNumberID: testPhoneNumberID},
					Contacts:         []Contact{{WaID: from, Profile: Profile{Name: "Dana Reyes"}}},
					Messages: []Message{{
						From:      from,
						ID:        msgID,
						Timestamp: "1700000000",
						Type:      "text",
						Text:      &TextMsg{Body: body},
					}},
				},
			}},
		}},
	}}
}

func statusEvent(msgID, status string) *WebhookInput {
	return &WebhookInput{Body: WebhookPayload{
		Object: "whatsapp_business_account",
		Entry: []Entry{{
			ID: "entry-1",
			Changes: []Change{{
				Field: "messages",
				Value: Value{
					Metadata: Metadata{PhoneNumberID: testPhoneNumberID},
					Statuses: []Status{{ID: msgID, Status: status, Timestamp: "1700000100"}},
				},
			}},
		}},
	}}
}

func chatbotOn() db.OrgFeatures { return db.OrgFeatures{AIChatbot: true} }

func TestWebhookNewContactMessage(t *testing.T) {
	store := newFakeStore(chatbotOn(), db.BusinessHours{})
	sender := &fakeSender{}
	p := NewProcessor(store, sender, ProcessorOptions{})

	out, err := p.HandleWebhookEvent(context.Background(), textEvent("wamid.in.1", "15551234567", "hello"))
	require.NoError(t, err)
	assert.True(t, out.Body.Success)

	require.Len(t, store.contacts, 1)
	contact := store.contacts["15551234567"]
	require.NotNil(t, contact)
	assert.Equal(t, "Dana Reyes", contact.Name)

	require.Len(t, store.conversations, 1)

	inbound := store.inbound()
	require.Len(t, inbound, 1)
	assert.Equal(t, "hello", inbound[0].Content)
	assert.Equal(t, db.SenderContact, inbound[0].SenderType)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), inbound[0].Timestamp)

	// Greeting auto-reply went out and was recorded as a bot message.
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "15551234567", sender.sent[0].to)
	assert.Contains(t, sender.sent[0].body, "Welcome")
	assert.Len(t, store.messages, 2)

	assert.Contains(t, sender.read, "wamid.in.1")
	assert.Contains(t, store.analytics, "message_received")
	assert.Empty(t, store.triage, "a greeting should not queue for an agent")
}

func TestWebhookReusesActiveConversation(t *testing.T) {
	store := newFakeStore(chatbotOn(), db.BusinessHours{})
	sender := &fakeSender{}
	p := NewProcessor(store, sender, ProcessorOptions{})

	_, err := p.HandleWebhookEvent(context.Background(), textEvent("wamid.in.1", "15551234567", "hello"))
	require.NoError(t, err)
	_, err = p.HandleWebhookEvent(context.Background(), textEvent("wamid.in.2", "15551234567", "anyone there?"))
	require.NoError(t, err)

	assert.Len(t, store.contacts, 1)
	assert.Len(t, store.conversations, 1)
	assert.Len(t, store.inbound(), 2)
}

func TestWebhookRedeliveryIsIdempotent(t *testing.T) {
	store := newFakeStore(chatbotOn(), db.BusinessHours{})
	sender := &fakeSender{}
	p := NewProcessor(store, sender, ProcessorOptions{})

	evt := textEvent("wamid.in.1", "15551234567", "hello")
	_, err := p.HandleWebhookEvent(context.Background(), evt)
	require.NoError(t, err)
	_, err = p.HandleWebhookEvent(context.Background(), evt)
	require.NoError(t, err)

	assert.Len(t, store.inbound(), 1)
	assert.Len(t, sender.sent, 1, "redelivery must not send a second auto-reply")
	assert.Len(t, store.analytics, 1)
}

func TestWebhookTriagesForAgent(t *testing.T) {
	// Business hours disabled means always open.
	store := newFakeStore(chatbotOn(), db.BusinessHours{})
	sender := &fakeSender{}
	p := NewProcessor(store, sender, ProcessorOptions{})

	_, err := p.HandleWebhookEvent(context.Background(), textEvent("wamid.in.1", "15551234567", "I want to buy licenses, what's the price?"))
	require.NoError(t, err)

	require.Len(t, store.triage, 1)
	for _, category := range store.triage {
		assert.Equal(t, "sales", category)
	}
	conv := store.conversations[store.contacts["15551234567"].ID]
	assert.Equal(t, db.ConversationPending, conv.Status)
}

func TestWebhookClosedHoursNoTriage(t *testing.T) {
	// Enabled with an empty schedule: closed every day.
	store := newFakeStore(chatbotOn(), db.BusinessHours{Enabled: true, Timezone: "UTC"})
	sender := &fakeSender{}
	p := NewProcessor(store, sender, ProcessorOptions{})

	_, err := p.HandleWebhookEvent(context.Background(), textEvent("wamid.in.1", "15551234567", "what's the price?"))
	require.NoError(t, err)

	assert.Len(t, sender.sent, 1, "auto-reply still goes out after hours")
	assert.Empty(t, store.triage)
}

func TestWebhookAgentOwnedConversationIsQuiet(t *testing.T) {
	store := newFakeStore(chatbotOn(), db.BusinessHours{})
	sender := &fakeSender{}
	p := NewProcessor(store, sender, ProcessorOptions{})

	contact, err := store.UpsertContact(context.Background(), db.UpsertContactParams{
		OrganizationID: "org-1", PhoneNumber: "15551234567", Name: "Dana Reyes",
	})
	require.NoError(t, err)
	conv, _, err := store.EnsureActiveConversation(context.Background(), "org-1", contact.ID)
	require.NoError(t, err)
	agent := "agent-7"
	conv.AssignedAgentID = &agent

	_, err = p.HandleWebhookEvent(context.Background(), textEvent("wamid.in.1", "15551234567", "hello again"))
	require.NoError(t, err)

	assert.Empty(t, sender.sent, "bot must stay quiet once an agent owns the conversation")
	assert.Len(t, store.inbound(), 1)
}

func TestWebhookChatbotDisabled(t *testing.T) {
	store := newFakeStore(db.OrgFeatures{AIChatbot: false}, db.BusinessHours{})
	sender := &fakeSender{}
	p := NewProcessor(store, sender, ProcessorOptions{})

	_, err := p.HandleWebhookEvent(context.Background(), textEvent("wamid.in.1", "15551234567", "hello"))
	require.NoError(t, err)

	assert.Empty(t, sender.sent)
	assert.Len(t, store.inbound(), 1)
	conv := store.conversations[store.contacts["15551234567"].ID]
	assert.Equal(t, db.ConversationOpen, conv.Status, "conversation queues for human pickup")
}

func TestWebhookStatusUpdate(t *testing.T) {
	store := newFakeStore(chatbotOn(), db.BusinessHours{})
	sender := &fakeSender{}
	p := NewProcessor(store, sender, ProcessorOptions{})

	created, err := store.InsertMessage(context.Background(), db.InsertMessageParams{
		ProviderMessageID: "wamid.out.9",
		Direction:         db.DirectionOutbound,
		SenderType:        db.SenderBot,
		Status:            db.MessageSent,
	})
	require.NoError(t, err)
	require.True(t, created)

	out, err := p.HandleWebhookEvent(context.Background(), statusEvent("wamid.out.9", "delivered"))
	require.NoError(t, err)
	assert.True(t, out.Body.Success)
	assert.Equal(t, db.MessageDelivered, store.statuses["wamid.out.9"])
}

func TestWebhookStatusForUnknownMessage(t *testing.T) {
	store := newFakeStore(chatbotOn(), db.BusinessHours{})
	sender := &fakeSender{}
	p := NewProcessor(store, sender, ProcessorOptions{})

	out, err := p.HandleWebhookEvent(context.Background(), statusEvent("wamid.never.seen", "read"))
	require.NoError(t, err)
	assert.True(t, out.Body.Success)
	assert.Empty(t, store.statuses)
}

func TestWebhookUnknownObject(t *testing.T) {
	store := newFakeStore(chatbotOn(), db.BusinessHours{})
	sender := &fakeSender{}
	p := NewProcessor(store, sender, ProcessorOptions{})

	evt := textEvent("wamid.in.1", "15551234567", "hello")
	evt.Body.Object = "page"

	_, err := p.HandleWebhookEvent(context.Background(), evt)
	assert.Error(t, err)
	assert.Empty(t, store.messages, "unrecognized objects must not touch the store")
	assert.Empty(t, store.contacts)
}

func TestWebhookUnknownPhoneNumberIsSwallowed(t *testing.T) {
	store := newFakeStore(chatbotOn(), db.BusinessHours{})
	store.org.PhoneNumberID = "someone-else"
	sender := &fakeSender{}
	p := NewProcessor(store, sender, ProcessorOptions{})

	out, err := p.HandleWebhookEvent(context.Background(), textEvent("wamid.in.1", "15551234567", "hello"))
	require.NoError(t, err, "per-item failures must still ack the batch")
	assert.True(t, out.Body.Success)
	assert.Empty(t, store.messages)
}
