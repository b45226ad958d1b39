package db

import (
	"context"
	"testing"
	"time"

	"meridianit/inbox-project/pkgs/conf"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCrmPipeline_Integration(t *testing.T) {
	ctx := context.Background()
	conf.LoadEnvFromFile("../../.env.test")

	q, err := NewQueries(ctx)
	if err != nil {
		t.Fatalf("failed to create queries: %v", err)
	}

	phoneNumberID := "pnid-" + uuid.NewString()
	org, err := q.CreateOrganization(ctx, "Test Org", phoneNumberID,
		OrgSettings{BusinessHours: BusinessHours{
			Enabled:  true,
			Timezone: "UTC",
			Schedule: map[string]DayWindow{"monday": {Start: "08:00", End: "18:00"}},
		}},
		OrgFeatures{AIChatbot: true})
	if err != nil {
		t.Fatalf("failed to create organization: %v", err)
	}
	defer q.DeleteOrganization(ctx, org.ID)

	found, err := q.GetOrganizationByPhoneNumberID(ctx, phoneNumberID)
	assert.NoError(t, err)
	if assert.NotNil(t, found) {
		assert.Equal(t, org.ID, found.ID)
		assert.True(t, found.Features.AIChatbot)
		assert.Equal(t, "08:00", found.Settings.BusinessHours.Schedule["monday"].Start)
	}

	missing, err := q.GetOrganizationByPhoneNumberID(ctx, "pnid-does-not-exist")
	assert.NoError(t, err)
	assert.Nil(t, missing)

	// Contact upsert is keyed on (org, phone): the second call refreshes,
	// never duplicates, and an empty name does not clobber the stored one.
	contact, err := q.UpsertContact(ctx, UpsertContactParams{
		OrganizationID: org.ID, PhoneNumber: "15550001111", Name: "Dana Reyes",
	})
	if err != nil {
		t.Fatalf("failed to upsert contact: %v", err)
	}
	again, err := q.UpsertContact(ctx, UpsertContactParams{
		OrganizationID: org.ID, PhoneNumber: "15550001111", Name: "",
	})
	assert.NoError(t, err)
	assert.Equal(t, contact.ID, again.ID)
	assert.Equal(t, "Dana Reyes", again.Name)

	conv, created, err := q.EnsureActiveConversation(ctx, org.ID, contact.ID)
	if err != nil {
		t.Fatalf("failed to ensure conversation: %v", err)
	}
	assert.True(t, created)
	assert.Equal(t, ConversationOpen, conv.Status)

	sameConv, created, err := q.EnsureActiveConversation(ctx, org.ID, contact.ID)
	assert.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, conv.ID, sameConv.ID)

	providerID := "wamid." + uuid.NewString()
	inserted, err := q.InsertMessage(ctx, InsertMessageParams{
		OrganizationID:    org.ID,
		ConversationID:    conv.ID,
		ProviderMessageID: providerID,
		Direction:         DirectionInbound,
		SenderType:        SenderContact,
		MessageType:       "text",
		Content:           "hello",
		Status:            MessageDelivered,
		Timestamp:         time.Now().UTC(),
	})
	assert.NoError(t, err)
	assert.True(t, inserted)

	// Redelivery of the same provider message ID is a no-op.
	inserted, err = q.InsertMessage(ctx, InsertMessageParams{
		OrganizationID:    org.ID,
		ConversationID:    conv.ID,
		ProviderMessageID: providerID,
		Direction:         DirectionInbound,
		SenderType:        SenderContact,
		MessageType:       "text",
		Content:           "hello",
		Status:            MessageDelivered,
		Timestamp:         time.Now().UTC(),
	})
	assert.NoError(t, err)
	assert.False(t, inserted)

	rows, err := q.ApplyMessageStatus(ctx, ApplyMessageStatusParams{
		ProviderMessageID: providerID,
		Status:            MessageRead,
		Timestamp:         time.Now().UTC(),
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = q.ApplyMessageStatus(ctx, ApplyMessageStatusParams{
		ProviderMessageID: "wamid.unknown",
		Status:            MessageRead,
		Timestamp:         time.Now().UTC(),
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	msg, err := q.GetMessageByProviderID(ctx, providerID)
	assert.NoError(t, err)
	if assert.NotNil(t, msg) {
		assert.Equal(t, MessageRead, msg.Status)
		assert.NotNil(t, msg.ReadAt)
	}

	err = q.TriageConversation(ctx, conv.ID, "sales")
	assert.NoError(t, err)
	pending, err := q.FindActiveConversation(ctx, contact.ID)
	assert.NoError(t, err)
	if assert.NotNil(t, pending) {
		assert.Equal(t, ConversationPending, pending.Status)
		if assert.NotNil(t, pending.Category) {
			assert.Equal(t, "sales", *pending.Category)
		}
	}

	fetched, err := q.GetContact(ctx, contact.ID)
	assert.NoError(t, err)
	if assert.NotNil(t, fetched) {
		assert.Equal(t, "15550001111", fetched.PhoneNumber)
		assert.Equal(t, "Dana Reyes", fetched.Name)
	}

	agentID := uuid.NewString()
	err = q.AssignConversation(ctx, conv.ID, agentID)
	assert.NoError(t, err)
	assigned, err := q.FindActiveConversation(ctx, contact.ID)
	assert.NoError(t, err)
	if assert.NotNil(t, assigned) {
		assert.Equal(t, ConversationAssigned, assigned.Status)
		if assert.NotNil(t, assigned.AssignedAgentID) {
			assert.Equal(t, agentID, *assigned.AssignedAgentID)
		}
	}

	err = q.InsertAnalyticsEvent(ctx, org.ID, "message_received", map[string]any{"conversation_id": conv.ID})
	assert.NoError(t, err)
}
