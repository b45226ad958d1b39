package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/juju/errors"
)

type ConversationStatus string

const (
	ConversationOpen     ConversationStatus = "open"
	ConversationPending  ConversationStatus = "pending"
	ConversationAssigned ConversationStatus = "assigned"
	ConversationClosed   ConversationStatus = "closed"
)

type Conversation struct {
	ID              string
	OrganizationID  string
	ContactID       string
	Status          ConversationStatus
	AssignedAgentID *string
	Category        *string
	LastMessageAt   time.Time
	CreatedAt       time.Time
}

const conversationColumns = `id, organization_id, contact_id, status, assigned_agent_id, category, last_message_at, created_at`

func scanConversation(row pgx.Row) (*Conversation, error) {
	var c Conversation
	err := row.Scan(&c.ID, &c.OrganizationID, &c.ContactID, &c.Status,
		&c.AssignedAgentID, &c.Category, &c.LastMessageAt, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindActiveConversation returns the contact's current open/pending/assigned
// conversation, or nil when the contact has none.
func (q *Queries) FindActiveConversation(ctx context.Context, contactID string) (*Conversation, error) {
	row := q.db.QueryRow(ctx,
		`SELECT `+conversationColumns+`
		   FROM conversations
		  WHERE contact_id = $1 AND status IN ('open', 'pending', 'assigned')
		  ORDER BY last_message_at DESC
		  LIMIT 1`, contactID)

	conv, err := scanConversation(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Annotatef(err, "failed to find active conversation for contact %s", contactID)
	}
	return conv, nil
}

// EnsureActiveConversation reuses the contact's active conversation or creates
// a new open one. The insert arbitrates on the partial unique index over
// active conversations, so two racing deliveries cannot both create one: the
// loser's insert is a no-op and the re-select picks up the winner's row.
func (q *Queries) EnsureActiveConversation(ctx context.Context, organizationID, contactID string) (*Conversation, bool, error) {
	if conv, err := q.FindActiveConversation(ctx, contactID); err != nil {
		return nil, false, errors.Trace(err)
	} else if conv != nil {
		return conv, false, nil
	}

	row := q.db.QueryRow(ctx,
		`INSERT INTO conversations (organization_id, contact_id, status)
		 VALUES ($1, $2, 'open')
		 ON CONFLICT (contact_id) WHERE status IN ('open', 'pending', 'assigned') DO NOTHING
		 RETURNING `+conversationColumns,
		organizationID, contactID)

	conv, err := scanConversation(row)
	if err == pgx.ErrNoRows {
		// Lost the race; another delivery just created the conversation.
		conv, err := q.FindActiveConversation(ctx, contactID)
		if err != nil {
			return nil, false, errors.Trace(err)
		}
		if conv == nil {
			return nil, false, errors.Errorf("conversation insert conflicted but no active conversation exists for contact %s", contactID)
		}
		return conv, false, nil
	}
	if err != nil {
		return nil, false, errors.Annotatef(err, "failed to create conversation for contact %s", contactID)
	}
	return conv, true, nil
}

func (q *Queries) TouchConversation(ctx context.Context, id string, at time.Time) error {
	_, err := q.db.Exec(ctx,
		`UPDATE conversations SET last_message_at = $2 WHERE id = $1`, id, at)
	return errors.Trace(err)
}

func (q *Queries) UpdateConversationStatus(ctx context.Context, id string, status ConversationStatus) error {
	_, err := q.db.Exec(ctx,
		`UPDATE conversations SET status = $2 WHERE id = $1`, id, status)
	return errors.Trace(err)
}

// TriageConversation queues the conversation for human pickup with the
// classifier's category.
func (q *Queries) TriageConversation(ctx context.Context, id string, category string) error {
	_, err := q.db.Exec(ctx,
		`UPDATE conversations SET status = 'pending', category = $2 WHERE id = $1`, id, category)
	return errors.Trace(err)
}

func (q *Queries) AssignConversation(ctx context.Context, id string, agentID string) error {
	_, err := q.db.Exec(ctx,
		`UPDATE conversations SET status = 'assigned', assigned_agent_id = $2 WHERE id = $1`, id, agentID)
	return errors.Trace(err)
}
