package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/juju/errors"
)

type MessageDirection string

const (
	DirectionInbound  MessageDirection = "inbound"
	DirectionOutbound MessageDirection = "outbound"
)

type SenderType string

const (
	SenderContact SenderType = "contact"
	SenderBot     SenderType = "bot"
	SenderAgent   SenderType = "agent"
)

type MessageStatus string

const (
	MessageSent      MessageStatus = "sent"
	MessageDelivered MessageStatus = "delivered"
	MessageRead      MessageStatus = "read"
	MessageFailed    MessageStatus = "failed"
)

type Message struct {
	ID                string
	OrganizationID    string
	ConversationID    string
	ProviderMessageID string
	Direction         MessageDirection
	SenderType        SenderType
	MessageType       string
	Content           string
	MediaID           *string
	MediaMimeType     *string
	MediaPath         *string
	Status            MessageStatus
	SentAt            *time.Time
	DeliveredAt       *time.Time
	ReadAt            *time.Time
	FailedAt          *time.Time
	ErrorCode         *string
	ErrorMessage      *string
	CreatedAt         time.Time
}

type InsertMessageParams struct {
	OrganizationID    string
	ConversationID    string
	ProviderMessageID string
	Direction         MessageDirection
	SenderType        SenderType
	MessageType       string
	Content           string
	MediaID           *string
	MediaMimeType     *string
	MediaPath         *string
	Status            MessageStatus
	Timestamp         time.Time
}

// InsertMessage records a message once per provider message ID. A redelivered
// webhook hits the unique constraint and reports created=false so the caller
// can stop before re-running side effects.
func (q *Queries) InsertMessage(ctx context.Context, arg InsertMessageParams) (created bool, err error) {
	tag, err := q.db.Exec(ctx,
		`INSERT INTO messages (organization_id, conversation_id, provider_message_id,
		                       direction, sender_type, message_type, content,
		                       media_id, media_mime_type, media_path, status, created_at,
		                       sent_at, delivered_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
		         CASE WHEN $11 = 'sent' THEN $12 END,
		         CASE WHEN $11 = 'delivered' THEN $12 END)
		 ON CONFLICT (provider_message_id) DO NOTHING`,
		arg.OrganizationID, arg.ConversationID, arg.ProviderMessageID,
		arg.Direction, arg.SenderType, arg.MessageType, arg.Content,
		arg.MediaID, arg.MediaMimeType, arg.MediaPath, arg.Status, arg.Timestamp)
	if err != nil {
		return false, errors.Annotatef(err, "failed to insert message %s", arg.ProviderMessageID)
	}
	return tag.RowsAffected() == 1, nil
}

type ApplyMessageStatusParams struct {
	ProviderMessageID string
	Status            MessageStatus
	Timestamp         time.Time
	ErrorCode         *string
	ErrorMessage      *string
}

// ApplyMessageStatus stamps a delivery-status transition onto the message
// matched by provider message ID. An unknown ID affects zero rows; the caller
// treats that as a no-op, matching the provider's at-least-once callbacks.
func (q *Queries) ApplyMessageStatus(ctx context.Context, arg ApplyMessageStatusParams) (int64, error) {
	tag, err := q.db.Exec(ctx,
		`UPDATE messages
		    SET status = $2,
		        sent_at      = CASE WHEN $2 = 'sent'      THEN $3 ELSE sent_at      END,
		        delivered_at = CASE WHEN $2 = 'delivered' THEN $3 ELSE delivered_at END,
		        read_at      = CASE WHEN $2 = 'read'      THEN $3 ELSE read_at      END,
		        failed_at    = CASE WHEN $2 = 'failed'    THEN $3 ELSE failed_at    END,
		        error_code    = COALESCE($4, error_code),
		        error_message = COALESCE($5, error_message)
		  WHERE provider_message_id = $1`,
		arg.ProviderMessageID, arg.Status, arg.Timestamp, arg.ErrorCode, arg.ErrorMessage)
	if err != nil {
		return 0, errors.Annotatef(err, "failed to apply status %s to message %s", arg.Status, arg.ProviderMessageID)
	}
	return tag.RowsAffected(), nil
}

func (q *Queries) GetMessageByProviderID(ctx context.Context, providerMessageID string) (*Message, error) {
	row := q.db.QueryRow(ctx,
		`SELECT id, organization_id, conversation_id, provider_message_id,
		        direction, sender_type, message_type, content,
		        media_id, media_mime_type, media_path, status,
		        sent_at, delivered_at, read_at, failed_at,
		        error_code, error_message, created_at
		   FROM messages WHERE provider_message_id = $1`, providerMessageID)

	var m Message
	err := row.Scan(&m.ID, &m.OrganizationID, &m.ConversationID, &m.ProviderMessageID,
		&m.Direction, &m.SenderType, &m.MessageType, &m.Content,
		&m.MediaID, &m.MediaMimeType, &m.MediaPath, &m.Status,
		&m.SentAt, &m.DeliveredAt, &m.ReadAt, &m.FailedAt,
		&m.ErrorCode, &m.ErrorMessage, &m.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Trace(err)
	}
	return &m, nil
}
