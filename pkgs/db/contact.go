package db

import (
	"context"
	"time"

	"github.com/juju/errors"
)

type Contact struct {
	ID                 string
	OrganizationID     string
	PhoneNumber        string
	Name               string
	FirstInteractionAt time.Time
	LastInteractionAt  time.Time
}

type UpsertContactParams struct {
	OrganizationID string
	PhoneNumber    string
	Name           string
}

// UpsertContact inserts the contact on first sight and refreshes it on every
// subsequent inbound message. The provider's current profile name overwrites
// the stored one when supplied; an empty name never clobbers a known one.
func (q *Queries) UpsertContact(ctx context.Context, arg UpsertContactParams) (*Contact, error) {
	row := q.db.QueryRow(ctx,
		`INSERT INTO contacts (organization_id, phone_number, name)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (organization_id, phone_number) DO UPDATE
		    SET last_interaction_at = now(),
		        name = COALESCE(NULLIF(EXCLUDED.name, ''), contacts.name)
		 RETURNING id, organization_id, phone_number, name, first_interaction_at, last_interaction_at`,
		arg.OrganizationID, arg.PhoneNumber, arg.Name)

	var c Contact
	err := row.Scan(&c.ID, &c.OrganizationID, &c.PhoneNumber, &c.Name, &c.FirstInteractionAt, &c.LastInteractionAt)
	if err != nil {
		return nil, errors.Annotatef(err, "failed to upsert contact %s", arg.PhoneNumber)
	}
	return &c, nil
}

func (q *Queries) GetContact(ctx context.Context, id string) (*Contact, error) {
	row := q.db.QueryRow(ctx,
		`SELECT id, organization_id, phone_number, name, first_interaction_at, last_interaction_at
		   FROM contacts WHERE id = $1`, id)

	var c Contact
	err := row.Scan(&c.ID, &c.OrganizationID, &c.PhoneNumber, &c.Name, &c.FirstInteractionAt, &c.LastInteractionAt)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return &c, nil
}
