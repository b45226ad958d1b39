package db

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/juju/errors"
)

type Organization struct {
	ID            string
	Name          string
	PhoneNumberID string
	Settings      OrgSettings
	Features      OrgFeatures
}

// OrgSettings is the typed form of the organization's settings blob.
// Decoding happens at lookup time so malformed settings fail the lookup,
// not the first business-hours check.
type OrgSettings struct {
	BusinessHours BusinessHours `json:"business_hours"`
}

type BusinessHours struct {
	Enabled  bool                 `json:"enabled"`
	Timezone string               `json:"timezone"`
	Schedule map[string]DayWindow `json:"schedule"`
}

// DayWindow is a half-open [Start, End) window in "HH:MM" local time.
type DayWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type OrgFeatures struct {
	AIChatbot bool `json:"ai_chatbot"`
}

// GetOrganizationByPhoneNumberID resolves the tenant owning a Cloud API
// phone-number ID. The column is unique, so at most one row matches.
func (q *Queries) GetOrganizationByPhoneNumberID(ctx context.Context, phoneNumberID string) (*Organization, error) {
	row := q.db.QueryRow(ctx,
		`SELECT id, name, whatsapp_phone_number_id, settings, features
		   FROM organizations
		  WHERE whatsapp_phone_number_id = $1`,
		phoneNumberID)

	var (
		org         Organization
		rawSettings []byte
		rawFeatures []byte
	)
	err := row.Scan(&org.ID, &org.Name, &org.PhoneNumberID, &rawSettings, &rawFeatures)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Annotatef(err, "failed to look up organization for phone number id %s", phoneNumberID)
	}

	if err := json.Unmarshal(rawSettings, &org.Settings); err != nil {
		return nil, errors.Annotatef(err, "organization %s has malformed settings", org.ID)
	}
	if err := json.Unmarshal(rawFeatures, &org.Features); err != nil {
		return nil, errors.Annotatef(err, "organization %s has malformed features", org.ID)
	}

	return &org, nil
}

// CreateOrganization registers a tenant. Used by the migrate/seed path and
// integration tests; the webhook never creates organizations.
func (q *Queries) CreateOrganization(ctx context.Context, name, phoneNumberID string, settings OrgSettings, features OrgFeatures) (*Organization, error) {
	rawSettings, err := json.Marshal(settings)
	if err != nil {
		return nil, errors.Trace(err)
	}
	rawFeatures, err := json.Marshal(features)
	if err != nil {
		return nil, errors.Trace(err)
	}

	org := Organization{
		Name:          name,
		PhoneNumberID: phoneNumberID,
		Settings:      settings,
		Features:      features,
	}
	err = q.db.QueryRow(ctx,
		`INSERT INTO organizations (name, whatsapp_phone_number_id, settings, features)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		name, phoneNumberID, rawSettings, rawFeatures).Scan(&org.ID)
	if err != nil {
		return nil, errors.Annotate(err, "failed to create organization")
	}
	return &org, nil
}

func (q *Queries) DeleteOrganization(ctx context.Context, id string) error {
	_, err := q.db.Exec(ctx, `DELETE FROM organizations WHERE id = $1`, id)
	return errors.Trace(err)
}
