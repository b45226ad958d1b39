package db

import (
	"context"
	"encoding/json"

	"github.com/juju/errors"
)

// InsertAnalyticsEvent writes a fire-and-forget audit row. Nothing in this
// service reads these back; the reporting pipeline does.
func (q *Queries) InsertAnalyticsEvent(ctx context.Context, organizationID, eventType string, payload map[string]any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return errors.Trace(err)
	}
	_, err = q.db.Exec(ctx,
		`INSERT INTO analytics_events (organization_id, event_type, payload)
		 VALUES ($1, $2, $3)`,
		organizationID, eventType, raw)
	return errors.Annotatef(err, "failed to insert analytics event %s", eventType)
}
