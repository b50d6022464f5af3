package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/stockroom/pkg/events"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"

	eventVersion = 1
)

// pgCode returns the SQLSTATE of err, or "" when err is not a server error.
func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// outbox writes events into the watermill tables inside the caller's
// transaction, so an event exists if and only if its change committed.
type outbox struct {
	bus *events.EventBus
}

// A nil bus disables publishing (catalogctl without events, some tests).
func (o outbox) publish(ctx context.Context, tx *sql.Tx, topic string, eventID string, event any) error {
	if o.bus == nil {
		return nil
	}
	msg, err := events.NewJSONMessage(eventID, eventVersion, event)
	if err != nil {
		return err
	}
	return o.bus.PublishTx(ctx, tx, topic, msg)
}
