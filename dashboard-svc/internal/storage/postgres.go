package storage

import (
	"context"
	"database/sql"
	"time"

	"foodie-dashboard/dashboard-svc/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS panel_loads (
	id          BIGSERIAL PRIMARY KEY,
	page        TEXT NOT NULL,
	panel       TEXT NOT NULL,
	seq         BIGINT NOT NULL,
	outcome     TEXT NOT NULL,
	error_kind  TEXT NOT NULL DEFAULT '',
	message     TEXT NOT NULL DEFAULT '',
	items       INTEGER NOT NULL DEFAULT 0,
	duration_ms BIGINT NOT NULL DEFAULT 0,
	finished_at TIMESTAMPTZ NOT NULL
)`

// LoadHistory keeps the outcome of every panel load for diagnostics. It never
// stores payloads.
type LoadHistory struct {
	DB *sql.DB
}

func NewLoadHistory(db *sql.DB) *LoadHistory {
	return &LoadHistory{DB: db}
}

func (h *LoadHistory) EnsureSchema(ctx context.Context) error {
	_, err := h.DB.ExecContext(ctx, schema)
	return err
}

func (h *LoadHistory) Send(ctx context.Context, ev domain.LoadEvent) error {
	_, err := h.DB.ExecContext(ctx, `
		INSERT INTO panel_loads (page, panel, seq, outcome, error_kind, message, items, duration_ms, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, ev.Page, ev.Panel, int64(ev.Seq), string(ev.Outcome), ev.ErrorKind, ev.Message, ev.Items,
		ev.Duration.Milliseconds(), ev.FinishedAt)
	return err
}

// Recent returns the latest limit events, newest first.
func (h *LoadHistory) Recent(ctx context.Context, limit int) ([]domain.LoadEvent, error) {
	rows, err := h.DB.QueryContext(ctx, `
		SELECT page, panel, seq, outcome, error_kind, message, items, duration_ms, finished_at
		FROM panel_loads
		ORDER BY finished_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []domain.LoadEvent{}
	for rows.Next() {
		var (
			ev         domain.LoadEvent
			seq        int64
			outcome    string
			durationMS int64
		)
		if err := rows.Scan(&ev.Page, &ev.Panel, &seq, &outcome, &ev.ErrorKind, &ev.Message, &ev.Items, &durationMS, &ev.FinishedAt); err != nil {
			return nil, err
		}
		ev.Seq = uint64(seq)
		ev.Outcome = domain.Outcome(outcome)
		ev.Duration = time.Duration(durationMS) * time.Millisecond
		events = append(events, ev)
	}
	return events, rows.Err()
}
