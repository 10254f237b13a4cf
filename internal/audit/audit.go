// Package audit records committed workflow actions. Entries are produced only
// as a side effect of resolution and decommission commits and are never
// mutated afterwards.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	ActionRecordResolved       = "record_resolved"
	ActionRecordDecommissioned = "record_decommissioned"
)

// Entry is one append-only audit record.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
}

// Store persists audit entries.
type Store interface {
	Append(ctx context.Context, entry Entry) error
	ListRecent(ctx context.Context, limit int) ([]Entry, error)
}

// Log appends entries synchronously to the store so a committed resolution and
// its audit record become visible together, and tees each entry onto an
// optional mirror channel for asynchronous publishing.
type Log struct {
	store  Store
	mirror chan<- Entry
	logger *slog.Logger
}

func NewLog(store Store, mirror chan<- Entry, logger *slog.Logger) *Log {
	return &Log{store: store, mirror: mirror, logger: logger}
}

// Record assigns an id and timestamp and persists the entry. Mirror delivery is
// best effort: a full mirror never blocks a commit.
func (l *Log) Record(ctx context.Context, entry Entry) error {
	entry.ID = uuid.NewString()
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	if err := l.store.Append(ctx, entry); err != nil {
		return err
	}
	if l.mirror != nil {
		select {
		case l.mirror <- entry:
		default:
			if l.logger != nil {
				l.logger.WarnContext(ctx, "audit mirror full, entry not forwarded",
					"entry_id", entry.ID,
					"action", entry.Action,
				)
			}
		}
	}
	return nil
}

// ListRecent exposes the trail for the audit view.
func (l *Log) ListRecent(ctx context.Context, limit int) ([]Entry, error) {
	return l.store.ListRecent(ctx, limit)
}
