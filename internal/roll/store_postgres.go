package roll

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"voteguard/pkg/platform/sentinel"
)

// PostgresStore is the durable Store variant. It enforces the same contract as
// InMemoryStore: stable insertion order via a sequence column, whole-record
// replacement, and row-level locking so updates against one record serialize.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const voterColumns = `id, name, age, dob, address, state, zone, district, polling_station,
	last_verified_year, risk_score, status, is_flagged, flagged_reasons,
	aadhaar_meta, other_id_meta, is_archived, duplicate_of, flagged_history`

// EnsureSchema creates the voters table when absent.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS voters (
			seq BIGSERIAL PRIMARY KEY,
			id TEXT UNIQUE NOT NULL,
			name TEXT NOT NULL,
			age INT NOT NULL,
			dob TEXT NOT NULL,
			address TEXT NOT NULL,
			state TEXT NOT NULL,
			zone TEXT NOT NULL,
			district TEXT NOT NULL,
			polling_station TEXT NOT NULL,
			last_verified_year INT NOT NULL,
			risk_score INT NOT NULL,
			status TEXT NOT NULL,
			is_flagged BOOLEAN NOT NULL,
			flagged_reasons JSONB NOT NULL DEFAULT '[]',
			aadhaar_meta JSONB,
			other_id_meta JSONB,
			is_archived BOOLEAN NOT NULL DEFAULT FALSE,
			duplicate_of TEXT NOT NULL DEFAULT '',
			flagged_history JSONB NOT NULL DEFAULT '[]'
		)`)
	if err != nil {
		return fmt.Errorf("ensure voters schema: %w", err)
	}
	return nil
}

// Count reports the roster size, used to decide whether to seed.
func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM voters`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count voters: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (Voter, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+voterColumns+` FROM voters WHERE id = $1`, id)
	v, err := scanVoter(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Voter{}, sentinel.ErrNotFound
	}
	return v, err
}

func (s *PostgresStore) List(ctx context.Context) ([]Voter, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+voterColumns+` FROM voters ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list voters: %w", err)
	}
	defer rows.Close()

	var out []Voter
	for rows.Next() {
		v, err := scanVoter(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Insert(ctx context.Context, v Voter) error {
	args, err := voterArgs(v)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO voters (`+voterColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)`,
		args...)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return sentinel.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("insert voter %s: %w", v.ID, err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, id string, mutate func(Voter) (Voter, error)) (Voter, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return Voter{}, fmt.Errorf("begin update: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `SELECT `+voterColumns+` FROM voters WHERE id = $1 FOR UPDATE`, id)
	current, err := scanVoter(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Voter{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Voter{}, err
	}

	updated, err := mutate(current)
	if err != nil {
		return Voter{}, err
	}
	updated.ID = id

	args, err := voterArgs(updated)
	if err != nil {
		return Voter{}, err
	}
	_, err = tx.Exec(ctx, `
		UPDATE voters SET
			name = $2, age = $3, dob = $4, address = $5, state = $6, zone = $7,
			district = $8, polling_station = $9, last_verified_year = $10,
			risk_score = $11, status = $12, is_flagged = $13, flagged_reasons = $14,
			aadhaar_meta = $15, other_id_meta = $16, is_archived = $17,
			duplicate_of = $18, flagged_history = $19
		WHERE id = $1`, args...)
	if err != nil {
		return Voter{}, fmt.Errorf("update voter %s: %w", id, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return Voter{}, fmt.Errorf("commit update: %w", err)
	}
	return updated, nil
}

func voterArgs(v Voter) ([]any, error) {
	reasons, err := json.Marshal(reasonsOrEmpty(v.FlaggedReasons))
	if err != nil {
		return nil, fmt.Errorf("encode flagged reasons: %w", err)
	}
	history, err := json.Marshal(historyOrEmpty(v.FlaggedHistory))
	if err != nil {
		return nil, fmt.Errorf("encode flag history: %w", err)
	}
	var aadhaar, other []byte
	if v.AadhaarMeta != nil {
		if aadhaar, err = json.Marshal(v.AadhaarMeta); err != nil {
			return nil, fmt.Errorf("encode aadhaar meta: %w", err)
		}
	}
	if v.OtherIDMeta != nil {
		if other, err = json.Marshal(v.OtherIDMeta); err != nil {
			return nil, fmt.Errorf("encode secondary id meta: %w", err)
		}
	}
	return []any{
		v.ID, v.Name, v.Age, v.DOB, v.Address, v.State, v.Zone, v.District,
		v.PollingStation, v.LastVerifiedYear, v.RiskScore, string(v.Status),
		v.IsFlagged, reasons, aadhaar, other, v.IsArchived, v.DuplicateOf, history,
	}, nil
}

func reasonsOrEmpty(r []string) []string {
	if r == nil {
		return []string{}
	}
	return r
}

func historyOrEmpty(h []FlagHistory) []FlagHistory {
	if h == nil {
		return []FlagHistory{}
	}
	return h
}

func scanVoter(row pgx.Row) (Voter, error) {
	var (
		v                    Voter
		status               string
		reasons, history     []byte
		aadhaarRaw, otherRaw []byte
	)
	err := row.Scan(
		&v.ID, &v.Name, &v.Age, &v.DOB, &v.Address, &v.State, &v.Zone, &v.District,
		&v.PollingStation, &v.LastVerifiedYear, &v.RiskScore, &status,
		&v.IsFlagged, &reasons, &aadhaarRaw, &otherRaw, &v.IsArchived,
		&v.DuplicateOf, &history,
	)
	if err != nil {
		return Voter{}, err
	}
	v.Status = Status(status)
	if err := json.Unmarshal(reasons, &v.FlaggedReasons); err != nil {
		return Voter{}, fmt.Errorf("decode flagged reasons for %s: %w", v.ID, err)
	}
	if err := json.Unmarshal(history, &v.FlaggedHistory); err != nil {
		return Voter{}, fmt.Errorf("decode flag history for %s: %w", v.ID, err)
	}
	if len(aadhaarRaw) > 0 {
		v.AadhaarMeta = &AadhaarMetadata{}
		if err := json.Unmarshal(aadhaarRaw, v.AadhaarMeta); err != nil {
			return Voter{}, fmt.Errorf("decode aadhaar meta for %s: %w", v.ID, err)
		}
	}
	if len(otherRaw) > 0 {
		v.OtherIDMeta = &OtherIDMetadata{}
		if err := json.Unmarshal(otherRaw, v.OtherIDMeta); err != nil {
			return Voter{}, fmt.Errorf("decode secondary id meta for %s: %w", v.ID, err)
		}
	}
	return v, nil
}
