package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates that the requested snapshot was not found.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot is a stored household valuation document.
type Snapshot struct {
	ID           int             `json:"id"`
	HouseholdID  int             `json:"householdId"`
	SnapshotDate time.Time       `json:"snapshotDate"`
	Data         json.RawMessage `json:"data"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// Repository defines persistent storage for valuation snapshots.
type Repository interface {
	Save(ctx context.Context, householdID int, date time.Time, data json.RawMessage) error
	GetLatest(ctx context.Context, householdSlug string) (*Snapshot, error)
	GetByDate(ctx context.Context, householdSlug string, date time.Time) (*Snapshot, error)
	List(ctx context.Context, householdSlug string, limit int) ([]Snapshot, error)
	GetHouseholdID(ctx context.Context, slug string) (int, error)
	EnsureHousehold(ctx context.Context, slug, name string) (int, error)
}

// PgRepository implements Repository with PostgreSQL.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewPgRepository creates a new PostgreSQL snapshot repository.
func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Save(ctx context.Context, householdID int, date time.Time, data json.RawMessage) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO valuation_snapshots (household_id, snapshot_date, data)
		 VALUES ($1, $2, $3::jsonb)
		 ON CONFLICT (household_id, snapshot_date)
		 DO UPDATE SET data = $3::jsonb`,
		householdID, date, data)
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}

func (r *PgRepository) GetLatest(ctx context.Context, householdSlug string) (*Snapshot, error) {
	var s Snapshot
	err := r.pool.QueryRow(ctx,
		`SELECT vs.id, vs.household_id, vs.snapshot_date, vs.data, vs.created_at
		 FROM valuation_snapshots vs
		 JOIN households h ON h.id = vs.household_id
		 WHERE h.slug = $1
		 ORDER BY vs.snapshot_date DESC
		 LIMIT 1`, householdSlug).Scan(&s.ID, &s.HouseholdID, &s.SnapshotDate, &s.Data, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting latest snapshot: %w", err)
	}
	return &s, nil
}

func (r *PgRepository) GetByDate(ctx context.Context, householdSlug string, date time.Time) (*Snapshot, error) {
	var s Snapshot
	err := r.pool.QueryRow(ctx,
		`SELECT vs.id, vs.household_id, vs.snapshot_date, vs.data, vs.created_at
		 FROM valuation_snapshots vs
		 JOIN households h ON h.id = vs.household_id
		 WHERE h.slug = $1 AND vs.snapshot_date = $2`, householdSlug, date).
		Scan(&s.ID, &s.HouseholdID, &s.SnapshotDate, &s.Data, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting snapshot by date: %w", err)
	}
	return &s, nil
}

func (r *PgRepository) List(ctx context.Context, householdSlug string, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 30
	}

	rows, err := r.pool.Query(ctx,
		`SELECT vs.id, vs.household_id, vs.snapshot_date, vs.data, vs.created_at
		 FROM valuation_snapshots vs
		 JOIN households h ON h.id = vs.household_id
		 WHERE h.slug = $1
		 ORDER BY vs.snapshot_date DESC
		 LIMIT $2`, householdSlug, limit)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var s Snapshot
		if err := rows.Scan(&s.ID, &s.HouseholdID, &s.SnapshotDate, &s.Data, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshots: %w", err)
	}
	return snapshots, nil
}

func (r *PgRepository) GetHouseholdID(ctx context.Context, slug string) (int, error) {
	var id int
	err := r.pool.QueryRow(ctx,
		`SELECT id FROM households WHERE slug = $1`, slug).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("household %q not found", slug)
		}
		return 0, fmt.Errorf("getting household: %w", err)
	}
	return id, nil
}

func (r *PgRepository) EnsureHousehold(ctx context.Context, slug, name string) (int, error) {
	var id int
	err := r.pool.QueryRow(ctx,
		`INSERT INTO households (slug, name)
		 VALUES ($1, $2)
		 ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id`, slug, name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ensuring household: %w", err)
	}
	return id, nil
}
