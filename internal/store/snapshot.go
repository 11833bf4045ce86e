package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// notebookRepo implements NotebookRepo with the ent SQL builder.
type notebookRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *notebookRepo) Save(ctx context.Context, snap *NotebookSnapshot) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	ts := snap.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	ts = ts.UTC()

	query, args := builder().Insert(notebookTable).
		Columns("sequence", "timestamp", "session_id", "filename", "item_count", "data").
		Values(seqNum, ts, snap.SessionID, snap.Filename, snap.ItemCount, string(snap.Data)).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("save notebook snapshot: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("notebook snapshot id: %w", err)
	}

	snap.ID = int(id)
	snap.Sequence = seqNum
	snap.Timestamp = ts
	return nil
}

func (r *notebookRepo) Latest(ctx context.Context) (*NotebookSnapshot, error) {
	return r.one(ctx, nil)
}

func (r *notebookRepo) Get(ctx context.Context, id int) (*NotebookSnapshot, error) {
	return r.one(ctx, entsql.EQ("id", id))
}

func (r *notebookRepo) one(ctx context.Context, pred *entsql.Predicate) (*NotebookSnapshot, error) {
	b := builder()
	sel := b.Select("id", "sequence", "timestamp", "session_id", "filename", "item_count", "data").
		From(b.Table(notebookTable)).
		OrderBy(entsql.Desc("sequence")).
		Limit(1)
	if pred != nil {
		sel.Where(pred)
	}
	query, args := sel.Query()

	var s NotebookSnapshot
	var data string
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&s.ID, &s.Sequence, &s.Timestamp, &s.SessionID, &s.Filename, &s.ItemCount, &data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query notebook snapshot: %w", err)
	}
	s.Data = []byte(data)
	return &s, nil
}

func (r *notebookRepo) List(ctx context.Context, limit int) ([]NotebookSnapshot, error) {
	b := builder()
	sel := b.Select("id", "sequence", "timestamp", "session_id", "filename", "item_count").
		From(b.Table(notebookTable)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notebook snapshots: %w", err)
	}
	defer rows.Close()

	var out []NotebookSnapshot
	for rows.Next() {
		var s NotebookSnapshot
		if err := rows.Scan(&s.ID, &s.Sequence, &s.Timestamp, &s.SessionID, &s.Filename, &s.ItemCount); err != nil {
			return nil, fmt.Errorf("scan notebook snapshot: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *notebookRepo) Prune(ctx context.Context, keep int) error {
	// Find the sequence threshold: the Nth most recent snapshot.
	b := builder()
	query, args := b.Select("sequence").
		From(b.Table(notebookTable)).
		OrderBy(entsql.Desc("sequence")).
		Offset(keep).
		Limit(1).
		Query()

	var threshold int64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&threshold)
	if errors.Is(err, sql.ErrNoRows) {
		return nil // fewer than keep snapshots exist
	}
	if err != nil {
		return fmt.Errorf("query snapshots for prune: %w", err)
	}

	query, args = builder().Delete(notebookTable).
		Where(entsql.LTE("sequence", threshold)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("prune notebook snapshots: %w", err)
	}
	return nil
}
