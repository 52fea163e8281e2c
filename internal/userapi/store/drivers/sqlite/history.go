package sqlite

import (
	"context"
	"database/sql"

	"github.com/kamelin22/user-api/internal/userapi/domain"
	"github.com/kamelin22/user-api/internal/userapi/store"
)

type historyRepo struct {
	db *sql.DB
}

func (r *historyRepo) ListHistory(ctx context.Context, userID string) ([]domain.HistoryEntry, error) {
	// Entry ids are ULIDs, so ordering by id is ordering by creation time.
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, query, created_at FROM history
		 WHERE user_id = ? ORDER BY id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []domain.HistoryEntry{}
	for rows.Next() {
		var e domain.HistoryEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Query, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *historyRepo) AddHistory(ctx context.Context, entry domain.HistoryEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO history (id, user_id, query, created_at) VALUES (?, ?, ?, ?)`,
		entry.ID, entry.UserID, entry.Query, nowUTC()); err != nil {
		return mapConstraint(err)
	}

	// Evict everything older than the newest HistoryLimit entries.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM history WHERE user_id = ? AND id NOT IN (
			SELECT id FROM history WHERE user_id = ? ORDER BY id DESC LIMIT ?
		)`, entry.UserID, entry.UserID, store.HistoryLimit); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *historyRepo) RemoveHistory(ctx context.Context, userID, entryID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM history WHERE user_id = ? AND id = ?`, userID, entryID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
