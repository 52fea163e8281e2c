package sqlite

import (
	"context"
	"database/sql"
)

type favouritesRepo struct {
	db *sql.DB
}

func (r *favouritesRepo) ListFavourites(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT item_id FROM favourites WHERE user_id = ? ORDER BY created_at, item_id`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []string{}
	for rows.Next() {
		var item string
		if err := rows.Scan(&item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *favouritesRepo) AddFavourite(ctx context.Context, userID, itemID string) error {
	// INSERT OR IGNORE keeps the operation idempotent against the
	// (user_id, item_id) primary key.
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO favourites (user_id, item_id, created_at) VALUES (?, ?, ?)`,
		userID, itemID, nowUTC())
	return err
}

func (r *favouritesRepo) RemoveFavourite(ctx context.Context, userID, itemID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM favourites WHERE user_id = ? AND item_id = ?`,
		userID, itemID)
	return err
}
