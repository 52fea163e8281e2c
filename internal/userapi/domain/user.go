// Package domain holds the persistent record types.
package domain

import "time"

type User struct {
	ID           string
	Username     string
	PasswordHash string // argon2id PHC encoded, salt embedded
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HistoryEntry is one saved search. Only the most recent entries are kept,
// see store.HistoryLimit.
type HistoryEntry struct {
	ID        string
	UserID    string
	Query     string
	CreatedAt time.Time
}
