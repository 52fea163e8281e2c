package service

import (
	"context"
	"strings"

	"github.com/kamelin22/user-api/internal/userapi/domain"
	"github.com/kamelin22/user-api/internal/userapi/store"
	"github.com/kamelin22/user-api/pkg/idx"
)

// HistoryService manages a user's saved searches. The store keeps only the
// most recent store.HistoryLimit entries per user.
type HistoryService struct {
	Store store.Store
}

func (s *HistoryService) List(ctx context.Context, userID string) ([]domain.HistoryEntry, error) {
	return s.Store.History().ListHistory(ctx, userID)
}

// Add appends a search query and returns the updated list, newest first.
func (s *HistoryService) Add(ctx context.Context, userID, query string) ([]domain.HistoryEntry, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrInvalidInput
	}

	entry := domain.HistoryEntry{
		ID:     idx.New().String(),
		UserID: userID,
		Query:  query,
	}
	if err := s.Store.History().AddHistory(ctx, entry); err != nil {
		return nil, err
	}

	return s.Store.History().ListHistory(ctx, userID)
}

func (s *HistoryService) Remove(ctx context.Context, userID, entryID string) ([]domain.HistoryEntry, error) {
	if err := s.Store.History().RemoveHistory(ctx, userID, entryID); err != nil {
		return nil, err
	}
	return s.Store.History().ListHistory(ctx, userID)
}
