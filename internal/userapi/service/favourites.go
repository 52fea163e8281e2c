package service

import (
	"context"

	"github.com/kamelin22/user-api/internal/userapi/store"
)

// FavouritesService manages a user's favourite item ids. Operations return
// the updated list so handlers can echo it straight back.
type FavouritesService struct {
	Store store.Store
}

func (s *FavouritesService) List(ctx context.Context, userID string) ([]string, error) {
	return s.Store.Favourites().ListFavourites(ctx, userID)
}

func (s *FavouritesService) Add(ctx context.Context, userID, itemID string) ([]string, error) {
	if itemID == "" {
		return nil, ErrInvalidInput
	}
	if err := s.Store.Favourites().AddFavourite(ctx, userID, itemID); err != nil {
		return nil, err
	}
	return s.Store.Favourites().ListFavourites(ctx, userID)
}

func (s *FavouritesService) Remove(ctx context.Context, userID, itemID string) ([]string, error) {
	if err := s.Store.Favourites().RemoveFavourite(ctx, userID, itemID); err != nil {
		return nil, err
	}
	return s.Store.Favourites().ListFavourites(ctx, userID)
}
