// File: internal/repository/character/interface.go
package character

import (
	"context"
	"errors"

	"literarychat/internal/domain"
)

var ErrCharacterNotFound = errors.New("character not found")

// CharacterRepository persists characters. FindByID loads the owning Book
// as well, since chat needs both.
type CharacterRepository interface {
	Create(ctx context.Context, c *domain.Character) (*domain.Character, error)
	FindByID(ctx context.Context, id uint) (*domain.Character, error)
	FindByBookID(ctx context.Context, bookID uint) ([]domain.Character, error)
}
