package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ArtSentry/StyleGate/pkg/domain/style"
)

type StyleRepository struct {
	db *gorm.DB
}

func NewStyleRepository(db *gorm.DB) style.Repository {
	return &StyleRepository{db: db}
}

func (r *StyleRepository) Save(ctx context.Context, entity *style.ProtectedStyle) error {
	if err := r.db.WithContext(ctx).Save(entity).Error; err != nil {
		return fmt.Errorf("failed to save protected style: %w", err)
	}
	return nil
}

func (r *StyleRepository) Get(ctx context.Context, id uuid.UUID) (*style.ProtectedStyle, error) {
	entity := new(style.ProtectedStyle)
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(entity).Error; err != nil {
		return nil, fmt.Errorf("protected style not found: %w", err)
	}
	return entity, nil
}

func (r *StyleRepository) ListActive(ctx context.Context) ([]style.ProtectedStyle, error) {
	var styles []style.ProtectedStyle
	if err := r.db.WithContext(ctx).
		Where("status = ?", style.StatusActive).
		Find(&styles).Error; err != nil {
		return nil, fmt.Errorf("failed to list active styles: %w", err)
	}
	return styles, nil
}
