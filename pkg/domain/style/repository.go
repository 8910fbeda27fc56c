package style

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=style_repository_mock.go --case=underscore --with-expecter
type Repository interface {
	Save(ctx context.Context, entity *ProtectedStyle) error
	Get(ctx context.Context, id uuid.UUID) (*ProtectedStyle, error)
	ListActive(ctx context.Context) ([]ProtectedStyle, error)
}
