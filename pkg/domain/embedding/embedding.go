package embedding

import (
	"context"
	"errors"
	"time"
)

var ErrProviderNonOKResponse = errors.New("embedding provider returned non-OK response")

// Embedding is a normalized feature vector for one image.
type Embedding struct {
	Value     []float64 `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

//go:generate mockery --name=Creator --dir=. --output=./mocks --filename=embedding_creator_mock.go --case=underscore --with-expecter
type Creator interface {
	Generate(ctx context.Context, image []byte) (*Embedding, error)
}
