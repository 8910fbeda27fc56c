package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ArtSentry/StyleGate/pkg/domain/validation"
)

// Page is one slice of query results. Next is an opaque continuation
// token, empty on the last page.
type Page struct {
	Records []Record
	Next    string
}

// Query selects records by exactly one of user, category or style,
// optionally bounded by a [From, To) time window.
type Query struct {
	UserID   string
	Category validation.Category
	StyleID  *uuid.UUID
	From     time.Time
	To       time.Time
	Limit    int
	Token    string
}

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=audit_repository_mock.go --case=underscore --with-expecter
type Repository interface {
	// Put inserts the record. Writes are idempotent on intervention id.
	Put(ctx context.Context, record *Record) error
	Get(ctx context.Context, interventionID uuid.UUID) (*Record, error)
	Find(ctx context.Context, query Query) (*Page, error)
}
