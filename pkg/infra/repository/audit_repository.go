package repository

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ArtSentry/StyleGate/pkg/domain/audit"
)

const defaultPageSize = 100

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) audit.Repository {
	return &AuditRepository{db: db}
}

// Put inserts the record, ignoring conflicts on intervention id so a
// retried write never mutates the original row.
func (r *AuditRepository) Put(ctx context.Context, record *audit.Record) error {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(record).Error; err != nil {
		return fmt.Errorf("failed to persist audit record: %w", err)
	}
	return nil
}

func (r *AuditRepository) Get(ctx context.Context, interventionID uuid.UUID) (*audit.Record, error) {
	entity := new(audit.Record)
	if err := r.db.WithContext(ctx).
		Where("intervention_id = ?", interventionID).
		First(entity).Error; err != nil {
		return nil, fmt.Errorf("audit record not found: %w", err)
	}
	return entity, nil
}

func (r *AuditRepository) Find(ctx context.Context, query audit.Query) (*audit.Page, error) {
	limit := query.Limit
	if limit <= 0 || limit > defaultPageSize {
		limit = defaultPageSize
	}

	offset, err := decodeToken(query.Token)
	if err != nil {
		return nil, err
	}

	q := r.db.WithContext(ctx).Model(&audit.Record{})
	switch {
	case query.UserID != "":
		q = q.Where("user_id = ?", query.UserID)
	case query.Category != "":
		q = q.Where("category = ?", query.Category)
	case query.StyleID != nil:
		q = q.Where("matched_style_id = ?", *query.StyleID)
	default:
		return nil, fmt.Errorf("audit query requires a user, category or style selector")
	}

	if !query.From.IsZero() {
		q = q.Where("timestamp >= ?", query.From)
	}
	if !query.To.IsZero() {
		q = q.Where("timestamp < ?", query.To)
	}

	var records []audit.Record
	// Fetch one extra row to know whether a continuation token is needed.
	if err := q.Order("timestamp asc").
		Offset(offset).
		Limit(limit + 1).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("audit query failed: %w", err)
	}

	page := &audit.Page{}
	if len(records) > limit {
		page.Records = records[:limit]
		page.Next = encodeToken(offset + limit)
	} else {
		page.Records = records
	}
	return page, nil
}

func encodeToken(offset int) string {
	return base64.URLEncoding.EncodeToString([]byte(strconv.Itoa(offset)))
}

func decodeToken(token string) (int, error) {
	if token == "" {
		return 0, nil
	}
	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return 0, fmt.Errorf("invalid continuation token: %w", err)
	}
	offset, err := strconv.Atoi(string(raw))
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("invalid continuation token")
	}
	return offset, nil
}
