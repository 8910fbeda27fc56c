package audit

import (
	"time"

	"github.com/google/uuid"

	"github.com/ArtSentry/StyleGate/pkg/domain/validation"
)

// Action is the terminal decision the record preserves.
type Action string

const (
	ActionBlocked Action = "blocked"
	ActionAllowed Action = "allowed"
)

// Record is one immutable audit entry, keyed by intervention id. The
// prompt and generated content are stored only as SHA-256 digests.
type Record struct {
	InterventionID uuid.UUID           `json:"intervention_id" gorm:"type:uuid;primaryKey"`
	Timestamp      time.Time           `json:"timestamp" gorm:"index"`
	UserID         string              `json:"user_id" gorm:"index"`
	Gate           int                 `json:"gate"`
	Category       validation.Category `json:"category" gorm:"index"`
	Action         Action              `json:"action"`
	Score          float64             `json:"score"`
	Threshold      float64             `json:"threshold"`
	PromptHash     string              `json:"prompt_hash"`
	ContentHash    string              `json:"content_hash"`
	Rationale      string              `json:"rationale"`
	MatchedStyleID *uuid.UUID          `json:"matched_style_id,omitempty" gorm:"type:uuid;index"`
	Method         validation.Method   `json:"method"`
	RetainUntil    time.Time           `json:"retain_until"`
}

func (r Record) TableName() string {
	return "public.audit_records"
}
