package style

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status of a protected style. Suspended styles are kept for audit
// linkage but excluded from matching; there is no delete.
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

type (
	HashesJSON     []uint64
	EmbeddingsJSON [][]float64
)

func (h HashesJSON) Value() (driver.Value, error) {
	if h == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(h)
}

func (h *HashesJSON) Scan(value interface{}) error {
	if value == nil {
		*h = HashesJSON{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("expected []byte, got %T", value)
	}
	return json.Unmarshal(bytes, h)
}

func (e EmbeddingsJSON) Value() (driver.Value, error) {
	if e == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(e)
}

func (e *EmbeddingsJSON) Scan(value interface{}) error {
	if value == nil {
		*e = EmbeddingsJSON{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("expected []byte, got %T", value)
	}
	return json.Unmarshal(bytes, e)
}

// ProtectedStyle is one registered artistic style: identity of the
// rights holder plus the fingerprint samples the matching stages run
// against.
type ProtectedStyle struct {
	ID            uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Name          string         `json:"name" gorm:"uniqueIndex:idx_style_name"`
	RightsHolder  string         `json:"rights_holder"`
	Contact       string         `json:"contact"`
	Status        Status         `json:"status" gorm:"index"`
	Hashes        HashesJSON     `json:"hashes" gorm:"type:jsonb"`
	Embeddings    EmbeddingsJSON `json:"embeddings" gorm:"type:jsonb"`
	ClassifierRef string         `json:"classifier_ref"`
	RegisteredAt  time.Time      `json:"registered_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (s *ProtectedStyle) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.RegisteredAt.IsZero() {
		s.RegisteredAt = time.Now()
	}
	return s.Validate()
}

func (s *ProtectedStyle) BeforeUpdate(tx *gorm.DB) error {
	s.UpdatedAt = time.Now()
	return s.Validate()
}

func (s *ProtectedStyle) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.RightsHolder == "" {
		return fmt.Errorf("rights_holder is required")
	}
	if s.Status != StatusActive && s.Status != StatusSuspended {
		return fmt.Errorf("invalid status: %s", s.Status)
	}
	if len(s.Hashes) == 0 && len(s.Embeddings) == 0 && s.ClassifierRef == "" {
		return fmt.Errorf("at least one fingerprint sample or classifier reference is required")
	}
	return nil
}

// AppendSamples adds fingerprint material to an existing style.
func (s *ProtectedStyle) AppendSamples(hashes []uint64, embeddings [][]float64) {
	s.Hashes = append(s.Hashes, hashes...)
	s.Embeddings = append(s.Embeddings, embeddings...)
}

func (s *ProtectedStyle) TableName() string {
	return "public.protected_styles"
}
