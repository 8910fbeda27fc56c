package http

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ArtSentry/StyleGate/pkg/domain/style"
)

// Perceptual hashes cross the API as hex strings: JSON numbers cannot
// carry a full 64-bit value without precision loss.
type styleSamples struct {
	Hashes     []string    `json:"hashes"`
	Embeddings [][]float64 `json:"embeddings"`
}

func (s *styleSamples) parseHashes() ([]uint64, error) {
	hashes := make([]uint64, 0, len(s.Hashes))
	for _, raw := range s.Hashes {
		h, err := strconv.ParseUint(raw, 16, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid perceptual hash %q: must be 64-bit hex", raw)
		}
		hashes = append(hashes, h)
	}
	return hashes, nil
}

type styleResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	RightsHolder   string   `json:"rights_holder"`
	Contact        string   `json:"contact"`
	Status         string   `json:"status"`
	Hashes         []string `json:"hashes"`
	EmbeddingCount int      `json:"embedding_count"`
	ClassifierRef  string   `json:"classifier_ref,omitempty"`
	RegisteredAt   string   `json:"registered_at"`
}

func newStyleResponse(entity *style.ProtectedStyle) styleResponse {
	hashes := make([]string, 0, len(entity.Hashes))
	for _, h := range entity.Hashes {
		hashes = append(hashes, strconv.FormatUint(h, 16))
	}
	return styleResponse{
		ID:             entity.ID.String(),
		Name:           entity.Name,
		RightsHolder:   entity.RightsHolder,
		Contact:        entity.Contact,
		Status:         string(entity.Status),
		Hashes:         hashes,
		EmbeddingCount: len(entity.Embeddings),
		ClassifierRef:  entity.ClassifierRef,
		RegisteredAt:   entity.RegisteredAt.Format(time.RFC3339),
	}
}
