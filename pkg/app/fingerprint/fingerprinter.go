package fingerprint

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"github.com/corona10/goimagehash"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ArtSentry/StyleGate/pkg/domain/embedding"
	"github.com/ArtSentry/StyleGate/pkg/domain/style"
	"github.com/ArtSentry/StyleGate/pkg/domain/validation"
	"github.com/ArtSentry/StyleGate/pkg/infra/oracle"
	"github.com/ArtSentry/StyleGate/pkg/infra/prometheus"
)

const (
	hashBitLength = 64
	// nearDuplicateBound is the Hamming distance below which two
	// perceptual hashes are treated as the same image. Duplicates are
	// unambiguous, so this is a fixed bound rather than configuration.
	nearDuplicateBound = 10
	// classifierConfidenceBound is the oracle confidence (0-100 scale)
	// above which a classifier label alone settles the match.
	classifierConfidenceBound = 90.0
)

// Result is the outcome of one fingerprinting pass. Stage names the
// stage that produced the match; MethodNone means no stage matched.
type Result struct {
	StyleID    *uuid.UUID
	Similarity float64
	Stage      validation.Method
}

// ThresholdSource provides the comparison bound for the embedding
// stage.
type ThresholdSource interface {
	ThresholdFor(category validation.Category) float64
}

// Fingerprinter runs the three matching stages in fixed order: exact
// and cheap first (perceptual hash), then the external classifier,
// then the embedding fallback. Every stage reads only the registry
// snapshot it was handed.
type Fingerprinter struct {
	logger     *logrus.Logger
	vision     oracle.VisionClient
	embedder   embedding.Creator
	thresholds ThresholdSource
}

func NewFingerprinter(
	logger *logrus.Logger,
	vision oracle.VisionClient,
	embedder embedding.Creator,
	thresholds ThresholdSource,
) *Fingerprinter {
	return &Fingerprinter{
		logger:     logger,
		vision:     vision,
		embedder:   embedder,
		thresholds: thresholds,
	}
}

// Match fingerprints imageBytes against the supplied active styles.
// A non-nil error means the pass could not complete and the caller
// must fail closed.
func (f *Fingerprinter) Match(
	ctx context.Context,
	imageBytes []byte,
	activeStyles []style.ProtectedStyle,
) (*Result, error) {
	img, _, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	if result := f.matchByHash(img, activeStyles); result != nil {
		prometheus.FingerprintStageTotal.WithLabelValues(string(result.Stage)).Inc()
		return result, nil
	}

	result, err := f.matchByClassifier(ctx, imageBytes, activeStyles)
	if err != nil {
		return nil, err
	}
	if result != nil {
		prometheus.FingerprintStageTotal.WithLabelValues(string(result.Stage)).Inc()
		return result, nil
	}

	result, err = f.matchByEmbedding(ctx, imageBytes, activeStyles)
	if err != nil {
		return nil, err
	}
	prometheus.FingerprintStageTotal.WithLabelValues(string(result.Stage)).Inc()
	return result, nil
}

// matchByHash compares the image's perceptual hash to every stored
// hash and returns a match when the minimum Hamming distance is inside
// the near-duplicate bound.
func (f *Fingerprinter) matchByHash(img image.Image, activeStyles []style.ProtectedStyle) *Result {
	computed, err := goimagehash.PerceptionHash(img)
	if err != nil {
		f.logger.WithError(err).Warn("perceptual hash computation failed, skipping hash stage")
		return nil
	}

	minDistance := hashBitLength + 1
	var matched *uuid.UUID

	for i := range activeStyles {
		s := &activeStyles[i]
		for _, stored := range s.Hashes {
			distance, err := computed.Distance(goimagehash.NewImageHash(stored, goimagehash.PHash))
			if err != nil {
				continue
			}
			if distance < minDistance {
				minDistance = distance
				matched = &s.ID
			}
		}
	}

	if matched == nil || minDistance >= nearDuplicateBound {
		return nil
	}

	return &Result{
		StyleID:    matched,
		Similarity: 1 - float64(minDistance)/hashBitLength,
		Stage:      validation.MethodHash,
	}
}

// matchByClassifier asks the vision oracle about every style that
// exposes a classifier reference, returning on the first label above
// the high-confidence bound.
func (f *Fingerprinter) matchByClassifier(
	ctx context.Context,
	imageBytes []byte,
	activeStyles []style.ProtectedStyle,
) (*Result, error) {
	for i := range activeStyles {
		s := &activeStyles[i]
		if s.ClassifierRef == "" {
			continue
		}

		labels, err := f.vision.Classify(ctx, imageBytes, s.ClassifierRef)
		if err != nil {
			return nil, fmt.Errorf("classifier stage failed for style %s: %w", s.ID, err)
		}

		for _, label := range labels {
			if label.Confidence > classifierConfidenceBound {
				return &Result{
					StyleID:    &s.ID,
					Similarity: label.Confidence / 100,
					Stage:      validation.MethodClassifier,
				}, nil
			}
		}
	}
	return nil, nil
}

// matchByEmbedding computes the image's feature vector and tracks the
// maximum cosine similarity over every stored embedding. The
// comparison bound is the ip_mimicry threshold.
func (f *Fingerprinter) matchByEmbedding(
	ctx context.Context,
	imageBytes []byte,
	activeStyles []style.ProtectedStyle,
) (*Result, error) {
	hasEmbeddings := false
	for i := range activeStyles {
		if len(activeStyles[i].Embeddings) > 0 {
			hasEmbeddings = true
			break
		}
	}
	if !hasEmbeddings {
		return noMatch(), nil
	}

	emb, err := f.embedder.Generate(ctx, imageBytes)
	if err != nil {
		return nil, fmt.Errorf("embedding stage failed: %w", err)
	}

	var best float64
	var matched *uuid.UUID

	for i := range activeStyles {
		s := &activeStyles[i]
		for _, stored := range s.Embeddings {
			similarity := cosineSimilarity(emb.Value, stored)
			if similarity > best {
				best = similarity
				matched = &s.ID
			}
		}
	}

	if matched == nil || best <= f.thresholds.ThresholdFor(validation.CategoryIPMimicry) {
		return noMatch(), nil
	}

	return &Result{
		StyleID:    matched,
		Similarity: best,
		Stage:      validation.MethodEmbedding,
	}, nil
}

func noMatch() *Result {
	return &Result{Similarity: 0, Stage: validation.MethodNone}
}

func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
