package fingerprint_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/corona10/goimagehash"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ArtSentry/StyleGate/pkg/app/fingerprint"
	"github.com/ArtSentry/StyleGate/pkg/domain/embedding"
	embeddingmocks "github.com/ArtSentry/StyleGate/pkg/domain/embedding/mocks"
	"github.com/ArtSentry/StyleGate/pkg/domain/style"
	"github.com/ArtSentry/StyleGate/pkg/domain/validation"
	"github.com/ArtSentry/StyleGate/pkg/infra/oracle"
	oraclemocks "github.com/ArtSentry/StyleGate/pkg/infra/oracle/mocks"
)

type fixedThresholds struct {
	value float64
}

func (f fixedThresholds) ThresholdFor(validation.Category) float64 {
	return f.value
}

// testImage renders a gradient so the perceptual hash is non-trivial.
func testImage(t *testing.T) ([]byte, uint64) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for x := 0; x < 64; x++ {
		for y := 0; y < 64; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 4), G: uint8(y * 4), B: uint8((x + y) * 2), A: 255})
		}
	}

	var buf bytes.Buffer
	assert.NoError(t, png.Encode(&buf, img))

	hash, err := goimagehash.PerceptionHash(img)
	assert.NoError(t, err)

	return buf.Bytes(), hash.GetHash()
}

func newFingerprinter(vision oracle.VisionClient, embedder embedding.Creator, threshold float64) *fingerprint.Fingerprinter {
	return fingerprint.NewFingerprinter(logrus.New(), vision, embedder, fixedThresholds{value: threshold})
}

func TestFingerprinter_Match_HashStage(t *testing.T) {
	imageBytes, hash := testImage(t)

	registered := style.ProtectedStyle{Name: "test", Hashes: style.HashesJSON{hash}}
	registered.ID = mustNewStyleID(t, &registered)

	f := newFingerprinter(new(oraclemocks.VisionClient), new(embeddingmocks.Creator), 0.75)

	result, err := f.Match(context.Background(), imageBytes, []style.ProtectedStyle{registered})

	assert.NoError(t, err)
	assert.Equal(t, validation.MethodHash, result.Stage)
	assert.Equal(t, 1.0, result.Similarity)
	assert.NotNil(t, result.StyleID)
	assert.Equal(t, registered.ID, *result.StyleID)
}

func TestFingerprinter_Match_ClassifierStage(t *testing.T) {
	imageBytes, _ := testImage(t)

	registered := style.ProtectedStyle{Name: "test", ClassifierRef: "classifier-v3"}
	registered.ID = mustNewStyleID(t, &registered)

	vision := new(oraclemocks.VisionClient)
	vision.On("Classify", mock.Anything, imageBytes, "classifier-v3").
		Return([]oracle.Label{{Label: "protected_style", Confidence: 95}}, nil).Once()

	f := newFingerprinter(vision, new(embeddingmocks.Creator), 0.75)

	result, err := f.Match(context.Background(), imageBytes, []style.ProtectedStyle{registered})

	assert.NoError(t, err)
	assert.Equal(t, validation.MethodClassifier, result.Stage)
	assert.InDelta(t, 0.95, result.Similarity, 1e-9)
	assert.Equal(t, registered.ID, *result.StyleID)
	vision.AssertExpectations(t)
}

func TestFingerprinter_Match_ClassifierFailureFailsPass(t *testing.T) {
	imageBytes, _ := testImage(t)

	registered := style.ProtectedStyle{Name: "test", ClassifierRef: "classifier-v3"}
	registered.ID = mustNewStyleID(t, &registered)

	vision := new(oraclemocks.VisionClient)
	vision.On("Classify", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, oracle.ErrOracleFailure).Once()

	f := newFingerprinter(vision, new(embeddingmocks.Creator), 0.75)

	result, err := f.Match(context.Background(), imageBytes, []style.ProtectedStyle{registered})

	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestFingerprinter_Match_EmbeddingStage(t *testing.T) {
	imageBytes, _ := testImage(t)

	registered := style.ProtectedStyle{
		Name:       "test",
		Embeddings: style.EmbeddingsJSON{{1, 0, 0}},
	}
	registered.ID = mustNewStyleID(t, &registered)

	embedder := new(embeddingmocks.Creator)
	embedder.On("Generate", mock.Anything, imageBytes).
		Return(&embedding.Embedding{Value: []float64{1, 0, 0}}, nil).Once()

	f := newFingerprinter(new(oraclemocks.VisionClient), embedder, 0.75)

	result, err := f.Match(context.Background(), imageBytes, []style.ProtectedStyle{registered})

	assert.NoError(t, err)
	assert.Equal(t, validation.MethodEmbedding, result.Stage)
	assert.InDelta(t, 1.0, result.Similarity, 1e-9)
	assert.Equal(t, registered.ID, *result.StyleID)
	embedder.AssertExpectations(t)
}

func TestFingerprinter_Match_NoMatch(t *testing.T) {
	imageBytes, _ := testImage(t)

	registered := style.ProtectedStyle{
		Name:       "test",
		Embeddings: style.EmbeddingsJSON{{0, 1, 0}},
	}
	registered.ID = mustNewStyleID(t, &registered)

	embedder := new(embeddingmocks.Creator)
	embedder.On("Generate", mock.Anything, imageBytes).
		Return(&embedding.Embedding{Value: []float64{1, 0, 0}}, nil).Once()

	f := newFingerprinter(new(oraclemocks.VisionClient), embedder, 0.75)

	result, err := f.Match(context.Background(), imageBytes, []style.ProtectedStyle{registered})

	assert.NoError(t, err)
	assert.Equal(t, validation.MethodNone, result.Stage)
	assert.Nil(t, result.StyleID)
	assert.Equal(t, 0.0, result.Similarity)
}

func TestFingerprinter_Match_NoStylesNoOracleCalls(t *testing.T) {
	imageBytes, _ := testImage(t)

	vision := new(oraclemocks.VisionClient)
	embedder := new(embeddingmocks.Creator)

	f := newFingerprinter(vision, embedder, 0.75)

	result, err := f.Match(context.Background(), imageBytes, nil)

	assert.NoError(t, err)
	assert.Equal(t, validation.MethodNone, result.Stage)
	vision.AssertNotCalled(t, "Classify")
	embedder.AssertNotCalled(t, "Generate")
}

func TestFingerprinter_Match_InvalidImage(t *testing.T) {
	f := newFingerprinter(new(oraclemocks.VisionClient), new(embeddingmocks.Creator), 0.75)

	result, err := f.Match(context.Background(), []byte("not an image"), nil)

	assert.Error(t, err)
	assert.Nil(t, result)
}

func mustNewStyleID(t *testing.T, s *style.ProtectedStyle) uuid.UUID {
	t.Helper()
	s.ID = uuid.New()
	return s.ID
}
