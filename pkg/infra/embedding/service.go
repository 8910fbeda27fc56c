package embedding

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"

	"github.com/ArtSentry/StyleGate/pkg/domain/embedding"
)

const (
	embedPath             = "/v1/embed"
	defaultRequestTimeout = 30 * time.Second
)

type Config struct {
	BaseURL string
	Token   string
}

type embeddingService struct {
	client *fasthttp.Client
	logger *logrus.Logger
	config Config
}

type embedRequest struct {
	Image string `json:"image"`
}

type embedResponse struct {
	Embedding []float64 `json:"embedding"`
}

// NewImageEmbeddingService builds the client for the external image
// feature-extraction service used by the fingerprinting fallback
// stage.
func NewImageEmbeddingService(client *fasthttp.Client, logger *logrus.Logger, config Config) embedding.Creator {
	if client == nil {
		client = &fasthttp.Client{}
	}
	return &embeddingService{
		client: client,
		logger: logger,
		config: config,
	}
}

func (s *embeddingService) Generate(ctx context.Context, image []byte) (*embedding.Embedding, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(embedRequest{
		Image: base64.StdEncoding.EncodeToString(image),
	})
	if err != nil {
		s.logger.WithError(err).Error("failed to marshal embedding request payload")
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(s.config.BaseURL + embedPath)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Token", s.config.Token)
	req.SetBody(body)

	if err := s.doRequestWithContext(ctx, req, resp); err != nil {
		return nil, err
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		s.logger.WithField("status_code", resp.StatusCode()).Error("non-OK response from embedding service")
		return nil, fmt.Errorf("%w: %d", embedding.ErrProviderNonOKResponse, resp.StatusCode())
	}

	var embResp embedResponse
	if err := json.Unmarshal(resp.Body(), &embResp); err != nil {
		s.logger.WithError(err).Error("failed to decode embedding response")
		return nil, err
	}

	if len(embResp.Embedding) == 0 {
		return nil, fmt.Errorf("empty embedding from service")
	}

	vector := embResp.Embedding
	normalizeVector(vector)

	return &embedding.Embedding{
		Value:     vector,
		CreatedAt: time.Now(),
	}, nil
}

func (s *embeddingService) doRequestWithContext(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.client.DoTimeout(req, resp, defaultRequestTimeout)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errCh:
		if err != nil {
			s.logger.WithError(err).Error("error performing embedding request")
		}
		return err
	}
}

func normalizeVector(v []float64) {
	var sumSquares float64
	for _, val := range v {
		sumSquares += val * val
	}

	norm := math.Sqrt(sumSquares)
	if norm == 0 {
		return
	}

	for i := range v {
		v[i] /= norm
	}
}
