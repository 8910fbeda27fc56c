package oracle

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"

	"github.com/ArtSentry/StyleGate/pkg/infra/httpx"
)

const (
	classifyPath          = "/v1/classify"
	defaultRequestTimeout = 30 * time.Second
)

type classifyRequest struct {
	Image         string `json:"image"`
	ClassifierRef string `json:"classifier_ref"`
}

type classifyResponse struct {
	Labels []Label `json:"labels"`
}

// FastHTTPVisionClient calls the image-classification oracle. Image
// bytes go over the wire base64-encoded in a JSON envelope.
type FastHTTPVisionClient struct {
	client         *fasthttp.Client
	logger         *logrus.Logger
	circuitBreaker httpx.CircuitBreaker
	credentials    Credentials
}

func NewFastHTTPVisionClient(
	client *fasthttp.Client,
	logger *logrus.Logger,
	circuitBreaker httpx.CircuitBreaker,
	credentials Credentials,
) VisionClient {
	if client == nil {
		client = &fasthttp.Client{}
	}
	return &FastHTTPVisionClient{
		client:         client,
		logger:         logger,
		circuitBreaker: circuitBreaker,
		credentials:    credentials,
	}
}

func (c *FastHTTPVisionClient) Classify(
	ctx context.Context,
	image []byte,
	classifierRef string,
) ([]Label, error) {
	var labels []Label
	var err error

	err = c.circuitBreaker.Execute(func() error {
		labels, err = c.executeClassifyRequest(ctx, image, classifierRef)
		return err
	})
	if err != nil {
		c.logger.WithError(err).Error("image classification failed (circuit breaker)")
		return nil, fmt.Errorf("%w: %s", ErrOracleFailure, err)
	}

	return labels, nil
}

func (c *FastHTTPVisionClient) executeClassifyRequest(
	ctx context.Context,
	image []byte,
	classifierRef string,
) ([]Label, error) {
	body, err := json.Marshal(classifyRequest{
		Image:         base64.StdEncoding.EncodeToString(image),
		ClassifierRef: classifierRef,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal classify request: %w", err)
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.credentials.BaseURL + classifyPath)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Token", c.credentials.Token)
	req.SetBody(body)

	if err := c.doRequestWithContext(ctx, req, resp); err != nil {
		return nil, err
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.WithField("status_code", resp.StatusCode()).Error("vision oracle returned non-200 status")
		return nil, fmt.Errorf("vision oracle status %d", resp.StatusCode())
	}

	var classified classifyResponse
	if err := json.Unmarshal(resp.Body(), &classified); err != nil {
		return nil, fmt.Errorf("invalid classify response: %w", err)
	}

	for _, label := range classified.Labels {
		if label.Confidence < 0 || label.Confidence > 100 {
			return nil, fmt.Errorf("classify confidence %f out of range", label.Confidence)
		}
	}

	return classified.Labels, nil
}

func (c *FastHTTPVisionClient) doRequestWithContext(
	ctx context.Context,
	req *fasthttp.Request,
	resp *fasthttp.Response,
) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- c.client.DoTimeout(req, resp, defaultRequestTimeout)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errCh:
		if err != nil {
			c.logger.WithError(err).Error("error performing vision oracle request")
		}
		return err
	}
}
