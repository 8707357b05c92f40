package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// ErrAnalyzeFailed indicates the detection model could not produce a result.
var ErrAnalyzeFailed = errors.New("analysis failed")

// RawDetection is a single prediction returned by the detection model.
type RawDetection struct {
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Confidence  float64 `json:"confidence"`
	ClassID     int     `json:"class_id"`
	ClassName   string  `json:"class"`
	DetectionID string  `json:"detection_id"`
	ParentID    string  `json:"parent_id"`
}

// PredictionGroup wraps the prediction list for one model output.
type PredictionGroup struct {
	Predictions []RawDetection `json:"predictions"`
}

// Output is one entry of the model's outputs array. Predictions is nil
// when the model produced no prediction block for the output.
type Output struct {
	Predictions *PredictionGroup `json:"predictions"`
}

// Result is the full model response for one analyzed image.
type Result struct {
	Outputs []Output `json:"outputs"`
}

type analyzeRequest struct {
	APIKey string        `json:"api_key"`
	Inputs analyzeInputs `json:"inputs"`
}

type analyzeInputs struct {
	Image analyzeImage `json:"image"`
}

type analyzeImage struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Client calls an externally hosted detection model over HTTP.
type Client struct {
	config *Config
	client *http.Client
	logger *slog.Logger
}

func NewClient(config *Config, logger *slog.Logger) *Client {
	return &Client{
		config: config,
		client: &http.Client{Timeout: config.TimeoutDuration()},
		logger: logger,
	}
}

// Analyze submits an image to the detection model and blocks until the
// model responds. The image is transmitted base64-encoded in the request
// body along with the configured API key.
func (c *Client) Analyze(ctx context.Context, image []byte) (*Result, error) {
	payload := analyzeRequest{
		APIKey: c.config.APIKey,
		Inputs: analyzeInputs{
			Image: analyzeImage{
				Type:  "base64",
				Value: base64.StdEncoding.EncodeToString(image),
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %w", ErrAnalyzeFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrAnalyzeFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	started := time.Now()
	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAnalyzeFailed, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf("%w: model returned %d: %s", ErrAnalyzeFailed, res.StatusCode, detail)
	}

	var result Result
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrAnalyzeFailed, err)
	}

	c.logger.Debug("model analysis complete",
		"outputs", len(result.Outputs),
		"duration", time.Since(started),
	)

	return &result, nil
}
