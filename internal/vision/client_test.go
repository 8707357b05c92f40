package vision

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := &Config{
		Endpoint: server.URL,
		APIKey:   "test-key",
	}

	if err := config.Finalize(nil); err != nil {
		t.Fatalf("finalize config: %v", err)
	}

	return NewClient(config, slog.New(slog.DiscardHandler))
}

func TestAnalyze(t *testing.T) {
	image := []byte("fake-image-bytes")

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read request: %v", err)
		}

		var req analyzeRequest
		if err := json.Unmarshal(body, &req); err != nil {
			t.Fatalf("decode request: %v", err)
		}

		if req.APIKey != "test-key" {
			t.Errorf("api key = %q; expected %q", req.APIKey, "test-key")
		}

		if req.Inputs.Image.Type != "base64" {
			t.Errorf("image type = %q; expected base64", req.Inputs.Image.Type)
		}

		decoded, err := base64.StdEncoding.DecodeString(req.Inputs.Image.Value)
		if err != nil {
			t.Fatalf("decode image: %v", err)
		}

		if string(decoded) != string(image) {
			t.Errorf("image payload mismatch")
		}

		json.NewEncoder(w).Encode(Result{
			Outputs: []Output{{
				Predictions: &PredictionGroup{
					Predictions: []RawDetection{{
						Width:      120,
						Height:     80,
						X:          640,
						Y:          360,
						Confidence: 0.92,
						ClassID:    3,
						ClassName:  "corrosion",
					}},
				},
			}},
		})
	})

	result, err := client.Analyze(context.Background(), image)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	if len(result.Outputs) != 1 {
		t.Fatalf("outputs = %d; expected 1", len(result.Outputs))
	}

	predictions := result.Outputs[0].Predictions
	if predictions == nil {
		t.Fatal("expected prediction group")
	}

	if len(predictions.Predictions) != 1 {
		t.Fatalf("predictions = %d; expected 1", len(predictions.Predictions))
	}

	detection := predictions.Predictions[0]
	if detection.ClassName != "corrosion" {
		t.Errorf("class = %q; expected corrosion", detection.ClassName)
	}

	if detection.Confidence != 0.92 {
		t.Errorf("confidence = %v; expected 0.92", detection.Confidence)
	}
}

func TestAnalyzeNullPredictions(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"outputs":[{"predictions":null},{}]}`))
	})

	result, err := client.Analyze(context.Background(), []byte("img"))
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	for i, output := range result.Outputs {
		if output.Predictions != nil {
			t.Errorf("output %d: expected nil predictions", i)
		}
	}
}

func TestAnalyzeModelError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model unavailable", http.StatusBadGateway)
	})

	_, err := client.Analyze(context.Background(), []byte("img"))
	if !errors.Is(err, ErrAnalyzeFailed) {
		t.Fatalf("expected ErrAnalyzeFailed; received %v", err)
	}
}

func TestConfigFinalize(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		invalid bool
	}{
		{name: "valid", config: Config{Endpoint: "http://localhost:9001"}},
		{name: "missing endpoint", config: Config{}, invalid: true},
		{name: "bad timeout", config: Config{Endpoint: "http://localhost:9001", Timeout: "soon"}, invalid: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Finalize(nil)
			if tc.invalid && err == nil {
				t.Error("expected validation error")
			}
			if !tc.invalid && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
