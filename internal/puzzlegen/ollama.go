package puzzlegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vytor/wordpuzzle/internal/logger"
)

// Options are the sampling parameters sent with a generate request.
type Options struct {
	Temperature float64 `json:"temperature"`
	TopK        int     `json:"top_k"`
	TopP        float64 `json:"top_p"`
	NumPredict  int     `json:"num_predict"`
	Seed        int64   `json:"seed"`
}

// DefaultOptions returns the sampling parameters used for puzzles at the
// given temperature.
func DefaultOptions(temperature float64, seed int64) Options {
	return Options{
		Temperature: temperature,
		TopK:        50,
		TopP:        0.95,
		NumPredict:  500,
		Seed:        seed,
	}
}

// ClientInterface is a text completion backend.
type ClientInterface interface {
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
}

var _ ClientInterface = (*OllamaClient)(nil)

// OllamaClient talks to an Ollama server's /api/generate endpoint.
type OllamaClient struct {
	httpClient *http.Client
	baseURL    string
	model      string
}

// NewOllamaClient creates a new OllamaClient for model served at baseURL.
func NewOllamaClient(baseURL, model string, timeout time.Duration) *OllamaClient {
	return &OllamaClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		model:      model,
	}
}

type generateRequest struct {
	Model   string  `json:"model"`
	Prompt  string  `json:"prompt"`
	Stream  bool    `json:"stream"`
	Options Options `json:"options"`
}

type generateResponse struct {
	Response string `json:"response"`
}

func (c *OllamaClient) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	log := logger.FromContext(ctx).WithPrefix("ollama").WithField("model", c.model)
	url := c.baseURL + "/api/generate"

	body, err := json.Marshal(generateRequest{
		Model:   c.model,
		Prompt:  prompt,
		Stream:  false,
		Options: opts,
	})
	if err != nil {
		return "", err
	}

	log.Debug("requesting completion from: %s", url)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		log.Error("failed to create request: %v", err)
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("failed to call generate: %v", err)
		return "", err
	}
	defer resp.Body.Close()

	log.Debug("generate response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("generate request failed: status=%d, body=%s", resp.StatusCode, string(msg))
		return "", fmt.Errorf("generate status %d: %s", resp.StatusCode, string(msg))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Error("failed to decode generate response: %v", err)
		return "", err
	}

	log.Info("received %d bytes of completion", len(out.Response))
	return out.Response, nil
}
