package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// AnswerClient looks up the ground-truth answer for a question. The question
// catalog owns correctness; session records never embed it.
type AnswerClient interface {
	CorrectAnswer(ctx context.Context, questionID string) (string, error)
}

// HTTPAnswerClient calls the question service over HTTP.
type HTTPAnswerClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPAnswerClient(baseURL string) *HTTPAnswerClient {
	return &HTTPAnswerClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type correctAnswerResponse struct {
	CorrectAnswerID string `json:"correctAnswerId"`
}

func (c *HTTPAnswerClient) CorrectAnswer(ctx context.Context, questionID string) (string, error) {
	url := fmt.Sprintf("%s/answers/%s", c.baseURL, questionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("answer lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("answer lookup returned status %d", resp.StatusCode)
	}

	var body correctAnswerResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("answer lookup returned invalid body: %w", err)
	}
	if body.CorrectAnswerID == "" {
		return "", fmt.Errorf("answer lookup returned no answer for question %s", questionID)
	}
	return body.CorrectAnswerID, nil
}
