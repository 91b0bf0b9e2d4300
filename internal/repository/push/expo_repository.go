package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type ExpoConfig struct {
	PushURL     string
	AccessToken string
}

// ExpoRepository talks to the Expo push API. Delivery is best effort:
// SendToMany reports per-token outcomes and never aborts the batch.
type ExpoRepository struct {
	expoConfig ExpoConfig
	client     *http.Client
}

func NewExpoRepository(cfg ExpoConfig) *ExpoRepository {
	return &ExpoRepository{
		expoConfig: cfg,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

type pushMessage struct {
	To        string         `json:"to"`
	Sound     string         `json:"sound"`
	Title     string         `json:"title"`
	Body      string         `json:"body"`
	Data      map[string]any `json:"data,omitempty"`
	Priority  string         `json:"priority,omitempty"`
	ChannelID string         `json:"channelId,omitempty"`
}

// SendResult is the outcome of a single token delivery attempt.
type SendResult struct {
	Token string
	Err   error
}

func (r *ExpoRepository) Send(ctx context.Context, token, title, body string, data map[string]any, channelID string) error {
	message := pushMessage{
		To:        token,
		Sound:     "default",
		Title:     title,
		Body:      body,
		Data:      data,
		Priority:  "high",
		ChannelID: channelID,
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.expoConfig.PushURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}

	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	req.Header.Add("Accept-Encoding", "gzip, deflate")
	if r.expoConfig.AccessToken != "" {
		req.Header.Add("Authorization", "Bearer "+r.expoConfig.AccessToken)
	}

	res, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 200 && res.StatusCode <= 299 {
		return nil
	}

	bodyBytes, _ := io.ReadAll(res.Body)
	return fmt.Errorf("push provider returned %v: %s", res.StatusCode, string(bodyBytes))
}

// SendToMany delivers to each token individually. A failing token does
// not stop the others; callers inspect the results for partial failure.
func (r *ExpoRepository) SendToMany(ctx context.Context, tokens []string, title, body string, data map[string]any, channelID string) []SendResult {
	results := make([]SendResult, 0, len(tokens))
	for _, token := range tokens {
		err := r.Send(ctx, token, title, body, data, channelID)
		results = append(results, SendResult{Token: token, Err: err})
	}

	return results
}
