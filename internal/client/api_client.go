package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/Sanchit-Raut/KolabIT-sub001/internal/apperr"
	"github.com/Sanchit-Raut/KolabIT-sub001/internal/model"
)

// APIClient is the HTTP client the sync layer polls through. Reads retry
// transient failures with bounded exponential backoff; sends never retry
// automatically because the caller owns the draft-restore path and must see
// the failure.
type APIClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewAPIClient creates a client authenticated as the bearer of token.
func NewAPIClient(baseURL, token string, logger *zap.Logger) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Notifications fetches one page of the caller's notification feed.
func (c *APIClient) Notifications(ctx context.Context, page, limit int) (model.NotificationListResponse, error) {
	var resp model.NotificationListResponse
	url := fmt.Sprintf("%s/api/v1/notifications?page=%d&limit=%d", c.baseURL, page, limit)
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return model.NotificationListResponse{}, err
	}
	return resp, nil
}

// UnreadCount fetches the caller's unread notification count.
func (c *APIClient) UnreadCount(ctx context.Context) (int, error) {
	var resp struct {
		Count int `json:"count"`
	}
	url := fmt.Sprintf("%s/api/v1/notifications/count", c.baseURL)
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// History fetches the ordered conversation with another user.
func (c *APIClient) History(ctx context.Context, otherUserID int64) ([]model.Message, error) {
	var resp struct {
		Messages []model.Message `json:"messages"`
	}
	url := fmt.Sprintf("%s/api/v1/messages/%d", c.baseURL, otherUserID)
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

// Conversations fetches the caller's derived conversation list.
func (c *APIClient) Conversations(ctx context.Context) ([]model.Conversation, error) {
	var resp struct {
		Conversations []model.Conversation `json:"conversations"`
	}
	url := fmt.Sprintf("%s/api/v1/conversations", c.baseURL)
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return nil, err
	}
	return resp.Conversations, nil
}

// Send posts a new message to another user. No automatic retry.
func (c *APIClient) Send(ctx context.Context, otherUserID int64, content string) (model.Message, error) {
	body, err := json.Marshal(model.MessageCreate{Content: content})
	if err != nil {
		return model.Message{}, err
	}

	url := fmt.Sprintf("%s/api/v1/messages/%d", c.baseURL, otherUserID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return model.Message{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.Message{}, fmt.Errorf("send message: %w", apperr.ErrTransientStore)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return model.Message{}, c.statusError(resp)
	}

	var m model.Message
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return model.Message{}, fmt.Errorf("decode message: %w", err)
	}
	return m, nil
}

// MarkRead marks one notification read and returns the navigation target.
func (c *APIClient) MarkRead(ctx context.Context, notificationID int64) (model.Notification, model.NavigationTarget, error) {
	url := fmt.Sprintf("%s/api/v1/notifications/%d/read", c.baseURL, notificationID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, nil)
	if err != nil {
		return model.Notification{}, model.NavigationTarget{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.Notification{}, model.NavigationTarget{}, fmt.Errorf("mark read: %w", apperr.ErrTransientStore)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.Notification{}, model.NavigationTarget{}, c.statusError(resp)
	}

	var decoded struct {
		Notification model.Notification     `json:"notification"`
		Navigation   model.NavigationTarget `json:"navigation"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return model.Notification{}, model.NavigationTarget{}, fmt.Errorf("decode mark-read response: %w", err)
	}
	return decoded.Notification, decoded.Navigation, nil
}

// getJSON performs a GET with retry on transient failures and decodes the
// body into out.
func (c *APIClient) getJSON(ctx context.Context, url string, out interface{}) error {
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Authorization", "Bearer "+c.token)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusInternalServerError {
			io.Copy(io.Discard, resp.Body)
			return fmt.Errorf("server returned status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(c.statusError(resp))
		}

		return json.NewDecoder(resp.Body).Decode(out)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(newRetryPolicy(), 3), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		c.logger.Debug("API fetch failed", zap.String("url", url), zap.Error(err))
		return err
	}
	return nil
}

func (c *APIClient) statusError(resp *http.Response) error {
	bodyBytes, _ := io.ReadAll(resp.Body)
	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", string(bodyBytes), apperr.ErrNotFound)
	case http.StatusBadRequest:
		return fmt.Errorf("%s: %w", string(bodyBytes), apperr.ErrInvalidArgument)
	case http.StatusUnauthorized:
		return fmt.Errorf("%s: %w", string(bodyBytes), apperr.ErrUnauthorized)
	default:
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(bodyBytes))
	}
}

func newRetryPolicy() backoff.BackOff {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 100 * time.Millisecond
	policy.MaxInterval = 2 * time.Second
	return policy
}
