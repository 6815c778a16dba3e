package client

// http_client.go = client-side access to the caseflow API, scoped to
// the authenticated owner by the bearer token.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"caseflow/internal/models"
)

type APIClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// constructor for API client
func NewAPIClient(apiURL string) *APIClient {
	return &APIClient{
		baseURL: apiURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// set token for API client
func (c *APIClient) SetToken(token string) {
	c.token = token
}

type notificationListResponse struct {
	Notifications []models.Notification `json:"notifications"`
}

type deadlineListResponse struct {
	Deadlines []models.Deadline `json:"deadlines"`
}

type deadlineResponse struct {
	Deadline *models.Deadline `json:"deadline"`
}

type scanResponse struct {
	NotificationsCreated []string `json:"notifications_created"`
}

// ListNotifications fetches the owner's notifications, newest first.
func (c *APIClient) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/api/notifications", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to list notifications: %s", resp.Status)
	}

	var result notificationListResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return result.Notifications, nil
}

// MarkRead marks one notification as read.
func (c *APIClient) MarkRead(ctx context.Context, notificationID string) error {
	req, err := http.NewRequestWithContext(ctx, "PUT",
		fmt.Sprintf("%s/api/notifications/%s/read", c.baseURL, notificationID), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("failed to mark notification as read: %s", resp.Status)
	}
	return nil
}

// MarkAllRead marks every unread notification as read.
func (c *APIClient) MarkAllRead(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "PUT", c.baseURL+"/api/notifications/read-all", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("failed to mark notifications as read: %s", resp.Status)
	}
	return nil
}

// Delete removes one notification.
func (c *APIClient) Delete(ctx context.Context, notificationID string) error {
	req, err := http.NewRequestWithContext(ctx, "DELETE",
		fmt.Sprintf("%s/api/notifications/%s", c.baseURL, notificationID), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("failed to delete notification: %s", resp.Status)
	}
	return nil
}

// ListDeadlines fetches the owner's deadlines.
func (c *APIClient) ListDeadlines(ctx context.Context) ([]models.Deadline, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/api/deadlines", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to list deadlines: %s", resp.Status)
	}

	var result deadlineListResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return result.Deadlines, nil
}

// Reschedule moves a deadline to a new due date.
func (c *APIClient) Reschedule(ctx context.Context, deadlineID string, dueDate time.Time) (*models.Deadline, error) {
	body := map[string]string{"due_date": dueDate.Format("2006-01-02")}
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "PATCH",
		fmt.Sprintf("%s/api/deadlines/%s/due-date", c.baseURL, deadlineID), bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to reschedule deadline: %s", resp.Status)
	}

	var result deadlineResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return result.Deadline, nil
}

// CheckDeadlineNotifications invokes the remote scanner function and
// returns the deadline IDs a notification was created for.
func (c *APIClient) CheckDeadlineNotifications(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, "POST",
		c.baseURL+"/api/functions/check-deadline-notifications", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scan failed: %s", resp.Status)
	}

	var result scanResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return result.NotificationsCreated, nil
}
