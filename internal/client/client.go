package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"cookbook-service/internal/pkg/common"

	"github.com/go-resty/resty/v2"
)

// ErrNotFound 食譜不存在（伺服器回傳 400 且無內容）
var ErrNotFound = errors.New("recipe not found")

// APIError 伺服器回傳的錯誤
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%d %s)", e.Message, e.Status, e.Code)
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.Status)
}

// Client 食譜庫 HTTP 客戶端
type Client struct {
	client *resty.Client
}

// New 創建客戶端
func New(baseURL string, timeout time.Duration) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{client: client}
}

// ParseName 呼叫 POST /parse
func (c *Client) ParseName(ctx context.Context, input string) (string, error) {
	var result common.ParseResponse
	var errResp common.ErrorResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(common.ParseRequest{Input: input}).
		SetResult(&result).
		SetError(&errResp).
		Post("/parse")
	if err != nil {
		return "", fmt.Errorf("parse request failed: %w", err)
	}
	if resp.IsError() {
		return "", toAPIError(resp, errResp)
	}

	return result.Msg, nil
}

// CreateEntry 呼叫 POST /entry
func (c *Client) CreateEntry(ctx context.Context, entry common.EntryRequest) error {
	var errResp common.ErrorResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(entry).
		SetError(&errResp).
		Post("/entry")
	if err != nil {
		return fmt.Errorf("entry request failed: %w", err)
	}
	if resp.IsError() {
		return toAPIError(resp, errResp)
	}

	return nil
}

// Summary 呼叫 GET /summary
func (c *Client) Summary(ctx context.Context, name string) (*common.SummaryResponse, error) {
	var result common.SummaryResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("name", name).
		SetResult(&result).
		Get("/summary")
	if err != nil {
		return nil, fmt.Errorf("summary request failed: %w", err)
	}
	if resp.StatusCode() == http.StatusBadRequest && len(resp.Body()) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if resp.IsError() {
		return nil, &APIError{Status: resp.StatusCode(), Message: resp.Status()}
	}

	return &result, nil
}

func toAPIError(resp *resty.Response, errResp common.ErrorResponse) *APIError {
	apiErr := &APIError{
		Status:  resp.StatusCode(),
		Code:    errResp.Code,
		Message: errResp.Message,
	}
	if apiErr.Message == "" {
		apiErr.Message = resp.Status()
	}
	return apiErr
}
