package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/spec-kit/servicedesk-proxy/internal/config"
	"github.com/spec-kit/servicedesk-proxy/internal/domain"
	"github.com/spec-kit/servicedesk-proxy/internal/observability"
	apperrors "github.com/spec-kit/servicedesk-proxy/pkg/util"
)

const (
	connectBasePath = "/connect/v1"
	tokenPath       = "/oauth/token"
	accountHeader   = "X-Account-Id"

	serviceRecordsPath = "/sr"
	agentsPath         = "/admins"
	endUsersPath       = "/users"
)

// Client issues authenticated GET requests against the Connect API. Every
// call obtains a token from the shared TokenSource first.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     *TokenSource
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewClient builds the Connect client plus its token cache from config.
func NewClient(cfg config.UpstreamConfig, logger *zap.Logger, metrics *observability.Metrics) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	httpClient := &http.Client{Timeout: cfg.Timeout()}
	acquirer := &authClient{
		httpClient:   httpClient,
		baseURL:      cfg.BaseURL,
		accountID:    cfg.AccountID,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    cfg.BaseURL,
		tokens:     NewTokenSource(acquirer, logger, metrics),
		logger:     logger,
		metrics:    metrics,
	}
}

// TokenCached reports whether a valid bearer token is currently held.
func (c *Client) TokenCached() bool {
	return c.tokens.Cached()
}

// Call fetches {base}/connect/v1{resourcePath} with a bearer token and
// returns the body verbatim. Non-2xx statuses and transport failures surface
// as upstream failures carrying the status and body when available.
func (c *Client) Call(ctx context.Context, resourcePath string) (json.RawMessage, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+connectBasePath+resourcePath, nil)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("upstream unreachable", zap.String("path", resourcePath), zap.Error(err))
		return nil, apperrors.NewUpstreamFailure("upstream unreachable", nil, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewUpstreamFailure("reading upstream response failed", nil, err)
	}
	c.metrics.RecordUpstreamCall(resourcePath, resp.StatusCode)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		upErr := &Error{StatusCode: resp.StatusCode, Body: body}
		c.logger.Warn("upstream call failed",
			zap.String("path", resourcePath),
			zap.Int("status", resp.StatusCode))
		return nil, apperrors.NewUpstreamFailure(upErr.Error(), upErr.Details(), upErr)
	}
	return json.RawMessage(body), nil
}

// ServiceRecords fetches one bounded page of tickets.
func (c *Client) ServiceRecords(ctx context.Context, limit, offset int) ([]domain.ServiceRecord, error) {
	raw, err := c.RawServiceRecords(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	var records []domain.ServiceRecord
	if err := DecodeList(raw, &records); err != nil {
		return nil, apperrors.NewUpstreamFailure("decoding service records failed", nil, err)
	}
	return records, nil
}

// RawServiceRecords fetches the same page without reshaping it.
func (c *Client) RawServiceRecords(ctx context.Context, limit, offset int) (json.RawMessage, error) {
	return c.Call(ctx, fmt.Sprintf("%s?limit=%d&offset=%d", serviceRecordsPath, limit, offset))
}

// Agents fetches the agent listing as an id to name directory.
func (c *Client) Agents(ctx context.Context) (domain.Directory, error) {
	return c.directory(ctx, agentsPath)
}

// EndUsers fetches the end-user listing as an id to name directory.
func (c *Client) EndUsers(ctx context.Context) (domain.Directory, error) {
	return c.directory(ctx, endUsersPath)
}

// ActionItems fetches the action items of one service record, returning the
// raw body and the item count.
func (c *Client) ActionItems(ctx context.Context, id string) (json.RawMessage, int, error) {
	raw, err := c.Call(ctx, fmt.Sprintf("%s/%s/action-items", serviceRecordsPath, url.PathEscape(id)))
	if err != nil {
		return nil, 0, err
	}
	var items []json.RawMessage
	if err := DecodeList(raw, &items); err != nil {
		return nil, 0, apperrors.NewUpstreamFailure("decoding action items failed", nil, err)
	}
	return raw, len(items), nil
}

func (c *Client) directory(ctx context.Context, path string) (domain.Directory, error) {
	raw, err := c.Call(ctx, path)
	if err != nil {
		return nil, err
	}
	var entries []domain.DirectoryEntry
	if err := DecodeList(raw, &entries); err != nil {
		return nil, apperrors.NewUpstreamFailure("decoding directory listing failed", nil, err)
	}
	return domain.BuildDirectory(entries), nil
}

// DecodeList unmarshals an upstream list body, accepting both a bare JSON
// array and the {"data":[...]} envelope some endpoints use.
func DecodeList(raw json.RawMessage, out any) error {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, out)
	}
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return err
	}
	if envelope.Data == nil {
		return errors.New("upstream body is neither a list nor a data envelope")
	}
	return json.Unmarshal(envelope.Data, out)
}

// authClient exchanges client credentials for a bearer token.
type authClient struct {
	httpClient   *http.Client
	baseURL      string
	accountID    string
	clientID     string
	clientSecret string
}

type tokenRequest struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
}

type tokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
}

// Acquire posts credentials to the authorization endpoint and returns the
// token plus its reported lifetime in seconds.
func (a *authClient) Acquire(ctx context.Context) (string, int, error) {
	payload, err := json.Marshal(tokenRequest{ClientID: a.clientID, ClientSecret: a.clientSecret})
	if err != nil {
		return "", 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+connectBasePath+tokenPath, bytes.NewReader(payload))
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(accountHeader, a.accountID)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, err
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", 0, &Error{StatusCode: resp.StatusCode, Body: body}
	}

	var parsed tokenResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", 0, fmt.Errorf("decoding token response: %w", err)
	}
	if parsed.Token == "" {
		return "", 0, errors.New("token response missing token")
	}
	return parsed.Token, parsed.ExpiresIn, nil
}
