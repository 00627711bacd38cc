package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"airtable-shopify-sync/internal/adapters/shopify/dto"
	"airtable-shopify-sync/internal/config"
	"airtable-shopify-sync/internal/logging"
	"airtable-shopify-sync/internal/metrics"
)

// Shopify Admin REST allows 2 requests/second per store on the standard
// plan; the limiter paces every outbound call, GraphQL included.
const (
	defaultRequestsPerSecond = 2
	defaultRequestBurst      = 4
)

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// ErrEmptyData marks a GraphQL response that came back 200 without a data
// object. Enumeration callers treat it as an empty result rather than a
// hard failure.
var ErrEmptyData = errors.New("shopify graphql response missing data")

// Client issues GraphQL and REST calls against one store. It never
// retries; retry policy, if any, belongs to the caller.
type Client struct {
	config     config.ShopifyConfig
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     logging.LoggerService

	locationMu sync.Mutex
	locationID int64
}

func NewClient(cfg config.ShopifyConfig, httpClient *http.Client, logger logging.LoggerService) *Client {
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		config:     cfg,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(defaultRequestsPerSecond, defaultRequestBurst),
		logger:     logger,
	}
}

// APIError is a transport-level failure: a non-2xx response from the
// Shopify Admin API.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Body) == "" {
		return fmt.Sprintf("shopify request failed: %s", e.Status)
	}
	return fmt.Sprintf("shopify request failed: %s: %s", e.Status, e.Body)
}

func newAPIError(statusCode int, status string, body []byte) error {
	return &APIError{
		StatusCode: statusCode,
		Status:     status,
		Body:       strings.TrimSpace(string(body)),
	}
}

// VariantNotFoundError is returned when a SKU resolves to zero variants.
type VariantNotFoundError struct {
	SKU string
}

func (e *VariantNotFoundError) Error() string {
	sku := strings.TrimSpace(e.SKU)
	if sku == "" {
		return "shopify variant not found"
	}
	return fmt.Sprintf("Variant with SKU %s not found", sku)
}

// UserErrorsError aggregates the userErrors list a mutation returned. The
// call succeeded transport-wise; the remote rejected it at the
// application level.
type UserErrorsError struct {
	Action string
	Errors []UserErrorDetail
}

type UserErrorDetail struct {
	Field   string
	Message string
}

func (e *UserErrorsError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		field := strings.TrimSpace(err.Field)
		message := strings.TrimSpace(err.Message)
		if field == "" {
			parts = append(parts, message)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", field, message))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("shopify %s failed with user errors", e.Action)
	}
	return fmt.Sprintf("shopify %s failed: %s", e.Action, strings.Join(parts, "; "))
}

func userErrorsToError(action string, errs []dto.ShopifyUserError) error {
	if len(errs) == 0 {
		return nil
	}
	details := make([]UserErrorDetail, 0, len(errs))
	for _, e := range errs {
		message := strings.TrimSpace(e.Message)
		if message == "" {
			continue
		}
		field := ""
		if len(e.Field) > 0 {
			field = strings.Join(e.Field, ".")
		}
		details = append(details, UserErrorDetail{Field: field, Message: message})
	}
	if len(details) == 0 {
		details = []UserErrorDetail{{Message: "user errors returned"}}
	}
	return &UserErrorsError{Action: action, Errors: details}
}

func (c *Client) baseURL() (string, error) {
	domain := strings.TrimSpace(c.config.ShopDomain)
	if domain == "" {
		return "", errors.New("shopify shop domain is empty")
	}
	if !strings.HasPrefix(domain, "http://") && !strings.HasPrefix(domain, "https://") {
		domain = "https://" + domain
	}
	domain = strings.TrimRight(domain, "/")
	if strings.TrimSpace(c.config.APIVersion) == "" {
		return "", errors.New("shopify api version is empty")
	}
	return domain + "/admin/api/" + c.config.APIVersion, nil
}

func (c *Client) apiRequest(ctx context.Context, method string, endpoint string, body io.Reader) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.config.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(resp.StatusCode, resp.Status, respBody)
	}

	return respBody, nil
}

// graphqlRequest posts one GraphQL document. Top-level errors fail the
// call; userErrors embedded in mutation payloads are left to the caller.
func (c *Client) graphqlRequest(ctx context.Context, query string, variables map[string]any, out any) (err error) {
	defer func() { metrics.RecordShopifyRequest("graphql", err) }()

	base, err := c.baseURL()
	if err != nil {
		return err
	}
	endpoint := base + "/graphql.json"

	payload := graphQLRequest{
		Query:     strings.TrimSpace(query),
		Variables: variables,
	}
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	raw, err := c.apiRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return err
	}

	var resp dto.GraphQLResponse[json.RawMessage]
	if err = json.Unmarshal(raw, &resp); err != nil {
		return err
	}
	if len(resp.Errors) > 0 {
		err = fmt.Errorf("shopify graphql errors: %s", formatGraphQLErrors(resp.Errors))
		return err
	}
	if out == nil {
		return nil
	}
	if len(resp.Data) == 0 || string(resp.Data) == "null" {
		err = ErrEmptyData
		return err
	}
	return json.Unmarshal(resp.Data, out)
}

// restGet fetches a REST resource, e.g. "variants/123.json".
func (c *Client) restGet(ctx context.Context, path string, out any) (err error) {
	defer func() { metrics.RecordShopifyRequest("rest", err) }()

	base, err := c.baseURL()
	if err != nil {
		return err
	}
	raw, err := c.apiRequest(ctx, http.MethodGet, base+"/"+strings.TrimLeft(path, "/"), nil)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}

// restWrite sends a REST mutation (PUT or POST) with a JSON payload.
func (c *Client) restWrite(ctx context.Context, method string, path string, payload any, out any) (err error) {
	defer func() { metrics.RecordShopifyRequest("rest", err) }()

	base, err := c.baseURL()
	if err != nil {
		return err
	}
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	raw, err := c.apiRequest(ctx, method, base+"/"+strings.TrimLeft(path, "/"), bytes.NewReader(bodyBytes))
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}

func formatGraphQLErrors(errs []dto.GraphQLError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		msg := strings.TrimSpace(e.Message)
		if msg == "" {
			continue
		}
		if len(e.Path) > 0 {
			msg = fmt.Sprintf("%s (path: %v)", msg, e.Path)
		}
		parts = append(parts, msg)
	}
	if len(parts) == 0 {
		return "unknown graphql error"
	}
	return strings.Join(parts, "; ")
}

func buildSearchQuery(field, value string) string {
	value = strings.TrimSpace(value)
	if strings.ContainsAny(value, " \"") {
		value = strings.ReplaceAll(value, `"`, `\"`)
		value = fmt.Sprintf(`"%s"`, value)
	}
	return fmt.Sprintf("%s:%s", field, value)
}

func formatMoneyAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}

func (c *Client) logWarning(message string) {
	if c.logger == nil || strings.TrimSpace(message) == "" {
		return
	}
	c.logger.LogWarning(message)
}

func (c *Client) logSuccess(message string) {
	if c.logger == nil || strings.TrimSpace(message) == "" {
		return
	}
	c.logger.LogSuccess(message)
}
