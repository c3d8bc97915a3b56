package strategyapi

import (
	"aistrategy/internal/domain"
	"aistrategy/internal/logger"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to the strategy backend. Every endpoint answers with the
// same {success, data, error} envelope.
type Client struct {
	HttpClient *http.Client
	BaseUrl    string
}

func NewClient(baseUrl string, timeout time.Duration) Client {
	return Client{
		HttpClient: &http.Client{Timeout: timeout},
		BaseUrl:    strings.TrimRight(baseUrl, "/"),
	}
}

type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
}

type GenerateStrategyRequest struct {
	Preferences domain.InvestmentPreferences `json:"preferences"`
	ApiKey      string                       `json:"apiKey,omitempty"`
}

type StockHistoryRequest struct {
	Symbols     []string  `json:"symbols"`
	Allocations []float64 `json:"allocations"`
	Period      int       `json:"period"`
}

func (c Client) GetMarketIndices(ctx context.Context) ([]domain.MarketIndex, error) {
	out := []domain.MarketIndex{}
	if err := do(ctx, c, http.MethodGet, "/market-indices", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to get market indices: %w", err)
	}
	return out, nil
}

func (c Client) GenerateStrategy(ctx context.Context, req GenerateStrategyRequest) (*domain.AIStrategyResponse, error) {
	out := domain.AIStrategyResponse{}
	if err := do(ctx, c, http.MethodPost, "/generate-strategy", req, &out); err != nil {
		return nil, fmt.Errorf("failed to generate strategy: %w", err)
	}
	return &out, nil
}

func (c Client) GetStockHistory(ctx context.Context, req StockHistoryRequest) ([]domain.PerformanceSnapshot, error) {
	out := []domain.PerformanceSnapshot{}
	if err := do(ctx, c, http.MethodPost, "/stock-history", req, &out); err != nil {
		return nil, fmt.Errorf("failed to get stock history: %w", err)
	}
	return out, nil
}

func do[T any](ctx context.Context, c Client, method, path string, body interface{}, out *T) error {
	log := logger.FromContext(ctx)

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	url := c.BaseUrl + path
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	httpClient := c.HttpClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	start := time.Now()
	response, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("received status code %d and failed to read body: %w", response.StatusCode, err)
	}
	log.Debugw("strategy api call", "method", method, "url", url, "status", response.StatusCode, "elapsedMs", time.Since(start).Milliseconds())

	responseBody := envelope[T]{}
	if err := json.Unmarshal(responseBytes, &responseBody); err != nil {
		if response.StatusCode != http.StatusOK {
			return fmt.Errorf("failed with status code %d: %s", response.StatusCode, string(responseBytes))
		}
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if response.StatusCode != http.StatusOK || !responseBody.Success {
		msg := responseBody.Error
		if msg == "" {
			msg = "request was not successful"
		}
		return &ApiError{
			StatusCode: response.StatusCode,
			Message:    msg,
		}
	}

	*out = responseBody.Data
	return nil
}

type ApiError struct {
	StatusCode int
	Message    string
}

func (e *ApiError) Error() string {
	return fmt.Sprintf("strategy api returned %d: %s", e.StatusCode, e.Message)
}
