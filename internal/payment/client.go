// Package payment talks to the external payment provider. The provider
// only creates payment intents; settlement happens out of band and is
// never reflected back into the ledger.
package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// ErrNotConfigured is returned when no provider credentials are present
var ErrNotConfigured = errors.New("payment provider is not configured")

// Intent is the provider's response to intent creation
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}

// Provider creates payment intents at the external service
type Provider interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (*Intent, error)
}

// Config holds provider settings, loaded from PAYMENT_* env vars
type Config struct {
	APIKey  string        `envconfig:"API_KEY"`
	BaseURL string        `envconfig:"BASE_URL" default:"https://api.stripe.com"`
	Timeout time.Duration `envconfig:"TIMEOUT" default:"10s"`
}

// LoadConfig reads provider settings from the environment
func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("PAYMENT", &cfg)
	return cfg, err
}

// NewProvider returns an HTTP-backed provider, or an unconfigured stub
// when no API key is set.
func NewProvider(cfg Config) Provider {
	if cfg.APIKey == "" {
		return unconfigured{}
	}
	return &httpProvider{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

type httpProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func (p *httpProvider) CreateIntent(ctx context.Context, amount int64, currency string) (*Intent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amount, 10))
	form.Set("currency", currency)
	form.Set("automatic_payment_methods[enabled]", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/v1/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payment provider request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("payment provider returned status %d", resp.StatusCode)
	}

	var intent Intent
	if err := json.Unmarshal(body, &intent); err != nil {
		return nil, fmt.Errorf("failed to decode provider response: %w", err)
	}
	return &intent, nil
}

type unconfigured struct{}

func (unconfigured) CreateIntent(_ context.Context, _ int64, _ string) (*Intent, error) {
	return nil, ErrNotConfigured
}
