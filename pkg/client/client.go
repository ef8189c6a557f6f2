package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"lacque/pkg/logger"
)

// Client bundles the HTTP clients for the external booking backend.
// All persistent data (merchant configuration, exclusions, the booking
// ledger, booking submission) lives behind that backend.
type Client struct {
	httpClient *HttpClient

	Merchant   *MerchantClient
	Exclusions *ExclusionClient
	Ledger     *LedgerClient
	Submission *SubmissionClient
}

func New(log *logger.Logger, baseURL string, timeout time.Duration) *Client {
	httpClient := NewHttpClient(baseURL, timeout)

	log.Info("Booking backend client initialized",
		"base_url", baseURL,
		"timeout", timeout,
	)

	return &Client{
		httpClient: httpClient,
		Merchant:   &MerchantClient{httpClient: httpClient},
		Exclusions: &ExclusionClient{httpClient: httpClient},
		Ledger:     &LedgerClient{httpClient: httpClient},
		Submission: &SubmissionClient{httpClient: httpClient},
	}
}

func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.httpClient.GET(ctx, "/health")
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("backend unhealthy: status %d", resp.StatusCode)
	}
	return nil
}
