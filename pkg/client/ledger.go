package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"lacque/pkg/model"
)

type LedgerClient struct {
	httpClient *HttpClient
}

func (c *LedgerClient) Bookings(ctx context.Context, merchantID, staffID, date string) ([]model.Booking, error) {
	q := url.Values{}
	q.Set("staff_id", staffID)
	q.Set("date", date)

	path := "/api/v1/merchants/" + url.PathEscape(merchantID) + "/bookings?" + q.Encode()
	resp, err := c.httpClient.GET(ctx, path)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("booking ledger fetch failed: %s", GetErrorMessage(resp))
	}

	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode ledger wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var bookings []model.Booking
	if err := json.Unmarshal(wrapper.Data, &bookings); err != nil {
		return nil, fmt.Errorf("could not decode ledger json:\n%+v\n%s", resp.ToString(), err)
	}

	return bookings, nil
}
