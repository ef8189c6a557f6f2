package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"lacque/pkg/model"
)

type ExclusionClient struct {
	httpClient *HttpClient
}

func (c *ExclusionClient) ForStaff(ctx context.Context, merchantID, staffID string) ([]model.StaffExclusion, error) {
	q := url.Values{}
	q.Set("staff_id", staffID)

	path := "/api/v1/merchants/" + url.PathEscape(merchantID) + "/exclusions?" + q.Encode()
	resp, err := c.httpClient.GET(ctx, path)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("exclusions fetch failed: %s", GetErrorMessage(resp))
	}

	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode exclusions wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var exclusions []model.StaffExclusion
	if err := json.Unmarshal(wrapper.Data, &exclusions); err != nil {
		return nil, fmt.Errorf("could not decode exclusions json:\n%+v\n%s", resp.ToString(), err)
	}

	return exclusions, nil
}
