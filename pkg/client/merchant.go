package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"lacque/pkg/model"
)

type MerchantClient struct {
	httpClient *HttpClient
}

func (c *MerchantClient) Config(ctx context.Context, merchantID string) (*model.MerchantConfig, error) {
	path := "/api/v1/merchants/" + url.PathEscape(merchantID) + "/config"
	resp, err := c.httpClient.GET(ctx, path)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("merchant config fetch failed: %s", GetErrorMessage(resp))
	}

	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode merchant config wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var cfg model.MerchantConfig
	if err := json.Unmarshal(wrapper.Data, &cfg); err != nil {
		return nil, fmt.Errorf("could not decode merchant config json:\n%+v\n%s", resp.ToString(), err)
	}

	return &cfg, nil
}

func (c *MerchantClient) ServiceCatalog(ctx context.Context, merchantID string) ([]model.Service, error) {
	path := "/api/v1/merchants/" + url.PathEscape(merchantID) + "/services"
	resp, err := c.httpClient.GET(ctx, path)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("service catalog fetch failed: %s", GetErrorMessage(resp))
	}

	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode service catalog wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var services []model.Service
	if err := json.Unmarshal(wrapper.Data, &services); err != nil {
		return nil, fmt.Errorf("could not decode service catalog json:\n%+v\n%s", resp.ToString(), err)
	}

	return services, nil
}
