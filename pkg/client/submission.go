package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"lacque/pkg/model"
)

type SubmissionClient struct {
	httpClient *HttpClient
}

// Submit sends a booking request to the backend. A 409 or 422 response is
// returned as a *model.SubmissionRejection so callers can tell a business
// rejection apart from a transport failure.
func (c *SubmissionClient) Submit(ctx context.Context, req model.BookingRequest) (*model.SubmissionResult, error) {
	resp, err := c.httpClient.POST(ctx, "/api/v1/bookings", req)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		var wrapper struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
			return nil, fmt.Errorf("could not decode submission wrapper:\n%+v\n%s", resp.ToString(), err)
		}

		var result model.SubmissionResult
		if err := json.Unmarshal(wrapper.Data, &result); err != nil {
			return nil, fmt.Errorf("could not decode submission json:\n%+v\n%s", resp.ToString(), err)
		}
		return &result, nil

	case http.StatusConflict:
		return nil, &model.SubmissionRejection{
			Reason:  model.RejectionSlotTaken,
			Message: GetErrorMessage(resp),
		}

	case http.StatusUnprocessableEntity:
		var rejection struct {
			Reason  string `json:"reason"`
			Message string `json:"message"`
		}
		reason := model.RejectionValidation
		if err := resp.DecodeJSON(&rejection); err == nil && rejection.Reason != "" {
			reason = model.RejectionReason(rejection.Reason)
		}
		return nil, &model.SubmissionRejection{
			Reason:  reason,
			Message: GetErrorMessage(resp),
		}

	default:
		return nil, fmt.Errorf("booking submission failed: %s", GetErrorMessage(resp))
	}
}
