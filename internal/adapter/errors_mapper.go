package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// notionAPIError is the error envelope Notion returns for non-2xx responses.
type notionAPIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// mapNotionError translates one Notion API response (or transport failure)
// into exactly one sentinel error. Auth and schema problems require the user
// to fix their configuration; network and rate-limit problems are transient;
// everything else falls through to ErrUnknown.
func mapNotionError(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNetwork, err)
	}
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	var apiErr notionAPIError
	_ = json.Unmarshal(resp.Body(), &apiErr)
	message := strings.TrimSpace(apiErr.Message)
	if message == "" {
		message = strings.TrimSpace(string(resp.Body()))
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode())
	}

	switch resp.StatusCode() {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrAuth, message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrSchema, message)
	case http.StatusBadRequest:
		if apiErr.Code == "validation_error" {
			return fmt.Errorf("%w: %s", ErrSchema, message)
		}
		return fmt.Errorf("%w: http 400: %s", ErrUnknown, message)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrRateLimited, message)
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: http %d: %s", ErrNetwork, resp.StatusCode(), message)
	default:
		return fmt.Errorf("%w: http %d: %s", ErrUnknown, resp.StatusCode(), message)
	}
}
