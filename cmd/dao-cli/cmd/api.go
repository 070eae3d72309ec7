package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// sweeps run every ready proposal to confirmation, so the timeout is generous
const apiTimeout = 5 * time.Minute

// apiError is the server's error body.
type apiError struct {
	Error    string `json:"error"`
	Code     int    `json:"code"`
	Expected string `json:"expected,omitempty"`
	Got      string `json:"got,omitempty"`
}

func newAPIClient(baseURL string) *resty.Client {
	return resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(apiTimeout).
		SetHeader("Accept", "application/json")
}

// callAPI sends body (nil for GET) to path on the configured server and decodes a 2xx response into out.
func callAPI(ctx context.Context, method, path string, body, out interface{}) error {
	req := newAPIClient(apiURL).R().
		SetContext(ctx).
		SetResult(out).
		SetError(&apiError{})
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("connect to API: %w", err)
	}
	if !resp.IsError() {
		return nil
	}

	e, _ := resp.Error().(*apiError)
	switch {
	case e == nil || e.Error == "":
		return fmt.Errorf("API %s: %s", resp.Status(), strings.TrimSpace(resp.String()))
	case e.Expected != "":
		return fmt.Errorf("API %s: %s (expected %s, got %s)", resp.Status(), e.Error, e.Expected, e.Got)
	default:
		return fmt.Errorf("API %s: %s", resp.Status(), e.Error)
	}
}
