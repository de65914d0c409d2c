package sap

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"stockscan/internal/config"
)

// Response is a completed ERP call. Payload is nil when the body was empty or
// not JSON; DecodeErr says which.
type Response struct {
	StatusCode int
	Payload    any
	DecodeErr  error
}

func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

type Client struct {
	httpClient *http.Client
	headers    map[string]string
}

// NewClient builds an ERP client. The http.Client carries no timeout of its
// own; callers bound a lookup through the request context.
func NewClient(cfg config.SAPConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		httpClient: httpClient,
		headers:    Headers(cfg),
	}
}

// Get issues a GET and decodes the JSON body. A non-nil error means no
// response was received at all.
func (c *Client) Get(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	payload, decodeErr := decodeJSON(body)
	return &Response{
		StatusCode: resp.StatusCode,
		Payload:    payload,
		DecodeErr:  decodeErr,
	}, nil
}

// decodeJSON keeps numbers as json.Number so quantities are not rounded
// through float64 before aggregation. The body must be exactly one JSON
// value; anything after it makes the whole body undecodable.
func decodeJSON(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding response body: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errors.New("decoding response body: unexpected data after JSON value")
	}
	return payload, nil
}
