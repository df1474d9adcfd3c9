// Package client polls the local API of an Awair device.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"

	"github.com/samwho/awair-prometheus-exporter/internal/client/transport"
	"github.com/samwho/awair-prometheus-exporter/internal/config"
	"github.com/samwho/awair-prometheus-exporter/model"
)

// AirDataPath is the device endpoint serving the latest reading.
const AirDataPath = "/air-data/latest"

var (
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrDecode           = errors.New("decode air data")
)

// Client fetches readings from a single Awair device.
type Client struct {
	url        string
	httpClient *http.Client
	validate   *validator.Validate
}

// NewClient creates a client for the device configured in cfg.
func NewClient(cfg *config.ExporterConfig) *Client {
	return NewClientWithHTTP(cfg, NewHTTPClient(cfg))
}

// NewClientWithHTTP creates a client that sends requests through hc.
func NewClientWithHTTP(cfg *config.ExporterConfig, hc *http.Client) *Client {
	return &Client{
		url:        airDataURL(cfg.Target),
		httpClient: hc,
		validate:   validator.New(),
	}
}

// NewHTTPClient builds the http.Client used for polling. Outgoing requests
// are logged at debug level.
func NewHTTPClient(cfg *config.ExporterConfig) *http.Client {
	return &http.Client{
		Timeout: cfg.PollTimeout,
		Transport: &transport.LogRoundTripper{
			Base:   http.DefaultTransport,
			Logger: cfg.Logger,
		},
	}
}

// airDataURL resolves AirDataPath against base, so any path on base is replaced.
func airDataURL(base *url.URL) string {
	return base.ResolveReference(&url.URL{Path: AirDataPath}).String()
}

// URL returns the address polled by Latest.
func (clnt *Client) URL() string {
	return clnt.url
}

// Latest performs one GET against the device and decodes the reading.
// A transport error, a non-2xx status and a payload that is not a complete
// reading are all returned as errors.
func (clnt *Client) Latest(ctx context.Context) (*model.AirData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, clnt.url, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	resp, err := clnt.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return clnt.decode(body)
}

func (clnt *Client) decode(body []byte) (*model.AirData, error) {
	var data model.AirData
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if err := clnt.validate.Struct(&data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return &data, nil
}
