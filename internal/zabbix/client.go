// Package zabbix talks to the Zabbix JSON-RPC API.
package zabbix

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"codeberg.org/mutker/zbxreport/internal/errors"
	"codeberg.org/mutker/zbxreport/internal/logger"
)

const (
	endpoint       = "api_jsonrpc.php"
	contentType    = "application/json-rpc"
	defaultTimeout = 30 * time.Second
)

type Config struct {
	URL     string
	Timeout time.Duration
	// Insecure skips TLS certificate verification
	Insecure bool
	// LegacyAuth sends the session token in the request body, as servers
	// before 6.4 expect
	LegacyAuth bool
}

func (c Config) Validate() error {
	errFactory := errors.New()

	if c.URL == "" {
		return errFactory.WithData(ErrInvalidConfig, "url")
	}

	u, err := url.Parse(c.URL)
	if err != nil {
		return errFactory.Wrap(ErrInvalidConfig, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errFactory.WithData(ErrInvalidConfig, struct {
			Field  string
			Scheme string
		}{
			Field:  "url",
			Scheme: u.Scheme,
		})
	}

	return nil
}

// Client issues JSON-RPC calls. It holds no session; see Login.
type Client struct {
	endpoint   string
	http       *http.Client
	legacyAuth bool
	nextID     atomic.Uint64
}

type request struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
	ID      uint64 `json:"id"`
	Auth    string `json:"auth,omitempty"`
}

type response struct {
	Result json.RawMessage `json:"result"`
	Error  *APIError       `json:"error"`
	ID     uint64          `json:"id"`
}

func New(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.Insecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in for self-signed servers
	}

	return &Client{
		endpoint:   endpointURL(cfg.URL),
		http:       &http.Client{Timeout: timeout, Transport: transport},
		legacyAuth: cfg.LegacyAuth,
	}, nil
}

// endpointURL accepts both the frontend base URL and the full API URL.
func endpointURL(base string) string {
	if strings.HasSuffix(base, endpoint) {
		return base
	}

	return strings.TrimRight(base, "/") + "/" + endpoint
}

// call performs one JSON-RPC request and decodes its result into out.
func (c *Client) call(ctx context.Context, token, method string, params, out any) error {
	errFactory := errors.New()

	req := request{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      c.nextID.Add(1),
	}
	if c.legacyAuth {
		req.Auth = token
	}

	body, err := json.Marshal(req)
	if err != nil {
		return errFactory.Wrap(errors.ErrInternal, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return errFactory.Wrap(ErrRequestFailed, err).WithData(method)
	}
	httpReq.Header.Set("Content-Type", contentType)
	if token != "" && !c.legacyAuth {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	logger.Debug().Str("method", method).Uint64("id", req.ID).Msg("Calling API")

	res, err := c.http.Do(httpReq)
	if err != nil {
		return errFactory.Wrap(ErrRequestFailed, err).WithData(method)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return errFactory.WithData(ErrBadStatus, struct {
			Method string
			Status string
			Body   string
		}{
			Method: method,
			Status: res.Status,
			Body:   string(snippet),
		})
	}

	var rpcRes response
	if err := json.NewDecoder(res.Body).Decode(&rpcRes); err != nil {
		return errFactory.Wrap(ErrDecodeResponse, err).WithData(method)
	}

	if rpcRes.Error != nil {
		return errFactory.Wrap(ErrRemote, rpcRes.Error).WithData(method)
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(rpcRes.Result, out); err != nil {
		return errFactory.Wrap(ErrDecodeResponse, err).WithData(method)
	}

	return nil
}
