package graphql

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/tosteiner/thoth/internal/config"
)

const defaultTimeout = 30 * time.Second

// HTTPTransport is a Transport that POSTs request envelopes to a single
// GraphQL endpoint over HTTP.
type HTTPTransport struct {
	httpClient *http.Client
	graphqlURL string
	headers    http.Header
}

// Compile-time interface check.
var _ Transport = (*HTTPTransport)(nil)

// NewHTTPTransport constructs an HTTPTransport from the provided
// GraphQLConfig. It returns an error if cfg.URL is empty or the credentials
// policy is unknown. When cfg.Timeout is zero or negative, a default
// timeout of 30 seconds is used.
//
// Under the "include" credentials policy (the default) the transport keeps
// a cookie jar and authenticates with OAuth2 client credentials when
// cfg.OAuth.TokenURL is set, or with cfg.Token as a bearer token otherwise.
// Under "omit" no credentials of any kind are sent.
func NewHTTPTransport(cfg config.GraphQLConfig) (*HTTPTransport, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("graphql: URL is required")
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	if cfg.Timeout <= 0 {
		timeout = defaultTimeout
	}

	headers := make(http.Header, len(cfg.Headers))
	for k, v := range cfg.Headers {
		headers.Set(k, v)
	}

	var client *http.Client
	switch cfg.Credentials {
	case config.CredentialsOmit:
		client = &http.Client{Timeout: timeout}
	case config.CredentialsInclude, "":
		var err error
		client, err = credentialedClient(cfg, timeout)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("graphql: unknown credentials policy %q", cfg.Credentials)
	}

	return &HTTPTransport{
		httpClient: client,
		graphqlURL: normalizeURL(cfg.URL),
		headers:    headers,
	}, nil
}

// credentialedClient builds the HTTP client used under the "include"
// credentials policy.
func credentialedClient(cfg config.GraphQLConfig, timeout time.Duration) (*http.Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("graphql: create cookie jar: %w", err)
	}

	// Token endpoint calls share the request timeout.
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{Timeout: timeout})

	var client *http.Client
	switch {
	case cfg.OAuth.TokenURL != "":
		cc := clientcredentials.Config{
			ClientID:     cfg.OAuth.ClientID,
			ClientSecret: cfg.OAuth.ClientSecret,
			TokenURL:     cfg.OAuth.TokenURL,
			Scopes:       cfg.OAuth.Scopes,
		}
		client = cc.Client(ctx)
	case cfg.Token != "":
		client = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: cfg.Token,
			TokenType:   "Bearer",
		}))
	default:
		client = &http.Client{}
	}

	client.Timeout = timeout
	client.Jar = jar
	return client, nil
}

// normalizeURL trims any trailing slash from rawURL and appends /graphql if
// the path does not already end with that suffix.
func normalizeURL(rawURL string) string {
	u := strings.TrimRight(rawURL, "/")
	if !strings.HasSuffix(u, "/graphql") {
		u += "/graphql"
	}
	return u
}

// URL returns the normalized endpoint address.
func (t *HTTPTransport) URL() string { return t.graphqlURL }

// RoundTrip POSTs body to the endpoint and returns the response body.
//
// RoundTrip returns a *TransportError if:
//   - the HTTP request cannot be created or sent (including timeouts)
//   - the server responds with a non-2xx status code
//   - the response body cannot be read
func (t *HTTPTransport) RoundTrip(ctx context.Context, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.graphqlURL, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("create request: %w", err)}
	}
	for k, vs := range t.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &TransportError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(excerpt)),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("read response: %w", err)}
	}
	return data, nil
}
