// Package provider is the outbound adapter for the school intra: it
// exchanges credentials for a bearer token at the signin endpoint and runs
// the fixed GraphQL account query against the GraphQL engine.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"xpdash/internal/core"
)

var (
	// ErrUnauthorized covers every signin failure. The provider does not
	// reveal whether credentials were wrong or the transport failed, so
	// neither do we.
	ErrUnauthorized = errors.New("username or password rejected")

	// ErrFetch covers every failure of the account query after a
	// successful signin, including malformed response bodies.
	ErrFetch = errors.New("account fetch failed")
)

// accountQuery embeds the configured event-id filter. The shape matches
// what the GraphQL engine exposes for a user's transaction history.
const accountQuery = `
  query {
    user {
      firstName
      lastName
      auditRatio
      attrs
      transactions(where: {event: {id: {_eq: %d}}}) {
        type
        amount
        object {
          name
        }
      }
    }
  }
`

type Config struct {
	AuthURL    string
	GraphQLURL string
	EventID    int

	// HTTPClient defaults to a plain http.Client. Calls are one-shot with
	// no retry and no timeout beyond the transport default; callers bound
	// them with the request context.
	HTTPClient *http.Client
}

type Client struct {
	cfg    Config
	client *http.Client
}

func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{cfg: cfg, client: httpClient}
}

// Authenticate exchanges credentials for an opaque bearer token using HTTP
// Basic auth. Any non-2xx status, empty body or zero token is
// ErrUnauthorized.
func (c *Client) Authenticate(ctx context.Context, username, password string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.AuthURL, nil)
	if err != nil {
		return "", fmt.Errorf("build signin request: %w", err)
	}
	req.SetBasicAuth(username, password)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		slog.DebugContext(ctx, "Signin rejected", "status", resp.StatusCode)
		return "", fmt.Errorf("%w: status %d", ErrUnauthorized, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read token body: %v", ErrUnauthorized, err)
	}

	token := parseToken(body)
	if token == "" || token == "0" {
		return "", fmt.Errorf("%w: empty token body", ErrUnauthorized)
	}
	return token, nil
}

// parseToken accepts both a bare token string and a JSON-encoded one; the
// signin endpoint responds with the latter.
func parseToken(body []byte) string {
	var quoted string
	if err := json.Unmarshal(body, &quoted); err == nil {
		return strings.TrimSpace(quoted)
	}
	return strings.TrimSpace(string(body))
}

// FetchAccount posts the account query with the bearer token and extracts
// profile and transactions from data.user[0]. Any non-2xx status or body
// that does not carry that shape is ErrFetch.
func (c *Client) FetchAccount(ctx context.Context, token string) (core.Account, error) {
	payload, err := json.Marshal(map[string]string{
		"query": fmt.Sprintf(accountQuery, c.cfg.EventID),
	})
	if err != nil {
		return core.Account{}, fmt.Errorf("marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.GraphQLURL, bytes.NewReader(payload))
	if err != nil {
		return core.Account{}, fmt.Errorf("build query request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return core.Account{}, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		slog.DebugContext(ctx, "Account query rejected", "status", resp.StatusCode)
		return core.Account{}, fmt.Errorf("%w: status %d", ErrFetch, resp.StatusCode)
	}

	var decoded gqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return core.Account{}, fmt.Errorf("%w: decode body: %v", ErrFetch, err)
	}
	if len(decoded.Data.User) == 0 {
		return core.Account{}, fmt.Errorf("%w: no user in response", ErrFetch)
	}

	return decoded.Data.User[0].toAccount(), nil
}

type (
	gqlResponse struct {
		Data struct {
			User []gqlUser `json:"user"`
		} `json:"data"`
	}

	gqlUser struct {
		FirstName  string  `json:"firstName"`
		LastName   string  `json:"lastName"`
		AuditRatio float64 `json:"auditRatio"`
		Attrs      struct {
			DateOfBirth string `json:"dateOfBirth"`
		} `json:"attrs"`
		Transactions []gqlTransaction `json:"transactions"`
	}

	gqlTransaction struct {
		Type   string `json:"type"`
		Amount int64  `json:"amount"`
		Object struct {
			Name string `json:"name"`
		} `json:"object"`
	}
)

func (u gqlUser) toAccount() core.Account {
	account := core.Account{
		Profile: core.Profile{
			FirstName:   u.FirstName,
			LastName:    u.LastName,
			AuditRatio:  u.AuditRatio,
			DateOfBirth: u.Attrs.DateOfBirth,
		},
		Transactions: make([]core.Transaction, len(u.Transactions)),
	}
	for i, t := range u.Transactions {
		account.Transactions[i] = core.Transaction{
			Kind:   core.Kind(t.Type),
			Amount: t.Amount,
			Object: t.Object.Name,
		}
	}
	return account
}
