package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"az-group-manager/pkg/logging"
	"az-group-manager/pkg/text"

	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultBaseURL is the Microsoft Graph v1.0 endpoint.
	DefaultBaseURL = "https://graph.microsoft.com/v1.0"

	// DefaultHTTPTimeout is the default timeout for a whole Fetch.
	DefaultHTTPTimeout = 30 * time.Second

	groupSelect  = "id,displayName,description,mail"
	memberSelect = "id,displayName,mail"
)

// Client reads groups from the directory.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     oauth2.TokenSource
	timeout    time.Duration
}

// ClientOption configures the directory client.
type ClientOption func(*Client)

// WithBaseURL points the client at another Graph endpoint, e.g. a national
// cloud or a test server.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout bounds a single Fetch, including member paging.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// NewClient creates a directory client that authenticates with tokens.
func NewClient(tokens oauth2.TokenSource, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
		tokens:     tokens,
		timeout:    DefaultHTTPTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Fetch reads the metadata and the full membership of groupID. The two reads
// run concurrently; the first failure cancels the other. The returned ID is
// always groupID, whatever the directory echoed.
func (c *Client) Fetch(ctx context.Context, groupID string) (*RawGroupResponse, error) {
	if groupID == "" {
		return nil, ErrEmptyGroupID
	}

	token, err := c.tokens.Token()
	if err != nil {
		return nil, &AuthError{Err: err}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	groupURL := c.baseURL + "/groups/" + url.PathEscape(groupID)

	var (
		meta    groupPayload
		members []RawMember
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.getJSON(gctx, token, groupURL+"?$select="+groupSelect, &meta)
	})
	g.Go(func() error {
		var err error
		members, err = c.listMembers(gctx, token, groupURL+"/members?$select="+memberSelect)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	id := groupID
	if meta.ID != nil && *meta.ID != groupID {
		logging.Debug("DirectoryClient", "Directory echoed id %s for requested group %s", *meta.ID, groupID)
	}

	return &RawGroupResponse{
		ID:          &id,
		DisplayName: meta.DisplayName,
		Description: meta.Description,
		Mail:        meta.Mail,
		Members:     members,
	}, nil
}

// listMembers follows @odata.nextLink until the membership is exhausted.
func (c *Client) listMembers(ctx context.Context, token *oauth2.Token, firstURL string) ([]RawMember, error) {
	members := make([]RawMember, 0)
	seen := make(map[string]bool)

	for next := firstURL; next != ""; {
		if seen[next] {
			return nil, &DecodeError{URL: next, Err: fmt.Errorf("@odata.nextLink points to an already visited page")}
		}
		seen[next] = true
		if next != firstURL {
			if err := c.checkNextLink(next); err != nil {
				return nil, &DecodeError{URL: next, Err: err}
			}
		}

		var page membersPage
		if err := c.getJSON(ctx, token, next, &page); err != nil {
			return nil, err
		}
		members = append(members, page.Value...)
		next = page.NextLink
	}

	return members, nil
}

// checkNextLink refuses page links that leave the Graph endpoint, so the
// bearer token is never sent to another host.
func (c *Client) checkNextLink(link string) error {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	next, err := url.Parse(link)
	if err != nil {
		return fmt.Errorf("invalid @odata.nextLink: %w", err)
	}
	if !strings.EqualFold(next.Scheme, base.Scheme) || !strings.EqualFold(next.Host, base.Host) {
		return fmt.Errorf("@odata.nextLink leaves %s://%s", base.Scheme, base.Host)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, token *oauth2.Token, requestURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return &RequestError{URL: requestURL, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	token.SetAuthHeader(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RequestError{URL: requestURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RequestError{URL: requestURL, Err: fmt.Errorf("failed to read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			URL:        requestURL,
			StatusCode: resp.StatusCode,
			Body:       text.OneLine(string(body), maxErrorBody),
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &DecodeError{URL: requestURL, Err: err}
	}

	return nil
}
