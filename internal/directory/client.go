package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL  = "https://graph.microsoft.com/v1.0"
	defaultLoginURL = "https://login.microsoftonline.com"
	defaultScope    = "https://graph.microsoft.com/.default"
	defaultTimeout  = 30 * time.Second
	defaultPageSize = 100

	// tokens are refreshed this long before their reported expiry
	tokenExpiryBuffer = 5 * time.Minute
)

type Config struct {
	TenantID       string
	ClientID       string
	ClientSecret   string
	BaseURL        string
	LoginURL       string
	Scope          string
	RequestTimeout time.Duration
	PageSize       int
}

// Client talks to a Microsoft-Graph-style directory API: token
// acquisition, paginated listings and per-identity device lookups.
type Client struct {
	cfg        Config
	httpClient *http.Client
	tokens     TokenCache
	logger     *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.LoginURL == "" {
		cfg.LoginURL = defaultLoginURL
	}
	if cfg.Scope == "" {
		cfg.Scope = defaultScope
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultTimeout
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		logger:     logger,
	}
}

func (c *Client) accessToken(ctx context.Context) (string, error) {
	if token, ok := c.tokens.Get(time.Now()); ok {
		return token, nil
	}

	if c.cfg.TenantID == "" || c.cfg.ClientID == "" || c.cfg.ClientSecret == "" {
		return "", &AuthError{Err: fmt.Errorf("directory credentials not configured")}
	}

	tokenURL := fmt.Sprintf("%s/%s/oauth2/v2.0/token", c.cfg.LoginURL, c.cfg.TenantID)

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("scope", c.cfg.Scope)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &AuthError{Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &AuthError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", &AuthError{Err: fmt.Errorf("token endpoint returned status %d: %s", resp.StatusCode, string(body))}
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", &AuthError{Err: fmt.Errorf("decoding token response: %w", err)}
	}
	if tokenResp.AccessToken == "" {
		return "", &AuthError{Err: fmt.Errorf("token endpoint returned empty access token")}
	}

	expiresAt := time.Now().Add(time.Duration(tokenResp.ExpiresIn)*time.Second - tokenExpiryBuffer)
	c.tokens.Set(tokenResp.AccessToken, expiresAt)

	c.logger.Debug("directory access token refreshed", "expires_at", expiresAt)

	return tokenResp.AccessToken, nil
}

// get performs an authenticated GET and returns status plus body.
// Transport failures come back as plain errors; 401/403 as *AuthError.
func (c *Client) get(ctx context.Context, rawURL string) (int, []byte, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return 0, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		c.tokens.Clear()
		return resp.StatusCode, nil, &AuthError{Err: fmt.Errorf("directory returned status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}

	return resp.StatusCode, body, nil
}

type identityPage struct {
	Value    []Identity `json:"value"`
	NextLink string     `json:"@odata.nextLink"`
}

type devicePage struct {
	Value    []Device `json:"value"`
	NextLink string   `json:"@odata.nextLink"`
}

// listIdentities follows continuation links until the listing is
// exhausted. On a transient failure the identities fetched so far are
// returned together with a *TransientFetchError.
func (c *Client) listIdentities(ctx context.Context, op, firstURL string) ([]Identity, error) {
	var identities []Identity

	next := firstURL
	for next != "" {
		status, body, err := c.get(ctx, next)
		if err != nil {
			if IsAuthError(err) {
				return nil, err
			}
			return identities, &TransientFetchError{Op: op, Fetched: len(identities), Err: err}
		}
		if status != http.StatusOK {
			return identities, &TransientFetchError{Op: op, Fetched: len(identities), Err: fmt.Errorf("status %d", status)}
		}

		var page identityPage
		if err := json.Unmarshal(body, &page); err != nil {
			return identities, &TransientFetchError{Op: op, Fetched: len(identities), Err: err}
		}

		identities = append(identities, page.Value...)
		next = page.NextLink
	}

	return identities, nil
}

func (c *Client) listDevices(ctx context.Context, op, firstURL string) ([]Device, error) {
	var devices []Device

	next := firstURL
	for next != "" {
		status, body, err := c.get(ctx, next)
		if err != nil {
			if IsAuthError(err) {
				return nil, err
			}
			return devices, &TransientFetchError{Op: op, Fetched: len(devices), Err: err}
		}
		if status != http.StatusOK {
			return devices, &TransientFetchError{Op: op, Fetched: len(devices), Err: fmt.Errorf("status %d", status)}
		}

		var page devicePage
		if err := json.Unmarshal(body, &page); err != nil {
			return devices, &TransientFetchError{Op: op, Fetched: len(devices), Err: err}
		}

		devices = append(devices, page.Value...)
		next = page.NextLink
	}

	return devices, nil
}

// ListActiveIdentities returns all enabled user identities.
func (c *Client) ListActiveIdentities(ctx context.Context) ([]Identity, error) {
	params := url.Values{}
	params.Set("$select", "id,displayName,mail,userPrincipalName,department,jobTitle,employeeId,accountEnabled,businessPhones,mobilePhone")
	params.Set("$filter", "accountEnabled eq true")
	params.Set("$top", strconv.Itoa(c.cfg.PageSize))

	return c.listIdentities(ctx, "active identities", c.cfg.BaseURL+"/users?"+params.Encode())
}

// ListDeletedIdentities returns recently deleted user identities.
func (c *Client) ListDeletedIdentities(ctx context.Context) ([]Identity, error) {
	params := url.Values{}
	params.Set("$select", "id,displayName,mail,userPrincipalName,deletedDateTime")
	params.Set("$top", strconv.Itoa(c.cfg.PageSize))

	return c.listIdentities(ctx, "deleted identities", c.cfg.BaseURL+"/directory/deletedItems/microsoft.graph.user?"+params.Encode())
}

// ListDevices returns all managed devices running a recognized OS.
func (c *Client) ListDevices(ctx context.Context) ([]Device, error) {
	params := url.Values{}
	params.Set("$select", "id,displayName,deviceId,manufacturer,model,operatingSystem,operatingSystemVersion,approximateLastSignInDateTime,registrationDateTime")
	params.Set("$filter", "operatingSystem eq 'Windows' or operatingSystem eq 'macOS' or operatingSystem eq 'iOS' or operatingSystem eq 'Android'")
	params.Set("$top", strconv.Itoa(c.cfg.PageSize))

	return c.listDevices(ctx, "devices", c.cfg.BaseURL+"/devices?"+params.Encode())
}

// ListDevicesForIdentity returns the devices registered to one identity.
func (c *Client) ListDevicesForIdentity(ctx context.Context, identityID string) ([]Device, error) {
	params := url.Values{}
	params.Set("$select", "id,displayName,deviceId,manufacturer,model,operatingSystem,operatingSystemVersion,approximateLastSignInDateTime,registrationDateTime")

	first := fmt.Sprintf("%s/users/%s/registeredDevices?%s", c.cfg.BaseURL, url.PathEscape(identityID), params.Encode())
	return c.listDevices(ctx, "identity devices", first)
}

// GetPhotoURL returns the photo content URL for an identity, or empty
// when the identity has no photo.
func (c *Client) GetPhotoURL(ctx context.Context, identityID string) (string, error) {
	metaURL := fmt.Sprintf("%s/users/%s/photo", c.cfg.BaseURL, url.PathEscape(identityID))

	status, _, err := c.get(ctx, metaURL)
	if err != nil {
		return "", err
	}

	switch status {
	case http.StatusOK:
		return fmt.Sprintf("%s/users/%s/photo/$value", c.cfg.BaseURL, url.PathEscape(identityID)), nil
	case http.StatusNotFound:
		return "", nil
	default:
		return "", &TransientFetchError{Op: "photo metadata", Err: fmt.Errorf("status %d", status)}
	}
}

// GetPhotoBytes returns the raw photo for an identity, or nil when the
// identity has no photo.
func (c *Client) GetPhotoBytes(ctx context.Context, identityID string) ([]byte, error) {
	photoURL := fmt.Sprintf("%s/users/%s/photo/$value", c.cfg.BaseURL, url.PathEscape(identityID))

	status, body, err := c.get(ctx, photoURL)
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusOK:
		return body, nil
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, &TransientFetchError{Op: "photo", Err: fmt.Errorf("status %d", status)}
	}
}
