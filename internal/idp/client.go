package idp

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"lacajita-admin/internal/config"

	"go.uber.org/zap"
)

var (
	// ErrMasterAccount is returned synchronously, before any request is made,
	// when a mutation targets the master account.
	ErrMasterAccount = errors.New("cannot modify master account")

	ErrNotFound = errors.New("not found")
)

const defaultConnection = "Username-Password-Authentication"

// Client talks to the identity provider's management API with a cached
// machine-to-machine token. Browsers never see these credentials; every
// management call is proxied through this service.
type Client struct {
	logger *zap.SugaredLogger
	httpc  *http.Client

	baseURL  string
	tokenURL string
	audience string

	clientID     string
	clientSecret string

	masterEmail string

	mu            sync.Mutex
	token         string
	tokenExpiry   time.Time
	masterUserID  string
	masterRoleIDs map[string]bool
}

func NewClient(logger *zap.SugaredLogger, cfg config.IdPConfig, masterEmail string) *Client {
	return &Client{
		logger:       logger,
		httpc:        &http.Client{Timeout: 10 * time.Second},
		baseURL:      fmt.Sprintf("https://%s/api/v2", cfg.Domain),
		tokenURL:     fmt.Sprintf("https://%s/oauth/token", cfg.Domain),
		audience:     cfg.Audience,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		masterEmail:  masterEmail,
	}
}

// IsMasterAccount compares case-sensitively against the configured master
// email.
func (c *Client) IsMasterAccount(email string) bool {
	return c.masterEmail != "" && email == c.masterEmail
}

// guardMaster refuses mutations aimed at the master account. The check is
// purely local: it matches the raw identifier against the master email and
// against the master's user id once a previous read has revealed it.
func (c *Client) guardMaster(userID string) error {
	if c.masterEmail == "" {
		return nil
	}
	if userID == c.masterEmail || strings.Contains(userID, c.masterEmail) {
		return ErrMasterAccount
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.masterUserID != "" && userID == c.masterUserID {
		return ErrMasterAccount
	}
	return nil
}

// rememberMasterRoles records which roles the master account holds, so that
// deleting one of them can be refused locally. The set is replaced on every
// fetch to track current membership.
func (c *Client) rememberMasterRoles(userID string, roles []Role) {
	if c.masterEmail == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if userID != c.masterUserID && !strings.Contains(userID, c.masterEmail) {
		return
	}

	c.masterRoleIDs = make(map[string]bool, len(roles))
	for _, role := range roles {
		c.masterRoleIDs[role.ID] = true
	}
}

// guardMasterRole refuses deleting a role known to be held by the master
// account.
func (c *Client) guardMasterRole(roleID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.masterRoleIDs[roleID] {
		return ErrMasterAccount
	}
	return nil
}

func (c *Client) rememberMaster(users ...User) {
	if c.masterEmail == "" {
		return
	}
	for _, u := range users {
		if u.Email == c.masterEmail {
			c.mu.Lock()
			c.masterUserID = u.UserID
			c.mu.Unlock()
			return
		}
	}
}

// GetUsers lists users, newest first.
func (c *Client) GetUsers(ctx context.Context, page int, perPage int) ([]User, error) {
	path := fmt.Sprintf("/users?page=%d&per_page=%d&include_totals=true&sort=created_at:-1", page, perPage)

	var resp struct {
		Users []User `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	c.rememberMaster(resp.Users...)
	return resp.Users, nil
}

func (c *Client) GetUser(ctx context.Context, userID string) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(userID), nil, &user); err != nil {
		return nil, err
	}

	c.rememberMaster(user)
	return &user, nil
}

func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	if req.Connection == "" {
		req.Connection = defaultConnection
	}
	if req.Password == "" {
		req.Password = randomPassword()
	}
	if req.Name == "" {
		req.Name = strings.SplitN(req.Email, "@", 2)[0]
	}

	var user User
	if err := c.do(ctx, http.MethodPost, "/users", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateUser(ctx context.Context, userID string, req UpdateUserRequest) (*User, error) {
	if err := c.guardMaster(userID); err != nil {
		return nil, err
	}

	var user User
	if err := c.do(ctx, http.MethodPatch, "/users/"+url.PathEscape(userID), req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	if err := c.guardMaster(userID); err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(userID), nil, nil)
}

// SetUserBlocked blocks or unblocks a user. Blocking the master account is
// refused; unblocking never is.
func (c *Client) SetUserBlocked(ctx context.Context, userID string, blocked bool) (*User, error) {
	if blocked {
		if err := c.guardMaster(userID); err != nil {
			return nil, err
		}
	}

	var user User
	req := UpdateUserRequest{Blocked: &blocked}
	if err := c.do(ctx, http.MethodPatch, "/users/"+url.PathEscape(userID), req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) SendVerificationEmail(ctx context.Context, userID string) error {
	body := map[string]string{"user_id": userID}
	return c.do(ctx, http.MethodPost, "/jobs/verification-email", body, nil)
}

func (c *Client) GetUserRoles(ctx context.Context, userID string) ([]Role, error) {
	var roles []Role
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(userID)+"/roles", nil, &roles); err != nil {
		return nil, err
	}

	c.rememberMasterRoles(userID, roles)
	return roles, nil
}

func (c *Client) AssignRoles(ctx context.Context, userID string, roleIDs []string) error {
	if err := c.guardMaster(userID); err != nil {
		return err
	}
	body := map[string][]string{"roles": roleIDs}
	return c.do(ctx, http.MethodPost, "/users/"+url.PathEscape(userID)+"/roles", body, nil)
}

func (c *Client) RemoveRoles(ctx context.Context, userID string, roleIDs []string) error {
	if err := c.guardMaster(userID); err != nil {
		return err
	}
	body := map[string][]string{"roles": roleIDs}
	return c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(userID)+"/roles", body, nil)
}

func (c *Client) GetRoles(ctx context.Context) ([]Role, error) {
	var roles []Role
	if err := c.do(ctx, http.MethodGet, "/roles", nil, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

func (c *Client) GetRole(ctx context.Context, roleID string) (*Role, error) {
	var role Role
	if err := c.do(ctx, http.MethodGet, "/roles/"+url.PathEscape(roleID), nil, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

func (c *Client) CreateRole(ctx context.Context, name string, description string) (*Role, error) {
	body := map[string]string{"name": name, "description": description}

	var role Role
	if err := c.do(ctx, http.MethodPost, "/roles", body, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

func (c *Client) UpdateRole(ctx context.Context, roleID string, name string, description string) (*Role, error) {
	body := map[string]string{"name": name, "description": description}

	var role Role
	if err := c.do(ctx, http.MethodPatch, "/roles/"+url.PathEscape(roleID), body, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

func (c *Client) DeleteRole(ctx context.Context, roleID string) error {
	if err := c.guardMasterRole(roleID); err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, "/roles/"+url.PathEscape(roleID), nil, nil)
}

func (c *Client) do(ctx context.Context, method string, path string, body any, out any) error {
	token, err := c.getToken(ctx)
	if err != nil {
		return fmt.Errorf("failed to get management token: %w", err)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("management API returned %d for %s %s: %s", resp.StatusCode, method, path, snippet)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode management API response: %w", err)
	}
	return nil
}

// getToken returns the cached client-credentials token, refreshing it a
// minute before expiry.
func (c *Client) getToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry.Add(-time.Minute)) {
		return c.token, nil
	}

	payload, err := json.Marshal(map[string]string{
		"grant_type":    "client_credentials",
		"client_id":     c.clientID,
		"client_secret": c.clientSecret,
		"audience":      c.audience,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("token endpoint returned %d: %s", resp.StatusCode, snippet)
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	c.token = tokenResp.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)
	return c.token, nil
}

const passwordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*"

func randomPassword() string {
	var sb strings.Builder
	for i := 0; i < 16; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordCharset))))
		if err != nil {
			panic(err)
		}
		sb.WriteByte(passwordCharset[n.Int64()])
	}
	return sb.String()
}
