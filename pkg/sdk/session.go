package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// Session is a point-in-time copy of the client's authentication state.
type Session struct {
	User      *UserSnapshot
	Token     string
	Restoring bool
}

// Authenticated reports whether both halves of the credential pair are present.
func (s Session) Authenticated() bool {
	return s.User != nil && s.Token != ""
}

// LoginResult is returned by a successful Login.
type LoginResult struct {
	User  UserSnapshot
	Token string
}

// RegisterInput holds the fields of a new CRM user.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// SessionClient owns the session. Every read or write of the session and its
// persisted credentials goes through it.
type SessionClient struct {
	baseURL string
	store   TokenStore
	logger  *zap.Logger
	raw     *http.Client
	authed  *http.Client

	mu      sync.RWMutex
	session Session
}

// SessionOption mutates a SessionClient during construction.
type SessionOption func(*SessionClient)

// WithHTTPClient overrides the HTTP client used for backend calls. Its
// transport is wrapped to attach the bearer token on authenticated calls.
func WithHTTPClient(client *http.Client) SessionOption {
	return func(c *SessionClient) {
		if client != nil {
			c.raw = client
		}
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *zap.Logger) SessionOption {
	return func(c *SessionClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewSessionClient creates a client bound to the backend at baseURL.
// The session starts in the restoring state until Restore is called.
func NewSessionClient(baseURL string, store TokenStore, opts ...SessionOption) *SessionClient {
	c := &SessionClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		store:   store,
		logger:  zap.NewNop(),
		raw:     defaultHTTPClient(),
		session: Session{Restoring: true},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.store == nil {
		c.store = NewMemoryStore()
	}
	c.authed = c.newAuthedClient()
	return c
}

// BaseURL returns the backend base URL.
func (c *SessionClient) BaseURL() string { return c.baseURL }

// Snapshot returns a copy of the current session.
func (c *SessionClient) Snapshot() Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := c.session
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

// User returns a copy of the signed-in user, or nil.
func (c *SessionClient) User() *UserSnapshot {
	return c.Snapshot().User
}

// Token returns the bearer token, or "".
func (c *SessionClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session.Token
}

// Authenticated reports whether a session is established.
func (c *SessionClient) Authenticated() bool {
	return c.Snapshot().Authenticated()
}

// HasRole reports whether the user's role is one of roles, ignoring case.
func (c *SessionClient) HasRole(roles ...string) bool {
	user := c.User()
	if user == nil {
		return false
	}
	for _, role := range roles {
		if NormalizeRole(role) == user.Role {
			return true
		}
	}
	return false
}

// Restore loads the persisted credential pair. It never contacts the network
// and always resolves: a missing half or an unreadable user clears storage
// and yields a logged-out session.
func (c *SessionClient) Restore(ctx context.Context) Session {
	token, hasToken := c.store.Get(KeyToken)
	rawUser, hasUser := c.store.Get(KeyUser)

	var user *UserSnapshot
	if hasToken && hasUser && strings.TrimSpace(token) != "" {
		parsed, err := parseStoredUser(rawUser)
		if err != nil {
			c.logger.Debug("discarding corrupt stored session", zap.Error(err))
		} else {
			user = parsed
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if user == nil {
		if hasToken || hasUser {
			c.logger.Debug("clearing partial stored session",
				zap.Bool("has_token", hasToken), zap.Bool("has_user", hasUser))
		}
		c.clearStoreLocked()
		c.session = Session{}
		return c.session
	}
	c.session = Session{User: user, Token: token}
	c.logger.Debug("session restored", zap.String("user_id", user.ID), zap.String("role", user.Role))
	u := *user
	return Session{User: &u, Token: token}
}

// Login exchanges credentials for a token. Failures are returned as
// *AuthError. A rejected login leaves the session untouched; a session that
// cannot be saved is cleared from memory and storage alike.
func (c *SessionClient) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	payload := map[string]string{
		"email":    strings.ToLower(strings.TrimSpace(email)),
		"password": strings.TrimSpace(password),
	}
	status, body, err := c.postJSON(ctx, c.raw, "/auth/login", payload)
	if err != nil {
		return nil, &AuthError{Kind: Unreachable, Err: err}
	}
	if status < 200 || status >= 300 {
		return nil, &AuthError{Kind: InvalidCredentials, Message: messageOf(body)}
	}

	token := findToken(body)
	user, userErr := normalizeUser(body)
	if token == "" || userErr != nil {
		c.logger.Warn("login response missing token or user",
			zap.Bool("has_token", token != ""), zap.NamedError("user_error", userErr))
		return nil, &AuthError{Kind: MalformedResponse}
	}

	if err := c.persist(user, token); err != nil {
		c.logger.Error("persist session failed", zap.Error(err))
		c.mu.Lock()
		c.clearStoreLocked()
		c.session = Session{}
		c.mu.Unlock()
		return nil, &AuthError{Kind: MalformedResponse, Message: "could not save session", Err: err}
	}

	c.mu.Lock()
	c.session = Session{User: user, Token: token}
	c.mu.Unlock()
	c.logger.Info("logged in", zap.String("user_id", user.ID), zap.String("role", user.Role))
	return &LoginResult{User: *user, Token: token}, nil
}

// Logout notifies the backend on a best-effort basis, then clears the local
// session whatever the outcome of that call.
func (c *SessionClient) Logout(ctx context.Context, reason string) {
	current := c.Snapshot()
	if current.Authenticated() {
		path := "/auth/logout/" + url.PathEscape(current.User.ID)
		status, _, err := c.postJSON(ctx, c.authed, path, map[string]string{"reason": reason})
		switch {
		case err != nil:
			c.logger.Warn("logout notification failed", zap.Error(err))
		case status < 200 || status >= 300:
			c.logger.Warn("logout notification rejected", zap.Int("status", status))
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearStoreLocked()
	c.session = Session{}
	c.logger.Info("logged out")
}

// Register creates a CRM user. It requires an established session; the
// bearer token is attached by the transport.
func (c *SessionClient) Register(ctx context.Context, input RegisterInput) (*UserSnapshot, error) {
	if !c.Authenticated() {
		return nil, &AuthError{Kind: Unauthenticated}
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Role = NormalizeRole(input.Role)
	if input.Role == "" {
		input.Role = RoleOperator
	}
	if err := ValidateRegisterInput(input); err != nil {
		return nil, &AuthError{Kind: InvalidCredentials, Message: err.Error(), Err: err}
	}

	status, body, err := c.postJSON(ctx, c.authed, "/auth/register", input)
	if err != nil {
		return nil, &AuthError{Kind: Unreachable, Err: err}
	}
	if status == http.StatusUnauthorized {
		return nil, &AuthError{Kind: Unauthenticated, Message: messageOf(body)}
	}
	if status < 200 || status >= 300 {
		return nil, &AuthError{Kind: InvalidCredentials, Message: messageOf(body)}
	}
	user, err := normalizeUser(body)
	if err != nil {
		return nil, &AuthError{Kind: MalformedResponse, Err: err}
	}
	return user, nil
}

// ListUsers returns every CRM user visible to the session.
func (c *SessionClient) ListUsers(ctx context.Context) ([]UserSnapshot, error) {
	if !c.Authenticated() {
		return nil, &AuthError{Kind: Unauthenticated}
	}
	records, err := c.Resources().List(ctx, "auth/users")
	if err != nil {
		return nil, err
	}
	users := make([]UserSnapshot, 0, len(records))
	for _, r := range records {
		u, err := normalizeUser(map[string]any(r))
		if err != nil {
			c.logger.Debug("skipping unreadable user record", zap.Error(err))
			continue
		}
		users = append(users, *u)
	}
	return users, nil
}

// HTTPClient returns a client that attaches the live session token as a
// bearer credential.
func (c *SessionClient) HTTPClient() *http.Client {
	return c.authed
}

// Resources returns a REST client for list/detail endpoints.
func (c *SessionClient) Resources() *ResourceClient {
	return NewResourceClient(c.baseURL, WithResourceHTTPClient(c.authed))
}

// sessionTokenSource implements oauth2.TokenSource over the live session.
type sessionTokenSource struct{ c *SessionClient }

func (s sessionTokenSource) Token() (*oauth2.Token, error) {
	token := s.c.Token()
	if token == "" {
		return nil, ErrUnauthenticated
	}
	return &oauth2.Token{AccessToken: token, TokenType: "Bearer"}, nil
}

func (c *SessionClient) newAuthedClient() *http.Client {
	base := c.raw.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	return &http.Client{
		Timeout: c.raw.Timeout,
		Transport: &oauth2.Transport{
			Source: sessionTokenSource{c: c},
			Base:   requestIDTransport{base: base},
		},
	}
}

// requestIDTransport tags each request with a fresh X-Request-ID.
type requestIDTransport struct{ base http.RoundTripper }

func (t requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("X-Request-ID") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("X-Request-ID", uuid.NewString())
	}
	return t.base.RoundTrip(req)
}

func (c *SessionClient) persist(user *UserSnapshot, token string) error {
	encoded, err := encodeUser(user)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	writes := []struct{ key, value string }{
		{KeyToken, token},
		{KeyUser, encoded},
		{KeyUserRole, user.Role},
		{KeyUserEmail, user.Email},
		{KeyUserName, user.Name},
	}
	for _, w := range writes {
		if err := c.store.Put(w.key, w.value); err != nil {
			return fmt.Errorf("store %s: %w", w.key, err)
		}
	}
	return nil
}

// clearStoreLocked removes every session key. Callers hold c.mu.
func (c *SessionClient) clearStoreLocked() {
	if err := c.store.Clear(); err != nil {
		c.logger.Warn("clear token store failed, removing keys individually", zap.Error(err))
		for _, key := range sessionKeys {
			if rerr := c.store.Remove(key); rerr != nil {
				c.logger.Error("remove session key failed", zap.String("key", key), zap.Error(rerr))
			}
		}
	}
}

func (c *SessionClient) postJSON(ctx context.Context, client *http.Client, path string, payload any) (int, any, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := readBody(resp.Body)
	if err != nil {
		// A non-JSON body still carries a usable status code.
		c.logger.Debug("unreadable response body", zap.String("path", path), zap.Error(err))
		return resp.StatusCode, nil, nil
	}
	return resp.StatusCode, body, nil
}

// findToken looks for the bearer token in the shapes the backend emits.
func findToken(body any) string {
	for _, candidate := range envelopeCandidates(body) {
		obj, ok := candidate.(map[string]any)
		if !ok {
			continue
		}
		for _, key := range []string{"token", "accessToken", "access_token"} {
			if s, ok := obj[key].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

// defaultHTTPClient returns an HTTP client with a reasonable timeout for backend calls.
func defaultHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 15 * time.Second,
	}
}

// IsAuthError reports whether err is an *AuthError of the given kind.
func IsAuthError(err error, kind AuthErrorKind) bool {
	var authErr *AuthError
	return errors.As(err, &authErr) && authErr.Kind == kind
}
