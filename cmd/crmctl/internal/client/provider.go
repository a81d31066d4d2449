package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Rahul675/indyanet-crm/cmd/crmctl/internal/auth"
	"github.com/Rahul675/indyanet-crm/pkg/sdk"
	"go.uber.org/zap"
)

// ErrNotLoggedIn is returned when a command needs a session and none is stored.
var ErrNotLoggedIn = errors.New("not logged in; please run `crmctl auth login`")

// Provider yields the session client and resource client backed by the
// on-disk session store. Everything is built lazily, once.
type Provider struct {
	serverURL string
	home      string
	timeout   time.Duration
	logger    *zap.Logger

	storeOnce sync.Once
	store     sdk.TokenStore
	storeErr  error

	sessionOnce sync.Once
	session     *sdk.SessionClient
	sessionErr  error
}

// NewProvider constructs a new Provider bound to the given server URL.
// home is the session directory; empty means ~/.crm.
func NewProvider(serverURL, home string, timeout time.Duration, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{serverURL: serverURL, home: home, timeout: timeout, logger: logger}
}

// SetStore injects a token store (tests, ephemeral sessions). It must be called
// before the first Store or Session call.
func (p *Provider) SetStore(store sdk.TokenStore) {
	p.storeOnce.Do(func() { p.store = store })
}

// ServerURL returns the backend base URL.
func (p *Provider) ServerURL() string { return p.serverURL }

// Logger returns the shared logger.
func (p *Provider) Logger() *zap.Logger { return p.logger }

// Store returns the session token store.
func (p *Provider) Store() (sdk.TokenStore, error) {
	p.storeOnce.Do(func() {
		store, err := auth.NewFileStore(p.home)
		if err != nil {
			p.storeErr = fmt.Errorf("failed to create session store: %w", err)
			return
		}
		p.store = store
	})
	return p.store, p.storeErr
}

// Session returns the session client, restored from the store.
func (p *Provider) Session(ctx context.Context) (*sdk.SessionClient, error) {
	p.sessionOnce.Do(func() {
		store, err := p.Store()
		if err != nil {
			p.sessionErr = err
			return
		}
		httpClient := &http.Client{Timeout: p.timeout}
		p.session = sdk.NewSessionClient(p.serverURL, store,
			sdk.WithHTTPClient(httpClient),
			sdk.WithLogger(p.logger.Named("session")),
		)
		p.session.Restore(ctx)
	})
	if p.sessionErr != nil {
		return nil, p.sessionErr
	}
	return p.session, nil
}

// RequireSession returns the session client, failing when nobody is logged in.
func (p *Provider) RequireSession(ctx context.Context) (*sdk.SessionClient, error) {
	session, err := p.Session(ctx)
	if err != nil {
		return nil, err
	}
	if !session.Authenticated() {
		return nil, ErrNotLoggedIn
	}
	return session, nil
}

// Resources returns an authenticated REST client.
func (p *Provider) Resources(ctx context.Context) (*sdk.ResourceClient, error) {
	session, err := p.RequireSession(ctx)
	if err != nil {
		return nil, err
	}
	return session.Resources(), nil
}

// EnsureTimeout bounds ctx by timeout unless it already carries a deadline.
func EnsureTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}

	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	return ctxWithTimeout, cancel
}
