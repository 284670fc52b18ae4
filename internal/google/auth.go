// Package google talks to Google Drive and Google Docs on behalf of the single
// configured user. OAuth tokens are kept in a tokenstore.Store so a restart
// keeps the user signed in.
package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"

	"scriptum/internal/config"
	"scriptum/internal/google/tokenstore"
)

// ErrNotAuthenticated is returned when no usable token is stored for the user.
var ErrNotAuthenticated = errors.New("google account not authenticated")

// ClientSource yields an HTTP client authorized as the signed-in user.
type ClientSource interface {
	Client(ctx context.Context) (*http.Client, error)
}

// Auth runs the OAuth2 authorization-code flow and hands out authorized clients.
type Auth struct {
	conf   *oauth2.Config
	store  tokenstore.Store
	userID string
	base   http.RoundTripper
	log    *zap.Logger

	onLogout []func()
}

// NewAuth loads the client secret JSON referenced by cfg and prepares the flow.
func NewAuth(cfg config.GoogleConfig, store tokenstore.Store, log *zap.Logger) (*Auth, error) {
	b, err := os.ReadFile(cfg.SecretKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read client secret: %w", err)
	}
	conf, err := googleoauth.ConfigFromJSON(b, drive.DriveScope, docs.DocumentsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parse client secret: %w", err)
	}
	if cfg.CallbackURI != "" {
		conf.RedirectURL = cfg.CallbackURI
	}
	return newAuth(conf, store, cfg.UserID, log), nil
}

func newAuth(conf *oauth2.Config, store tokenstore.Store, userID string, log *zap.Logger) *Auth {
	return &Auth{
		conf:   conf,
		store:  store,
		userID: userID,
		base:   otelhttp.NewTransport(http.DefaultTransport),
		log:    log.Named("google.auth"),
	}
}

// AuthURL returns the consent page URL. Offline access makes Google issue a refresh token.
func (a *Auth) AuthURL(state string) string {
	return a.conf.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange trades an authorization code for a token and stores it.
func (a *Auth) Exchange(ctx context.Context, code string) error {
	tok, err := a.conf.Exchange(a.httpContext(ctx), code)
	if err != nil {
		return fmt.Errorf("exchange code: %w", err)
	}
	if err := a.store.Save(ctx, a.userID, tok); err != nil {
		return err
	}
	a.log.Info("google account authorized", zap.String("user_id", a.userID))
	return nil
}

// OnLogout registers fn to run after every successful Logout.
// It must be called before the Auth is shared between goroutines.
func (a *Auth) OnLogout(fn func()) {
	a.onLogout = append(a.onLogout, fn)
}

// Logout forgets the stored token and runs the OnLogout hooks.
func (a *Auth) Logout(ctx context.Context) error {
	if err := a.store.Delete(ctx, a.userID); err != nil {
		return err
	}
	for _, fn := range a.onLogout {
		fn()
	}
	a.log.Info("google account signed out", zap.String("user_id", a.userID))
	return nil
}

// IsAuthenticated reports whether the stored token can still be refreshed.
// A successful refresh is persisted.
func (a *Auth) IsAuthenticated(ctx context.Context) bool {
	tok, err := a.store.Load(ctx, a.userID)
	if err != nil {
		if !errors.Is(err, tokenstore.ErrNoToken) {
			a.log.Warn("token lookup failed", zap.Error(err))
		}
		return false
	}

	stale := *tok
	stale.Expiry = time.Unix(1, 0)
	if _, err := a.tokenSource(ctx, &stale).Token(); err != nil {
		a.log.Debug("token refresh failed", zap.Error(err))
		return false
	}
	return true
}

// Client returns an HTTP client that signs requests with the stored token and
// saves it again whenever it gets refreshed.
func (a *Auth) Client(ctx context.Context) (*http.Client, error) {
	tok, err := a.store.Load(ctx, a.userID)
	if errors.Is(err, tokenstore.ErrNoToken) {
		return nil, ErrNotAuthenticated
	}
	if err != nil {
		return nil, err
	}
	return &http.Client{
		Transport: &oauth2.Transport{Source: a.tokenSource(ctx, tok), Base: a.base},
	}, nil
}

func (a *Auth) httpContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Transport: a.base})
}

func (a *Auth) tokenSource(ctx context.Context, tok *oauth2.Token) oauth2.TokenSource {
	return &persistingSource{
		ctx:    ctx,
		base:   a.conf.TokenSource(a.httpContext(ctx), tok),
		store:  a.store,
		userID: a.userID,
		last:   tok.AccessToken,
		log:    a.log,
	}
}

// persistingSource writes every newly minted access token back to the store.
type persistingSource struct {
	ctx    context.Context
	base   oauth2.TokenSource
	store  tokenstore.Store
	userID string
	log    *zap.Logger

	mu   sync.Mutex
	last string
}

func (p *persistingSource) Token() (*oauth2.Token, error) {
	tok, err := p.base.Token()
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if tok.AccessToken == p.last {
		return tok, nil
	}
	p.last = tok.AccessToken
	if err := p.store.Save(p.ctx, p.userID, tok); err != nil {
		p.log.Warn("refreshed token not saved", zap.Error(err))
	}
	return tok, nil
}
