// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.

/*
Package public provides a client for authentication of "public" applications. A "public"
application is defined as an app that runs on client devices (android, ios, windows, linux, ...).
These devices are "untrusted" and access resources via web APIs that must authenticate.

Each AcquireToken method validates its arguments, then hands the request to the handler
installed for its flow with WithHandlers. Flows the running platform doesn't support fail with
an error matching errors.ErrUnsupportedOperation before any handler is constructed and before
the cache accessor is called.

Handlers turn a token endpoint response into an AuthResult with NewAuthResult.
*/
package public

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/AzureAD/msal-public-client-go/apps/cache"
	"github.com/AzureAD/msal-public-client-go/apps/internal/authority"
	"github.com/AzureAD/msal-public-client-go/apps/internal/base"
	"github.com/AzureAD/msal-public-client-go/apps/internal/dispatch"
	"github.com/AzureAD/msal-public-client-go/apps/internal/flow"
	"github.com/AzureAD/msal-public-client-go/apps/internal/logger"
	"github.com/AzureAD/msal-public-client-go/apps/internal/platform"
	"github.com/AzureAD/msal-public-client-go/apps/internal/shared"
	"github.com/AzureAD/msal-public-client-go/apps/internal/storage"
	"github.com/AzureAD/msal-public-client-go/apps/internal/webui"
)

// AuthResult contains the results of one token acquisition operation.
// For details see https://aka.ms/msal-net-authenticationresult
type AuthResult = base.AuthResult

type Account = shared.Account

type (
	// TokenResponse is what a handler received from the token endpoint.
	TokenResponse = base.TokenResponse
	// ClientInfo is the decoded client_info of a token response.
	ClientInfo = base.ClientInfo
	// IDToken holds the claims of an ID token.
	IDToken = base.IDToken
)

// NewAuthResult builds the result of the request described by rc from a token endpoint
// response. The account is read from the response's ID token and client info. It fails when
// the response has no access token or the authority declined any scope.
func NewAuthResult(resp TokenResponse, rc RequestContext) (AuthResult, error) {
	return base.NewAuthResult(resp, rc.Authority, rc.CorrelationID)
}

type (
	// Handler runs one flow for the RequestContext it was constructed with.
	Handler = flow.Handler
	// HandlerFunc adapts a function to Handler.
	HandlerFunc = flow.HandlerFunc
	// Handlers holds one constructor per flow. See WithHandlers.
	Handlers = flow.Handlers
	// RequestContext is everything a handler needs to know about one request.
	RequestContext = flow.RequestContext
	// Password protects the password of a username/password request.
	Password = flow.Password
	// ErrNoHandler is the error of a request for a flow WithHandlers installed no handler for.
	ErrNoHandler = flow.ErrNoHandler

	DeviceCodeResult   = flow.DeviceCodeResult
	DeviceCodeCallback = flow.DeviceCodeCallback

	InteractiveConstructor           = flow.InteractiveConstructor
	DeviceCodeConstructor            = flow.DeviceCodeConstructor
	IntegratedWindowsAuthConstructor = flow.IntegratedWindowsAuthConstructor
	UsernamePasswordConstructor      = flow.UsernamePasswordConstructor
	SilentConstructor                = flow.SilentConstructor
)

type (
	// Behavior is the prompt behavior of interactive sign-in.
	Behavior = webui.Behavior
	// UI obtains an authorization code from the user.
	UI = webui.UI
	// UIConfig is the resolved UI configuration of an interactive request.
	UIConfig = webui.Config
	// UIFactory creates the UI for an interactive request.
	UIFactory = webui.Factory
	// AuthorizationRequest and AuthorizationResult are the input and output of a UI.
	AuthorizationRequest = webui.Request
	AuthorizationResult  = webui.Result
	// DefaultUIFactory uses host-supplied UIs for hidden and embedded hosting and the system
	// browser otherwise. It is used when WithWebUI isn't given.
	DefaultUIFactory = webui.DefaultFactory
	// SystemBrowser signs the user in with the system browser and a loopback redirect.
	SystemBrowser = webui.SystemBrowser
)

const (
	// SelectAccount shows the account picker. This is the default.
	SelectAccount = webui.SelectAccount
	// Login asks for credentials even when the user is signed in.
	Login = webui.Login
	// Consent asks the user to consent to the requested scopes.
	Consent = webui.Consent
	// Never completes sign-in without showing a prompt or fails.
	Never = webui.Never
)

// Capabilities describes what a platform supports.
type Capabilities = platform.Capabilities

// CapabilitiesFor returns the capabilities of the platform named by goos, a GOOS value.
func CapabilitiesFor(goos string) Capabilities {
	return platform.For(goos)
}

const defaultAuthority = "https://login.microsoftonline.com/common"

// Options configures the Client's behavior.
type Options struct {
	// Accessor controls cache persistence. By default there is no cache persistence.
	// This can be set with the WithCache() option.
	Accessor cache.ExportReplace

	// The host of the Azure Active Directory authority. The default is https://login.microsoftonline.com/common.
	// This can be changed with the WithAuthority() option.
	Authority string

	// Handlers are the flow handler constructors. Set with WithHandlers().
	Handlers Handlers

	// UI creates the UI of interactive requests. The default uses the system browser.
	UI UIFactory

	// Platform overrides the capabilities of the running platform.
	Platform *Capabilities

	// UseCorporateNetwork asks for the managed network context on platforms that apply one.
	UseCorporateNetwork bool

	logger     *slog.Logger
	piiLogging bool
}

func (p *Options) validate() error {
	if _, err := authority.NewInfoFromAuthorityURI(p.Authority, true); err != nil {
		return fmt.Errorf("invalid authority %q: %w", p.Authority, err)
	}
	return nil
}

// Option is an optional argument to the New constructor.
type Option func(o *Options)

// WithAuthority allows for a custom authority to be set. This must be a valid https url.
func WithAuthority(authority string) Option {
	return func(o *Options) {
		o.Authority = authority
	}
}

// WithCache allows you to set some type of cache for storing account data.
func WithCache(accessor cache.ExportReplace) Option {
	return func(o *Options) {
		o.Accessor = accessor
	}
}

// WithHandlers installs the flow handlers. Requests for a flow without a handler fail with
// a flow failure.
func WithHandlers(h Handlers) Option {
	return func(o *Options) {
		o.Handlers = h
	}
}

// WithWebUI sets the factory creating the UI for interactive requests.
func WithWebUI(f UIFactory) Option {
	return func(o *Options) {
		o.UI = f
	}
}

// WithPlatform makes the client behave as if it ran on a platform with the given capabilities.
func WithPlatform(caps Capabilities) Option {
	return func(o *Options) {
		o.Platform = &caps
	}
}

// WithCorporateNetwork enables the managed network context for interactive sign-in on
// platforms that apply one. It has no effect elsewhere.
func WithCorporateNetwork() Option {
	return func(o *Options) {
		o.UseCorporateNetwork = true
	}
}

// WithLogger enables logging within the SDK
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.logger = l
	}
}

// WithPiiLogging allows usernames and login hints to appear in logs.
func WithPiiLogging(enabled bool) Option {
	return func(o *Options) {
		o.piiLogging = enabled
	}
}

// Client is a representation of authentication client for public applications as defined in the
// package doc. For more information, visit https://docs.microsoft.com/azure/active-directory/develop/msal-client-applications.
type Client struct {
	clientID   string
	dispatcher dispatch.Dispatcher
	store      *storage.Manager
	accessor   cache.ExportReplace
	// cacheMu serializes the accessor's Replace/Export pairs.
	cacheMu *sync.Mutex
	logger  *logger.Logger
}

// New is the constructor for Client.
func New(clientID string, options ...Option) (Client, error) {
	opts := Options{Authority: defaultAuthority}
	for _, o := range options {
		o(&opts)
	}
	if clientID == "" {
		return Client{}, fmt.Errorf("clientID cannot be empty")
	}
	if err := opts.validate(); err != nil {
		return Client{}, err
	}
	// validate() parsed it already
	info, _ := authority.NewInfoFromAuthorityURI(opts.Authority, true)

	caps := platform.Current()
	if opts.Platform != nil {
		caps = *opts.Platform
	}
	log := logger.New(opts.logger, logger.WithPii(opts.piiLogging))
	store := storage.New()

	pca := Client{
		clientID: clientID,
		store:    store,
		accessor: opts.Accessor,
		cacheMu:  &sync.Mutex{},
		logger:   log,
	}

	dopts := []dispatch.Option{
		dispatch.WithHandlers(opts.Handlers),
		dispatch.WithLogger(log),
		// the accessor loads the store only for requests that pass the capability check
		dispatch.WithPrepare(pca.replace),
	}
	switch ui := opts.UI.(type) {
	case nil:
	case DefaultUIFactory:
		if ui.Logger == nil {
			ui.Logger = log
		}
		dopts = append(dopts, dispatch.WithWebUI(ui))
	default:
		dopts = append(dopts, dispatch.WithWebUI(ui))
	}
	config := dispatch.Config{ClientID: clientID, Authority: info, UseCorporateNetwork: opts.UseCorporateNetwork}
	pca.dispatcher = dispatch.New(config, caps, store, dopts...)
	return pca, nil
}

// AcquireInteractiveOptions are all the optional settings to an AcquireTokenInteractive() call.
type AcquireInteractiveOptions struct {
	LoginHint            string
	Prompt               Behavior
	ExtraScopesToConsent []string
	Account              Account
	EmbeddedWebView      bool
}

// AcquireInteractiveOption changes options inside AcquireInteractiveOptions used in .AcquireTokenInteractive().
type AcquireInteractiveOption func(a *AcquireInteractiveOptions)

// WithLoginHint pre-populates the login prompt with a username. It takes precedence over the
// username of an account set with WithInteractiveAccount.
func WithLoginHint(username string) AcquireInteractiveOption {
	return func(a *AcquireInteractiveOptions) {
		a.LoginHint = username
	}
}

// WithPrompt sets the prompt behavior. Some platforms always show the account picker.
func WithPrompt(b Behavior) AcquireInteractiveOption {
	return func(a *AcquireInteractiveOptions) {
		a.Prompt = b
	}
}

// WithExtraScopesToConsent asks the user to consent to scopes for other resources up front.
func WithExtraScopesToConsent(scopes ...string) AcquireInteractiveOption {
	return func(a *AcquireInteractiveOptions) {
		a.ExtraScopesToConsent = append(a.ExtraScopesToConsent, scopes...)
	}
}

// WithInteractiveAccount names the account the user is expected to sign in with.
func WithInteractiveAccount(account Account) AcquireInteractiveOption {
	return func(a *AcquireInteractiveOptions) {
		a.Account = account
	}
}

// WithEmbeddedWebView asks for sign-in inside the application on platforms that support it.
func WithEmbeddedWebView() AcquireInteractiveOption {
	return func(a *AcquireInteractiveOptions) {
		a.EmbeddedWebView = true
	}
}

// AcquireTokenInteractive acquires a security token from the authority by signing the user in
// through a web UI. parent is the UI parent handle for platforms that need one; it may be nil.
func (pca Client) AcquireTokenInteractive(ctx context.Context, scopes []string, parent any, options ...AcquireInteractiveOption) (AuthResult, error) {
	opts := AcquireInteractiveOptions{}
	for _, o := range options {
		o(&opts)
	}
	return pca.acquire(ctx, flow.InteractiveParameters{
		Scopes:               scopes,
		ExtraScopesToConsent: opts.ExtraScopesToConsent,
		Parent:               parent,
		Behavior:             opts.Prompt,
		LoginHint:            opts.LoginHint,
		Account:              opts.Account,
		UseEmbeddedWebView:   opts.EmbeddedWebView,
	})
}

// AcquireTokenByDeviceCode acquires a security token from the authority by showing the user a
// code to enter on a second device. callback receives the code before polling starts.
func (pca Client) AcquireTokenByDeviceCode(ctx context.Context, scopes []string, callback DeviceCodeCallback) (AuthResult, error) {
	return pca.acquire(ctx, flow.DeviceCodeParameters{Scopes: scopes, Callback: callback})
}

// AcquireByIntegratedWindowsAuthOptions are all the optional settings to an
// AcquireTokenByIntegratedWindowsAuth() call.
type AcquireByIntegratedWindowsAuthOptions struct {
	Username string
}

// AcquireByIntegratedWindowsAuthOption changes options inside AcquireByIntegratedWindowsAuthOptions.
type AcquireByIntegratedWindowsAuthOption func(a *AcquireByIntegratedWindowsAuthOptions)

// WithUsername sets the username. By default the signed-in operating system user is used.
func WithUsername(username string) AcquireByIntegratedWindowsAuthOption {
	return func(a *AcquireByIntegratedWindowsAuthOptions) {
		a.Username = username
	}
}

// AcquireTokenByIntegratedWindowsAuth acquires a security token with the credentials of the
// signed-in operating system user.
func (pca Client) AcquireTokenByIntegratedWindowsAuth(ctx context.Context, scopes []string, options ...AcquireByIntegratedWindowsAuthOption) (AuthResult, error) {
	opts := AcquireByIntegratedWindowsAuthOptions{}
	for _, o := range options {
		o(&opts)
	}
	return pca.acquire(ctx, flow.IntegratedWindowsAuthParameters{Scopes: scopes, Username: opts.Username})
}

// AcquireTokenByUsernamePassword acquires a security token from the authority, via Username/Password Authentication.
// NOTE: this flow is NOT recommended, and it isn't available on mobile or browser platforms.
func (pca Client) AcquireTokenByUsernamePassword(ctx context.Context, scopes []string, username string, password string) (AuthResult, error) {
	pw := flow.NewPassword(password)
	defer pw.Clear()
	return pca.acquire(ctx, flow.UsernamePasswordParameters{Scopes: scopes, Username: username, Password: pw})
}

// AcquireSilentOptions are all the optional settings to an AcquireTokenSilent() call.
type AcquireSilentOptions struct {
	ForceRefresh bool
	Authority    string
}

// AcquireSilentOption changes options inside AcquireSilentOptions used in .AcquireTokenSilent().
type AcquireSilentOption func(a *AcquireSilentOptions)

// WithForceRefresh skips cached access tokens and always redeems a refresh token.
func WithForceRefresh() AcquireSilentOption {
	return func(a *AcquireSilentOptions) {
		a.ForceRefresh = true
	}
}

// WithAuthorityOverride requests the token from authority instead of the account's authority.
func WithAuthorityOverride(authority string) AcquireSilentOption {
	return func(a *AcquireSilentOptions) {
		a.Authority = authority
	}
}

// AcquireTokenSilent acquires a token for account without user interaction.
func (pca Client) AcquireTokenSilent(ctx context.Context, scopes []string, account Account, options ...AcquireSilentOption) (AuthResult, error) {
	opts := AcquireSilentOptions{}
	for _, o := range options {
		o(&opts)
	}
	params := flow.SilentParameters{Scopes: scopes, Account: account, ForceRefresh: opts.ForceRefresh}
	if opts.Authority != "" {
		info, err := authority.NewInfoFromAuthorityURI(opts.Authority, true)
		if err != nil {
			return AuthResult{}, fmt.Errorf("invalid authority override %q: %w", opts.Authority, err)
		}
		params.AuthorityOverride = &info
	}
	return pca.acquire(ctx, params)
}

// Accounts gets all the accounts in the token cache.
// If there are no accounts in the cache the returned slice is empty.
func (pca Client) Accounts(ctx context.Context) ([]Account, error) {
	if err := pca.replace(ctx); err != nil {
		return nil, err
	}
	return pca.store.Accounts(), nil
}

// RemoveAccount signs the account out and forgets its cached data.
func (pca Client) RemoveAccount(ctx context.Context, account Account) error {
	if err := pca.replace(ctx); err != nil {
		return err
	}
	pca.store.RemoveAccount(account)
	return pca.export(ctx)
}

// acquire validates params, dispatches them and records the signed-in account. The accessor
// loads the store from dispatch's prepare hook. Failing to save it afterwards is logged and
// doesn't fail the request: the token was issued and the caller can still use it.
func (pca Client) acquire(ctx context.Context, params flow.Parameters) (AuthResult, error) {
	if err := params.Validate(); err != nil {
		return AuthResult{}, err
	}
	res, err := pca.dispatcher.Dispatch(ctx, params)
	if err != nil {
		return res, err
	}
	if res.Account.HomeAccountID != "" {
		if err := pca.store.WriteAccount(res.Account); err != nil {
			pca.logger.Log(ctx, logger.Warn, "couldn't cache account", logger.Field("error", err.Error()))
		}
	}
	if err := pca.export(ctx); err != nil {
		pca.logger.Log(ctx, logger.Warn, "couldn't export the cache", logger.Field("error", err.Error()),
			logger.Field("correlation_id", res.CorrelationID))
	}
	return res, nil
}

// replace and export use the client ID as the partition key of every call, so all of a
// client's requests share one persisted store.
func (pca Client) replace(ctx context.Context) error {
	if pca.accessor == nil {
		return nil
	}
	pca.cacheMu.Lock()
	defer pca.cacheMu.Unlock()
	if a, ok := pca.accessor.(cache.ExportReplaceCtx); ok {
		return a.ReplaceCtx(ctx, pca.store, pca.clientID)
	}
	pca.accessor.Replace(pca.store, pca.clientID)
	return nil
}

func (pca Client) export(ctx context.Context) error {
	if pca.accessor == nil {
		return nil
	}
	pca.cacheMu.Lock()
	defer pca.cacheMu.Unlock()
	if a, ok := pca.accessor.(cache.ExportReplaceCtx); ok {
		return a.ExportCtx(ctx, pca.store, pca.clientID)
	}
	pca.accessor.Export(pca.store, pca.clientID)
	return nil
}
