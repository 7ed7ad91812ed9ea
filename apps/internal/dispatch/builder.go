// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.

package dispatch

import (
	"strings"

	"github.com/AzureAD/msal-public-client-go/apps/internal/authority"
	"github.com/AzureAD/msal-public-client-go/apps/internal/flow"
	"github.com/AzureAD/msal-public-client-go/apps/internal/platform"
	"github.com/AzureAD/msal-public-client-go/apps/internal/shared"
	"github.com/AzureAD/msal-public-client-go/apps/internal/storage"
	"github.com/AzureAD/msal-public-client-go/apps/internal/webui"
	"github.com/google/uuid"
)

// Config is the application configuration every request starts from.
type Config struct {
	ClientID string
	// Authority is the application's default authority.
	Authority authority.Info
	// UseCorporateNetwork asks for the managed network context on platforms that apply one.
	UseCorporateNetwork bool
}

// Builder turns flow parameters into a RequestContext. Build does no I/O and has no side
// effects beyond drawing a new correlation ID; it is safe for concurrent use.
type Builder struct {
	config Config
	caps   platform.Capabilities
	// cache is only read here. It is handed to flow handlers through the RequestContext.
	cache            storage.Store
	newCorrelationID func() string
}

// NewBuilder creates a Builder. A nil newCorrelationID uses random UUIDs.
func NewBuilder(config Config, caps platform.Capabilities, cache storage.Store, newCorrelationID func() string) Builder {
	if newCorrelationID == nil {
		newCorrelationID = uuid.NewString
	}
	return Builder{config: config, caps: caps, cache: cache, newCorrelationID: newCorrelationID}
}

// Build creates the RequestContext for params.
func (b Builder) Build(params flow.Parameters) flow.RequestContext {
	rc := flow.RequestContext{
		ClientID:      b.config.ClientID,
		CorrelationID: b.newCorrelationID(),
		Cache:         b.cache,
	}

	var (
		scopes   []string
		account  shared.Account
		hint     string
		override *authority.Info
	)
	switch p := params.(type) {
	case flow.InteractiveParameters:
		scopes, account, hint = p.Scopes, p.Account, p.LoginHint
		ui := uiConfig(p, b.caps, b.config.UseCorporateNetwork)
		rc.UI = &ui
		rc.APIID = flow.APIIDAcquireTokenInteractive
	case flow.DeviceCodeParameters:
		scopes = p.Scopes
		rc.APIID = flow.APIIDAcquireTokenByDeviceCode
	case flow.IntegratedWindowsAuthParameters:
		scopes = p.Scopes
		rc.APIID = flow.APIIDAcquireTokenByIntegratedWindowsAuth
	case flow.UsernamePasswordParameters:
		scopes = p.Scopes
		rc.APIID = flow.APIIDAcquireTokenByUsernamePassword
	case flow.SilentParameters:
		scopes, account, override = p.Scopes, p.Account, p.AuthorityOverride
		rc.APIID = flow.APIIDAcquireTokenSilent
		if override != nil {
			rc.APIID = flow.APIIDAcquireTokenSilentWithAuthority
		}
	}

	rc.Scopes = append([]string(nil), scopes...)
	rc.Account = b.targetAccount(account)
	rc.Authority = resolveAuthority(override, rc.Account, b.config.Authority)
	rc.LoginHint = loginHint(hint, rc.Account)
	return rc
}

// targetAccount completes account with what the cache knows about it.
func (b Builder) targetAccount(account shared.Account) shared.Account {
	if account.IsZero() || b.cache == nil {
		return account
	}
	if cached, ok := b.cache.Account(account.HomeAccountID); ok {
		return account.Merge(cached)
	}
	return account
}

// resolveAuthority picks the override, then the account's authority, then the default.
func resolveAuthority(override *authority.Info, account shared.Account, fallback authority.Info) authority.Info {
	if override != nil {
		return *override
	}
	if info, ok := authority.FromAccount(account, fallback); ok {
		return info
	}
	return fallback
}

// loginHint returns the explicit hint if there is one, else the account's username.
// The two are never combined.
func loginHint(explicit string, account shared.Account) string {
	if strings.TrimSpace(explicit) != "" {
		return explicit
	}
	return account.PreferredUsername
}

// uiConfig derives the interactive UI configuration. The platform's forced behavior beats
// the caller's; hosting follows from the effective behavior and what the platform can host,
// falling back to a visible browser. The corporate network flag only applies on platforms
// that use it.
func uiConfig(p flow.InteractiveParameters, caps platform.Capabilities, useCorporateNetwork bool) webui.Config {
	behavior := p.Behavior
	if caps.ForcesBehavior {
		behavior = caps.ForcedBehavior
	}

	hosting := webui.Visible
	switch {
	case behavior == webui.Never && caps.HiddenBrowser:
		hosting = webui.Hidden
	case p.UseEmbeddedWebView && caps.EmbeddedWebView:
		hosting = webui.Embedded
	}

	return webui.Config{
		Hosting:             hosting,
		Behavior:            behavior,
		UseCorporateNetwork: caps.CorporateNetwork && useCorporateNetwork,
		Parent:              p.Parent,
	}
}
