// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.

package flow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AzureAD/msal-public-client-go/apps/internal/authority"
	"github.com/AzureAD/msal-public-client-go/apps/internal/shared"
	"github.com/AzureAD/msal-public-client-go/apps/internal/webui"
)

// Parameters is one of Interactive, DeviceCode, IntegratedWindowsAuth, UsernamePassword
// or Silent. The set is closed; no other package can add a variant.
type Parameters interface {
	Kind() Kind
	Validate() error

	parameters()
}

// InteractiveParameters requests a token by signing the user in through a web UI.
type InteractiveParameters struct {
	Scopes []string
	// ExtraScopesToConsent are consented to up front but not included in the token.
	ExtraScopesToConsent []string
	// Parent is the caller's UI parent (a window or activity handle). May be nil.
	Parent any
	// Behavior is the requested prompt behavior.
	Behavior webui.Behavior
	// LoginHint pre-fills the account name.
	LoginHint string
	// Account, when set, is the account the user is expected to sign in with.
	Account shared.Account
	// UseEmbeddedWebView asks for an in-app web view where the platform has one.
	UseEmbeddedWebView bool
}

// DeviceCodeParameters requests a token with the device code flow.
type DeviceCodeParameters struct {
	Scopes []string
	// Callback receives the device code before polling begins.
	Callback DeviceCodeCallback
}

// IntegratedWindowsAuthParameters requests a token with the signed-in Windows identity.
type IntegratedWindowsAuthParameters struct {
	Scopes []string
	// Username is optional; the handler discovers it when empty.
	Username string
}

// UsernamePasswordParameters requests a token with a username and password.
type UsernamePasswordParameters struct {
	Scopes   []string
	Username string
	Password Password
}

// SilentParameters requests a token from the cache, refreshing it when needed.
type SilentParameters struct {
	// Scopes may be empty, in which case the cached grant is used.
	Scopes       []string
	Account      shared.Account
	ForceRefresh bool
	// AuthorityOverride replaces the authority derived from the account when set.
	AuthorityOverride *authority.Info
}

func (InteractiveParameters) Kind() Kind           { return Interactive }
func (DeviceCodeParameters) Kind() Kind            { return DeviceCode }
func (IntegratedWindowsAuthParameters) Kind() Kind { return IntegratedWindowsAuth }
func (UsernamePasswordParameters) Kind() Kind      { return UsernamePassword }
func (SilentParameters) Kind() Kind                { return Silent }

func (InteractiveParameters) parameters()           {}
func (DeviceCodeParameters) parameters()            {}
func (IntegratedWindowsAuthParameters) parameters() {}
func (UsernamePasswordParameters) parameters()      {}
func (SilentParameters) parameters()                {}

func validateScopes(kind Kind, scopes []string) error {
	if len(scopes) == 0 {
		return fmt.Errorf("%s: at least one scope is required", kind)
	}
	for _, s := range scopes {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s: scopes cannot contain an empty value", kind)
		}
	}
	return nil
}

// Validate implements Parameters.
func (p InteractiveParameters) Validate() error {
	if err := validateScopes(p.Kind(), p.Scopes); err != nil {
		return err
	}
	switch p.Behavior {
	case webui.SelectAccount, webui.Login, webui.Consent, webui.Never:
	default:
		return fmt.Errorf("interactive: unknown prompt behavior %d", p.Behavior)
	}
	return nil
}

// Validate implements Parameters.
func (p DeviceCodeParameters) Validate() error {
	if err := validateScopes(p.Kind(), p.Scopes); err != nil {
		return err
	}
	if p.Callback == nil {
		return errors.New("device-code: a device code callback is required")
	}
	return nil
}

// Validate implements Parameters.
func (p IntegratedWindowsAuthParameters) Validate() error {
	return validateScopes(p.Kind(), p.Scopes)
}

// Validate implements Parameters.
func (p UsernamePasswordParameters) Validate() error {
	if err := validateScopes(p.Kind(), p.Scopes); err != nil {
		return err
	}
	switch {
	case strings.TrimSpace(p.Username) == "":
		return errors.New("username-password: username cannot be empty")
	case p.Password.Len() == 0:
		return errors.New("username-password: password cannot be empty")
	}
	return nil
}

// Validate implements Parameters.
func (p SilentParameters) Validate() error {
	if p.Account.IsZero() {
		return errors.New("silent: an account is required")
	}
	for _, s := range p.Scopes {
		if strings.TrimSpace(s) == "" {
			return errors.New("silent: scopes cannot contain an empty value")
		}
	}
	return nil
}
