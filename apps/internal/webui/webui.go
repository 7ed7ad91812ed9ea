// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.

/*
Package webui decides how the interactive sign-in page is hosted and provides the default
host, the system browser.

A Config is produced per request by request context building. A Factory turns it into a UI,
which the interactive flow handler uses to obtain an authorization code. Platforms that can
host an embedded web view or a hidden browser (mobile and Windows hosts) supply their own UI
for those modes through DefaultFactory.
*/
package webui

import (
	"context"
	"fmt"
)

// Behavior is the prompt behavior requested for interactive sign-in.
type Behavior int

const (
	// SelectAccount shows the account picker. This is the default.
	SelectAccount Behavior = iota
	// Login forces the user to enter credentials even when a session exists.
	Login
	// Consent asks for consent even if it was already granted.
	Consent
	// Never must not show any prompt; the request fails if interaction is needed.
	Never
)

// Prompt returns the OAuth "prompt" query parameter value for b.
func (b Behavior) Prompt() string {
	switch b {
	case Login:
		return "login"
	case Consent:
		return "consent"
	case Never:
		return "none"
	default:
		return "select_account"
	}
}

func (b Behavior) String() string {
	return b.Prompt()
}

// Hosting is where the sign-in page is rendered.
type Hosting int

const (
	// Visible renders in a browser window the user can see.
	Visible Hosting = iota
	// Hidden renders in a browser the user never sees. Used with Never.
	Hidden
	// Embedded renders in a web view inside the application.
	Embedded
)

func (h Hosting) String() string {
	switch h {
	case Hidden:
		return "hidden"
	case Embedded:
		return "embedded"
	default:
		return "visible"
	}
}

// Config is the resolved UI configuration of one interactive request.
type Config struct {
	// Hosting is the hosting mode chosen for this platform.
	Hosting Hosting
	// Behavior is the effective prompt behavior. It may differ from the caller's request
	// when the platform forces a behavior.
	Behavior Behavior
	// UseCorporateNetwork is set when the platform applies a managed network context.
	UseCorporateNetwork bool
	// Parent is the caller's UI parent handle, passed through untouched.
	Parent any
}

// Request describes one authorization code request.
type Request struct {
	// URL builds the authorization URL for the redirect URI the UI will listen on.
	URL func(redirectURI string) (string, error)
	// State is the OAuth state value. A random value is used when empty.
	State string
}

// Result is a received authorization code.
type Result struct {
	Code        string
	State       string
	RedirectURI string
}

// UI obtains an authorization code from the user.
type UI interface {
	AcquireAuthorizationCode(ctx context.Context, req Request) (Result, error)
}

// Factory creates the UI for a request's Config.
type Factory interface {
	Create(cfg Config) UI
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc func(cfg Config) UI

// Create implements Factory.
func (f FactoryFunc) Create(cfg Config) UI {
	return f(cfg)
}

func validateRequest(req Request) error {
	if req.URL == nil {
		return fmt.Errorf("webui: Request.URL cannot be nil")
	}
	return nil
}
