// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.

package flow

import (
	"context"
	"fmt"
	"time"

	"github.com/AzureAD/msal-public-client-go/apps/internal/base"
	"github.com/AzureAD/msal-public-client-go/apps/internal/webui"
)

// Handler runs one flow's protocol exchange for the RequestContext it was constructed with.
// Run must honor ctx cancellation at every point it blocks and should return an error
// wrapping ctx.Err() when it stops because of it.
type Handler interface {
	Run(ctx context.Context) (base.AuthResult, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context) (base.AuthResult, error)

// Run implements Handler.
func (f HandlerFunc) Run(ctx context.Context) (base.AuthResult, error) {
	return f(ctx)
}

// DeviceCodeResult is the device code the user must enter on a second device.
type DeviceCodeResult struct {
	// Message is the instruction to show to the user.
	Message string
	// UserCode is the code the user enters at VerificationURL.
	UserCode string
	// DeviceCode is the code the handler polls with.
	DeviceCode string
	// VerificationURL is where the user enters UserCode.
	VerificationURL string
	// ExpiresOn is when the device code expires.
	ExpiresOn time.Time
	// Interval is the minimum time between polls.
	Interval time.Duration
	ClientID string
	Scopes   []string
}

// DeviceCodeCallback receives the device code. The handler calls it before it starts polling
// for the token; an error from the callback ends the flow with that error.
type DeviceCodeCallback func(ctx context.Context, result DeviceCodeResult) error

// Constructors for each flow's Handler. Each receives the RequestContext and the arguments
// specific to its flow.
type (
	InteractiveConstructor           func(rc RequestContext, extraScopesToConsent []string, ui webui.UI) Handler
	DeviceCodeConstructor            func(rc RequestContext, callback DeviceCodeCallback) Handler
	IntegratedWindowsAuthConstructor func(rc RequestContext, username string) Handler
	UsernamePasswordConstructor      func(rc RequestContext, username string, password Password) Handler
	SilentConstructor                func(rc RequestContext, forceRefresh bool) Handler
)

// Handlers holds one constructor per flow. A nil constructor means no handler is installed
// for that flow; requests for it fail when they run.
type Handlers struct {
	Interactive           InteractiveConstructor
	DeviceCode            DeviceCodeConstructor
	IntegratedWindowsAuth IntegratedWindowsAuthConstructor
	UsernamePassword      UsernamePasswordConstructor
	Silent                SilentConstructor
}

// ErrNoHandler is returned by flows that have no installed handler.
type ErrNoHandler struct {
	Kind Kind
}

func (e ErrNoHandler) Error() string {
	return fmt.Sprintf("no handler is installed for the %s flow", e.Kind)
}

func unavailable(kind Kind) Handler {
	return HandlerFunc(func(context.Context) (base.AuthResult, error) {
		return base.AuthResult{}, ErrNoHandler{Kind: kind}
	})
}

// WithDefaults returns h with every nil constructor replaced by one whose handler fails with
// ErrNoHandler.
func (h Handlers) WithDefaults() Handlers {
	if h.Interactive == nil {
		h.Interactive = func(RequestContext, []string, webui.UI) Handler { return unavailable(Interactive) }
	}
	if h.DeviceCode == nil {
		h.DeviceCode = func(RequestContext, DeviceCodeCallback) Handler { return unavailable(DeviceCode) }
	}
	if h.IntegratedWindowsAuth == nil {
		h.IntegratedWindowsAuth = func(RequestContext, string) Handler { return unavailable(IntegratedWindowsAuth) }
	}
	if h.UsernamePassword == nil {
		h.UsernamePassword = func(RequestContext, string, Password) Handler { return unavailable(UsernamePassword) }
	}
	if h.Silent == nil {
		h.Silent = func(RequestContext, bool) Handler { return unavailable(Silent) }
	}
	return h
}
