// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.

package webui

import (
	"context"
	"fmt"

	"github.com/AzureAD/msal-public-client-go/apps/internal/local"
	"github.com/google/uuid"
	"github.com/pkg/browser"
)

// browserOpenURL is a var so tests can replace it with a fake that calls the redirect server.
var browserOpenURL = browser.OpenURL

// SystemBrowser opens the authorization URL in the user's default browser and receives the
// redirect on a loopback server.
type SystemBrowser struct {
	// Server configures the loopback server (port and pages).
	Server local.Options
}

// AcquireAuthorizationCode implements UI.
func (s SystemBrowser) AcquireAuthorizationCode(ctx context.Context, req Request) (Result, error) {
	if err := validateRequest(req); err != nil {
		return Result{}, err
	}
	state := req.State
	if state == "" {
		state = uuid.NewString()
	}

	srv, err := local.New(state, s.Server)
	if err != nil {
		return Result{}, fmt.Errorf("webui: couldn't start the redirect listener: %w", err)
	}
	defer srv.Shutdown()

	authURL, err := req.URL(srv.Addr)
	if err != nil {
		return Result{}, err
	}
	if err := browserOpenURL(authURL); err != nil {
		return Result{}, fmt.Errorf("webui: couldn't open the system browser: %w", err)
	}

	res := srv.Result(ctx)
	if res.Err != nil {
		return Result{}, res.Err
	}
	return Result{Code: res.Code, State: state, RedirectURI: srv.Addr}, nil
}
