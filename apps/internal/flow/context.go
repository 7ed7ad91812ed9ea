// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.

package flow

import (
	"github.com/AzureAD/msal-public-client-go/apps/internal/authority"
	"github.com/AzureAD/msal-public-client-go/apps/internal/shared"
	"github.com/AzureAD/msal-public-client-go/apps/internal/storage"
	"github.com/AzureAD/msal-public-client-go/apps/internal/webui"
)

// RequestContext is everything a flow handler needs to know about one request. A new
// RequestContext is built for every dispatch and belongs to that dispatch alone.
type RequestContext struct {
	// ClientID is the application (client) ID.
	ClientID string
	// Authority is the resolved authority the token is requested from.
	Authority authority.Info
	// Account is the target account, completed from the cache when it was known there.
	// It is the zero value when the request names no account.
	Account shared.Account
	// Scopes requested by the caller.
	Scopes []string
	// LoginHint is the effective login hint, "" when there is none.
	LoginHint string
	// UI is the interactive UI configuration. nil for every flow except Interactive.
	UI *webui.Config
	// CorrelationID identifies this request in logs and in requests to the authority.
	CorrelationID string
	// APIID identifies the public API that started this request.
	APIID APIID
	// Cache is the client's account cache. Handlers record signed-in accounts here.
	Cache storage.Store
}
