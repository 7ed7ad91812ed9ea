// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.

package webui

import (
	"context"

	"github.com/AzureAD/msal-public-client-go/apps/internal/logger"
)

// DefaultFactory returns host-supplied UIs for hidden and embedded hosting and the system
// browser otherwise. A hosting mode without a host-supplied UI falls back to Visible.
type DefaultFactory struct {
	// Hidden hosts the sign-in page in a browser the user can't see.
	Hidden UI
	// Embedded hosts the sign-in page in an in-app web view.
	Embedded UI
	// System is the UI used for Visible hosting.
	System SystemBrowser
	Logger *logger.Logger
}

// Create implements Factory.
func (f DefaultFactory) Create(cfg Config) UI {
	switch cfg.Hosting {
	case Hidden:
		if f.Hidden != nil {
			return f.Hidden
		}
	case Embedded:
		if f.Embedded != nil {
			return f.Embedded
		}
	default:
		return f.System
	}
	f.Logger.Log(context.Background(), logger.Warn, "no UI registered for hosting mode, using the system browser",
		logger.Field("hosting", cfg.Hosting.String()))
	return f.System
}
