// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.

/*
Package platform describes what the running platform can do: which flows it supports and
which ways of hosting interactive sign-in it has.

Capabilities are computed once per process by Current and never change afterwards. Every
platform-dependent decision (the flow gate in Supports and the UI hosting fallback used when
building request contexts) reads the same Capabilities value.
*/
package platform

import (
	"runtime"
	"sync"

	"github.com/AzureAD/msal-public-client-go/apps/internal/flow"
	"github.com/AzureAD/msal-public-client-go/apps/internal/webui"
)

// FlowSet is a set of flow kinds.
type FlowSet uint8

// NewFlowSet returns a set holding kinds.
func NewFlowSet(kinds ...flow.Kind) FlowSet {
	var s FlowSet
	for _, k := range kinds {
		s |= 1 << uint(k)
	}
	return s
}

// Has reports whether k is in s.
func (s FlowSet) Has(k flow.Kind) bool {
	if k < 0 || int(k) >= 8 {
		return false
	}
	return s&(1<<uint(k)) != 0
}

// Capabilities is a snapshot of a platform's features. It is a value type: copies are
// independent and safe to share between goroutines.
type Capabilities struct {
	// Platform names the platform, normally a GOOS value.
	Platform string
	// Flows are the flows the platform supports.
	Flows FlowSet
	// EmbeddedWebView is set when the platform can host sign-in inside the application.
	EmbeddedWebView bool
	// HiddenBrowser is set when the platform can run sign-in in a browser the user can't see.
	HiddenBrowser bool
	// CorporateNetwork is set when the platform applies a managed network context to
	// interactive sign-in.
	CorporateNetwork bool
	// ForcesBehavior is set on platforms that always use ForcedBehavior for interactive
	// sign-in, whatever the caller asked for.
	ForcesBehavior bool
	ForcedBehavior webui.Behavior
}

// Supports reports whether kind is available on the platform described by caps.
// It is the only place that answers that question.
func Supports(kind flow.Kind, caps Capabilities) bool {
	switch kind {
	case flow.Interactive, flow.DeviceCode, flow.IntegratedWindowsAuth, flow.UsernamePassword, flow.Silent:
		return caps.Flows.Has(kind)
	}
	return false
}

var (
	desktopFlows = NewFlowSet(flow.Interactive, flow.DeviceCode, flow.UsernamePassword, flow.Silent)
	mobileFlows  = NewFlowSet(flow.Interactive, flow.DeviceCode, flow.Silent)
)

// For returns the capabilities of the platform named by goos.
func For(goos string) Capabilities {
	switch goos {
	case "windows":
		return Capabilities{
			Platform:         goos,
			Flows:            desktopFlows | NewFlowSet(flow.IntegratedWindowsAuth),
			HiddenBrowser:    true,
			CorporateNetwork: true,
		}
	case "android", "ios":
		return Capabilities{
			Platform:        goos,
			Flows:           mobileFlows,
			EmbeddedWebView: true,
		}
	case "js", "wasip1":
		// No account picker state survives between page loads, so every prompt
		// asks the user to pick an account.
		return Capabilities{
			Platform:       goos,
			Flows:          mobileFlows,
			ForcesBehavior: true,
			ForcedBehavior: webui.SelectAccount,
		}
	}
	return Capabilities{
		Platform: goos,
		Flows:    desktopFlows,
	}
}

var (
	currentOnce sync.Once
	current     Capabilities
)

// Current returns the capabilities of the running platform. The value is computed on the
// first call and returned unchanged for the life of the process.
func Current() Capabilities {
	currentOnce.Do(func() {
		current = For(runtime.GOOS)
	})
	return current
}
