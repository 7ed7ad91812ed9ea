// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.

/*
Package flow defines what a token acquisition request looks like by the time it is
dispatched: the closed set of flow parameter variants, the per-request context built for
it, and the contract every flow handler implements.

Parameters are immutable values. They are validated when they are created by the public
entry points and are never modified afterwards.
*/
package flow

// Kind identifies one way of obtaining a token.
type Kind int

const (
	Interactive Kind = iota
	DeviceCode
	IntegratedWindowsAuth
	UsernamePassword
	Silent
)

// Kinds lists every Kind.
var Kinds = []Kind{Interactive, DeviceCode, IntegratedWindowsAuth, UsernamePassword, Silent}

func (k Kind) String() string {
	switch k {
	case Interactive:
		return "interactive"
	case DeviceCode:
		return "device-code"
	case IntegratedWindowsAuth:
		return "integrated-windows-auth"
	case UsernamePassword:
		return "username-password"
	case Silent:
		return "silent"
	}
	return "unknown"
}

// APIID identifies the public API that started a request. Handlers attach it to the
// telemetry they emit.
type APIID int

const (
	APIIDNone APIID = iota
	APIIDAcquireTokenInteractive
	APIIDAcquireTokenByDeviceCode
	APIIDAcquireTokenByIntegratedWindowsAuth
	APIIDAcquireTokenByUsernamePassword
	APIIDAcquireTokenSilent
	APIIDAcquireTokenSilentWithAuthority
)

func (a APIID) String() string {
	switch a {
	case APIIDAcquireTokenInteractive:
		return "AcquireTokenInteractive"
	case APIIDAcquireTokenByDeviceCode:
		return "AcquireTokenByDeviceCode"
	case APIIDAcquireTokenByIntegratedWindowsAuth:
		return "AcquireTokenByIntegratedWindowsAuth"
	case APIIDAcquireTokenByUsernamePassword:
		return "AcquireTokenByUsernamePassword"
	case APIIDAcquireTokenSilent:
		return "AcquireTokenSilent"
	case APIIDAcquireTokenSilentWithAuthority:
		return "AcquireTokenSilentWithAuthority"
	}
	return "None"
}
