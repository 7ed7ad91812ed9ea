// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.

// Package authority parses and resolves the identity provider endpoint a token is requested
// against. Nothing here performs network I/O; endpoint discovery belongs to the flow handlers.
package authority

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/AzureAD/msal-public-client-go/apps/internal/shared"
)

const (
	// AAD is the authority type of Microsoft Entra ID (Azure AD) authorities.
	AAD = "MSSTS"
	// ADFS is the authority type of Active Directory Federation Services authorities.
	ADFS = "ADFS"

	defaultHost = "login.microsoftonline.com"
)

var aadTrustedHostList = map[string]bool{
	"login.windows.net":            true, // Microsoft Azure Worldwide - Used in validation scenarios where host is not this list
	"login.chinacloudapi.cn":       true, // Microsoft Azure China
	"login.microsoftonline.de":     true, // Microsoft Azure Blackforest
	"login-us.microsoftonline.com": true, // Microsoft Azure US Government - Legacy
	"login.microsoftonline.us":     true, // Microsoft Azure US Government
	"login.microsoftonline.com":    true, // Microsoft Azure Worldwide
	"login.cloudgovapi.us":         true, // Microsoft Azure US Government
}

// TrustedHost checks if an AAD host is trusted/valid.
func TrustedHost(host string) bool {
	return aadTrustedHostList[host]
}

// Info consists of information about the authority.
type Info struct {
	Host                  string
	CanonicalAuthorityURI string
	AuthorityType         string
	UserRealmURIPrefix    string
	ValidateAuthority     bool
	Tenant                string
}

// IsZero reports whether i was never initialized.
func (i Info) IsZero() bool {
	return i == Info{}
}

// MultiTenant reports whether the authority accepts accounts from more than one tenant.
func (i Info) MultiTenant() bool {
	switch strings.ToLower(i.Tenant) {
	case "common", "organizations", "consumers":
		return true
	}
	return false
}

func firstPathSegment(u *url.URL) (string, error) {
	pathParts := strings.Split(u.EscapedPath(), "/")
	if len(pathParts) >= 2 && pathParts[1] != "" {
		return pathParts[1], nil
	}
	return "", errors.New(`authority must contain a tenant segment, e.g. "https://login.microsoftonline.com/common"`)
}

// NewInfoFromAuthorityURI creates an Info instance from the authority URL provided.
func NewInfoFromAuthorityURI(authority string, validateAuthority bool) (Info, error) {
	if authority == "" {
		return Info{}, errors.New("authority cannot be empty")
	}
	u, err := url.Parse(strings.ToLower(authority))
	if err != nil {
		return Info{}, fmt.Errorf("authority %q cannot be URL parsed: %w", authority, err)
	}
	if u.Scheme != "https" {
		return Info{}, fmt.Errorf("authority %q did not start with https://", authority)
	}
	if u.Hostname() == "" {
		return Info{}, fmt.Errorf("authority %q has no host", authority)
	}

	tenant, err := firstPathSegment(u)
	if err != nil {
		return Info{}, err
	}

	authorityType := AAD
	if tenant == "adfs" {
		authorityType = ADFS
	}

	return Info{
		Host:                  u.Hostname(),
		CanonicalAuthorityURI: fmt.Sprintf("https://%s/%s/", u.Hostname(), tenant),
		AuthorityType:         authorityType,
		UserRealmURIPrefix:    fmt.Sprintf("https://%s/common/userrealm/", u.Hostname()),
		ValidateAuthority:     validateAuthority,
		Tenant:                tenant,
	}, nil
}

// FromAccount derives the authority a cached account was issued by. The account's environment
// supplies the host (falling back to fallback.Host) and its realm supplies the tenant.
// ok is false when the account carries no realm, in which case fallback should be used.
func FromAccount(account shared.Account, fallback Info) (info Info, ok bool) {
	if account.Realm == "" {
		return Info{}, false
	}
	host := account.Environment
	if host == "" {
		host = fallback.Host
	}
	if host == "" {
		host = defaultHost
	}
	info, err := NewInfoFromAuthorityURI(fmt.Sprintf("https://%s/%s", host, account.Realm), fallback.ValidateAuthority)
	if err != nil {
		return Info{}, false
	}
	return info, true
}
