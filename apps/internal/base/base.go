// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.

// Package base holds the result type shared by every flow and the helpers flow handlers
// use to build it from a token response.
package base

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AzureAD/msal-public-client-go/apps/internal/authority"
	"github.com/AzureAD/msal-public-client-go/apps/internal/shared"
	"github.com/golang-jwt/jwt/v5"
)

// AuthResult contains the results of one token acquisition operation.
// For details see https://aka.ms/msal-net-authenticationresult
type AuthResult struct {
	Account        shared.Account
	IDToken        IDToken
	AccessToken    string
	ExpiresOn      time.Time
	GrantedScopes  []string
	DeclinedScopes []string
	// CorrelationID is the correlation ID of the request that produced this result.
	CorrelationID string
}

// IDToken consists of all the information used to validate a user.
// https://docs.microsoft.com/azure/active-directory/develop/id-tokens .
type IDToken struct {
	PreferredUsername string `json:"preferred_username,omitempty"`
	GivenName         string `json:"given_name,omitempty"`
	FamilyName        string `json:"family_name,omitempty"`
	MiddleName        string `json:"middle_name,omitempty"`
	Name              string `json:"name,omitempty"`
	Oid               string `json:"oid,omitempty"`
	TenantID          string `json:"tid,omitempty"`
	UPN               string `json:"upn,omitempty"`
	Email             string `json:"email,omitempty"`
	jwt.RegisteredClaims

	RawToken string `json:"-"`
}

// IsZero indicates if the IDToken is the zero value.
func (i IDToken) IsZero() bool {
	return i.RawToken == "" && i.PreferredUsername == "" && i.Oid == "" && i.Subject == ""
}

// LocalAccountID returns the object ID, or the subject when the token has no oid claim.
func (i IDToken) LocalAccountID() string {
	if i.Oid != "" {
		return i.Oid
	}
	return i.Subject
}

// Username returns the best available sign-in name.
func (i IDToken) Username() string {
	switch {
	case i.PreferredUsername != "":
		return i.PreferredUsername
	case i.UPN != "":
		return i.UPN
	}
	return i.Email
}

// ParseIDToken decodes the claims of a raw ID token. The signature is NOT verified: the
// token arrived over TLS from the authority it was requested from and is only read to
// describe the signed-in account.
func ParseIDToken(raw string) (IDToken, error) {
	if raw == "" {
		return IDToken{}, nil
	}
	var claims IDToken
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return IDToken{}, fmt.Errorf("problem decoding ID token: %w", err)
	}
	claims.RawToken = raw
	return claims, nil
}

// ClientInfo is the decoded client_info of a token response.
type ClientInfo struct {
	UID  string `json:"uid"`
	UTID string `json:"utid"`
}

// HomeAccountID returns the home account ID, "uid.utid".
func (c ClientInfo) HomeAccountID() string {
	if c.UID == "" || c.UTID == "" {
		return ""
	}
	return c.UID + "." + c.UTID
}

// TokenResponse is what a flow handler received from the token endpoint.
type TokenResponse struct {
	AccessToken    string
	RefreshToken   string
	IDToken        string
	ClientInfo     ClientInfo
	ExpiresOn      time.Time
	GrantedScopes  []string
	DeclinedScopes []string
}

// NewAuthResult creates an AuthResult. The account is derived from the ID token and client
// info; auth supplies its environment and, when the ID token has no tid claim, its realm.
func NewAuthResult(tokenResponse TokenResponse, auth authority.Info, correlationID string) (AuthResult, error) {
	if tokenResponse.AccessToken == "" {
		return AuthResult{}, errors.New("token response has no access token")
	}
	if len(tokenResponse.DeclinedScopes) > 0 {
		return AuthResult{}, fmt.Errorf("token response failed because declined scopes are present: %s", strings.Join(tokenResponse.DeclinedScopes, ","))
	}
	idToken, err := ParseIDToken(tokenResponse.IDToken)
	if err != nil {
		return AuthResult{}, err
	}

	var account shared.Account
	if !idToken.IsZero() {
		realm := idToken.TenantID
		if realm == "" {
			realm = auth.Tenant
		}
		account = shared.Account{
			HomeAccountID:     tokenResponse.ClientInfo.HomeAccountID(),
			Environment:       auth.Host,
			Realm:             realm,
			LocalAccountID:    idToken.LocalAccountID(),
			AuthorityType:     auth.AuthorityType,
			PreferredUsername: idToken.Username(),
			GivenName:         idToken.GivenName,
			FamilyName:        idToken.FamilyName,
			MiddleName:        idToken.MiddleName,
			Name:              idToken.Name,
		}
	}

	return AuthResult{
		Account:       account,
		IDToken:       idToken,
		AccessToken:   tokenResponse.AccessToken,
		ExpiresOn:     tokenResponse.ExpiresOn,
		GrantedScopes: tokenResponse.GrantedScopes,
		CorrelationID: correlationID,
	}, nil
}
