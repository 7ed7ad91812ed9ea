// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.

package main

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/AzureAD/msal-public-client-go/apps/public"
)

// openID scopes are added to every request so the response carries an ID token, client info
// and a refresh token.
var openIDScopes = []string{"openid", "offline_access", "profile"}

// tokenClient redeems grants at the authority's v2.0 endpoints. Refresh tokens are kept in
// memory by home account ID for the silent flow.
type tokenClient struct {
	http *http.Client

	mu            sync.Mutex
	refreshTokens map[string]string
}

func newTokenClient() *tokenClient {
	return &tokenClient{http: &http.Client{Timeout: 30 * time.Second}, refreshTokens: map[string]string{}}
}

// sampleHandlers signs users in against the Microsoft identity platform.
func sampleHandlers() public.Handlers {
	c := newTokenClient()
	return public.Handlers{
		Interactive: func(rc public.RequestContext, extraScopes []string, ui public.UI) public.Handler {
			return public.HandlerFunc(func(ctx context.Context) (public.AuthResult, error) {
				verifier, challenge, err := pkce()
				if err != nil {
					return public.AuthResult{}, err
				}
				code, err := ui.AcquireAuthorizationCode(ctx, public.AuthorizationRequest{
					URL:   authorizeURL(rc, extraScopes, challenge),
					State: rc.CorrelationID,
				})
				if err != nil {
					return public.AuthResult{}, err
				}
				return c.redeem(ctx, rc, url.Values{
					"grant_type":    {"authorization_code"},
					"code":          {code.Code},
					"redirect_uri":  {code.RedirectURI},
					"code_verifier": {verifier},
				})
			})
		},
		DeviceCode: func(rc public.RequestContext, callback public.DeviceCodeCallback) public.Handler {
			return public.HandlerFunc(func(ctx context.Context) (public.AuthResult, error) {
				return c.deviceCode(ctx, rc, callback)
			})
		},
		UsernamePassword: func(rc public.RequestContext, username string, password public.Password) public.Handler {
			return public.HandlerFunc(func(ctx context.Context) (public.AuthResult, error) {
				return c.redeem(ctx, rc, url.Values{
					"grant_type": {"password"},
					"username":   {username},
					"password":   {string(password.Bytes())},
				})
			})
		},
		Silent: func(rc public.RequestContext, forceRefresh bool) public.Handler {
			return public.HandlerFunc(func(ctx context.Context) (public.AuthResult, error) {
				c.mu.Lock()
				rt, ok := c.refreshTokens[rc.Account.HomeAccountID]
				c.mu.Unlock()
				if !ok {
					return public.AuthResult{}, fmt.Errorf("no refresh token for account %s", rc.Account.HomeAccountID)
				}
				return c.redeem(ctx, rc, url.Values{"grant_type": {"refresh_token"}, "refresh_token": {rt}})
			})
		},
	}
}

// tokenReply is the body of a token endpoint response.
type tokenReply struct {
	AccessToken      string `json:"access_token"`
	RefreshToken     string `json:"refresh_token"`
	IDToken          string `json:"id_token"`
	ClientInfo       string `json:"client_info"`
	ExpiresIn        int    `json:"expires_in"`
	Scope            string `json:"scope"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// redeem posts form to the token endpoint and builds the result from the reply.
func (c *tokenClient) redeem(ctx context.Context, rc public.RequestContext, form url.Values) (public.AuthResult, error) {
	var reply tokenReply
	if err := c.post(ctx, rc, "token", form, &reply); err != nil {
		return public.AuthResult{}, err
	}
	if reply.Error != "" {
		return public.AuthResult{}, fmt.Errorf("token endpoint: %s: %s", reply.Error, reply.ErrorDescription)
	}

	resp := public.TokenResponse{
		AccessToken:   reply.AccessToken,
		RefreshToken:  reply.RefreshToken,
		IDToken:       reply.IDToken,
		ExpiresOn:     time.Now().Add(time.Duration(reply.ExpiresIn) * time.Second),
		GrantedScopes: strings.Fields(reply.Scope),
	}
	if reply.ClientInfo != "" {
		b, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(reply.ClientInfo, "="))
		if err != nil {
			return public.AuthResult{}, fmt.Errorf("client_info: %w", err)
		}
		if err := json.Unmarshal(b, &resp.ClientInfo); err != nil {
			return public.AuthResult{}, fmt.Errorf("client_info: %w", err)
		}
	}
	res, err := public.NewAuthResult(resp, rc)
	if err != nil {
		return public.AuthResult{}, err
	}
	if resp.RefreshToken != "" && res.Account.HomeAccountID != "" {
		c.mu.Lock()
		c.refreshTokens[res.Account.HomeAccountID] = resp.RefreshToken
		c.mu.Unlock()
	}
	return res, nil
}

type deviceCodeReply struct {
	DeviceCode      string `json:"device_code"`
	UserCode        string `json:"user_code"`
	VerificationURI string `json:"verification_uri"`
	ExpiresIn       int    `json:"expires_in"`
	Interval        int    `json:"interval"`
	Message         string `json:"message"`
}

// deviceCode starts a device code request and polls the token endpoint until the user
// finishes, the code expires or ctx is done.
func (c *tokenClient) deviceCode(ctx context.Context, rc public.RequestContext, callback public.DeviceCodeCallback) (public.AuthResult, error) {
	var dc deviceCodeReply
	if err := c.post(ctx, rc, "devicecode", url.Values{}, &dc); err != nil {
		return public.AuthResult{}, err
	}
	interval := time.Duration(dc.Interval) * time.Second
	if interval <= 0 {
		interval = 5 * time.Second
	}
	result := public.DeviceCodeResult{
		Message:         dc.Message,
		UserCode:        dc.UserCode,
		DeviceCode:      dc.DeviceCode,
		VerificationURL: dc.VerificationURI,
		ExpiresOn:       time.Now().Add(time.Duration(dc.ExpiresIn) * time.Second),
		Interval:        interval,
		ClientID:        rc.ClientID,
		Scopes:          rc.Scopes,
	}
	if err := callback(ctx, result); err != nil {
		return public.AuthResult{}, err
	}

	for {
		if time.Now().After(result.ExpiresOn) {
			return public.AuthResult{}, errors.New("device code expired before the user signed in")
		}
		select {
		case <-ctx.Done():
			return public.AuthResult{}, ctx.Err()
		case <-time.After(interval):
		}
		res, err := c.redeem(ctx, rc, url.Values{
			"grant_type":  {"urn:ietf:params:oauth:grant-type:device_code"},
			"device_code": {dc.DeviceCode},
		})
		if err != nil && strings.Contains(err.Error(), "authorization_pending") {
			continue
		}
		return res, err
	}
}

func (c *tokenClient) post(ctx context.Context, rc public.RequestContext, endpoint string, form url.Values, v any) error {
	form.Set("client_id", rc.ClientID)
	form.Set("scope", scopes(rc.Scopes, nil))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		rc.Authority.CanonicalAuthorityURI+"oauth2/v2.0/"+endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("client-request-id", rc.CorrelationID)

	reply, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer reply.Body.Close()
	// error replies carry a JSON body too
	return json.NewDecoder(reply.Body).Decode(v)
}

func scopes(requested, extra []string) string {
	all := append(append(append([]string{}, requested...), extra...), openIDScopes...)
	return strings.Join(all, " ")
}

// pkce returns a code verifier and its S256 challenge.
func pkce() (verifier, challenge string, err error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", err
	}
	verifier = base64.RawURLEncoding.EncodeToString(b)
	sum := sha256.Sum256([]byte(verifier))
	return verifier, base64.RawURLEncoding.EncodeToString(sum[:]), nil
}

func authorizeURL(rc public.RequestContext, extraScopes []string, challenge string) func(string) (string, error) {
	return func(redirectURI string) (string, error) {
		q := url.Values{}
		q.Set("client_id", rc.ClientID)
		q.Set("response_type", "code")
		q.Set("redirect_uri", redirectURI)
		q.Set("scope", scopes(rc.Scopes, extraScopes))
		q.Set("state", rc.CorrelationID)
		q.Set("prompt", rc.UI.Behavior.Prompt())
		q.Set("code_challenge", challenge)
		q.Set("code_challenge_method", "S256")
		if rc.LoginHint != "" {
			q.Set("login_hint", rc.LoginHint)
		}
		return rc.Authority.CanonicalAuthorityURI + "oauth2/v2.0/authorize?" + q.Encode(), nil
	}
}
