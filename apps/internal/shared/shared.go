// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.

// Package shared holds types used by both the public surface and the internal packages.
package shared

import (
	"strings"
)

const (
	// CacheKeySeparator is used in creating the keys of the cache.
	CacheKeySeparator = "-"
)

// Account represents a user account known to the token cache.
type Account struct {
	HomeAccountID     string `json:"home_account_id,omitempty"`
	Environment       string `json:"environment,omitempty"`
	Realm             string `json:"realm,omitempty"`
	LocalAccountID    string `json:"local_account_id,omitempty"`
	AuthorityType     string `json:"authority_type,omitempty"`
	PreferredUsername string `json:"username,omitempty"`
	GivenName         string `json:"given_name,omitempty"`
	FamilyName        string `json:"family_name,omitempty"`
	MiddleName        string `json:"middle_name,omitempty"`
	Name              string `json:"name,omitempty"`
	AlternativeID     string `json:"alternative_account_id,omitempty"`
	RawClientInfo     string `json:"client_info,omitempty"`
}

// NewAccount creates an account.
func NewAccount(homeAccountID, env, realm, localAccountID, authorityType, username string) Account {
	return Account{
		HomeAccountID:     homeAccountID,
		Environment:       env,
		Realm:             realm,
		LocalAccountID:    localAccountID,
		AuthorityType:     authorityType,
		PreferredUsername: username,
	}
}

// Key creates the key for storing accounts in the cache.
func (acc Account) Key() string {
	return strings.Join([]string{acc.HomeAccountID, acc.Environment, acc.Realm}, CacheKeySeparator)
}

// IsZero checks the zero value of account
func (acc Account) IsZero() bool {
	return acc == Account{}
}

// Merge returns acc with every empty field filled from other. Fields already set on acc win.
func (acc Account) Merge(other Account) Account {
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&acc.HomeAccountID, other.HomeAccountID)
	fill(&acc.Environment, other.Environment)
	fill(&acc.Realm, other.Realm)
	fill(&acc.LocalAccountID, other.LocalAccountID)
	fill(&acc.AuthorityType, other.AuthorityType)
	fill(&acc.PreferredUsername, other.PreferredUsername)
	fill(&acc.GivenName, other.GivenName)
	fill(&acc.FamilyName, other.FamilyName)
	fill(&acc.MiddleName, other.MiddleName)
	fill(&acc.Name, other.Name)
	fill(&acc.AlternativeID, other.AlternativeID)
	fill(&acc.RawClientInfo, other.RawClientInfo)
	return acc
}
