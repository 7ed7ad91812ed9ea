// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.

package authority

import (
	"testing"

	"github.com/AzureAD/msal-public-client-go/apps/internal/shared"
	"github.com/kylelemons/godebug/pretty"
)

func TestCreateAuthorityInfoFromAuthorityUri(t *testing.T) {
	const authorityURI = "https://login.microsoftonline.com/common/"

	want := Info{
		Host:                  "login.microsoftonline.com",
		CanonicalAuthorityURI: authorityURI,
		AuthorityType:         AAD,
		UserRealmURIPrefix:    "https://login.microsoftonline.com/common/userrealm/",
		Tenant:                "common",
		ValidateAuthority:     true,
	}
	got, err := NewInfoFromAuthorityURI(authorityURI, true)
	if err != nil {
		t.Fatalf("TestCreateAuthorityInfoFromAuthorityUri: got err == %s, want err == nil", err)
	}

	if diff := pretty.Compare(want, got); diff != "" {
		t.Errorf("TestCreateAuthorityInfoFromAuthorityUri: -want/+got:\n%s", diff)
	}
}

func TestNewInfoFromAuthorityURIErrors(t *testing.T) {
	tests := []struct {
		desc      string
		authority string
	}{
		{desc: "empty", authority: ""},
		{desc: "http scheme", authority: "http://login.microsoftonline.com/common"},
		{desc: "no tenant", authority: "https://login.microsoftonline.com"},
		{desc: "no tenant with slash", authority: "https://login.microsoftonline.com/"},
		{desc: "no host", authority: "https:///common"},
	}
	for _, test := range tests {
		if _, err := NewInfoFromAuthorityURI(test.authority, true); err == nil {
			t.Errorf("TestNewInfoFromAuthorityURIErrors(%s): got err == nil, want err != nil", test.desc)
		}
	}
}

func TestAuthorityType(t *testing.T) {
	info, err := NewInfoFromAuthorityURI("https://fs.contoso.com/adfs", false)
	if err != nil {
		t.Fatal(err)
	}
	if info.AuthorityType != ADFS {
		t.Errorf("got authority type %s, want %s", info.AuthorityType, ADFS)
	}
	if info.MultiTenant() {
		t.Error("adfs authority reported as multi-tenant")
	}
}

func TestFromAccount(t *testing.T) {
	fallback, err := NewInfoFromAuthorityURI("https://login.microsoftonline.us/organizations", true)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		desc    string
		account shared.Account
		wantOK  bool
		wantURI string
	}{
		{desc: "no realm", account: shared.Account{PreferredUsername: "user"}},
		{
			desc:    "environment and realm",
			account: shared.Account{Environment: "login.microsoftonline.com", Realm: "tenant-a"},
			wantOK:  true,
			wantURI: "https://login.microsoftonline.com/tenant-a/",
		},
		{
			desc:    "realm only uses fallback host",
			account: shared.Account{Realm: "tenant-b"},
			wantOK:  true,
			wantURI: "https://login.microsoftonline.us/tenant-b/",
		},
	}
	for _, test := range tests {
		got, ok := FromAccount(test.account, fallback)
		if ok != test.wantOK {
			t.Errorf("TestFromAccount(%s): got ok == %v, want %v", test.desc, ok, test.wantOK)
			continue
		}
		if ok && got.CanonicalAuthorityURI != test.wantURI {
			t.Errorf("TestFromAccount(%s): got %s, want %s", test.desc, got.CanonicalAuthorityURI, test.wantURI)
		}
	}
}

func TestTrustedHost(t *testing.T) {
	if !TrustedHost("login.microsoftonline.com") {
		t.Error("public cloud host isn't trusted")
	}
	if TrustedHost("login.contoso.com") {
		t.Error("unknown host is trusted")
	}
}
