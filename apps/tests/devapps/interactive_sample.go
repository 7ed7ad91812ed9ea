// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.

package main

// To use browser login use "Mobile and desktop applications" in your App Registration's Authentication, see:
// https://stackoverflow.com/questions/61231144/getting-access-tokens-from-postman-tokens-issued-for-the-single-page-applicati

// Be aware of the callback restrictions for localhost callbacks, see:
// https://learn.microsoft.com/en-us/azure/active-directory/develop/reply-url#localhost-exceptions

import (
	"context"
	"fmt"

	"github.com/AzureAD/msal-public-client-go/apps/public"
)

func acquireTokenInteractive(ctx context.Context) {
	config := CreateConfig("config.json")
	app, err := public.New(config.ClientID,
		public.WithCache(config.accounts()),
		public.WithAuthority(config.Authority),
		public.WithHandlers(sampleHandlers()),
		public.WithLogger(sampleLogger),
		public.WithPiiLogging(true),
	)
	if err != nil {
		panic(err)
	}
	ar, err := app.AcquireTokenInteractive(ctx, config.Scopes, nil, public.WithLoginHint(config.Username))
	if err != nil {
		panic(err)
	}
	fmt.Printf("Username: %s; accesstoken: %v\n", ar.IDToken.Name, ar.AccessToken)
}
