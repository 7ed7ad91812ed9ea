// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.

package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	msalerrors "github.com/AzureAD/msal-public-client-go/apps/errors"
	"github.com/AzureAD/msal-public-client-go/apps/public"
)

func acquireByUsernamePasswordPublic(ctx context.Context) {
	config := CreateConfig("config.json")
	app, err := public.New(config.ClientID,
		public.WithCache(config.accounts()),
		public.WithAuthority(config.Authority),
		public.WithHandlers(sampleHandlers()),
	)
	if err != nil {
		panic(err)
	}

	result, err := app.AcquireTokenByUsernamePassword(ctx, config.Scopes, config.Username, config.Password)
	if errors.Is(err, msalerrors.ErrUnsupportedOperation) {
		// nothing was sent; fall back to a flow this platform supports
		log.Println(msalerrors.Verbose(err))
		acquireTokenDeviceCode(ctx)
		return
	}
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("Access token is " + result.AccessToken)
}
