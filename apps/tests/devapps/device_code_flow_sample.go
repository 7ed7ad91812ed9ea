// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/AzureAD/msal-public-client-go/apps/public"
)

func acquireTokenDeviceCode(ctx context.Context) {
	config := CreateConfig("config.json")

	app, err := public.New(config.ClientID,
		public.WithCache(config.accounts()),
		public.WithAuthority(config.Authority),
		public.WithHandlers(sampleHandlers()),
		public.WithLogger(sampleLogger),
	)
	if err != nil {
		panic(err)
	}

	// look in the cache to see if the account to use has been cached
	accounts, err := app.Accounts(ctx)
	if err != nil {
		panic(err)
	}
	for _, account := range accounts {
		if account.PreferredUsername != config.Username {
			continue
		}
		result, err := app.AcquireTokenSilent(ctx, config.Scopes, account)
		if err == nil {
			fmt.Println("Access token is " + result.AccessToken)
			return
		}
		fmt.Printf("silent token acquisition failed: %s\n", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 100*time.Second)
	defer cancel()
	result, err := app.AcquireTokenByDeviceCode(ctx, config.Scopes, func(_ context.Context, dc public.DeviceCodeResult) error {
		fmt.Printf("Device Code is: %s\n", dc.Message)
		return nil
	})
	if err != nil {
		panic(fmt.Sprintf("got error while waiting for user to input the device code: %s", err))
	}
	fmt.Println("Access token is " + result.AccessToken)
}
