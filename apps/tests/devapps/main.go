// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.

package main

import (
	"context"
	"log/slog"
	"os"
)

var sampleLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

func main() {
	ctx := context.Background()

	// Choose a sample to run.
	exampleType := "1"

	if exampleType == "1" {
		acquireTokenDeviceCode(ctx)
	} else if exampleType == "2" {
		acquireTokenInteractive(ctx)
	} else if exampleType == "3" {
		// Fails with an unsupported operation error on mobile and browser platforms.
		acquireByUsernamePasswordPublic(ctx)
	}
}
