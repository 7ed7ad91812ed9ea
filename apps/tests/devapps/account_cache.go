// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"regexp"

	"github.com/AzureAD/msal-public-client-go/apps/cache"
)

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// accountCache keeps the client's account store in dir, one file per partition key, so the
// samples can find a signed-in account with Accounts and use it with AcquireTokenSilent.
type accountCache struct {
	dir string
}

var _ cache.ExportReplaceCtx = accountCache{}

func (a accountCache) path(key string) string {
	return filepath.Join(a.dir, "accounts-"+unsafeKeyChars.ReplaceAllString(key, "_")+".json")
}

// ReplaceCtx loads the stored accounts for key. A missing file leaves the store empty.
func (a accountCache) ReplaceCtx(ctx context.Context, store cache.Unmarshaler, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := os.ReadFile(a.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := store.Unmarshal(data); err != nil {
		return fmt.Errorf("account cache %s: %w", a.path(key), err)
	}
	return nil
}

// ExportCtx writes the accounts for key. The file is replaced atomically so a concurrent
// sample never reads half of it.
func (a accountCache) ExportCtx(ctx context.Context, store cache.Marshaler, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := store.Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(a.dir, 0o700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(a.dir, "accounts-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), a.path(key))
}

func (a accountCache) Replace(store cache.Unmarshaler, key string) {
	if err := a.ReplaceCtx(context.Background(), store, key); err != nil {
		log.Println(err)
	}
}

func (a accountCache) Export(store cache.Marshaler, key string) {
	if err := a.ExportCtx(context.Background(), store, key); err != nil {
		log.Println(err)
	}
}
