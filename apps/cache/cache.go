// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.

/*
Package cache lets applications persist the client's account store, so a user signed in
by one process can be found with Client.Accounts and used with AcquireTokenSilent by the next.

The client loads the store before a request runs and saves it after the request succeeds.
Both calls carry the client ID as the partition key, so every request of one client reads
and writes the same entry. The bytes describe accounts only; access and refresh tokens stay
with the flow handlers. Treat them as opaque: the encoding may change between releases.
*/
package cache

import "context"

// Marshaler encodes the account store for storage.
type Marshaler interface {
	Marshal() ([]byte, error)
}

// Unmarshaler decodes stored bytes into the account store, replacing its accounts.
type Unmarshaler interface {
	Unmarshal([]byte) error
}

// Serializer is an account store that can be both saved and loaded.
type Serializer interface {
	Marshaler
	Unmarshaler
}

// ExportReplaceCtx is ExportReplace with a context. The client prefers these methods when an
// accessor has them, and passes the request's context. An implementation should return
// ctx.Err() once the context is done and apply its own timeout when the context has none.
type ExportReplaceCtx interface {
	ExportReplace

	// ReplaceCtx loads the stored entry for key into cache. A missing entry is not an error.
	ReplaceCtx(ctx context.Context, cache Unmarshaler, key string) error
	// ExportCtx stores cache.Marshal() under key.
	ExportCtx(ctx context.Context, cache Marshaler, key string) error
}

// ExportReplace loads and saves the account store. Replace and Export can't report failure;
// an implementation that needs to should implement ExportReplaceCtx.
type ExportReplace interface {
	// Replace loads the stored entry for key into cache.
	Replace(cache Unmarshaler, key string)
	// Export stores cache.Marshal() under key.
	Export(cache Marshaler, key string)
}
