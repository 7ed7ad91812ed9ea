// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.

/*
Package dispatch routes a token request to the handler for its flow.

Dispatch is synchronous up to the single call to the handler's Run, which is the only place
a request blocks. The dispatcher never retries, never changes a handler's result and never
wraps its error. The one failure it raises itself is the unsupported-operation error for a
flow the platform doesn't support, returned before any handler is constructed. A prepare
hook installed with WithPrepare runs after that check and can fail a request before its
context is built.
*/
package dispatch

import (
	"context"
	"fmt"

	"github.com/AzureAD/msal-public-client-go/apps/errors"
	"github.com/AzureAD/msal-public-client-go/apps/internal/base"
	"github.com/AzureAD/msal-public-client-go/apps/internal/flow"
	"github.com/AzureAD/msal-public-client-go/apps/internal/logger"
	"github.com/AzureAD/msal-public-client-go/apps/internal/platform"
	"github.com/AzureAD/msal-public-client-go/apps/internal/storage"
	"github.com/AzureAD/msal-public-client-go/apps/internal/webui"
)

// contextBuilder is implemented by Builder. It is an interface so tests can observe builds.
type contextBuilder interface {
	Build(params flow.Parameters) flow.RequestContext
}

// Dispatcher sends flow parameters to flow handlers. It holds no mutable state and is safe
// for concurrent use.
type Dispatcher struct {
	builder  contextBuilder
	caps     platform.Capabilities
	handlers flow.Handlers
	ui       webui.Factory
	logger   *logger.Logger
	prepare  func(ctx context.Context) error
}

type options struct {
	handlers         flow.Handlers
	ui               webui.Factory
	logger           *logger.Logger
	newCorrelationID func() string
	prepare          func(ctx context.Context) error
}

// Option is an optional argument to New.
type Option func(o *options)

// WithHandlers installs the flow handler constructors.
func WithHandlers(h flow.Handlers) Option {
	return func(o *options) {
		o.handlers = h
	}
}

// WithWebUI sets the factory that creates the UI for interactive requests.
func WithWebUI(f webui.Factory) Option {
	return func(o *options) {
		o.ui = f
	}
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithCorrelationIDs replaces the correlation ID generator.
func WithCorrelationIDs(next func() string) Option {
	return func(o *options) {
		o.newCorrelationID = next
	}
}

// WithPrepare sets a function run once a request passes the capability check and before its
// context is built. A non-nil error ends the request with that error and no handler is
// constructed. Clients use it to load persisted cache state.
func WithPrepare(prepare func(ctx context.Context) error) Option {
	return func(o *options) {
		o.prepare = prepare
	}
}

// New creates a Dispatcher for an application. caps must be the capabilities of the platform
// the requests run on, normally platform.Current().
func New(config Config, caps platform.Capabilities, cache storage.Store, opts ...Option) Dispatcher {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger.New(nil)
	}
	if o.ui == nil {
		o.ui = webui.DefaultFactory{Logger: o.logger}
	}
	if cache == nil {
		cache = storage.New()
	}
	return Dispatcher{
		builder:  NewBuilder(config, caps, cache, o.newCorrelationID),
		caps:     caps,
		handlers: o.handlers.WithDefaults(),
		ui:       o.ui,
		logger:   o.logger,
		prepare:  o.prepare,
	}
}

// Dispatch runs the flow selected by params and returns the handler's result and error
// unchanged. ctx is passed to the handler, which is responsible for observing it.
func (d Dispatcher) Dispatch(ctx context.Context, params flow.Parameters) (base.AuthResult, error) {
	switch p := params.(type) {
	case flow.InteractiveParameters:
		rc, err := d.build(ctx, p)
		if err != nil {
			return base.AuthResult{}, err
		}
		ui := d.ui.Create(*rc.UI)
		return d.handlers.Interactive(rc, p.ExtraScopesToConsent, ui).Run(ctx)

	case flow.DeviceCodeParameters:
		rc, err := d.build(ctx, p)
		if err != nil {
			return base.AuthResult{}, err
		}
		return d.handlers.DeviceCode(rc, p.Callback).Run(ctx)

	case flow.IntegratedWindowsAuthParameters:
		rc, err := d.build(ctx, p)
		if err != nil {
			return base.AuthResult{}, err
		}
		return d.handlers.IntegratedWindowsAuth(rc, p.Username).Run(ctx)

	case flow.UsernamePasswordParameters:
		if !platform.Supports(flow.UsernamePassword, d.caps) {
			d.logger.Log(ctx, logger.Warn, "flow is not supported on this platform",
				logger.Field("flow", p.Kind().String()), logger.Field("platform", d.caps.Platform))
			return base.AuthResult{}, &errors.UnsupportedOperationError{Flow: p.Kind().String(), Platform: d.caps.Platform}
		}
		rc, err := d.build(ctx, p)
		if err != nil {
			return base.AuthResult{}, err
		}
		return d.handlers.UsernamePassword(rc, p.Username, p.Password).Run(ctx)

	case flow.SilentParameters:
		rc, err := d.build(ctx, p)
		if err != nil {
			return base.AuthResult{}, err
		}
		return d.handlers.Silent(rc, p.ForceRefresh).Run(ctx)
	}
	return base.AuthResult{}, fmt.Errorf("dispatch: unsupported flow parameters %T", params)
}

func (d Dispatcher) build(ctx context.Context, params flow.Parameters) (flow.RequestContext, error) {
	if d.prepare != nil {
		if err := d.prepare(ctx); err != nil {
			return flow.RequestContext{}, err
		}
	}
	rc := d.builder.Build(params)
	fields := []any{
		logger.Field("flow", params.Kind().String()),
		logger.Field("correlation_id", rc.CorrelationID),
		logger.Field("authority", rc.Authority.CanonicalAuthorityURI),
		d.logger.PiiField("login_hint", rc.LoginHint),
	}
	if rc.UI != nil {
		fields = append(fields, logger.Field("hosting", rc.UI.Hosting.String()), logger.Field("prompt", rc.UI.Behavior.Prompt()))
	}
	d.logger.Log(ctx, logger.Debug, "dispatching token request", fields...)
	return rc, nil
}
