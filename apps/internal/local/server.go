// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.

// Package local contains the loopback HTTP server that receives the authorization redirect
// when the system browser hosts the interactive sign-in.
package local

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"strconv"
	"time"
)

var defaultSuccessPage = template.Must(template.New("ok").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8" />
    <title>Authentication Complete</title>
</head>
<body>
    <p>Authentication complete. You can return to the application. Feel free to close this browser tab.</p>
</body>
</html>
`))

var defaultErrorPage = template.Must(template.New("fail").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8" />
    <title>Authentication Failed</title>
</head>
<body>
	<p>Authentication failed. You can return to the application. Feel free to close this browser tab.</p>
	<p>Error details: error {{.Code}}, error description: {{.Description}}</p>
</body>
</html>
`))

// Result is the result from the redirect.
type Result struct {
	// Code is the authorization code sent by the authority.
	Code string
	// Err is set if there was an error.
	Err error
}

// Options configures a Server.
type Options struct {
	// Port to listen on. Zero picks a free port.
	Port int
	// SuccessPage and ErrorPage replace the default pages. The error page receives a value
	// with Code and Description fields; html/template escapes both.
	SuccessPage *template.Template
	ErrorPage   *template.Template
}

// Server is an HTTP server listening on localhost for a single redirect.
type Server struct {
	// Addr is the address the server is listening on, e.g. "http://localhost:53124".
	Addr string

	reqState    string
	resultCh    chan Result
	s           *http.Server
	successPage *template.Template
	errorPage   *template.Template
}

// New creates a local HTTP server and starts it. reqState is the OAuth state value the
// redirect must echo back.
func New(reqState string, opts Options) (*Server, error) {
	if reqState == "" {
		return nil, errors.New("local: request state cannot be empty")
	}

	l, err := listen(opts.Port)
	if err != nil {
		return nil, err
	}

	serv := &Server{
		Addr:        "http://localhost:" + strconv.Itoa(l.Addr().(*net.TCPAddr).Port),
		reqState:    reqState,
		resultCh:    make(chan Result, 1),
		successPage: opts.SuccessPage,
		errorPage:   opts.ErrorPage,
	}
	if serv.successPage == nil {
		serv.successPage = defaultSuccessPage
	}
	if serv.errorPage == nil {
		serv.errorPage = defaultErrorPage
	}
	serv.s = &http.Server{Handler: http.HandlerFunc(serv.handler), ReadHeaderTimeout: time.Second}

	go func() {
		if err := serv.s.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serv.putResult(Result{Err: err})
		}
	}()
	return serv, nil
}

func listen(port int) (net.Listener, error) {
	if port > 0 {
		return net.Listen("tcp", fmt.Sprintf("localhost:%d", port))
	}
	var err error
	for i := 0; i < 10; i++ {
		var l net.Listener
		if l, err = net.Listen("tcp", "localhost:0"); err == nil {
			return l, nil
		}
	}
	return nil, err
}

// Result gets the result of the redirect operation. ctx deadline will be honored.
func (s *Server) Result(ctx context.Context) Result {
	select {
	case <-ctx.Done():
		return Result{Err: ctx.Err()}
	case r := <-s.resultCh:
		return r
	}
}

// Shutdown shuts down the server.
func (s *Server) Shutdown() {
	// Note: this can't be deferred in handler(), Shutdown waits for active handlers.
	_ = s.s.Shutdown(context.Background())
}

func (s *Server) putResult(r Result) {
	select {
	case s.resultCh <- r:
	default:
	}
}

func (s *Server) handler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if headerErr := q.Get("error"); headerErr != "" {
		desc := q.Get("error_description")
		_ = s.errorPage.Execute(w, struct{ Code, Description string }{headerErr, desc})
		s.putResult(Result{Err: fmt.Errorf("authorization failed: %s: %s", headerErr, desc)})
		return
	}

	switch respState := q.Get("state"); respState {
	case s.reqState:
	case "":
		s.error(w, http.StatusInternalServerError, "server didn't send OAuth state")
		return
	default:
		s.error(w, http.StatusInternalServerError, "mismatched OAuth state, req(%s), resp(%s)", s.reqState, respState)
		return
	}

	code := q.Get("code")
	if code == "" {
		s.error(w, http.StatusInternalServerError, "authorization code missing in query string")
		return
	}

	_ = s.successPage.Execute(w, nil)
	s.putResult(Result{Code: code})
}

func (s *Server) error(w http.ResponseWriter, code int, str string, i ...interface{}) {
	err := fmt.Errorf(str, i...)
	http.Error(w, err.Error(), code)
	s.putResult(Result{Err: err})
}
