// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It hides the router's parameter extraction and body reading behind helpers
that fail with [apperr.AppError] values, so handlers can pass errors straight
to respond.Error.
*/
package requestutil

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/netinv/internal/platform/apperr"
	"github.com/taibuivan/netinv/internal/platform/ctxutil"
	"github.com/taibuivan/netinv/internal/platform/sec"
	"github.com/taibuivan/netinv/internal/platform/validate"
)

// MaxBodyBytes bounds the size of a write request body.
const MaxBodyBytes = 1 << 20

/*
Body reads the whole request body, up to [MaxBodyBytes].

Returns:
  - []byte: the raw body
  - error: a validation error if the body is too large or unreadable
*/
func Body(writer http.ResponseWriter, request *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(writer, request.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperr.ValidationError("Request body too large")
		}
		return nil, validate.ErrInvalidJSON
	}
	return body, nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Int64Param parses a named URL parameter as a positive integer primary key.
*/
func Int64Param(request *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(request, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, validate.FieldError(name, "Must be a positive integer")
	}
	return id, nil
}

/*
Claims extracts the authenticated caller from the request context.

Returns nil if the request is not authenticated.
*/
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

/*
RequiredClaims ensures the request is authenticated and returns the claims.
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return claims, nil
}

/*
Operator returns the name of the authenticated operator, or "" for anonymous
callers. Journal entries record it as their author.
*/
func Operator(request *http.Request) string {
	if claims := Claims(request); claims != nil {
		return claims.Operator
	}
	return ""
}
