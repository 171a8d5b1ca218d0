// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/inkpost/internal/platform/apperr"
	"github.com/taibuivan/inkpost/internal/platform/ctxutil"
	"github.com/taibuivan/inkpost/internal/platform/sec"
	"github.com/taibuivan/inkpost/internal/platform/validate"
)

// MaxBodyBytes caps the size of JSON request bodies.
const MaxBodyBytes = 1 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Returns validate.ErrInvalidJSON if the body is empty, oversized or not valid JSON.
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	request.Body = http.MaxBytesReader(writer, request.Body, MaxBodyBytes)
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ID parses a positive integer path parameter such as {blogId}.

A non-numeric or non-positive value is a VALIDATION_ERROR on that field.
*/
func ID(request *http.Request, name string) (int64, error) {
	return validate.ID(name, chi.URLParam(request, name))
}

/*
Identity returns the caller bound by the auth guard.

The boolean is false for anonymous requests on optional-auth routes.
*/
func Identity(request *http.Request) (sec.Identity, bool) {
	return ctxutil.GetIdentity(request.Context())
}

/*
RequiredIdentity ensures the request is authenticated and returns the caller.

Returns apperr.MissingCredential when the route was not wrapped by the guard.
*/
func RequiredIdentity(request *http.Request) (sec.Identity, error) {
	identity, ok := ctxutil.GetIdentity(request.Context())
	if !ok {
		return sec.Identity{}, apperr.MissingCredential("Authentication required")
	}
	return identity, nil
}
