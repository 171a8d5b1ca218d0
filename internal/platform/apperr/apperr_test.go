// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkpost/internal/platform/apperr"
)

/*
TestAppError_Taxonomy checks that every constructor maps to its documented status and code.
*/
func TestAppError_Taxonomy(t *testing.T) {
	tests := []struct {
		name   string
		err    *apperr.AppError
		status int
		code   string
		word   string
	}{
		{"missing_credential", apperr.MissingCredential("no token"), http.StatusUnauthorized, apperr.CodeMissingCredential, "fail"},
		{"invalid_token", apperr.InvalidToken("bad"), http.StatusUnauthorized, apperr.CodeInvalidToken, "fail"},
		{"expired_token", apperr.ExpiredToken("old"), http.StatusUnauthorized, apperr.CodeExpiredToken, "fail"},
		{"malformed_payload", apperr.MalformedPayload("no sub"), http.StatusUnauthorized, apperr.CodeMalformedPayload, "fail"},
		{"not_found", apperr.NotFound("Blog"), http.StatusNotFound, apperr.CodeNotFound, "fail"},
		{"forbidden", apperr.Forbidden("nope"), http.StatusForbidden, apperr.CodeForbidden, "fail"},
		{"validation", apperr.ValidationError("bad input"), http.StatusBadRequest, apperr.CodeValidation, "fail"},
		{"internal", apperr.Internal(errors.New("boom")), http.StatusInternalServerError, apperr.CodeInternal, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.word, tt.err.Status())
		})
	}
}

/*
TestAppError_NotFoundMessage verifies the resource name is part of the message.
*/
func TestAppError_NotFoundMessage(t *testing.T) {
	assert.Equal(t, "Blog not found", apperr.NotFound("Blog").Error())
}

/*
TestAppError_ChainTraversal verifies wrapped AppErrors are still discoverable.
*/
func TestAppError_ChainTraversal(t *testing.T) {
	cause := errors.New("connection refused")
	wrapped := fmt.Errorf("blog_service: %w", apperr.Internal(cause))

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeInternal, ae.Code)
	assert.ErrorIs(t, wrapped, cause)
	assert.True(t, apperr.HasCode(wrapped, apperr.CodeInternal))
	assert.Nil(t, apperr.As(cause))
}

/*
TestAppError_IsByCode verifies two errors with the same code compare equal under errors.Is.
*/
func TestAppError_IsByCode(t *testing.T) {
	assert.ErrorIs(t, apperr.NotFound("Comment"), apperr.NotFound("Blog"))
	assert.NotErrorIs(t, apperr.Forbidden("x"), apperr.NotFound("Blog"))
}
