package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Kariqs/littlelemon-api/apperr"
	"github.com/Kariqs/littlelemon-api/logger"
	"github.com/Kariqs/littlelemon-api/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	ctx.Request.Header.Set("Content-Type", "application/json")
	return ctx, w
}

func TestFailMapsErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", apperr.Invalid("quantity", "must be at least 1"), http.StatusBadRequest, "quantity"},
		{"forbidden", apperr.ErrNotAuthorized, http.StatusForbidden, ""},
		{"missing", apperr.NotFound("order", 9), http.StatusNotFound, ""},
		{"conflict", fmt.Errorf("%w: in use", apperr.ErrReferentialIntegrity), http.StatusConflict, "in use"},
		{"internal", &apperr.TransactionFailedError{Op: "create order", Err: errors.New("disk full")}, http.StatusInternalServerError, msgInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			ctx, w := testContext(http.MethodGet, "/", "")
			responder{log: logger.New("test", &logs, false)}.fail(ctx, "test", tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.message)
			if tt.status >= http.StatusInternalServerError {
				assert.NotContains(t, w.Body.String(), "disk full")
				assert.Contains(t, logs.String(), "disk full")
			} else {
				assert.Zero(t, logs.Len())
			}
		})
	}
}

func TestBadRequestUsesJSONNames(t *testing.T) {
	UseJSONFieldNames()

	ctx, w := testContext(http.MethodPost, "/", `{"quantity": 0}`)
	var in models.CartLineInput
	err := ctx.ShouldBindJSON(&in)
	require.Error(t, err)
	badRequest(ctx, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "menuitem: this field is required")

	ctx, w = testContext(http.MethodPost, "/", `{"menuitem": "one"}`)
	err = ctx.ShouldBindJSON(&in)
	require.Error(t, err)
	badRequest(ctx, err)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "menuitem")

	ctx, w = testContext(http.MethodPost, "/", `{`)
	badRequest(ctx, ctx.ShouldBindJSON(&in))
	assert.Contains(t, w.Body.String(), "malformed JSON body")
}

func TestPageFromQuery(t *testing.T) {
	ctx, _ := testContext(http.MethodGet, "/?page=3&limit=20", "")
	page, err := pageFromQuery(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Number)
	assert.Equal(t, 20, page.Limit)

	ctx, _ = testContext(http.MethodGet, "/?page=3", "")
	page, err = pageFromQuery(ctx)
	require.NoError(t, err)
	assert.Zero(t, page.Limit)

	for _, target := range []string{"/?limit=abc", "/?limit=0", "/?limit=5&page=-1"} {
		ctx, _ = testContext(http.MethodGet, target, "")
		_, err = pageFromQuery(ctx)
		assert.Error(t, err, target)
	}
}
