package controller

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"aura_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestRespondError(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{gorm.ErrRecordNotFound, http.StatusNotFound},
		{util.ErrActivityNotFound, http.StatusNotFound},
		{fmt.Errorf("load: %w", util.ErrSessionNotFound), http.StatusNotFound},
		{util.ErrEmailRegistered, http.StatusConflict},
		{util.ErrSessionEnded, http.StatusConflict},
		{util.ErrInvalidCredentials, http.StatusUnauthorized},
		{util.ErrUserDisabled, http.StatusForbidden},
		{util.ErrEmptySubmission, http.StatusBadRequest},
		{util.ErrInvalidSettings, http.StatusBadRequest},
		{util.ErrSubmissionTooLarge, http.StatusRequestEntityTooLarge},
		{util.ErrQuotaExceeded, http.StatusTooManyRequests},
		{fmt.Errorf("%w: timeout", util.ErrAssistantFailed), http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(w)
			ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(ctx, tc.err)
			assert.Equal(t, tc.code, w.Code)
		})
	}
}

func TestRespondErrorHidesUpstreamDetail(t *testing.T) {
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	respondError(ctx, fmt.Errorf("%w: api key sk-123 rejected", util.ErrAssistantFailed))
	assert.NotContains(t, w.Body.String(), "sk-123")
}

func TestPagination(t *testing.T) {
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/?page=0&limit=500", nil)

	page, limit := pagination(ctx)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)
}

func TestCurrentUserIDMissing(t *testing.T) {
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := currentUserID(ctx)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
