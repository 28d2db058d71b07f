package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"storefront/internal/auth"
	"storefront/internal/domain"
	"storefront/internal/mocks"
)

func setupAuthRouter(tokens *auth.TokenMaker, users *mocks.MockUserRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", Authenticate(tokens, users), func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": userID})
	})
	return r
}

func TestAuthenticate(t *testing.T) {
	tokens := auth.NewTokenMaker("test-secret")

	validToken, err := tokens.Issue(7, time.Minute)
	assert.NoError(t, err)
	expiredToken, err := tokens.Issue(7, -time.Minute)
	assert.NoError(t, err)
	orphanToken, err := tokens.Issue(8, time.Minute)
	assert.NoError(t, err)

	tests := []struct {
		name           string
		header         string
		setupMocks     func(*mocks.MockUserRepository)
		expectedStatus int
	}{
		{
			name:   "valid token for existing user",
			header: "Bearer " + validToken,
			setupMocks: func(users *mocks.MockUserRepository) {
				users.On("FindByID", mock.Anything, uint(7)).Return(&domain.User{ID: 7, Email: "a@b.c"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing header",
			header:         "",
			setupMocks:     func(*mocks.MockUserRepository) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "malformed header",
			header:         "Token abc",
			setupMocks:     func(*mocks.MockUserRepository) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "expired token",
			header:         "Bearer " + expiredToken,
			setupMocks:     func(*mocks.MockUserRepository) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "token for unknown user",
			header: "Bearer " + orphanToken,
			setupMocks: func(users *mocks.MockUserRepository) {
				users.On("FindByID", mock.Anything, uint(8)).Return(nil, nil)
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(mocks.MockUserRepository)
			tt.setupMocks(users)
			router := setupAuthRouter(tokens, users)

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			users.AssertExpectations(t)
		})
	}
}
