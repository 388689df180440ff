package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiryawan46/instagram-clone-be/apperror"
	"github.com/wiryawan46/instagram-clone-be/auth"
)

// stubResolver serves a fixed set of users to the middleware.
type stubResolver struct {
	users map[int64]*auth.User
}

func (s *stubResolver) GetUserByID(_ context.Context, id int64) (*auth.User, error) {
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return nil, apperror.NewNotFoundError("User not found", nil)
}

func TestRequireUser(t *testing.T) {
	codec := newTestCodec("test-secret", time.Hour)
	resolver := &stubResolver{users: map[int64]*auth.User{
		42: {ID: 42, Name: "Ann", Email: "ann@x.com"},
	}}

	validToken, err := codec.Issue(42)
	require.NoError(t, err)
	orphanToken, err := codec.Issue(99) // valid token, user gone
	require.NoError(t, err)
	expiredToken, err := newTestCodec("test-secret", -time.Hour).Issue(42)
	require.NoError(t, err)
	foreignToken, err := newTestCodec("other-secret", time.Hour).Issue(42)
	require.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{
			name:       "missing authorization header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			authHeader: "Basic " + validToken,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "bare token without scheme",
			authHeader: validToken,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty bearer token",
			authHeader: "Bearer ",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed token",
			authHeader: "Bearer not-a-token",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired token",
			authHeader: "Bearer " + expiredToken,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "token signed with a different secret",
			authHeader: "Bearer " + foreignToken,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid token for a deleted user",
			authHeader: "Bearer " + orphanToken,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid token",
			authHeader: "Bearer " + validToken,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				// The resolved user must be attached to the context.
				user, ok := auth.UserFromContext(r.Context())
				require.True(t, ok, "authenticated user missing from context")
				assert.Equal(t, int64(42), user.ID)
				assert.Equal(t, "Ann", user.Name)
				w.WriteHeader(http.StatusOK)
			})

			handler := auth.RequireUser(codec, resolver)(next)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, nextCalled,
				"handler must run only for authenticated requests")
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Contains(t, rec.Body.String(), `"success":false`)
			}
		})
	}
}

func TestUserFromContext_AbsentWithoutMiddleware(t *testing.T) {
	_, ok := auth.UserFromContext(context.Background())
	assert.False(t, ok)
}
