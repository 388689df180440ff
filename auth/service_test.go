package auth_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/wiryawan46/instagram-clone-be/apperror"
	"github.com/wiryawan46/instagram-clone-be/auth"
	"github.com/wiryawan46/instagram-clone-be/config"
)

func newTestService(t *testing.T) (*auth.AuthService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err, "failed to create mock pool")
	t.Cleanup(mock.Close)

	cfg := &config.AuthConfig{
		JWTSecret:     "test-secret",
		TokenDuration: time.Hour,
		// Minimum cost keeps the test fast; production uses the configured
		// higher work factor.
		BcryptCost: bcrypt.MinCost,
	}
	codec := auth.NewTokenCodec(cfg)
	return auth.NewAuthService(mock, codec, cfg), mock
}

func TestRegister_Success(t *testing.T) {
	service, mock := newTestService(t)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("ann@x.com").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("Ann", "ann@x.com", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), time.Now()))

	user, err := service.Register(context.Background(), auth.RegisterRequest{
		Name:     "Ann",
		Email:    "Ann@X.com", // mixed case in, lowercased before storing
		Password: "pw12345",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "ann@x.com", user.Email)

	// The stored hash must never appear in any serialized form of the user.
	body, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "password")
	assert.NotContains(t, string(body), user.HashedPassword)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_MissingFields(t *testing.T) {
	service, mock := newTestService(t)

	_, err := service.Register(context.Background(), auth.RegisterRequest{Email: "ann@x.com"})
	require.Error(t, err)
	assert.True(t, apperror.IsValidationError(err))

	appErr, ok := apperror.FromError(err)
	require.True(t, ok)
	assert.Contains(t, appErr.Fields, "name")
	assert.Contains(t, appErr.Fields, "password")
	assert.NotContains(t, appErr.Fields, "email")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_DuplicateEmailPreCheck(t *testing.T) {
	service, mock := newTestService(t)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("ann@x.com").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := service.Register(context.Background(), auth.RegisterRequest{
		Name:     "Ann",
		Email:    "ann@x.com",
		Password: "pw12345",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsConflictError(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_DuplicateEmailUnderRace(t *testing.T) {
	service, mock := newTestService(t)

	// Pre-check passes, but a concurrent registration wins the insert and
	// the unique index rejects ours. Same client-facing failure.
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("ann@x.com").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("Ann", "ann@x.com", pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"})

	_, err := service.Register(context.Background(), auth.RegisterRequest{
		Name:     "Ann",
		Email:    "ann@x.com",
		Password: "pw12345",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsConflictError(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_UniformFailureForUnknownEmailAndWrongPassword(t *testing.T) {
	service, mock := newTestService(t)

	// Unknown email.
	mock.ExpectQuery(`SELECT id, name, email, password, created_at FROM users WHERE email`).
		WithArgs("ghost@x.com").
		WillReturnError(pgx.ErrNoRows)

	_, errUnknown := service.Login(context.Background(), auth.LoginRequest{
		Email:    "ghost@x.com",
		Password: "whatever",
	})
	require.Error(t, errUnknown)

	// Known email, wrong password.
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)
	mock.ExpectQuery(`SELECT id, name, email, password, created_at FROM users WHERE email`).
		WithArgs("ann@x.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "password", "created_at"}).
			AddRow(int64(1), "Ann", "ann@x.com", string(hash), time.Now()))

	_, errWrong := service.Login(context.Background(), auth.LoginRequest{
		Email:    "ann@x.com",
		Password: "wrong-password",
	})
	require.Error(t, errWrong)

	// Both failures must be indistinguishable: same kind, same message.
	assert.True(t, apperror.IsCredentialsError(errUnknown))
	assert.True(t, apperror.IsCredentialsError(errWrong))
	unknownErr, _ := apperror.FromError(errUnknown)
	wrongErr, _ := apperror.FromError(errWrong)
	assert.Equal(t, unknownErr.Message, wrongErr.Message)
	assert.Equal(t, unknownErr.StatusCode(), wrongErr.StatusCode())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_SuccessIssuesVerifiableToken(t *testing.T) {
	service, mock := newTestService(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("pw12345"), bcrypt.MinCost)
	require.NoError(t, err)
	mock.ExpectQuery(`SELECT id, name, email, password, created_at FROM users WHERE email`).
		WithArgs("ann@x.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "password", "created_at"}).
			AddRow(int64(42), "Ann", "ann@x.com", string(hash), time.Now()))

	resp, err := service.Login(context.Background(), auth.LoginRequest{
		Email:    "ann@x.com",
		Password: "pw12345",
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.NotEmpty(t, resp.Token)

	// The issued token must resolve back to the logged-in user.
	codec := auth.NewTokenCodec(&config.AuthConfig{JWTSecret: "test-secret", TokenDuration: time.Hour})
	userID, err := codec.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_MissingFields(t *testing.T) {
	service, mock := newTestService(t)

	_, err := service.Login(context.Background(), auth.LoginRequest{})
	require.Error(t, err)
	assert.True(t, apperror.IsValidationError(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByID_NotFound(t *testing.T) {
	service, mock := newTestService(t)

	mock.ExpectQuery(`SELECT id, name, email, password, created_at FROM users WHERE id`).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	_, err := service.GetUserByID(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}
