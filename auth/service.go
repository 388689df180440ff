package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/wiryawan46/instagram-clone-be/apperror"
	"github.com/wiryawan46/instagram-clone-be/config"
	"github.com/wiryawan46/instagram-clone-be/db"
)

// invalidCredentials is the one message every failed login gets. Unknown
// email and wrong password are intentionally indistinguishable so the
// endpoint does not leak which accounts exist.
const invalidCredentials = "Invalid Email or Password"

// AuthService provides registration and login. It owns password hashing and
// delegates token issuance to the TokenCodec.
type AuthService struct {
	db    db.Querier
	codec *TokenCodec
	cost  int
}

// NewAuthService creates a new AuthService.
func NewAuthService(dbConn db.Querier, codec *TokenCodec, cfg *config.AuthConfig) *AuthService {
	return &AuthService{
		db:    dbConn,
		codec: codec,
		cost:  cfg.BcryptCost,
	}
}

// Register creates a new user. Missing fields are rejected with a per-field
// breakdown; a taken email fails with the same error whether it is caught by
// the pre-insert check or by the unique index under a concurrent race.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	fields := map[string]string{}
	if req.Name == "" {
		fields["name"] = "Name is required"
	}
	if req.Email == "" {
		fields["email"] = "Email is required"
	}
	if req.Password == "" {
		fields["password"] = "Password is required"
	}
	if len(fields) > 0 {
		return nil, apperror.NewFieldValidationError("All fields are required", fields)
	}

	email := strings.ToLower(req.Email)

	// Fast-path duplicate check before spending a bcrypt hash on a doomed
	// registration. This check is not atomic with the insert; the unique
	// index on users.email is what actually guarantees uniqueness.
	exists, err := s.emailExists(ctx, email)
	if err != nil {
		return nil, apperror.NewDatabaseError("Error registering user", err)
	}
	if exists {
		return nil, apperror.NewConflictError("User with this email already exists", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		Name:           req.Name,
		Email:          email,
		HashedPassword: string(hashedPassword),
	}

	if err := s.createUser(ctx, user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			// Two concurrent registrations both passed the pre-check; the
			// index rejected the slower insert. Same client-facing failure.
			return nil, apperror.NewConflictError("User with this email already exists", nil)
		}
		return nil, apperror.NewDatabaseError("Error registering user", err)
	}
	return user, nil
}

// Login authenticates a user by email and password and issues a bearer
// token.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	fields := map[string]string{}
	if req.Email == "" {
		fields["email"] = "Email is required"
	}
	if req.Password == "" {
		fields["password"] = "Password is required"
	}
	if len(fields) > 0 {
		return nil, apperror.NewFieldValidationError("All fields are required", fields)
	}

	user, err := s.getUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewCredentialsError(invalidCredentials)
		}
		log.Printf("database error looking up user during login: %v", err)
		return nil, apperror.NewDatabaseError("Error logging in", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		return nil, apperror.NewCredentialsError(invalidCredentials)
	}

	token, err := s.codec.Issue(user.ID)
	if err != nil {
		return nil, apperror.NewInternalError("Error logging in", err)
	}

	return &LoginResponse{
		Success: true,
		Message: "Login successful",
		Token:   token,
	}, nil
}

// GetUserByID resolves a user identifier to a stored user. The middleware
// uses it to confirm a token's subject still exists.
func (s *AuthService) GetUserByID(ctx context.Context, id int64) (*User, error) {
	var user User
	query := `SELECT id, name, email, password, created_at FROM users WHERE id = $1`
	err := s.db.QueryRow(ctx, query, id).Scan(&user.ID, &user.Name, &user.Email, &user.HashedPassword, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("User not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}
	return &user, nil
}

func (s *AuthService) emailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`
	if err := s.db.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (s *AuthService) createUser(ctx context.Context, user *User) error {
	query := `INSERT INTO users (name, email, password)
              VALUES ($1, $2, $3)
              RETURNING id, created_at`
	return s.db.QueryRow(ctx, query, user.Name, user.Email, user.HashedPassword).Scan(&user.ID, &user.CreatedAt)
}

func (s *AuthService) getUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	query := `SELECT id, name, email, password, created_at FROM users WHERE email = $1`
	err := s.db.QueryRow(ctx, query, strings.ToLower(email)).Scan(&user.ID, &user.Name, &user.Email, &user.HashedPassword, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
