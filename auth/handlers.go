// HTTP handlers for the authentication endpoints. Handlers decode and
// validate the request body, delegate to the AuthService, and translate the
// result into the response envelope.
package auth

import (
	"encoding/json"
	"net/http"

	"github.com/wiryawan46/instagram-clone-be/apperror"
)

// Handlers wraps the AuthService to provide HTTP handlers.
type Handlers struct {
	service *AuthService
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *AuthService) *Handlers {
	return &Handlers{service: service}
}

// decodeStrict decodes a JSON body into dst, rejecting unknown fields so a
// misspelled field fails loudly instead of silently validating as missing.
func decodeStrict(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// HandleRegister godoc
// @Summary User Registration
// @Description Registers a new user with name, email and password.
// @Tags Auth
// @Accept json
// @Produce json
// @Param registerBody body auth.RegisterRequest true "User registration details"
// @Success 201 {object} auth.RegisterResponse "User created successfully"
// @Failure 422 {object} apperror.ErrorResponse "Missing fields or duplicate email"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /register [post]
func (h *Handlers) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := decodeStrict(r, &req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}

		user, err := h.service.Register(r.Context(), req)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		// Only the public summary goes out: the stored hash never leaves
		// the service layer.
		writeJSON(w, http.StatusCreated, RegisterResponse{
			Success: true,
			Message: "User registered successfully",
			User: UserSummary{
				ID:    user.ID,
				Name:  user.Name,
				Email: user.Email,
			},
		})
	}
}

// HandleLogin godoc
// @Summary User Login
// @Description Logs in an existing user and returns a bearer token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param loginBody body auth.LoginRequest true "User login credentials"
// @Success 200 {object} auth.LoginResponse "Login successful, token provided"
// @Failure 422 {object} apperror.ErrorResponse "Missing fields or invalid credentials"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /login [post]
func (h *Handlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := decodeStrict(r, &req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}

		resp, err := h.service.Login(r.Context(), req)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleProtected godoc
// @Summary Authentication check
// @Description Returns 200 for any request carrying a valid bearer token.
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} auth.MessageResponse
// @Failure 401 {object} apperror.ErrorResponse "Missing or invalid token"
// @Router /protected [get]
func (h *Handlers) HandleProtected() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, MessageResponse{
			Success: true,
			Message: "Protected route",
		})
	}
}
