// HTTP handlers for the post endpoints. All of them run behind the request
// authenticator and read the authenticated user from the request context.
package posts

import (
	"encoding/json"
	"net/http"

	"github.com/wiryawan46/instagram-clone-be/apperror"
	"github.com/wiryawan46/instagram-clone-be/auth"
)

// PostHandlers wraps the PostService to provide HTTP handlers.
type PostHandlers struct {
	service *PostService
}

// NewPostHandlers creates new PostHandlers.
func NewPostHandlers(service *PostService) *PostHandlers {
	return &PostHandlers{service: service}
}

// HandleListPosts godoc
// @Summary List all posts
// @Description Retrieves all posts from all users, newest first, with author populated and image URLs attached.
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} posts.PostsResponse
// @Failure 401 {object} apperror.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} apperror.ErrorResponse "No posts found"
// @Failure 500 {object} apperror.ErrorResponse
// @Router /posts [get]
func (h *PostHandlers) HandleListPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := h.service.ListAll(r.Context())
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		if len(list) == 0 {
			auth.WriteError(w, r, apperror.NewNotFoundError("No posts found", nil))
			return
		}

		writeJSON(w, http.StatusOK, PostsResponse{Success: true, Posts: list})
	}
}

// HandleCreatePost godoc
// @Summary Create a new post
// @Description Creates a post owned by the authenticated user. Photo is an optional object-store key from a prior upload.
// @Tags Posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param postBody body posts.CreatePostRequest true "Post content"
// @Success 201 {object} posts.PostResponse
// @Failure 401 {object} apperror.ErrorResponse "Missing or invalid token"
// @Failure 422 {object} apperror.ErrorResponse "Missing fields"
// @Failure 500 {object} apperror.ErrorResponse
// @Router /create-post [post]
func (h *PostHandlers) HandleCreatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("User not found in request context", nil))
			return
		}

		var req CreatePostRequest
		if err := decodeStrict(r, &req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}

		post, err := h.service.Create(r.Context(), user.ID, req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, PostResponse{
			Success: true,
			Message: "Post created successfully",
			Post:    post,
		})
	}
}

// HandleMyPosts godoc
// @Summary List the authenticated user's posts
// @Description Retrieves only the posts authored by the authenticated user.
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} posts.PostsResponse
// @Failure 401 {object} apperror.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} apperror.ErrorResponse "No posts found"
// @Failure 500 {object} apperror.ErrorResponse
// @Router /myposts [get]
func (h *PostHandlers) HandleMyPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("User not found in request context", nil))
			return
		}

		list, err := h.service.ListMine(r.Context(), user.ID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		if len(list) == 0 {
			auth.WriteError(w, r, apperror.NewNotFoundError("No posts found", nil))
			return
		}

		writeJSON(w, http.StatusOK, PostsResponse{Success: true, Posts: list})
	}
}

// HandleLikePost godoc
// @Summary Like a post
// @Description Adds the authenticated user to the post's likes set. Liking a post twice leaves a single entry.
// @Tags Posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param likeBody body posts.LikeRequest true "Post to like"
// @Success 200 {object} posts.PostResponse
// @Failure 401 {object} apperror.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} apperror.ErrorResponse "Post not found"
// @Failure 500 {object} apperror.ErrorResponse
// @Router /like-post [put]
func (h *PostHandlers) HandleLikePost() http.HandlerFunc {
	return h.handleLikeChange("Post liked successfully", h.likeFn)
}

// HandleUnlikePost godoc
// @Summary Unlike a post
// @Description Removes the authenticated user from the post's likes set. Unliking a post that was never liked still succeeds.
// @Tags Posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param likeBody body posts.LikeRequest true "Post to unlike"
// @Success 200 {object} posts.PostResponse
// @Failure 401 {object} apperror.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} apperror.ErrorResponse "Post not found"
// @Failure 500 {object} apperror.ErrorResponse
// @Router /unlike-post [put]
func (h *PostHandlers) HandleUnlikePost() http.HandlerFunc {
	return h.handleLikeChange("Post unliked successfully", h.unlikeFn)
}

// handleLikeChange factors the shared decode/authorize/respond flow of the
// like and unlike endpoints over the specific set mutation.
func (h *PostHandlers) handleLikeChange(message string, mutate func(r *http.Request, postID, userID int64) (*Post, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("User not found in request context", nil))
			return
		}

		var req LikeRequest
		if err := decodeStrict(r, &req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		if req.PostID == 0 {
			auth.WriteError(w, r, apperror.NewFieldValidationError("postId is required", map[string]string{"postId": "postId is required"}))
			return
		}

		post, err := mutate(r, req.PostID, user.ID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, PostResponse{
			Success: true,
			Message: message,
			Post:    post,
		})
	}
}

func (h *PostHandlers) likeFn(r *http.Request, postID, userID int64) (*Post, error) {
	return h.service.Like(r.Context(), postID, userID)
}

func (h *PostHandlers) unlikeFn(r *http.Request, postID, userID int64) (*Post, error) {
	return h.service.Unlike(r.Context(), postID, userID)
}

// decodeStrict decodes a JSON body into dst, rejecting unknown fields.
func decodeStrict(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeJSON serializes data to JSON and writes it with the given status.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, `{"success":false,"error":"Failed to encode response"}`, http.StatusInternalServerError)
		}
	}
}
