// HTTP handlers for file upload and image retrieval.
package storage

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wiryawan46/instagram-clone-be/apperror"
	"github.com/wiryawan46/instagram-clone-be/auth"
)

// UploadResponse is returned after a successful upload. FileName is the
// object key to reference from create-post; URL is the public address.
type UploadResponse struct {
	Message  string `json:"message" example:"File uploaded successfully"`
	FileName string `json:"fileName" example:"1632567890123_example.jpg"`
	URL      string `json:"url" example:"http://localhost:9000/photos/1632567890123_example.jpg"`
}

// StorageHandlers provides HTTP handlers over an Uploader.
type StorageHandlers struct {
	store Uploader
}

// NewStorageHandlers creates new StorageHandlers.
func NewStorageHandlers(store Uploader) *StorageHandlers {
	return &StorageHandlers{store: store}
}

// HandleUpload godoc
// @Summary Upload a file to object storage
// @Description Stores a multipart file and returns its object key and public URL.
// @Tags Storage
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "The file to upload"
// @Success 200 {object} storage.UploadResponse
// @Failure 400 {object} apperror.ErrorResponse "No file in request"
// @Failure 500 {object} apperror.ErrorResponse
// @Router /upload [post]
func (h *StorageHandlers) HandleUpload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("File not found", err))
			return
		}
		defer file.Close()

		key, err := h.store.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), file, header.Size)
		if err != nil {
			auth.WriteError(w, r, apperror.NewExternalServiceError("Failed to upload file", err))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(UploadResponse{
			Message:  "File uploaded successfully",
			FileName: key,
			URL:      h.store.ObjectURL(key),
		})
	}
}

// HandleImage godoc
// @Summary Redirect to an image
// @Description Redirects to the public object URL for the given filename.
// @Tags Storage
// @Param filename path string true "Object key of the image"
// @Success 302
// @Router /image/{filename} [get]
func (h *StorageHandlers) HandleImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filename := chi.URLParam(r, "filename")
		http.Redirect(w, r, h.store.ObjectURL(filename), http.StatusFound)
	}
}
