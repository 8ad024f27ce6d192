package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/chineduCoded/alx-files-manager/internal/auth"
	"github.com/chineduCoded/alx-files-manager/internal/files"
	"github.com/chineduCoded/alx-files-manager/internal/logger"
	"github.com/chineduCoded/alx-files-manager/internal/users"
)

// respondJSON writes payload as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response: %v", err)
	}
}

// respondError writes the standard {"error": reason} body. The reason
// strings are part of the API contract and must stay stable.
func respondError(w http.ResponseWriter, status int, reason string) {
	respondJSON(w, status, map[string]string{"error": reason})
}

// serviceError maps a service-layer error to its HTTP status and wire
// reason string.
//
// Every sentinel the services expose has exactly one wire form. Anything
// unmapped is an internal failure: logged server-side, reported to the
// client without detail.
func serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, "Unauthorized")

	case errors.Is(err, users.ErrMissingEmail):
		respondError(w, http.StatusBadRequest, "Missing email")
	case errors.Is(err, users.ErrMissingPassword):
		respondError(w, http.StatusBadRequest, "Missing password")
	case errors.Is(err, users.ErrAlreadyExists):
		respondError(w, http.StatusBadRequest, "Already exist")

	case errors.Is(err, files.ErrMissingName):
		respondError(w, http.StatusBadRequest, "Missing name")
	case errors.Is(err, files.ErrInvalidType):
		respondError(w, http.StatusBadRequest, "Missing or invalid type")
	case errors.Is(err, files.ErrMissingData):
		respondError(w, http.StatusBadRequest, "Missing data")
	case errors.Is(err, files.ErrInvalidData):
		respondError(w, http.StatusBadRequest, "Invalid base64 data")
	case errors.Is(err, files.ErrInvalidImageData):
		respondError(w, http.StatusBadRequest, "Invalid image data")
	case errors.Is(err, files.ErrParentNotFound):
		respondError(w, http.StatusBadRequest, "Parent not found")
	case errors.Is(err, files.ErrParentNotFolder):
		respondError(w, http.StatusBadRequest, "Parent is not a folder")
	case errors.Is(err, files.ErrFolderHasNoContent):
		respondError(w, http.StatusBadRequest, "A folder doesn't have content")
	case errors.Is(err, files.ErrInvalidSize):
		respondError(w, http.StatusBadRequest, "Invalid size parameter")
	case errors.Is(err, files.ErrSizeNotImage):
		respondError(w, http.StatusBadRequest, "Size parameter only applicable to images")
	case errors.Is(err, files.ErrNotFound):
		respondError(w, http.StatusNotFound, "Not found")

	default:
		logger.Error("Request failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
