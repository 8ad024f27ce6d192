package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/chineduCoded/alx-files-manager/internal/files"
	"github.com/chineduCoded/alx-files-manager/pkg/store/metadata"
)

// tokenHeader carries the session token on authenticated requests.
const tokenHeader = "X-Token"

// userHandler is an HTTP handler that additionally receives the
// authenticated caller.
type userHandler func(w http.ResponseWriter, r *http.Request, user *metadata.User)

// withUser resolves the X-Token header to a user before invoking next.
// A missing, unknown, or expired token ends the request with 401.
func (s *Server) withUser(next userHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.guard.Resolve(r.Context(), r.Header.Get(tokenHeader))
		if err != nil {
			serviceError(w, err)
			return
		}
		next(w, r, user)
	}
}

// handleStatus reports backend reachability. The response keys are part of
// the API contract: "redis" is the session store, "db" the metadata store.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	respondJSON(w, http.StatusOK, map[string]bool{
		"redis": s.sessions.HealthCheck(ctx) == nil,
		"db":    s.meta.HealthCheck(ctx) == nil,
	})
}

// handleStats reports collection counts.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userCount, err := s.meta.CountUsers(ctx)
	if err != nil {
		serviceError(w, err)
		return
	}

	fileCount, err := s.meta.CountFiles(ctx)
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]uint64{
		"users": userCount,
		"files": fileCount,
	})
}

// handleCreateUser registers a new account.
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	user, err := s.users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// handleConnect exchanges Basic credentials for a session token.
func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	email, password, ok := r.BasicAuth()
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	token, err := s.guard.Login(r.Context(), email, password)
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

// handleDisconnect invalidates the caller's session token.
func (s *Server) handleDisconnect(w http.ResponseWriter, r *http.Request) {
	if err := s.guard.Logout(r.Context(), r.Header.Get(tokenHeader)); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleCurrentUser returns the authenticated caller's account.
func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request, user *metadata.User) {
	respondJSON(w, http.StatusOK, user)
}

// uploadRequest is the POST /files body. ParentID is a raw message because
// clients send the root parent as either the number 0 or a string.
type uploadRequest struct {
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	ParentID json.RawMessage `json:"parentId"`
	IsPublic bool            `json:"isPublic"`
	Data     string          `json:"data"`
}

// handleUploadFile creates a file, folder, or image.
func (s *Server) handleUploadFile(w http.ResponseWriter, r *http.Request, user *metadata.User) {
	var req uploadRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	file, err := s.files.Upload(r.Context(), user, files.UploadInput{
		Name:     req.Name,
		Type:     req.Type,
		ParentID: parentIDString(req.ParentID),
		IsPublic: req.IsPublic,
		Data:     req.Data,
	})
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, file)
}

// handleShowFile returns one of the caller's files by id.
func (s *Server) handleShowFile(w http.ResponseWriter, r *http.Request, user *metadata.User) {
	file, err := s.files.Show(r.Context(), user, mux.Vars(r)["id"])
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, file)
}

// handleListFiles returns a page of the caller's files under a parent.
func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request, user *metadata.User) {
	query := r.URL.Query()

	// A non-numeric page reads as page 0 rather than an error
	page, err := strconv.Atoi(query.Get("page"))
	if err != nil {
		page = 0
	}

	list, err := s.files.List(r.Context(), user, query.Get("parentId"), page)
	if err != nil {
		serviceError(w, err)
		return
	}

	// Encode an empty page as [], never null
	if list == nil {
		list = []*metadata.File{}
	}
	respondJSON(w, http.StatusOK, list)
}

// handlePublish makes a file publicly readable.
func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request, user *metadata.User) {
	s.setPublic(w, r, user, true)
}

// handleUnpublish makes a file private again.
func (s *Server) handleUnpublish(w http.ResponseWriter, r *http.Request, user *metadata.User) {
	s.setPublic(w, r, user, false)
}

func (s *Server) setPublic(w http.ResponseWriter, r *http.Request, user *metadata.User, public bool) {
	file, err := s.files.SetPublic(r.Context(), user, mux.Vars(r)["id"], public)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, file)
}

// handleFileData serves a file's bytes, optionally a thumbnail variant.
//
// The route accepts anonymous callers: a missing or stale token degrades to
// an unauthenticated request instead of failing, and visibility rules in
// the controller decide what such a caller may read.
func (s *Server) handleFileData(w http.ResponseWriter, r *http.Request) {
	var user *metadata.User
	if token := r.Header.Get(tokenHeader); token != "" {
		if resolved, err := s.guard.Resolve(r.Context(), token); err == nil {
			user = resolved
		}
	}

	result, err := s.files.Content(r.Context(), user, mux.Vars(r)["id"], r.URL.Query().Get("size"))
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", result.MIMEType)
	if result.Attachment {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Name))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Data); err != nil {
		// Client went away mid-response, nothing to recover
		return
	}
}

// decodeBody decodes a JSON request body. An empty body decodes to the
// zero value so field-level validation produces the specific reason.
func decodeBody(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == io.EOF {
		return nil
	}
	return err
}

// parentIDString normalizes the wire form of parentId. The root parent
// arrives as the number 0, the string "0", null, or is absent entirely;
// everything else is a folder id string.
func parentIDString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}

	return string(raw)
}
