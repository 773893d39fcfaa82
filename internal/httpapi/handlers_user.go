package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/adsrikanth11/crud-testing/internal/user"
)

// Admin-only user management. All of these sit behind the mandatory
// authentication gate plus requireRole(admin).

func userID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	all, err := s.users.FindAll(r.Context())
	if err != nil {
		fail(w, http.StatusInternalServerError, err.Error())
		return
	}
	public := make([]user.Public, 0, len(all))
	for i := range all {
		public = append(public, all[i].Public())
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "users": public})
}

func (s *Server) handleDeactivateUser(w http.ResponseWriter, r *http.Request) {
	s.userStatusChange(w, r, s.users.Deactivate, "User deactivated successfully")
}

func (s *Server) handleActivateUser(w http.ResponseWriter, r *http.Request) {
	s.userStatusChange(w, r, s.users.Activate, "User activated successfully")
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	s.userStatusChange(w, r, s.users.Delete, "User deleted successfully")
}

func (s *Server) userStatusChange(w http.ResponseWriter, r *http.Request, op func(context.Context, int64) error, message string) {
	if err := op(r.Context(), userID(r)); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			fail(w, http.StatusNotFound, "User not found")
			return
		}
		fail(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "message": message})
}
