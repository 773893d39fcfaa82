package httpapi

import (
	"errors"
	"net/http"

	"github.com/adsrikanth11/crud-testing/internal/user"
	"github.com/adsrikanth11/crud-testing/internal/validate"
)

// isStoreBadRequest reports whether err is a store-level validation
// failure the client can fix, as opposed to an internal fault.
func isStoreBadRequest(err error) bool {
	return errors.Is(err, user.ErrMissingFields) ||
		errors.Is(err, user.ErrPasswordTooShort) ||
		errors.Is(err, user.ErrInvalidEmail) ||
		errors.Is(err, user.ErrDuplicate)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeBody(w, r)
	if !ok {
		return
	}

	username := bodyString(body, "username")
	email := bodyString(body, "email")
	password := bodyString(body, "password")
	confirm := bodyString(body, "confirmPassword")

	if username == "" || email == "" || password == "" || confirm == "" {
		fail(w, http.StatusBadRequest, "All fields are required")
		return
	}
	if errs := validate.Register.Check(body); errs != nil {
		failValidation(w, errs)
		return
	}
	if password != confirm {
		fail(w, http.StatusBadRequest, "Passwords do not match")
		return
	}

	u, err := s.users.Create(r.Context(), username, email, password, user.RoleUser)
	if err != nil {
		if isStoreBadRequest(err) {
			fail(w, http.StatusBadRequest, err.Error())
			return
		}
		fail(w, http.StatusInternalServerError, err.Error())
		return
	}

	tok, err := s.codec.Issue(u)
	if err != nil {
		fail(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.setTokenCookie(w, tok, s.codec.TTL())

	writeJSON(w, http.StatusCreated, envelope{
		"success": true,
		"message": "User registered successfully",
		"user":    u.Public(),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeBody(w, r)
	if !ok {
		return
	}

	if errs := validate.Login.Check(body); errs != nil {
		fail(w, http.StatusBadRequest, "Username and password are required")
		return
	}
	username := bodyString(body, "username")
	password := bodyString(body, "password")

	u, err := s.users.FindByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			// Same message as a wrong password, so the response does
			// not leak which field was wrong.
			fail(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		fail(w, http.StatusInternalServerError, err.Error())
		return
	}

	if !u.IsActive {
		fail(w, http.StatusForbidden, "User account is deactivated")
		return
	}

	if !user.CheckPassword(password, u.PasswordHash) {
		fail(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	tok, err := s.codec.Issue(u)
	if err != nil {
		fail(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.setTokenCookie(w, tok, s.codec.TTL())

	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"message": "Login successful",
		"user":    u.Public(),
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearTokenCookie(w)
	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"message": "Logout successful",
	})
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		fail(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	u, err := s.users.FindByID(r.Context(), claims.ID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			fail(w, http.StatusNotFound, "User not found")
			return
		}
		fail(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"user":    u.Public(),
	})
}

func (s *Server) handleRefreshToken(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		fail(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	u, err := s.users.FindByID(r.Context(), claims.ID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			fail(w, http.StatusNotFound, "User not found")
			return
		}
		fail(w, http.StatusInternalServerError, err.Error())
		return
	}

	// A brand-new token with a fresh expiry supersedes the old one;
	// the previous token is not invalidated, it simply ages out.
	tok, err := s.codec.Issue(u)
	if err != nil {
		fail(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.setTokenCookie(w, tok, s.codec.TTL())

	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"message": "Token refreshed successfully",
	})
}
