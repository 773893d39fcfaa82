package httpapi

import (
	"net/http"
	"time"
)

// tokenCookie is the cookie carrying the session token. The name is
// part of the API contract.
const tokenCookie = "token"

// setTokenCookie attaches a session cookie whose Max-Age matches the
// token's lifetime. Secure is only set in production so local HTTP
// development keeps working.
func (s *Server) setTokenCookie(w http.ResponseWriter, tok string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookie,
		Value:    tok,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.cfg.Production,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearTokenCookie expires the session cookie immediately. MaxAge=-1
// plus an Expires in the past ensures deletion across clients.
func (s *Server) clearTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cfg.Production,
		SameSite: http.SameSiteStrictMode,
	})
}

// readTokenCookie returns the raw token, or "" when the cookie is
// absent or empty.
func readTokenCookie(r *http.Request) string {
	c, err := r.Cookie(tokenCookie)
	if err != nil {
		return ""
	}
	return c.Value
}
