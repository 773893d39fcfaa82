package httpapi

import (
	"net/http"

	"github.com/adsrikanth11/crud-testing/internal/user"
)

func (s *Server) routes() {
	s.router.Use(requestID, s.logRequests)

	s.router.HandleFunc("/", s.handleHome).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api").Subrouter()

	// Auth: register/login are public; the rest require a valid session.
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	auth.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	auth.Handle("/logout", s.authenticate(http.HandlerFunc(s.handleLogout))).Methods(http.MethodPost)
	auth.Handle("/me", s.authenticate(http.HandlerFunc(s.handleCurrentUser))).Methods(http.MethodGet)
	auth.Handle("/refresh-token", s.authenticate(http.HandlerFunc(s.handleRefreshToken))).Methods(http.MethodPost)

	// Products: reads attach an identity when one is present but never
	// require it; writes are open, matching the resource's pass-through
	// contract.
	products := api.PathPrefix("/products").Subrouter()
	products.HandleFunc("", s.handleCreateProduct).Methods(http.MethodPost)
	products.Handle("", s.authenticateOptional(http.HandlerFunc(s.handleListProducts))).Methods(http.MethodGet)
	products.Handle("/{id:[0-9]+}", s.authenticateOptional(http.HandlerFunc(s.handleGetProduct))).Methods(http.MethodGet)
	products.HandleFunc("/{id:[0-9]+}", s.handleUpdateProduct).Methods(http.MethodPut)
	products.HandleFunc("/{id:[0-9]+}", s.handleDeleteProduct).Methods(http.MethodDelete)
	products.HandleFunc("/{id}", s.handleInvalidProductID).Methods(http.MethodGet, http.MethodPut, http.MethodDelete)

	// User administration.
	admin := s.requireRole(user.RoleAdmin)
	users := api.PathPrefix("/users").Subrouter()
	users.Handle("", s.authenticate(admin(http.HandlerFunc(s.handleListUsers)))).Methods(http.MethodGet)
	users.Handle("/{id:[0-9]+}/deactivate", s.authenticate(admin(http.HandlerFunc(s.handleDeactivateUser)))).Methods(http.MethodPost)
	users.Handle("/{id:[0-9]+}/activate", s.authenticate(admin(http.HandlerFunc(s.handleActivateUser)))).Methods(http.MethodPost)
	users.Handle("/{id:[0-9]+}", s.authenticate(admin(http.HandlerFunc(s.handleDeleteUser)))).Methods(http.MethodDelete)

	s.router.NotFoundHandler = requestID(s.logRequests(http.HandlerFunc(s.handleNotFound)))
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "API Server is running"})
}

func (s *Server) handleInvalidProductID(w http.ResponseWriter, r *http.Request) {
	productError(w, http.StatusBadRequest, "Valid product ID is required")
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"error":  "Route not found",
		"status": http.StatusNotFound,
		"path":   r.URL.Path,
		"method": r.Method,
	})
}
