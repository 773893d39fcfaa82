// Package httpapi wires the HTTP surface of the service: routing, the
// authentication and authorization gates, and the request handlers.
package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/adsrikanth11/crud-testing/internal/config"
	"github.com/adsrikanth11/crud-testing/internal/product"
	"github.com/adsrikanth11/crud-testing/internal/token"
	"github.com/adsrikanth11/crud-testing/internal/user"
)

// Server holds the request-scoped collaborators. It carries no mutable
// state of its own; everything between requests lives in the database or
// in the session token itself.
type Server struct {
	cfg      *config.Config
	log      *logrus.Logger
	users    *user.Store
	products *product.Store
	codec    *token.Codec
	router   *mux.Router
}

// New assembles the server and registers all routes.
func New(cfg *config.Config, log *logrus.Logger, users *user.Store, products *product.Store, codec *token.Codec) *Server {
	s := &Server{
		cfg:      cfg,
		log:      log,
		users:    users,
		products: products,
		codec:    codec,
		router:   mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
