package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/adsrikanth11/crud-testing/internal/product"
	"github.com/adsrikanth11/crud-testing/internal/validate"
)

// Product endpoints return the resource directly (no envelope); errors
// use {"error": message}.

func productError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"error": message})
}

// productID parses the {id} path variable; mux's route pattern already
// restricts it to digits.
func productID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeBody(w, r)
	if !ok {
		return
	}
	if errs := validate.Product.Check(body); errs != nil {
		productError(w, http.StatusBadRequest, strings.Join(errs, "; "))
		return
	}

	name := strings.TrimSpace(bodyString(body, "name"))
	price := bodyNumber(body, "price")

	p, err := s.products.Create(r.Context(), name, price)
	if err != nil {
		if errors.Is(err, product.ErrMissingFields) {
			productError(w, http.StatusBadRequest, err.Error())
			return
		}
		productError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	list, err := s.products.FindAll(r.Context())
	if err != nil {
		productError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if list == nil {
		list = []product.Product{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := s.products.FindByID(r.Context(), productID(r))
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			productError(w, http.StatusNotFound, "Product not found")
			return
		}
		productError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeBody(w, r)
	if !ok {
		return
	}
	if errs := validate.Product.Check(body); errs != nil {
		productError(w, http.StatusBadRequest, strings.Join(errs, "; "))
		return
	}

	name := strings.TrimSpace(bodyString(body, "name"))
	price := bodyNumber(body, "price")

	p, err := s.products.Update(r.Context(), productID(r), name, price)
	if err != nil {
		switch {
		case errors.Is(err, product.ErrNotFound):
			productError(w, http.StatusNotFound, "Product not found")
		case errors.Is(err, product.ErrMissingFields):
			productError(w, http.StatusBadRequest, err.Error())
		default:
			productError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := s.products.Delete(r.Context(), productID(r)); err != nil {
		if errors.Is(err, product.ErrNotFound) {
			productError(w, http.StatusNotFound, "Product not found")
			return
		}
		productError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}
