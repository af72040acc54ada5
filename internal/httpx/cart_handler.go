package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/minimart/shop-api/internal/catalog"
)

type CartStore interface {
	Add(ctx context.Context, productID int64, quantity int) (catalog.CartItem, error)
	List(ctx context.Context) ([]catalog.CartItem, error)
	Remove(ctx context.Context, id int64) error
}

type CartHandler struct {
	Store  CartStore
	Logger zerolog.Logger
}

func (h *CartHandler) Register(r *chi.Mux) {
	r.Post("/cart/items/", h.add)
	r.Get("/cart/items/", h.list)
	r.Delete("/cart/items/{id}", h.remove)
}

// add merges into an existing item for the same product; repeated calls
// accumulate quantity rather than creating a second row.
func (h *CartHandler) add(w http.ResponseWriter, r *http.Request) {
	var in catalog.AddItemInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, detail("invalid json"))
		return
	}
	if err := in.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, detail(err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	it, err := h.Store.Add(ctx, in.ProductID, in.Qty())
	if err != nil {
		respondErr(w, r, h.Logger, err, "Product not found")
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (h *CartHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	items, err := h.Store.List(ctx)
	if err != nil {
		respondErr(w, r, h.Logger, err, "Cart item not found")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *CartHandler) remove(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, detail("Cart item not found"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Store.Remove(ctx, id); err != nil {
		respondErr(w, r, h.Logger, err, "Cart item not found")
		return
	}
	writeJSON(w, http.StatusOK, detail("Cart item removed"))
}
