package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/minimart/shop-api/internal/catalog"
)

// fakeShop backs both stores in memory and mirrors the schema semantics:
// unique product names, at most one cart item per product, FK cascade on
// product delete.
type fakeShop struct {
	products      map[int64]catalog.Product
	items         []catalog.CartItem
	nextProductID int64
	nextItemID    int64
	now           time.Time
}

func newFakeShop() *fakeShop {
	return &fakeShop{
		products: make(map[int64]catalog.Product),
		now:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeShop) tick() time.Time {
	f.now = f.now.Add(time.Second)
	return f.now
}

func (f *fakeShop) Create(_ context.Context, in catalog.ProductInput) (catalog.Product, error) {
	for _, p := range f.products {
		if p.Name == in.Name {
			return catalog.Product{}, catalog.ErrDuplicateName
		}
	}
	f.nextProductID++
	p := catalog.Product{
		ID:          f.nextProductID,
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		Stock:       in.Stock,
	}
	f.products[p.ID] = p
	return p, nil
}

func (f *fakeShop) List(_ context.Context) ([]catalog.Product, error) {
	out := make([]catalog.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeShop) Get(_ context.Context, id int64) (catalog.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return catalog.Product{}, catalog.ErrNotFound
	}
	return p, nil
}

func (f *fakeShop) Update(_ context.Context, id int64, in catalog.ProductInput) (catalog.Product, error) {
	if _, ok := f.products[id]; !ok {
		return catalog.Product{}, catalog.ErrNotFound
	}
	for pid, p := range f.products {
		if pid != id && p.Name == in.Name {
			return catalog.Product{}, catalog.ErrDuplicateName
		}
	}
	p := catalog.Product{
		ID:          id,
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		Stock:       in.Stock,
	}
	f.products[id] = p
	return p, nil
}

func (f *fakeShop) Delete(_ context.Context, id int64) error {
	if _, ok := f.products[id]; !ok {
		return catalog.ErrNotFound
	}
	delete(f.products, id)
	kept := f.items[:0]
	for _, it := range f.items {
		if it.ProductID != id {
			kept = append(kept, it)
		}
	}
	f.items = kept
	return nil
}

func (f *fakeShop) Add(_ context.Context, productID int64, quantity int) (catalog.CartItem, error) {
	p, ok := f.products[productID]
	if !ok {
		return catalog.CartItem{}, catalog.ErrNotFound
	}
	for i := range f.items {
		if f.items[i].ProductID == productID {
			f.items[i].Quantity += quantity
			it := f.items[i]
			it.Product = p
			return it, nil
		}
	}
	f.nextItemID++
	it := catalog.CartItem{
		ID:        f.nextItemID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: f.tick(),
		Product:   p,
	}
	f.items = append(f.items, it)
	return it, nil
}

func (f *fakeShop) ListItems(_ context.Context) ([]catalog.CartItem, error) {
	out := make([]catalog.CartItem, 0, len(f.items))
	for _, it := range f.items {
		it.Product = f.products[it.ProductID]
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (f *fakeShop) Remove(_ context.Context, id int64) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return catalog.ErrNotFound
}

// cartStoreAdapter renames ListItems to the CartStore method set; fakeShop
// itself satisfies ProductStore.
type cartStoreAdapter struct{ *fakeShop }

func (a cartStoreAdapter) List(ctx context.Context) ([]catalog.CartItem, error) {
	return a.ListItems(ctx)
}

func newTestServer(t *testing.T) (*fakeShop, *httptest.Server) {
	t.Helper()
	shop := newFakeShop()
	r := NewRouter(zerolog.Nop())
	ph := &ProductsHandler{Store: shop, Logger: zerolog.Nop()}
	ph.Register(r)
	ch := &CartHandler{Store: cartStoreAdapter{shop}, Logger: zerolog.Nop()}
	ch.Register(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return shop, srv
}

func do(t *testing.T, srv *httptest.Server, method, path string, body any) (int, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, srv.URL+path, rd)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func decodeInto[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(data, &v))
	return v
}
