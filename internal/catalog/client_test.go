//go:build !wasm
// +build !wasm

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productsJSON(n int) string {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf(`{"id":%d,"title":"T%d","description":"d","images":["%d.jpg"],"price":%d.99}`, i+1, i+1, i+1, i+1)
	}
	return `{"products":[` + strings.Join(items, ",") + `],"total":194,"skip":0,"limit":30}`
}

func newServer(t *testing.T, status int, body string) (*httptest.Server, chan *http.Request) {
	t.Helper()
	seen := make(chan *http.Request, 16)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen <- r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, seen
}

// TestFetch_TakesFirstPage verifies that the client keeps the first pageSize
// products in source order.
func TestFetch_TakesFirstPage(t *testing.T) {
	// Arrange
	srv, seen := newServer(t, http.StatusOK, productsJSON(15))
	client := NewClient(srv.URL+"/products/", 12)

	// Act
	products, err := client.Fetch(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, products, 12)
	for i, p := range products {
		assert.Equal(t, int64(i+1), p.ID)
	}

	require.Len(t, seen, 1)
	req := <-seen
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/products/", req.URL.Path)
	assert.Empty(t, req.URL.RawQuery)
	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestFetch_FewerThanPageSize(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, productsJSON(5))

	products, err := NewClient(srv.URL, 12).Fetch(context.Background())

	require.NoError(t, err)
	assert.Len(t, products, 5)
}

func TestFetch_EmptyProducts(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"products":[]}`)

	products, err := NewClient(srv.URL, 12).Fetch(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestFetch_NoPageLimit(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, productsJSON(30))

	products, err := NewClient(srv.URL, 0).Fetch(context.Background())

	require.NoError(t, err)
	assert.Len(t, products, 30)
}

// TestFetch_PriceKeptVerbatim verifies that prices are displayed as the catalog sent them.
func TestFetch_PriceKeptVerbatim(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"products":[
		{"id":1,"title":"a","description":"","images":[],"price":9.99},
		{"id":2,"title":"b","description":"","images":[],"price":0},
		{"id":3,"title":"c","description":"","images":[],"price":1299},
		{"id":4,"title":"d","description":"","images":[],"price":10.50}
	]}`)

	products, err := NewClient(srv.URL, 12).Fetch(context.Background())

	require.NoError(t, err)
	got := make([]string, len(products))
	for i, p := range products {
		got[i] = p.PriceText()
	}
	assert.Equal(t, []string{"9.99", "0", "1299", "10.5"}, got)
}

func TestFetch_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   `{"message":"boom"}`,
			check: func(t *testing.T, err error) {
				var se *StatusError
				require.ErrorAs(t, err, &se)
				assert.Equal(t, http.StatusInternalServerError, se.Code)
			},
		},
		{
			name:   "not found",
			status: http.StatusNotFound,
			body:   ``,
			check: func(t *testing.T, err error) {
				var se *StatusError
				require.ErrorAs(t, err, &se)
				assert.Equal(t, http.StatusNotFound, se.Code)
			},
		},
		{
			name:   "malformed json",
			status: http.StatusOK,
			body:   `<html>nope</html>`,
			check: func(t *testing.T, err error) {
				var syntaxErr *json.SyntaxError
				assert.ErrorAs(t, err, &syntaxErr)
			},
		},
		{
			name:   "missing products",
			status: http.StatusOK,
			body:   `{"items":[]}`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrMissingProducts)
			},
		},
		{
			name:   "products is not an array",
			status: http.StatusOK,
			body:   `{"products":"soon"}`,
			check: func(t *testing.T, err error) {
				var typeErr *json.UnmarshalTypeError
				assert.ErrorAs(t, err, &typeErr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newServer(t, tt.status, tt.body)

			products, err := NewClient(srv.URL, 12).Fetch(context.Background())

			require.Error(t, err)
			assert.Nil(t, products)
			tt.check(t, err)
		})
	}
}

func TestFetch_Unreachable(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{}`)
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, 12).Fetch(context.Background())

	require.Error(t, err)
}

func TestFetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	_, err := NewClient(srv.URL, 12, WithTimeout(50*time.Millisecond)).Fetch(context.Background())

	require.Error(t, err)
}

func TestFetch_ContextCancelled(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, productsJSON(1))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(srv.URL, 12).Fetch(ctx)

	assert.True(t, errors.Is(err, context.Canceled))
}

func TestLoad_WrapsResult(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, productsJSON(3))
	ok := NewClient(srv.URL, 12).Load(context.Background())
	assert.True(t, ok.OK())
	assert.Len(t, ok.Products, 3)

	bad, _ := newServer(t, http.StatusBadGateway, "")
	failed := NewClient(bad.URL, 12).Load(context.Background())
	assert.False(t, failed.OK())
	assert.Empty(t, failed.Products)
}

func TestProduct_FirstImage(t *testing.T) {
	src, ok := Product{Images: []string{"a.jpg", "b.jpg"}}.FirstImage()
	assert.True(t, ok)
	assert.Equal(t, "a.jpg", src)

	_, ok = Product{}.FirstImage()
	assert.False(t, ok)
}
