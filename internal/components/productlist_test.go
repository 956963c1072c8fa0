//go:build !wasm
// +build !wasm

package components

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vcrobe/storefront/internal/catalog"
	"github.com/vcrobe/storefront/runtime"
	"github.com/vcrobe/storefront/testcomponents"
	"github.com/vcrobe/storefront/vdom"
)

func waitSettled(t *testing.T, list *ProductList, renderer *runtime.StaticRenderer) *vdom.VNode {
	t.Helper()
	select {
	case <-list.Settled():
	case <-time.After(5 * time.Second):
		t.Fatal("product list did not settle")
	}
	renderer.Flush()
	return renderer.CurrentVDOM()
}

func mountList(cat Catalog, logger *zap.Logger) (*ProductList, *runtime.StaticRenderer) {
	list := NewProductList(cat, "/static/placeholder.svg", logger)
	return list, runtime.NewStaticRenderer(list)
}

// TestProductList_InitialRenderIsEmpty verifies that no cards are shown before
// the fetch resolves.
func TestProductList_InitialRenderIsEmpty(t *testing.T) {
	defer goleak.VerifyNone(t)

	// Arrange
	cat := testcomponents.NewGatedCatalog(catalog.Result{Products: testcomponents.Products(3)})
	list, renderer := mountList(cat, nil)

	// Act
	vnode := renderer.RenderRoot()
	<-cat.Started()

	// Assert
	assert.Equal(t, "article", vnode.Tag)
	cls, _ := vnode.Attr("class")
	assert.Equal(t, "products", cls)
	state, _ := vnode.Attr("data-state")
	assert.Equal(t, string(StatusLoading), state)
	assert.Empty(t, testcomponents.Cards(vnode))

	cat.Release()
	waitSettled(t, list, renderer)
	renderer.Unmount()
}

// TestProductList_PopulationBound verifies that for N products the list shows
// min(N, 12) cards in source order, end to end through the catalog client.
func TestProductList_PopulationBound(t *testing.T) {
	for _, n := range []int{0, 1, 11, 12, 13, 15, 30} {
		t.Run(fmt.Sprintf("%d products", n), func(t *testing.T) {
			// Arrange
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				items := make([]string, n)
				for i := range items {
					items[i] = fmt.Sprintf(`{"id":%d,"title":"T%d","description":"d%d","images":["%d.jpg"],"price":%d.5}`, 100-i, i, i, i, i)
				}
				fmt.Fprintf(w, `{"products":[%s]}`, strings.Join(items, ","))
			}))
			defer srv.Close()
			list, renderer := mountList(catalog.NewClient(srv.URL+"/products/", 12), nil)

			// Act
			renderer.RenderRoot()
			vnode := waitSettled(t, list, renderer)
			renderer.Unmount()

			// Assert
			cards := testcomponents.Cards(vnode)
			require.Len(t, cards, min(n, 12))
			for i, card := range cards {
				assert.Equal(t, fmt.Sprintf("T%d", i), testcomponents.CardText(card, "product__name"))
				assert.Equal(t, fmt.Sprintf("product-%d", 100-i), card.ComponentKey)
			}
			state, _ := vnode.Attr("data-state")
			assert.Equal(t, string(StatusReady), state)
		})
	}
}

// TestProductList_Scenario15 covers the 15-record response: 12 cards, in order,
// 13th to 15th omitted.
func TestProductList_Scenario15(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		items := make([]string, 15)
		for i := range items {
			items[i] = fmt.Sprintf(`{"id":%d,"title":"A%d","description":"d","images":["x%d.jpg"],"price":9.99}`, i+1, i+1, i+1)
		}
		fmt.Fprintf(w, `{"products":[%s]}`, strings.Join(items, ","))
	}))
	defer srv.Close()

	list, renderer := mountList(catalog.NewClient(srv.URL, 12), nil)
	renderer.RenderRoot()
	vnode := waitSettled(t, list, renderer)
	renderer.Unmount()

	cards := testcomponents.Cards(vnode)
	require.Len(t, cards, 12)
	for i, card := range cards {
		assert.Equal(t, fmt.Sprintf("A%d", i+1), testcomponents.CardText(card, "product__name"))
		assert.Equal(t, "$ 9.99", testcomponents.CardText(card, "product__price"))
		img := testcomponents.Find(card, testcomponents.HasClass("product__image"))
		src, _ := img.Attr("src")
		assert.Equal(t, fmt.Sprintf("x%d.jpg", i+1), src)
	}
	for _, omitted := range []string{"A13", "A14", "A15"} {
		assert.Nil(t, testcomponents.Find(vnode, func(n *vdom.VNode) bool { return n.Content == omitted }))
	}
}

func TestProductList_EmptyResponse(t *testing.T) {
	cat := &testcomponents.StaticCatalog{Result: catalog.Result{Products: []catalog.Product{}}}
	list, renderer := mountList(cat, nil)

	renderer.RenderRoot()
	vnode := waitSettled(t, list, renderer)

	assert.Empty(t, testcomponents.Cards(vnode))
	assert.Equal(t, StatusReady, list.Status())
	assert.NoError(t, list.Err())
	renderer.Unmount()
}

// TestProductList_FetchesOncePerMount verifies a single fetch and exactly one
// re-render after it resolves; later re-renders do not fetch again.
func TestProductList_FetchesOncePerMount(t *testing.T) {
	defer goleak.VerifyNone(t)

	cat := testcomponents.NewGatedCatalog(catalog.Result{Products: testcomponents.Products(2)})
	list, renderer := mountList(cat, nil)

	renderer.RenderRoot()
	<-cat.Started()
	assert.Equal(t, 1, renderer.RenderCount())

	cat.Release()
	vnode := waitSettled(t, list, renderer)
	assert.Equal(t, 2, renderer.RenderCount())
	assert.Len(t, testcomponents.Cards(vnode), 2)

	list.StateHasChanged()
	list.StateHasChanged()
	assert.Equal(t, 4, renderer.RenderCount())
	assert.Equal(t, 1, cat.Loads())
	renderer.Unmount()
}

// TestProductList_Failure verifies that any load failure leaves an empty,
// renderable list marked failed.
func TestProductList_Failure(t *testing.T) {
	for name, err := range map[string]error{
		"status":  &catalog.StatusError{Code: 500, Status: "500 Internal Server Error"},
		"missing": catalog.ErrMissingProducts,
		"network": errors.New("dial tcp: connection refused"),
	} {
		t.Run(name, func(t *testing.T) {
			core, logs := observer.New(zapcore.InfoLevel)
			cat := &testcomponents.StaticCatalog{Result: catalog.Result{Err: err}}
			list, renderer := mountList(cat, zap.New(core))

			require.NotPanics(t, func() { renderer.RenderRoot() })
			vnode := waitSettled(t, list, renderer)

			assert.Empty(t, testcomponents.Cards(vnode))
			state, _ := vnode.Attr("data-state")
			assert.Equal(t, string(StatusFailed), state)
			assert.ErrorIs(t, list.Err(), err)
			assert.Equal(t, 1, logs.FilterMessage("catalog load failed").Len())
			renderer.Unmount()
		})
	}
}

// TestProductList_UnmountBeforeResolve verifies that a fetch finishing after the
// list was removed commits nothing and triggers no render.
func TestProductList_UnmountBeforeResolve(t *testing.T) {
	defer goleak.VerifyNone(t)

	// Arrange
	cat := testcomponents.NewGatedCatalog(catalog.Result{Products: testcomponents.Products(4)})
	list, renderer := mountList(cat, nil)
	renderer.RenderRoot()
	<-cat.Started()

	// Act
	renderer.Unmount()
	select {
	case <-list.Settled():
	case <-time.After(5 * time.Second):
		t.Fatal("fetch goroutine did not exit after unmount")
	}

	// Assert
	assert.Equal(t, 1, renderer.RenderCount())
	assert.Empty(t, list.Products())
	assert.Equal(t, StatusLoading, list.Status())
	assert.NoError(t, list.Err())
}

// TestProductList_UnmountAfterLateRelease covers a catalog that ignores
// cancellation: its late result is still dropped.
func TestProductList_UnmountAfterLateRelease(t *testing.T) {
	defer goleak.VerifyNone(t)

	release := make(chan struct{})
	cat := catalogFunc(func() catalog.Result {
		<-release
		return catalog.Result{Products: testcomponents.Products(2)}
	})
	list, renderer := mountList(cat, nil)
	renderer.RenderRoot()

	renderer.Unmount()
	close(release)
	<-list.Settled()

	assert.Empty(t, list.Products())
	assert.Equal(t, 1, renderer.RenderCount())
}

func TestProductList_UnmountWithoutMount(t *testing.T) {
	list := NewProductList(&testcomponents.StaticCatalog{}, "", nil)

	list.OnUnmount()

	select {
	case <-list.Settled():
	default:
		t.Fatal("Settled should be closed after unmount")
	}
}

// TestProductList_DebugTrace verifies the per-render trace is emitted on every
// render, including the empty first one, only when debug logging is on.
func TestProductList_DebugTrace(t *testing.T) {
	for _, tc := range []struct {
		level zapcore.Level
		want  int
	}{
		{zapcore.DebugLevel, 2},
		{zapcore.InfoLevel, 0},
	} {
		t.Run(tc.level.String(), func(t *testing.T) {
			core, logs := observer.New(tc.level)
			cat := testcomponents.NewGatedCatalog(catalog.Result{Products: testcomponents.Products(3)})
			list, renderer := mountList(cat, zap.New(core))

			renderer.RenderRoot()
			<-cat.Started()
			cat.Release()
			waitSettled(t, list, renderer)
			renderer.Unmount()

			traces := logs.FilterMessage("product list render").All()
			require.Len(t, traces, tc.want)
			if tc.want > 0 {
				assert.EqualValues(t, 0, traces[0].ContextMap()["count"])
				assert.EqualValues(t, 3, traces[1].ContextMap()["count"])
			}
		})
	}
}

type catalogFunc func() catalog.Result

func (f catalogFunc) Load(context.Context) catalog.Result { return f() }
