package cart

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/metalldk/storefront/internal/storage"
	"github.com/metalldk/storefront/pkg/logger"
)

func newTestStore(t *testing.T) (*Store, *storage.Memory) {
	t.Helper()
	kv := storage.NewMemory()
	store, err := NewStore(kv, "", logger.Nop())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store, kv
}

func TestAddItemMergesByID(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	rng := rand.New(rand.NewSource(42))
	ids := []string{"a", "b", "c"}
	want := map[string]int{}
	for i := 0; i < 50; i++ {
		id := ids[rng.Intn(len(ids))]
		qty := rng.Intn(4) + 1
		want[id] += qty
		if _, err := store.AddItem(ctx, LineItem{ID: id, Title: "Лист " + id, Price: 100, Qty: qty}); err != nil {
			t.Fatalf("add item: %v", err)
		}
	}

	c := store.Read(ctx)
	if c.Len() != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), c.Len())
	}
	for _, item := range c {
		if item.Qty != want[item.ID] {
			t.Fatalf("item %s: expected qty %d, got %d", item.ID, want[item.ID], item.Qty)
		}
	}
}

func TestAddItemDefaultsAndDerivedID(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	c, err := store.AddItem(ctx, LineItem{Title: "Труба 40x20", Image: "/img/pipe.png", Price: -5})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if len(c) != 1 {
		t.Fatalf("expected one line, got %d", len(c))
	}
	if c[0].Qty != 1 {
		t.Fatalf("missing qty should default to 1, got %d", c[0].Qty)
	}
	if c[0].Price != 0 {
		t.Fatalf("negative price should clamp to 0, got %v", c[0].Price)
	}
	if c[0].ID != DeriveItemID("Труба 40x20", "/img/pipe.png") {
		t.Fatalf("expected derived id, got %q", c[0].ID)
	}

	c, _ = store.AddItem(ctx, LineItem{Title: "Труба 40x20", Image: "/img/pipe.png", Qty: 2})
	if len(c) != 1 || c[0].Qty != 3 {
		t.Fatalf("same title and image should merge, got %+v", c)
	}
}

func TestUpdateQuantityNeverBelowOne(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	_, _ = store.AddItem(ctx, LineItem{ID: "a", Qty: 3})

	for _, q := range []int{5, 1, 0, -1, -100} {
		c, err := store.UpdateQuantity(ctx, "a", q)
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if c[0].Qty < 1 {
			t.Fatalf("qty %d stored as %d", q, c[0].Qty)
		}
	}

	before := store.Read(ctx)
	after, err := store.UpdateQuantity(ctx, "missing", 7)
	if err != nil {
		t.Fatalf("update missing: %v", err)
	}
	if len(after) != len(before) || after[0] != before[0] {
		t.Fatalf("unknown id should be a no-op")
	}
}

func TestQuantitySaturatesAtMaxInt(t *testing.T) {
	ctx := context.Background()
	store, kv := newTestStore(t)
	_, _ = store.AddItem(ctx, LineItem{ID: "a", Qty: 1})
	_, _ = store.UpdateQuantity(ctx, "a", math.MaxInt)

	c, err := store.AddItem(ctx, LineItem{ID: "a", Qty: 2})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if c[0].Qty != math.MaxInt {
		t.Fatalf("expected qty to stay at %d, got %d", math.MaxInt, c[0].Qty)
	}
	if got := store.Read(ctx).Count(); got != math.MaxInt {
		t.Fatalf("expected count %d, got %d", math.MaxInt, got)
	}

	_ = kv.Set(ctx, "cartItems", fmt.Sprintf(`[{"id":"b","qty":%d},{"id":"b","qty":5}]`, math.MaxInt))
	if c := store.Read(ctx); len(c) != 1 || c[0].Qty != math.MaxInt {
		t.Fatalf("duplicate lines should merge to %d, got %+v", math.MaxInt, c)
	}
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	_, _ = store.AddItem(ctx, LineItem{ID: "a"})
	_, _ = store.AddItem(ctx, LineItem{ID: "b"})

	notified := 0
	store.Subscribe(func(context.Context, Cart) { notified++ })

	c, err := store.RemoveItem(ctx, "missing")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(c) != 2 || notified != 0 {
		t.Fatalf("absent id should leave the cart unchanged, got %+v notified=%d", c, notified)
	}

	c, _ = store.RemoveItem(ctx, "a")
	if len(c) != 1 || c[0].ID != "b" || notified != 1 {
		t.Fatalf("unexpected cart after remove %+v", c)
	}
}

func TestReadDegradesToEmptyOnCorruptData(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	logg := logger.New(logger.Options{ServiceName: "test", Level: "warn", Output: &buf})

	kv := storage.NewMemory()
	store, _ := NewStore(kv, "cartItems", logg)
	_ = kv.Set(ctx, "cartItems", "{not json")

	if c := store.Read(ctx); len(c) != 0 {
		t.Fatalf("corrupt data should read as empty, got %+v", c)
	}
	if !strings.Contains(buf.String(), "cart.storage.corrupt") {
		t.Fatalf("expected corrupt warning, got %q", buf.String())
	}
}

type failingKV struct{ getErr, setErr error }

func (f failingKV) Get(context.Context, string) (string, error) { return "", f.getErr }
func (f failingKV) Set(context.Context, string, string) error   { return f.setErr }

func TestStorageFailures(t *testing.T) {
	ctx := context.Background()
	store, _ := NewStore(failingKV{getErr: errors.New("disk gone"), setErr: errors.New("read-only")}, "", nil)

	if c := store.Read(ctx); len(c) != 0 {
		t.Fatalf("read failure should degrade to empty")
	}
	if _, err := store.AddItem(ctx, LineItem{ID: "a"}); err == nil {
		t.Fatal("write failure should be returned")
	}
}

func TestReadRestoresInvariantsAndNumericIDs(t *testing.T) {
	ctx := context.Background()
	store, kv := newTestStore(t)
	_ = kv.Set(ctx, DefaultKey, `[{"id":17,"title":"Швеллер","price":250,"qty":0},{"id":"17","qty":2},{"id":"x","qty":-3}]`)

	c := store.Read(ctx)
	if len(c) != 2 {
		t.Fatalf("expected duplicate ids merged, got %+v", c)
	}
	if c[0].ID != "17" || c[0].Qty != 3 {
		t.Fatalf("unexpected first line %+v", c[0])
	}
	if c[1].Qty != 1 {
		t.Fatalf("negative qty should clamp to 1, got %d", c[1].Qty)
	}
}

func TestTotals(t *testing.T) {
	c := Cart{
		{ID: "a", Price: 10.5, Qty: 2},
		{ID: "b", Price: 0.1, Qty: 3},
	}
	if c.Count() != 5 {
		t.Fatalf("unexpected count %d", c.Count())
	}
	if got := c.Total().String(); got != "21.3" {
		t.Fatalf("unexpected total %s", got)
	}
}

func TestClearNotifiesObservers(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	_, _ = store.AddItem(ctx, LineItem{ID: "a", Qty: 2})

	var seen Cart
	store.Subscribe(func(_ context.Context, c Cart) { seen = c })
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if seen == nil || len(seen) != 0 {
		t.Fatalf("observer should see an empty cart, got %+v", seen)
	}
	if len(store.Read(ctx)) != 0 {
		t.Fatal("cart should be empty after clear")
	}
}
