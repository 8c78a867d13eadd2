package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type payload struct {
	Name string `json:"name"`
}

func withMiniredis(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
}

func TestAsideFetchesOnceThenServesFromCache(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	calls := 0
	var out payload
	fetch := func() error {
		calls++
		out.Name = "heat"
		return nil
	}

	if err := Aside(ctx, "k", &out, UserTTL, fetch); err != nil {
		t.Fatalf("first aside: %v", err)
	}

	var again payload
	if err := Aside(ctx, "k", &again, UserTTL, fetch); err != nil {
		t.Fatalf("second aside: %v", err)
	}

	if calls != 1 {
		t.Fatalf("expected one fetch, got %d", calls)
	}
	if again.Name != "heat" {
		t.Fatalf("expected cached value, got %q", again.Name)
	}
}

func TestAsidePropagatesFetchError(t *testing.T) {
	withMiniredis(t)

	var out payload
	want := errors.New("upstream down")
	err := Aside(context.Background(), "k", &out, UserTTL, func() error { return want })
	if !errors.Is(err, want) {
		t.Fatalf("expected fetch error, got %v", err)
	}

	// A failed fetch must not poison the cache.
	found, err := GetJSON(context.Background(), "k", &out)
	if err != nil || found {
		t.Fatalf("expected empty cache after failed fetch: found=%v err=%v", found, err)
	}
}

func TestHelpersAreNoOpsWithoutClient(t *testing.T) {
	SetClient(nil)

	var out payload
	found, err := GetJSON(context.Background(), "k", &out)
	if err != nil || found {
		t.Fatalf("expected miss without client: found=%v err=%v", found, err)
	}
	if err := SetJSON(context.Background(), "k", payload{}, UserTTL); err != nil {
		t.Fatalf("SetJSON without client: %v", err)
	}
	InvalidateUser(context.Background(), 1)
}
