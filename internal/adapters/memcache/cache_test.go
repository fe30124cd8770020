package memcache

import (
	"context"
	"fmt"
	"testing"
	"time"
)

type payload struct {
	IDs []int `json:"ids"`
}

func TestCache_RoundTripDoesNotAlias(t *testing.T) {
	ctx := context.Background()
	c := New(0)

	in := payload{IDs: []int{1, 2}}
	if err := c.Set(ctx, "k", in, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	in.IDs[0] = 99

	var out payload
	ok, err := c.Get(ctx, "k", &out)
	if !ok || err != nil {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if out.IDs[0] != 1 {
		t.Fatalf("cached value was mutated through the caller's slice: %+v", out)
	}
}

func TestCache_ExpiryAndSweep(t *testing.T) {
	ctx := context.Background()
	c := New(0)
	c.unit = 10 * time.Millisecond

	_ = c.Set(ctx, "short", payload{}, 1)
	_ = c.Set(ctx, "forever", payload{}, 0)
	_ = c.Set(ctx, "long", payload{}, 1000)

	time.Sleep(30 * time.Millisecond)

	var out payload
	if ok, _ := c.Get(ctx, "short", &out); ok {
		t.Fatalf("expected expired entry to miss")
	}
	if ok, _ := c.Get(ctx, "forever", &out); !ok {
		t.Fatalf("entry without ttl should not expire")
	}

	if n := c.Sweep(); n != 1 {
		t.Fatalf("sweep removed %d, want 1", n)
	}
	if c.Len() != 2 {
		t.Fatalf("len after sweep = %d", c.Len())
	}
}

func TestCache_HitDoesNotExtendTTL(t *testing.T) {
	ctx := context.Background()
	c := New(0)
	c.unit = 20 * time.Millisecond

	_ = c.Set(ctx, "k", payload{}, 2)
	var out payload
	for i := 0; i < 3; i++ {
		time.Sleep(10 * time.Millisecond)
		_, _ = c.Get(ctx, "k", &out)
	}
	time.Sleep(20 * time.Millisecond)
	if ok, _ := c.Get(ctx, "k", &out); ok {
		t.Fatalf("reads must not keep an entry alive")
	}
}

func TestCache_CapacityEvictsOldest(t *testing.T) {
	ctx := context.Background()
	c := New(2)

	_ = c.Set(ctx, "a", payload{}, 60)
	_ = c.Set(ctx, "b", payload{}, 60)
	_ = c.Set(ctx, "c", payload{}, 60)

	if c.Len() != 2 {
		t.Fatalf("len = %d, want 2", c.Len())
	}
	var out payload
	if ok, _ := c.Get(ctx, "a", &out); ok {
		t.Fatalf("oldest entry should be evicted")
	}
	for _, k := range []string{"b", "c"} {
		if ok, _ := c.Get(ctx, k, &out); !ok {
			t.Fatalf("%s should survive", k)
		}
	}
}

func TestCache_Del(t *testing.T) {
	ctx := context.Background()
	c := New(0)
	_ = c.Set(ctx, "k", payload{}, 60)
	_ = c.Del(ctx, "k")
	var out payload
	if ok, _ := c.Get(ctx, "k", &out); ok {
		t.Fatalf("expected miss after delete")
	}
}

func TestCache_ManyKeysStayBounded(t *testing.T) {
	ctx := context.Background()
	c := New(8)
	for i := 0; i < 100; i++ {
		_ = c.Set(ctx, fmt.Sprintf("k%d", i), payload{IDs: []int{i}}, 60)
	}
	if c.Len() != 8 {
		t.Fatalf("len = %d, want 8", c.Len())
	}
}
