package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/modestbazar/storefront/internal/db"
)

func TestKV(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	if _, err := s.Get(ctx, "k"); !errors.Is(err, db.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}

	value := []byte("v1")
	if err := s.Set(ctx, "k", value); err != nil {
		t.Fatalf("Set: %v", err)
	}
	value[0] = 'x'

	got, err := s.Get(ctx, "k")
	if err != nil || string(got) != "v1" {
		t.Fatalf("Get = %q, %v", got, err)
	}
	got[0] = 'y'
	again, _ := s.Get(ctx, "k")
	if string(again) != "v1" {
		t.Error("stored value aliased by caller")
	}

	if ok, _ := s.Exists(ctx, "k"); !ok {
		t.Error("expected key to exist")
	}
	if err := s.Del(ctx, "k"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if ok, _ := s.Exists(ctx, "k"); ok {
		t.Error("expected key to be deleted")
	}
}

func TestHash(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	empty, err := s.HGetAll(ctx, "h")
	if err != nil || len(empty) != 0 {
		t.Fatalf("HGetAll on missing hash = %v, %v", empty, err)
	}

	_ = s.HSet(ctx, "h", map[string]string{"a": "1", "b": "2"})
	_ = s.HSet(ctx, "h", map[string]string{"b": "3"})
	m, _ := s.HGetAll(ctx, "h")
	if m["a"] != "1" || m["b"] != "3" {
		t.Errorf("unexpected hash: %v", m)
	}

	m["a"] = "changed"
	m2, _ := s.HGetAll(ctx, "h")
	if m2["a"] != "1" {
		t.Error("HGetAll returned internal map")
	}

	_ = s.HReplace(ctx, "h", map[string]string{"c": "4"})
	m3, _ := s.HGetAll(ctx, "h")
	if len(m3) != 1 || m3["c"] != "4" {
		t.Errorf("HReplace did not replace the hash: %v", m3)
	}

	_ = s.HReplace(ctx, "h", nil)
	if ok, _ := s.Exists(ctx, "h"); ok {
		t.Error("empty replace should remove the hash")
	}
}

func TestLifecycle(t *testing.T) {
	s := NewStore()
	if err := s.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}
	if err := s.WaitForReady(context.Background(), 0); err != nil {
		t.Errorf("WaitForReady: %v", err)
	}
	s.Close()
}
