package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jacentio/lattice/kv"
	"github.com/jacentio/lattice/kv/memory"
)

// --- Get/Set/Delete Tests ---

func TestSetGet(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	if err := s.Set(ctx, "k", []byte("v"), kv.SetOptions{}); err != nil {
		t.Fatalf("set: %v", err)
	}

	data, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(data) != "v" {
		t.Errorf("expected 'v', got %q", data)
	}
}

func TestGet_Missing(t *testing.T) {
	s := memory.New()

	_, err := s.Get(context.Background(), "missing")
	if !errors.Is(err, kv.ErrNotFound) {
		t.Errorf("expected kv.ErrNotFound, got %v", err)
	}
}

func TestGet_ReturnsCopy(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	if err := s.Set(ctx, "k", []byte("abc"), kv.SetOptions{}); err != nil {
		t.Fatalf("set: %v", err)
	}

	data, _ := s.Get(ctx, "k")
	data[0] = 'X'

	again, _ := s.Get(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("mutating a returned value changed the stored one: %q", again)
	}
}

func TestDelete(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	if err := s.Set(ctx, "k", []byte("v"), kv.SetOptions{}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, "k"); !errors.Is(err, kv.ErrNotFound) {
		t.Errorf("expected kv.ErrNotFound after delete, got %v", err)
	}
}

func TestDelete_Absent(t *testing.T) {
	s := memory.New()
	if err := s.Delete(context.Background(), "nope"); err != nil {
		t.Errorf("deleting an absent key should succeed, got %v", err)
	}
}

// --- Conditional Write Tests ---

func TestSet_IfNotExists(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	if err := s.Set(ctx, "k", []byte("first"), kv.SetOptions{IfNotExists: true}); err != nil {
		t.Fatalf("first NX set: %v", err)
	}

	err := s.Set(ctx, "k", []byte("second"), kv.SetOptions{IfNotExists: true})
	if !errors.Is(err, kv.ErrConditionFailed) {
		t.Errorf("expected kv.ErrConditionFailed, got %v", err)
	}

	data, _ := s.Get(ctx, "k")
	if string(data) != "first" {
		t.Errorf("failed NX set overwrote the value: %q", data)
	}
}

func TestSet_IfExists(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	err := s.Set(ctx, "k", []byte("v"), kv.SetOptions{IfExists: true})
	if !errors.Is(err, kv.ErrConditionFailed) {
		t.Errorf("expected kv.ErrConditionFailed for absent key, got %v", err)
	}

	if err := s.Set(ctx, "k", []byte("v"), kv.SetOptions{}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, "k", []byte("v2"), kv.SetOptions{IfExists: true}); err != nil {
		t.Errorf("XX set on present key failed: %v", err)
	}
}

// --- TTL Tests ---

func TestSet_TTLReported(t *testing.T) {
	s := memory.New()

	if err := s.Set(context.Background(), "k", []byte("v"), kv.SetOptions{TTL: time.Minute}); err != nil {
		t.Fatalf("set: %v", err)
	}

	ttl, ok := s.TTL("k")
	if !ok {
		t.Fatal("expected a TTL")
	}
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("expected TTL in (0, 1m], got %v", ttl)
	}
}

func TestSet_TTLExpires(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	if err := s.Set(ctx, "k", []byte("v"), kv.SetOptions{TTL: time.Millisecond}); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, err := s.Get(ctx, "k"); !errors.Is(err, kv.ErrNotFound) {
		t.Errorf("expected expired key to be absent, got %v", err)
	}

	// Expired entries count as absent for conditional writes too.
	if err := s.Set(ctx, "k", []byte("v2"), kv.SetOptions{IfNotExists: true}); err != nil {
		t.Errorf("NX over an expired key failed: %v", err)
	}
}

func TestTTL_NoExpirySet(t *testing.T) {
	s := memory.New()

	if err := s.Set(context.Background(), "k", []byte("v"), kv.SetOptions{}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok := s.TTL("k"); ok {
		t.Error("expected no TTL for a plain set")
	}
}

func TestLen(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	s.Set(ctx, "a", []byte("1"), kv.SetOptions{})
	s.Set(ctx, "b", []byte("2"), kv.SetOptions{})
	s.Set(ctx, "c", []byte("3"), kv.SetOptions{TTL: time.Millisecond})
	time.Sleep(5 * time.Millisecond)

	if n := s.Len(); n != 2 {
		t.Errorf("expected 2 live entries, got %d", n)
	}
}
