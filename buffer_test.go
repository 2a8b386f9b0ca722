package eel

import (
	"math"
	"testing"
)

func TestBufferBounds(t *testing.T) {
	b := NewBuffer()
	cases := []struct {
		i  int
		ok bool
	}{
		{0, true},
		{1, true},
		{pageSize - 1, true},
		{pageSize, true},
		{BufferSize - 1, true},
		{BufferSize, false},
		{-1, false},
		{math.MaxInt, false},
	}
	for _, c := range cases {
		if ok := b.Set(c.i, 7); ok != c.ok {
			t.Errorf("Set(%d) returned %v", c.i, ok)
		}
		want := 0.0
		if c.ok {
			want = 7
		}
		if v := b.Get(c.i); v != want {
			t.Errorf("Get(%d): want %v, got %v", c.i, want, v)
		}
	}
	if b.Len() != BufferSize {
		t.Errorf("wrong length %d", b.Len())
	}
}

func TestBufferLazy(t *testing.T) {
	b := NewBuffer()
	if n := b.pagesInUse(); n != 0 {
		t.Errorf("new buffer uses %d pages", n)
	}
	for i := 0; i < 10; i++ {
		if v := b.Get(i * 100003); v != 0 {
			t.Errorf("unwritten slot %d is %v", i*100003, v)
		}
	}
	if n := b.pagesInUse(); n != 0 {
		t.Errorf("reads allocated %d pages", n)
	}
	b.Set(5, 1)
	b.Set(6, 1)
	b.Set(BufferSize-1, 1)
	if n := b.pagesInUse(); n != 2 {
		t.Errorf("want 2 pages, got %d", n)
	}
	b.Reset()
	if n := b.pagesInUse(); n != 0 || b.Get(5) != 0 {
		t.Errorf("Reset left %d pages and slot 5 = %v", n, b.Get(5))
	}
}

func TestBufferNegativeZero(t *testing.T) {
	b := NewBuffer()
	b.Set(3, math.Copysign(0, -1))
	if v := b.Get(3); !math.Signbit(v) {
		t.Errorf("lost sign of -0: %v", v)
	}
}

func TestBufferIndex(t *testing.T) {
	cases := []struct {
		v    float64
		want int
	}{
		{0, 0},
		{1, 1},
		{1.5, 1},
		{9.99999, 10},
		{9.9999, 9},
		{-1, 0},
		{-0.5, 0},
		{-2, -1},
		{8388607, 8388607},
		{8388608, -1},
		{math.NaN(), -1},
		{math.Inf(1), -1},
		{math.Inf(-1), -1},
		{1e300, -1},
	}
	for _, c := range cases {
		if got := bufferIndex(c.v); got != c.want {
			t.Errorf("bufferIndex(%v): want %d, got %d", c.v, c.want, got)
		}
	}
}
