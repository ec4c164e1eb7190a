package fontcache

import (
	"fmt"
	"sync"
	"testing"
)

func basicKey(charset string) Key {
	return Key{Face: FaceBasic, BPP: 4, Charset: charset}
}

func TestCache_HitReturnsSameFont(t *testing.T) {
	c := New(4)
	a, err := c.Get(basicKey("ascii"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.Get(basicKey("ascii"))
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("second Get rebuilt the font")
	}
	st := c.Stats()
	if st.Hits != 1 || st.Misses != 1 || st.Len != 1 {
		t.Errorf("stats = %+v", st)
	}
}

func TestCache_EvictsOldest(t *testing.T) {
	c := New(2)
	k1, k2, k3 := basicKey("0x41-0x43"), basicKey("0x44-0x46"), basicKey("0x47-0x49")
	for _, k := range []Key{k1, k2} {
		if _, err := c.Get(k); err != nil {
			t.Fatal(err)
		}
	}
	// Touch k1 so k2 becomes the oldest.
	if _, err := c.Get(k1); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Get(k3); err != nil {
		t.Fatal(err)
	}

	c.mu.Lock()
	_, has1 := c.entries[k1]
	_, has2 := c.entries[k2]
	c.mu.Unlock()
	if !has1 || has2 {
		t.Errorf("after eviction: k1=%v k2=%v, want k1 kept and k2 evicted", has1, has2)
	}
	if c.Stats().Evictions != 1 {
		t.Errorf("evictions = %d, want 1", c.Stats().Evictions)
	}
}

func TestCache_Errors(t *testing.T) {
	tests := []struct {
		name string
		key  Key
	}{
		{"bad charset", Key{Face: FaceBasic, BPP: 4, Charset: "klingon"}},
		{"bad bpp", Key{Face: FaceBasic, BPP: 3, Charset: "ascii"}},
		{"missing file", Key{Face: "/nonexistent/font.ttf", Size: 12, BPP: 4, Charset: "ascii"}},
		{"zero size", Key{Face: FaceRegular, BPP: 4, Charset: "ascii"}},
	}
	c := New(0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := c.Get(tt.key); err == nil {
				t.Error("expected an error")
			}
		})
	}
	if c.Len() != 0 {
		t.Errorf("failed builds were cached: len = %d", c.Len())
	}
}

func TestCache_GoFonts(t *testing.T) {
	c := New(0)
	for _, face := range []string{FaceRegular, FaceBold, FaceMono} {
		t.Run(face, func(t *testing.T) {
			f, err := c.Get(Key{Face: face, Size: 14, BPP: 2, Charset: "0x30-0x39"})
			if err != nil {
				t.Fatal(err)
			}
			if f.Height <= 0 {
				t.Errorf("height = %d", f.Height)
			}
			if err := f.Validate(); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestCache_Concurrent(t *testing.T) {
	c := New(3)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			k := basicKey(fmt.Sprintf("0x%x", 0x41+i%4))
			if _, err := c.Get(k); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
	if c.Len() > 3 {
		t.Errorf("len = %d exceeds capacity", c.Len())
	}
}

func TestCache_Clear(t *testing.T) {
	c := New(0)
	if _, err := c.Get(basicKey("ascii")); err != nil {
		t.Fatal(err)
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("len = %d after Clear", c.Len())
	}
}
