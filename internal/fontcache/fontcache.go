// Package fontcache builds bitmap fonts on demand and keeps the most
// recently used ones.
//
// Scene files and the font converter refer to fonts by face name, pixel
// size, coverage depth and charset. Building a font rasterises every glyph,
// so a watched scene that reloads on every save would otherwise redo that
// work each time.
package fontcache

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/fbui/font"
	"github.com/gogpu/fbui/internal/logging"
)

// DefaultCapacity is the number of fonts kept by New(0).
const DefaultCapacity = 16

// Built-in face names. Any other name is read as a font file path.
const (
	FaceBasic   = "basic"
	FaceRegular = "goregular"
	FaceBold    = "gobold"
	FaceMono    = "gomono"
)

// Key identifies a built font.
type Key struct {
	// Face is a built-in face name or a TrueType/OpenType file path.
	Face string
	// Size is the pixel size. The basic face has a fixed size and ignores
	// it.
	Size float64
	// BPP is the coverage depth, 2 or 4.
	BPP uint8
	// Charset lists the code points to include, see font.Charset.
	Charset string
	// Compress selects run-length coded bitmaps.
	Compress bool
}

func (k Key) String() string {
	return fmt.Sprintf("%s@%g/%dbpp[%s]", k.Face, k.Size, k.BPP, k.Charset)
}

// Stats reports cache activity.
type Stats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// Cache is a thread-safe LRU of built fonts.
type Cache struct {
	mu       sync.Mutex
	entries  map[Key]*entry
	lru      lruList
	capacity int

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type entry struct {
	font *font.Font
	node *lruNode
}

// New returns a cache holding up to capacity fonts. If capacity <= 0,
// DefaultCapacity is used.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		entries:  make(map[Key]*entry),
		capacity: capacity,
	}
}

// Get returns the font for key, building it on a miss. Build errors are
// returned and not cached.
func (c *Cache) Get(key Key) (*font.Font, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		c.lru.moveToFront(e.node)
		c.hits.Add(1)
		return e.font, nil
	}
	c.misses.Add(1)

	f, err := Build(key)
	if err != nil {
		return nil, err
	}
	for c.lru.len >= c.capacity {
		old, ok := c.lru.popBack()
		if !ok {
			break
		}
		delete(c.entries, old)
		c.evictions.Add(1)
	}
	c.entries[key] = &entry{font: f, node: c.lru.pushFront(key)}
	logging.Get().Debug("fontcache: built font", "key", key.String(), "glyphs", len(f.Glyphs))
	return f, nil
}

// Len returns the number of cached fonts.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear drops every cached font.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[Key]*entry)
	c.lru = lruList{}
}

// Stats returns the current counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Len:       c.Len(),
		Capacity:  c.capacity,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

// Build rasterises the font described by key without caching it.
func Build(key Key) (*font.Font, error) {
	cs, err := font.Charset(key.Charset)
	if err != nil {
		return nil, err
	}
	face, err := openFace(key.Face, key.Size)
	if err != nil {
		return nil, err
	}
	defer face.Close()
	return font.FromFace(face, cs, font.Options{BPP: key.BPP, Compress: key.Compress})
}

func openFace(name string, size float64) (xfont.Face, error) {
	var data []byte
	switch name {
	case FaceBasic, "":
		return basicfont.Face7x13, nil
	case FaceRegular:
		data = goregular.TTF
	case FaceBold:
		data = gobold.TTF
	case FaceMono:
		data = gomono.TTF
	default:
		b, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("fontcache: %w", err)
		}
		data = b
	}
	if size <= 0 {
		return nil, fmt.Errorf("fontcache: invalid size %g for %s", size, name)
	}
	return font.ParseFace(data, size)
}
