// Package sceneconf loads TOML scene descriptions and builds them on an
// engine.
//
// A scene file describes the display, a set of named fonts and one or more
// pages, each holding a tree of rectangles and labels:
//
//	[display]
//	width = 240
//	height = 284
//	depth = "rgb565"
//	capacity = 4800
//
//	[fonts.body]
//	face = "goregular"
//	size = 14
//	charset = "ascii"
//
//	[[pages]]
//	name = "home"
//	color = "#f0f0f0"
//
//	  [[pages.nodes]]
//	  name = "card"
//	  type = "rect"
//	  x = 20
//	  y = 20
//	  w = 200
//	  h = 120
//	  radius = 12
//	  color = "#3050c0"
//
//	    [[pages.nodes.children]]
//	    type = "label"
//	    text = "Hello"
//	    font = "body"
//	    text_color = "#ffffff"
//
// Node coordinates are relative to the parent. A zero width or height takes
// the parent's.
package sceneconf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/fbui/geom"
	"github.com/gogpu/fbui/internal/fontcache"
	"github.com/gogpu/fbui/pixel"
)

// Node types.
const (
	TypeRect  = "rect"
	TypeLabel = "label"
)

// Scene is a decoded scene file.
type Scene struct {
	Display Display         `toml:"display"`
	Fonts   map[string]Font `toml:"fonts"`
	Pages   []Page          `toml:"pages"`

	// Dir is the directory relative image and font paths are resolved
	// against. Load sets it to the file's directory.
	Dir string `toml:"-"`
}

// Display describes the simulated panel.
type Display struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Depth  string `toml:"depth"`
	// Capacity is the scratch buffer size in pixels; zero means ten rows.
	Capacity  int  `toml:"capacity"`
	Buffers   int  `toml:"buffers"`
	SwapBytes bool `toml:"swap_bytes"`
	// Tick is the refresh interval in milliseconds.
	Tick     uint32 `toml:"tick"`
	MaxDepth int    `toml:"max_depth"`
	MaxNodes int    `toml:"max_nodes"`
}

// Font names a font built through the font cache.
type Font struct {
	Face     string  `toml:"face"`
	Size     float64 `toml:"size"`
	BPP      uint8   `toml:"bpp"`
	Charset  string  `toml:"charset"`
	Compress bool    `toml:"compress"`
}

// Page is one screen.
type Page struct {
	Name   string `toml:"name"`
	Color  string `toml:"color"`
	Image  string `toml:"image"`
	Active bool   `toml:"active"`
	Nodes  []Node `toml:"nodes"`
}

// Node is a rectangle or a label.
type Node struct {
	Name   string `toml:"name"`
	Type   string `toml:"type"`
	X      int16  `toml:"x"`
	Y      int16  `toml:"y"`
	W      int16  `toml:"w"`
	H      int16  `toml:"h"`
	Align  string `toml:"align"`
	Hidden bool   `toml:"hidden"`
	Alpha  *uint8 `toml:"alpha"`

	// Rectangles.
	Color       string `toml:"color"`
	Radius      int16  `toml:"radius"`
	Border      int16  `toml:"border"`
	BorderColor string `toml:"border_color"`
	Image       string `toml:"image"`

	// Labels.
	Text      string `toml:"text"`
	Font      string `toml:"font"`
	TextColor string `toml:"text_color"`
	TextAlign string `toml:"text_align"`
	Margin    int16  `toml:"margin"`

	Children []Node `toml:"children"`
}

// Load reads and validates a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sceneconf: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Dir = filepath.Dir(path)
	return s, nil
}

// Parse decodes and validates a scene. Unknown keys are errors.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return nil, fmt.Errorf("sceneconf: %w", err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for i, k := range undec {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("sceneconf: unknown keys: %s", strings.Join(keys, ", "))
	}
	s.setDefaults()
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scene) setDefaults() {
	d := &s.Display
	if d.Depth == "" {
		d.Depth = "rgb565"
	}
	if d.Capacity == 0 {
		d.Capacity = d.Width * 10
	}
	if d.Buffers == 0 {
		d.Buffers = 1
	}
	for name, f := range s.Fonts {
		if f.Face == "" {
			f.Face = fontcache.FaceBasic
		}
		if f.BPP == 0 {
			f.BPP = 4
		}
		if f.Charset == "" {
			f.Charset = "ascii"
		}
		s.Fonts[name] = f
	}
}

func (s *Scene) validate() error {
	var errs []error
	if s.Display.Width <= 0 || s.Display.Height <= 0 {
		errs = append(errs, fmt.Errorf("sceneconf: display size %dx%d", s.Display.Width, s.Display.Height))
	}
	if _, err := ParseDepth(s.Display.Depth); err != nil {
		errs = append(errs, err)
	}
	if s.Display.Buffers > 2 {
		errs = append(errs, fmt.Errorf("sceneconf: %d buffers, at most 2", s.Display.Buffers))
	}
	if len(s.Pages) == 0 {
		errs = append(errs, errors.New("sceneconf: no pages"))
	}
	names := make(map[string]bool)
	for i := range s.Pages {
		for j := range s.Pages[i].Nodes {
			errs = append(errs, s.validateNode(&s.Pages[i].Nodes[j], names)...)
		}
	}
	return errors.Join(errs...)
}

func (s *Scene) validateNode(n *Node, names map[string]bool) []error {
	var errs []error
	if n.Type == "" {
		n.Type = TypeRect
	}
	switch n.Type {
	case TypeRect:
	case TypeLabel:
		if n.Font != "" {
			if _, ok := s.Fonts[n.Font]; !ok {
				errs = append(errs, fmt.Errorf("sceneconf: node %q: unknown font %q", n.Name, n.Font))
			}
		}
	default:
		errs = append(errs, fmt.Errorf("sceneconf: node %q: unknown type %q", n.Name, n.Type))
	}
	if n.Name != "" {
		if names[n.Name] {
			errs = append(errs, fmt.Errorf("sceneconf: duplicate node name %q", n.Name))
		}
		names[n.Name] = true
	}
	if n.Align != "" {
		if a, err := geom.ParseAlign(n.Align); err != nil || !a.IsParent() {
			errs = append(errs, fmt.Errorf("sceneconf: node %q: align %q is not a parent anchor", n.Name, n.Align))
		}
	}
	if n.TextAlign != "" {
		if a, err := geom.ParseAlign(n.TextAlign); err != nil || !a.IsParent() {
			errs = append(errs, fmt.Errorf("sceneconf: node %q: text_align %q is not a parent anchor", n.Name, n.TextAlign))
		}
	}
	for i := range n.Children {
		errs = append(errs, s.validateNode(&n.Children[i], names)...)
	}
	return errs
}

// ParseDepth accepts a format name ("rgb565") or a bit count ("16").
func ParseDepth(s string) (pixel.Depth, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rgb332", "8":
		return pixel.RGB332, nil
	case "rgb565", "16":
		return pixel.RGB565, nil
	case "rgb888", "24":
		return pixel.RGB888, nil
	case "argb8888", "32":
		return pixel.ARGB8888, nil
	}
	return 0, fmt.Errorf("sceneconf: unknown depth %q", s)
}

// Key returns the font cache key of f, resolving file faces against dir.
func (f Font) Key(dir string) fontcache.Key {
	face := f.Face
	switch face {
	case fontcache.FaceBasic, fontcache.FaceRegular, fontcache.FaceBold, fontcache.FaceMono:
	default:
		if !filepath.IsAbs(face) {
			face = filepath.Join(dir, face)
		}
	}
	return fontcache.Key{Face: face, Size: f.Size, BPP: f.BPP, Charset: f.Charset, Compress: f.Compress}
}
