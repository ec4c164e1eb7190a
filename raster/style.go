package raster

import (
	"github.com/gogpu/fbui/geom"
	"github.com/gogpu/fbui/pixel"
)

// RectStyle describes a rectangle the way a widget stores it.
type RectStyle struct {
	Color       pixel.Color
	BorderColor pixel.Color
	Border      int16
	Radius      int16
	Alpha       uint8
	// Pixmap, when set, replaces Color as the fill. Borders are not drawn
	// around pixmaps.
	Pixmap *Pixmap
}

// DrawRect paints rect in style st, choosing the matching primitive.
func DrawRect(s *Surface, clip, rect geom.Area, st RectStyle) {
	switch {
	case st.Pixmap != nil && st.Radius == 0:
		FillPixmap(s, clip, rect, st.Pixmap, st.Alpha)
	case st.Pixmap != nil:
		FillRoundPixmap(s, clip, rect, st.Radius, st.Pixmap, st.Alpha)
	case st.Radius == 0 && st.Border == 0:
		FillRect(s, clip, rect, st.Color, st.Alpha)
	case st.Radius == 0:
		FillRectBorder(s, clip, rect, st.Color, st.BorderColor, st.Border, st.Alpha)
	case st.Border == 0:
		FillRoundRect(s, clip, rect, st.Radius, st.Color, st.Alpha)
	default:
		FillRoundRectBorder(s, clip, rect, st.Radius, st.Color, st.BorderColor, st.Border, st.Alpha)
	}
}
