// Package widget provides the two reference widgets used by fbsim and the
// examples: a styled rectangle and a single-font text label.
//
// A widget is a scene.Drawer plus a handle to its node. Geometry lives in
// the node and is changed through the engine's tree; style setters mark
// the node dirty so the change is redrawn on the next pass.
package widget
