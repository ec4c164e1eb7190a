// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package scene implements the retained object tree the engine composes:
// an arena of nodes linked by parent, first-child and next-sibling indices,
// addressed from the outside by generation-checked IDs.
//
// # Tree shape
//
// A Tree holds any number of roots (one per page). Children of a node are
// kept in a singly linked sibling list in back-to-front order, so the last
// child is drawn on top. Every walk over the tree is iterative and uses a
// worklist bounded by the tree's maximum depth; operations that would push
// the tree past that bound fail with ErrDepthExceeded and change nothing.
//
// # Damage
//
// Mutations set the node's dirty flag, and geometry changes also push the
// node's old rectangle into the damage accumulator so the vacated pixels
// get repainted. Collect walks a root, folds the rectangles of dirty and
// destroyed nodes into the accumulator and sweeps destroyed nodes after the
// walk completes. Paint then replays the visible part of the tree into a
// raster.Surface.
//
// # Errors
//
// Allocation failures and depth overflows are returned as errors. Using an
// ID whose node has been freed is a programming error and panics.
package scene
