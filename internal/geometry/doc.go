// Package geometry provides the axis-aligned rectangle and point primitives
// that every spatial check in plancheck is built on.
//
// All coordinates are in image-pixel space with the origin at the top-left
// corner. Rectangles are immutable value types; operations return new values
// rather than mutating receivers.
package geometry
