// Package gm (stands for geometry math) provides the geometry primitives
// of the game.
//
// It includes a 2d vector type called Vec for pixel space, an integer
// vector IVec for grid cells and an axis aligned rectangle Rect.
package gm
