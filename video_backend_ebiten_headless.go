//go:build headless

package main

// Headless builds carry no window system; the ebiten backend degrades to
// frame counting.
func NewEbitenOutput() (DisplayOutput, error) {
	return NewHeadlessOutput(), nil
}
