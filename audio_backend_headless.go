//go:build headless

package main

type OtoBell struct{}

func NewOtoBell() (*OtoBell, error) {
	return nil, &VideoError{Operation: "bell init", Details: "no audio in headless builds"}
}

func (ob *OtoBell) Ring() {}

func (ob *OtoBell) Close() {}
