package main

import (
	"io"
	"os"

	"github.com/klauspost/readahead"
)

// readSource reads an entire file, or in if path is "-".
func readSource(in io.Reader, path string) (string, error) {
	var r io.Reader = in
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}
	if r == nil {
		r = os.Stdin
	}
	ra := readahead.NewReader(r)
	defer ra.Close()
	b, err := io.ReadAll(ra)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
