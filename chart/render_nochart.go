//go:build nochart

package chart

import "github.com/weiihann/zkstat/bench"

// Available reports whether this build can render charts.
func Available() bool {
	return false
}

// Render always fails with ErrUnavailable in builds without chart support.
func Render(string, bench.Set) (string, error) {
	return "", ErrUnavailable
}
