// Package random wraps crypto/rand for the identifiers and placeholder secrets FutureCast
// hands out.
package random

import (
	"crypto/rand"
	"math/big"
)

const alphanumeric = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Seq returns a random alphanumeric string of length n.
func Seq(n int) string {
	out := make([]byte, n)
	for i := range out {
		out[i] = alphanumeric[Num(len(alphanumeric))]
	}
	return string(out)
}

// Num returns a random integer in [0, n).
func Num(n int) int {
	r, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	return int(r.Int64())
}

// Between returns a random integer in [lo, hi].
func Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + Num(hi-lo+1)
}
