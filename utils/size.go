package utils

import "github.com/dustin/go-humanize"

// HumanSize formats a byte count with SI units, e.g. 1200000 -> "1.2 MB".
func HumanSize(bytes uint64) string {
	return humanize.Bytes(bytes)
}
