// utils/round.go
package utils

import "math"

// Round2 membulatkan nilai rupiah ke 2 desimal (half away from zero,
// sama dengan round() PHP yang dipakai perhitungan lama).
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
