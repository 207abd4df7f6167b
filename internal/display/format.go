package display

import "fmt"

var sizeUnits = []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}

// FormatSize renders n bytes in binary units, e.g. "512 B" or "1.5 MiB".
// Negative values keep their sign.
func FormatSize(n int64) string {
	sign := ""
	mag := uint64(n)
	if n < 0 {
		sign = "-"
		mag = uint64(-(n + 1)) + 1
	}
	if mag < 1024 {
		return fmt.Sprintf("%s%d B", sign, mag)
	}
	v, i := float64(mag), 0
	for v >= 1024 && i < len(sizeUnits)-1 {
		v /= 1024
		i++
	}
	return fmt.Sprintf("%s%.1f %s", sign, v, sizeUnits[i])
}

// FormatSizeDelta describes how a batch's total size changed from in to out
// bytes: "1.0 GiB -> 600.0 MiB (-424.0 MiB, -41.4%)". The percentage is
// left out when in is zero.
func FormatSizeDelta(in, out int64) string {
	delta := FormatSize(out - in)
	if out > in {
		delta = "+" + delta
	}
	s := fmt.Sprintf("%s -> %s (%s", FormatSize(in), FormatSize(out), delta)
	if in == 0 {
		return s + ")"
	}
	return fmt.Sprintf("%s, %+.1f%%)", s, float64(out-in)/float64(in)*100)
}
