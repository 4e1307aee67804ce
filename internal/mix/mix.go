// Package mix provides the small amount of whole-buffer math the offline
// renderer needs: scaling a rendered block of samples by a gain factor
// before quantizing it down to the WAV file's sample format. It is backed by
// github.com/cwbudde/algo-vecmath rather than a hand-rolled loop, the same
// dependency the DSP-heavy sibling repo in this codebase's lineage uses for
// exactly this kind of block operation.
package mix

import "github.com/cwbudde/algo-vecmath"

// ScaleBuffer returns a new slice holding src scaled by factor.
func ScaleBuffer(src []float64, factor float64) []float64 {
	dst := make([]float64, len(src))
	vecmath.ScaleBlock(dst, src, factor)
	return dst
}
