package mio

import "strings"

// Layout describes how a scrambled field is spread over a short byte window.
// Each byte of the window has eight weights, most significant bit first.
type Layout [][8]int

// bitWeights maps layout mnemonics to the value a set bit contributes.
// '!' is the sign bit. Every other character ('-', '_', '0') is padding.
var bitWeights = map[byte]int{
	'!': -512,
	'I': 256,
	'H': 128,
	'G': 64,
	'F': 32,
	'E': 16,
	'D': 8,
	'C': 4,
	'B': 2,
	'A': 1,
}

// ParseLayout builds a Layout from a tab-separated mnemonic such as
// "GFEDCBA-\t-----!IH". Characters past the eighth in a byte are ignored.
func ParseLayout(mnemonic string) Layout {
	parts := strings.Split(mnemonic, "\t")
	layout := make(Layout, len(parts))
	for i, part := range parts {
		for bit := 0; bit < 8 && bit < len(part); bit++ {
			layout[i][bit] = bitWeights[part[bit]]
		}
	}
	return layout
}

// Decode accumulates the weights of every set bit in window.
// Missing bytes read as zero, so a short window still yields a number.
func (l Layout) Decode(window []byte) int {
	value := 0
	for i, weights := range l {
		if i >= len(window) {
			break
		}
		b := window[i]
		for bit, w := range weights {
			if b&(1<<(7-bit)) != 0 {
				value += w
			}
		}
	}
	return value
}

// PointLayout pairs the x and y layouts sharing one byte window.
type PointLayout struct {
	X, Y Layout
}

func pointLayout(x, y string) PointLayout {
	return PointLayout{X: ParseLayout(x), Y: ParseLayout(y)}
}

// Decode unscrambles both coordinates from window.
func (p PointLayout) Decode(window []byte) Point {
	return Point{X: p.X.Decode(window), Y: p.Y.Decode(window)}
}

// Field layouts. Each one is specific to the record it appears in.
var (
	startPositionLayout = pointLayout(
		"GFEDCBA-\t-----!IH",
		"--------\tEDCBA---\t---!IHGF",
	)
	startAreaMaxLayout = pointLayout(
		"-----CBA\t-!IHGFED",
		"--------\tA-------\tIHGFEDCB\t-------!",
	)
	contactAreaMinLayout = pointLayout(
		"FEDCBA__\t____!IHG",
		"________\tDCBA____\t__!IHGFE",
	)
	contactAreaMaxLayout = pointLayout(
		"BA------\t!IHGFEDC",
		"--------\t--------\tHGFEDCBA\t------!I",
	)
	commonPositionLayout = pointLayout(
		"BA000000\t!IHGFEDC",
		"--------\t--------\tHGFEDCBA\t------!I",
	)
	goStraightPositionLayout = pointLayout(
		"HGFEDCBA\t------!I",
		"--------\tFEDCBA--\t----!IHG",
	)
	jumpAreaMaxLayout = pointLayout(
		"FEDCBA--\t----!IHG",
		"--------\tDCBA----\t--!IHGFE",
	)
	roamAreaMinLayout = pointLayout(
		"A-------\tIHGFEDCB\t-------!",
		"--------\t--------\tGFEDCBA-\t-----!IH",
	)
	roamAreaMaxLayout = pointLayout(
		"EDBCA---\t---!IHGF",
		"--------\tCBA-----\t-!IHGFED",
	)
	targetPositionLayout = pointLayout(
		"DCBA----\t--!IHGFE",
		"--------\tBA------\t!IHGFEDC",
	)
)
