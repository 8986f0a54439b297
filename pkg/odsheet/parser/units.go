package parser

import "github.com/ukaji3/odsheet-go/pkg/odsheet/sheet"

// PixelsPerInch is the screen resolution used for pixel offsets.
// 1 inch = 72 points, and at 96 DPI, 1 inch = 96 pixels.
const PixelsPerInch = 96

// LengthToPixels converts an ODF length to pixels at 96 DPI. The default
// length converts to 0.
func LengthToPixels(l sheet.Length) int {
	return int(l.Points() * PixelsPerInch / 72)
}
