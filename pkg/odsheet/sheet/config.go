package sheet

import "fmt"

// SplitMode says how a sheet view is split.
type SplitMode int16

const (
	SplitNone SplitMode = iota
	// SplitPixel is a movable split.
	SplitPixel
	// SplitHeading freezes rows or columns on a cell boundary.
	SplitHeading
)

func (m SplitMode) String() string {
	switch m {
	case SplitPixel:
		return "split"
	case SplitHeading:
		return "heading"
	default:
		return "none"
	}
}

// SplitModeError reports a split mode code outside 0..2.
type SplitModeError struct {
	Code int
}

func (e *SplitModeError) Error() string {
	return fmt.Sprintf("invalid split mode %d", e.Code)
}

// ParseSplitMode converts the settings.xml code to a SplitMode.
func ParseSplitMode(code int) (SplitMode, error) {
	switch code {
	case 0:
		return SplitNone, nil
	case 1:
		return SplitPixel, nil
	case 2:
		return SplitHeading, nil
	}
	return SplitNone, &SplitModeError{Code: code}
}

// SheetConfig is the per sheet view state kept in settings.xml.
//
// For a pixel split the positions name the first visible column or row of
// each quadrant. For a heading split PositionLeft and PositionTop also hide
// everything before them.
type SheetConfig struct {
	CursorX uint32
	CursorY uint32

	HorSplitMode  SplitMode
	VertSplitMode SplitMode
	HorSplitPos   uint32
	VertSplitPos  uint32

	// ActiveSplitRange is the focused quadrant 0..4 of a pixel split.
	ActiveSplitRange int16

	PositionLeft   uint32
	PositionRight  uint32
	PositionTop    uint32
	PositionBottom uint32

	// ZoomType 0 means ZoomValue is a percentage.
	ZoomType          int16
	ZoomValue         int32
	PageViewZoomValue int32
	ShowGrid          bool
}

// DefaultSheetConfig returns the view state of a fresh sheet.
func DefaultSheetConfig() SheetConfig {
	return SheetConfig{
		ActiveSplitRange:  2,
		ZoomValue:         100,
		PageViewZoomValue: 60,
		ShowGrid:          true,
	}
}

// Config returns the view configuration.
func (s *Sheet) Config() SheetConfig { return s.config }

// ConfigMut returns the view configuration for in-place changes.
func (s *Sheet) ConfigMut() *SheetConfig { return &s.config }

// SetConfig replaces the view configuration.
func (s *Sheet) SetConfig(c SheetConfig) { s.config = c }

// SplitColHeader freezes the columns up to and including col and moves the
// cursor right of them.
func (s *Sheet) SplitColHeader(col uint32) {
	s.config.HorSplitMode = SplitHeading
	s.config.HorSplitPos = col + 1
	s.config.PositionRight = col + 1
	s.config.CursorX = col + 1
}

// SplitRowHeader freezes the rows up to and including row and moves the
// cursor below them.
func (s *Sheet) SplitRowHeader(row uint32) {
	s.config.VertSplitMode = SplitHeading
	s.config.VertSplitPos = row + 1
	s.config.PositionBottom = row + 1
	s.config.CursorY = row + 1
}

// SplitHorizontal places a movable split pos pixels from the left.
func (s *Sheet) SplitHorizontal(pos uint32) {
	s.config.HorSplitMode = SplitPixel
	s.config.HorSplitPos = pos
}

// SplitVertical places a movable split pos pixels from the top.
func (s *Sheet) SplitVertical(pos uint32) {
	s.config.VertSplitMode = SplitPixel
	s.config.VertSplitPos = pos
}
