// Package xlsx converts the sheet model to an Excel workbook.
//
// Values, formulas, merges, comments, links, column widths, row heights,
// visibility, outline groups, frozen panes and print areas are carried
// over. Cell styles and drawings are not.
package xlsx

import (
	"fmt"
	"log/slog"
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/odsheet-go/pkg/odsheet/parser"
	"github.com/ukaji3/odsheet-go/pkg/odsheet/sheet"
)

// maxOutlineLevel is the deepest outline level Excel accepts.
const maxOutlineLevel = 7

// Config controls the conversion.
type Config struct {
	// Logger receives debug records. nil discards.
	Logger *slog.Logger
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// ToXLSX builds an Excel workbook from wb. The caller saves or writes the
// returned file.
func ToXLSX(wb *sheet.WorkBook, cfg Config) (*excelize.File, error) {
	log := cfg.logger()
	f := excelize.NewFile()
	if wb.NumSheets() == 0 {
		return f, nil
	}

	for i, s := range wb.Sheets() {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.Name()); err != nil {
				f.Close()
				return nil, fmt.Errorf("sheet %q: %w", s.Name(), err)
			}
		} else if _, err := f.NewSheet(s.Name()); err != nil {
			f.Close()
			return nil, fmt.Errorf("sheet %q: %w", s.Name(), err)
		}
		c := &converter{f: f, s: s, name: s.Name(), log: log}
		if err := c.convert(); err != nil {
			f.Close()
			return nil, fmt.Errorf("sheet %q: %w", s.Name(), err)
		}
	}

	if err := setVisibility(f, wb); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// setVisibility hides sheets and selects the active sheet. Excel needs the
// active sheet to be visible, so a hidden active table gives way to the
// first visible one.
func setVisibility(f *excelize.File, wb *sheet.WorkBook) error {
	active := -1
	if s, ok := wb.SheetByName(wb.ActiveTable); ok && s.Display() {
		active, _ = f.GetSheetIndex(s.Name())
	}
	for _, s := range wb.Sheets() {
		if active < 0 && s.Display() {
			active, _ = f.GetSheetIndex(s.Name())
		}
	}
	if active < 0 {
		// Every sheet is hidden; the first one stays visible.
		active, _ = f.GetSheetIndex(wb.Sheet(0).Name())
	}
	f.SetActiveSheet(active)

	for _, s := range wb.Sheets() {
		if s.Display() {
			continue
		}
		if idx, _ := f.GetSheetIndex(s.Name()); idx == active {
			continue
		}
		if err := f.SetSheetVisible(s.Name(), false); err != nil {
			return fmt.Errorf("hide sheet %q: %w", s.Name(), err)
		}
	}
	return nil
}

type converter struct {
	f    *excelize.File
	s    *sheet.Sheet
	name string
	log  *slog.Logger
}

func (c *converter) convert() error {
	if err := c.cells(); err != nil {
		return err
	}
	if err := c.columns(); err != nil {
		return err
	}
	if err := c.rows(); err != nil {
		return err
	}
	if err := c.panes(); err != nil {
		return err
	}
	return c.printArea()
}

func cellName(row, col uint32) string {
	name, _ := excelize.CoordinatesToCellName(int(col)+1, int(row)+1)
	return name
}

func inBounds(row, col uint32) bool {
	return row < excelize.TotalRows && col < excelize.MaxColumns
}

func (c *converter) cells() error {
	for pos, ref := range c.s.Iter() {
		for i := uint32(0); i < ref.Repeat(); i++ {
			col := pos.Col + i
			if !inBounds(pos.Row, col) {
				c.log.Debug("cell outside the excel grid", "sheet", c.name, "row", pos.Row, "col", col)
				break
			}
			if err := c.cell(pos.Row, col, ref); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *converter) cell(row, col uint32, ref sheet.CellContentRef) error {
	name := cellName(row, col)
	v := ref.Value()
	if val, ok := cellValue(v); ok {
		if err := c.f.SetCellValue(c.name, name, val); err != nil {
			return fmt.Errorf("value %s: %w", name, err)
		}
	}

	if formula := ref.Formula(); formula != "" {
		var opts []excelize.FormulaOpts
		if rs, cs := ref.MatrixRowSpan(), ref.MatrixColSpan(); rs > 1 || cs > 1 {
			kind := excelize.STCellFormulaTypeArray
			area := name + ":" + cellName(row+rs-1, col+cs-1)
			opts = append(opts, excelize.FormulaOpts{Type: &kind, Ref: &area})
		}
		if err := c.f.SetCellFormula(c.name, name, TranslateFormula(formula), opts...); err != nil {
			return fmt.Errorf("formula %s: %w", name, err)
		}
	}

	if href := parser.CellLink(v); href != "" {
		link, kind := href, "External"
		if loc, ok := strings.CutPrefix(href, "#"); ok {
			link, kind = loc, "Location"
		}
		if err := c.f.SetCellHyperLink(c.name, name, link, kind); err != nil {
			return fmt.Errorf("link %s: %w", name, err)
		}
	}

	if rs, cs := ref.RowSpan(), ref.ColSpan(); rs > 1 || cs > 1 {
		if err := c.f.MergeCell(c.name, name, cellName(row+rs-1, col+cs-1)); err != nil {
			return fmt.Errorf("merge %s: %w", name, err)
		}
	}

	if ann := ref.Annotation(); ann != nil {
		err := c.f.AddComment(c.name, excelize.Comment{
			Cell:   name,
			Author: ann.Author,
			Text:   parser.AnnotationText(*ann),
		})
		if err != nil {
			return fmt.Errorf("comment %s: %w", name, err)
		}
	}
	return nil
}

// cellValue maps a value to what excelize stores natively. Percentages and
// currencies become plain numbers.
func cellValue(v sheet.Value) (any, bool) {
	switch v.Kind() {
	case sheet.ValueEmpty:
		return nil, false
	case sheet.ValueBoolean:
		b, _ := v.AsBool()
		return b, true
	case sheet.ValueNumber, sheet.ValuePercentage, sheet.ValueCurrency:
		f, _ := v.AsFloat()
		return f, true
	case sheet.ValueDateTime:
		t, _ := v.AsDateTime()
		return t, true
	case sheet.ValueTimeDuration:
		d, _ := v.AsDuration()
		return d, true
	}
	return v.String(), true
}

// columnWidth converts a length to Excel character units of the default
// font, which are 7 pixels wide plus 5 pixels of padding.
func columnWidth(l sheet.Length) float64 {
	px := parser.LengthToPixels(l)
	return math.Round(max(float64(px-5), 0)/7*100) / 100
}

// outlineLevels counts the groups holding each index below limit.
func outlineLevels(groups []sheet.Grouped, limit uint32) map[uint32]uint8 {
	levels := make(map[uint32]uint8)
	for _, g := range groups {
		for i := g.From; i <= g.To && i < limit; i++ {
			if levels[i] < maxOutlineLevel {
				levels[i]++
			}
		}
	}
	return levels
}

// columns applies widths, visibility and outline levels within the used
// columns.
func (c *converter) columns() error {
	groups := slices.Collect(c.s.ColGroups())
	limit := c.s.UsedCols()
	for _, g := range groups {
		limit = max(limit, g.To+1)
	}
	limit = min(limit, excelize.MaxColumns)
	levels := outlineLevels(groups, limit)

	for col := uint32(0); col < limit; col++ {
		name, err := excelize.ColumnNumberToName(int(col) + 1)
		if err != nil {
			return err
		}
		if h, ok := c.s.ColHeaderAt(col); ok && !h.Width.IsDefault() {
			if err := c.f.SetColWidth(c.name, name, name, columnWidth(h.Width)); err != nil {
				return fmt.Errorf("column %s width: %w", name, err)
			}
		}
		if c.s.ColVisible(col) != sheet.Visible {
			if err := c.f.SetColVisible(c.name, name, false); err != nil {
				return fmt.Errorf("column %s visibility: %w", name, err)
			}
		}
		if lvl := levels[col]; lvl > 0 {
			if err := c.f.SetColOutlineLevel(c.name, name, lvl); err != nil {
				return fmt.Errorf("column %s outline: %w", name, err)
			}
		}
	}
	return nil
}

// rows applies heights, visibility and outline levels. Hidden rows expand
// their full repeat; heights stop at the last row holding data.
func (c *converter) rows() error {
	gridRows, _ := c.s.UsedGridSize()
	groups := slices.Collect(c.s.RowGroups())
	limit := gridRows
	for _, g := range groups {
		limit = max(limit, g.To+1)
	}
	limit = min(limit, excelize.TotalRows)

	for _, idx := range c.s.RowHeaderIndexes() {
		h, _ := c.s.RowHeaderAt(idx)
		end := min(idx+h.Repeat, excelize.TotalRows)
		if h.Visible == sheet.Visible {
			end = min(end, max(limit, idx+1))
		}
		for row := idx; row < end; row++ {
			if err := c.row(int(row)+1, h); err != nil {
				return err
			}
		}
	}

	levels := outlineLevels(groups, limit)
	for _, row := range slices.Sorted(maps.Keys(levels)) {
		r := int(row) + 1
		if err := c.f.SetRowOutlineLevel(c.name, r, levels[row]); err != nil {
			return fmt.Errorf("row %d outline: %w", r, err)
		}
	}
	return nil
}

func (c *converter) row(r int, h sheet.RowHeader) error {
	if !h.Height.IsDefault() {
		if err := c.f.SetRowHeight(c.name, r, math.Round(h.Height.Points()*100)/100); err != nil {
			return fmt.Errorf("row %d height: %w", r, err)
		}
	}
	if h.Visible != sheet.Visible {
		if err := c.f.SetRowVisible(c.name, r, false); err != nil {
			return fmt.Errorf("row %d visibility: %w", r, err)
		}
	}
	return nil
}

// panes freezes the heading split of the sheet view. Pixel splits have no
// cell boundary and are left out.
func (c *converter) panes() error {
	cfg := c.s.Config()
	var xs, ys uint32
	if cfg.HorSplitMode == sheet.SplitHeading {
		xs = cfg.HorSplitPos
	}
	if cfg.VertSplitMode == sheet.SplitHeading {
		ys = cfg.VertSplitPos
	}
	if xs == 0 && ys == 0 {
		return nil
	}

	pane := "bottomRight"
	switch {
	case ys == 0:
		pane = "topRight"
	case xs == 0:
		pane = "bottomLeft"
	}
	topLeft := cellName(max(ys, cfg.PositionBottom), max(xs, cfg.PositionRight))
	return c.f.SetPanes(c.name, &excelize.Panes{
		Freeze:      true,
		XSplit:      int(xs),
		YSplit:      int(ys),
		TopLeftCell: topLeft,
		ActivePane:  pane,
	})
}

// printArea defines _xlnm.Print_Area from the print ranges of the sheet.
func (c *converter) printArea() error {
	ranges := c.s.PrintRanges()
	if len(ranges) == 0 {
		return nil
	}
	quoted := "'" + strings.ReplaceAll(c.name, "'", "''") + "'"
	parts := make([]string, 0, len(ranges))
	for _, r := range ranges {
		from, _ := excelize.CoordinatesToCellName(int(r.Col)+1, int(r.Row)+1, true)
		to, _ := excelize.CoordinatesToCellName(int(r.ToCol)+1, int(r.ToRow)+1, true)
		parts = append(parts, quoted+"!"+from+":"+to)
	}
	err := c.f.SetDefinedName(&excelize.DefinedName{
		Name:     "_xlnm.Print_Area",
		RefersTo: strings.Join(parts, ","),
		Scope:    c.name,
	})
	if err != nil {
		return fmt.Errorf("print area: %w", err)
	}
	return nil
}
