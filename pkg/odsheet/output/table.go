package output

import (
	"cmp"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/ukaji3/odsheet-go/pkg/odsheet/sheet"
)

// tableWriter writes one table:table.
type tableWriter struct {
	w      *xmlWriter
	s      *sheet.Sheet
	styles *styleSet
	cfg    Config
	log    *slog.Logger

	cov         sheet.Coverage
	cellRows    map[uint32]bool
	spanRows    map[uint32]bool // rows with a cell spanning down
	contentRows []uint32 // sorted rows with stored or covered cells
	rowIdx      []uint32 // sorted row header indexes
	usedCols    uint32   // past the last stored or covered column
}

func (tw *tableWriter) write() {
	s, w := tw.s, tw.w
	tw.cov = s.Coverage()
	tw.cellRows = make(map[uint32]bool)
	tw.spanRows = make(map[uint32]bool)
	for pos, ref := range s.Iter() {
		tw.cellRows[pos.Row] = true
		if ref.RowSpan() > 1 {
			tw.spanRows[pos.Row] = true
		}
		tw.usedCols = max(tw.usedCols, colEnd(pos.Col, ref))
	}
	for r := range tw.cellRows {
		tw.contentRows = append(tw.contentRows, r)
	}
	for r, cols := range tw.cov {
		if len(cols) > 0 && !tw.cellRows[r] {
			tw.contentRows = append(tw.contentRows, r)
		}
	}
	slices.Sort(tw.contentRows)
	tw.rowIdx = s.RowHeaderIndexes()

	w.start("table:table")
	w.attr("table:name", s.Name())
	w.attrIf("table:style-name", tw.styles.tableStyle(s))
	if !s.Print() {
		w.attr("table:print", "false")
	}
	if pr := s.PrintRanges(); len(pr) > 0 {
		ranges := slices.Clone(pr)
		for i := range ranges {
			if ranges[i].Table == "" {
				ranges[i].Table = s.Name()
			}
		}
		w.attr("table:print-ranges", sheet.FormatCellRanges(ranges))
	}

	for _, t := range s.Extra() {
		if t.Name != "table:named-expressions" {
			w.tag(t)
		}
	}
	tw.writeColumns()
	tw.writeRows()
	for _, t := range s.Extra() {
		if t.Name == "table:named-expressions" {
			w.tag(t)
		}
	}
	w.end()
}

// interval is a group or header range on one axis.
type interval struct {
	from, to uint32
	header   bool
	display  bool
}

func (iv interval) contains(o interval) bool {
	return iv.from <= o.from && o.to <= iv.to
}

func (iv interval) disjoint(o interval) bool {
	return iv.to < o.from || o.to < iv.from
}

// nestIntervals orders groups and the header range for nested output,
// outer first. A header range that crosses a group, or holds one, cannot
// be expressed and is dropped.
func (tw *tableWriter) nestIntervals(axis string, groups []sheet.Grouped, header *interval) []interval {
	ivs := make([]interval, 0, len(groups)+1)
	for _, g := range groups {
		iv := interval{from: g.From, to: g.To, display: g.Display}
		if i := slices.IndexFunc(ivs, func(o interval) bool {
			return !o.disjoint(iv) && !o.contains(iv) && !iv.contains(o)
		}); i >= 0 {
			tw.log.Debug("skip crossing group", "table", tw.s.Name(), "axis", axis, "group", g.String())
			continue
		}
		ivs = append(ivs, iv)
	}
	if header != nil {
		ok := true
		for _, o := range ivs {
			if !o.disjoint(*header) && !o.contains(*header) {
				ok = false
				break
			}
		}
		if ok {
			ivs = append(ivs, *header)
		} else {
			tw.log.Debug("skip header range crossing a group", "table", tw.s.Name(), "axis", axis,
				"from", header.from, "to", header.to)
		}
	}
	slices.SortStableFunc(ivs, func(a, b interval) int {
		if c := cmp.Compare(a.from, b.from); c != 0 {
			return c
		}
		if c := cmp.Compare(b.to, a.to); c != 0 {
			return c
		}
		// groups enclose an equal header range
		if a.header == b.header {
			return 0
		}
		if a.header {
			return 1
		}
		return -1
	})
	return ivs
}

// nest walks from..to and calls open/close around each interval and leaf
// for the stretches between them. ivs must be sorted by nestIntervals and
// lie within from..to.
func nest(from, to uint32, ivs []interval, open, leave func(interval), leaf func(from, to uint32)) {
	cur := from
	for i := 0; i < len(ivs); {
		iv := ivs[i]
		j := i + 1
		for j < len(ivs) && iv.contains(ivs[j]) {
			j++
		}
		if cur < iv.from {
			leaf(cur, iv.from-1)
		}
		open(iv)
		nest(iv.from, iv.to, ivs[i+1:j], open, leave, leaf)
		leave(iv)
		cur = iv.to + 1
		i = j
	}
	if cur <= to {
		leaf(cur, to)
	}
}

func lastIndex(ivs []interval) uint32 {
	var n uint32
	for _, iv := range ivs {
		n = max(n, iv.to+1)
	}
	return n
}

func (tw *tableWriter) writeColumns() {
	s, w := tw.s, tw.w

	var header *interval
	if hc := s.HeaderCols(); hc != nil {
		header = &interval{from: hc.Col, to: hc.ToCol, header: true}
	}
	ivs := tw.nestIntervals("col", slices.Collect(s.ColGroups()), header)

	n := lastIndex(ivs)
	if idx := s.ColHeaderIndexes(); len(idx) > 0 {
		n = max(n, idx[len(idx)-1]+1)
	}
	n = max(n, tw.usedCols, 1)

	nest(0, n-1, ivs,
		func(iv interval) {
			if iv.header {
				w.start("table:table-header-columns")
				return
			}
			w.start("table:table-column-group")
			if !iv.display {
				w.attr("table:display", "false")
			}
		},
		func(interval) { w.end() },
		tw.writeColumnRun)
}

// writeColumnRun writes columns from..to, joining equal neighbours.
func (tw *tableWriter) writeColumnRun(from, to uint32) {
	for c := from; c <= to; {
		h, _ := tw.s.ColHeaderAt(c)
		end := c + 1
		for end <= to {
			h2, _ := tw.s.ColHeaderAt(end)
			if h2 != h {
				break
			}
			end++
		}

		w := tw.w
		w.start("table:table-column")
		w.attrIf("table:style-name", tw.styles.colStyle(h))
		if end-c > 1 {
			w.attr("table:number-columns-repeated", strconv.FormatUint(uint64(end-c), 10))
		}
		if h.Visible != sheet.Visible {
			w.attr("table:visibility", h.Visible.String())
		}
		w.attrIf("table:default-cell-style-name", h.CellStyle)
		w.end()
		c = end
	}
}

func (tw *tableWriter) writeRows() {
	s, w := tw.s, tw.w

	var header *interval
	if hr := s.HeaderRows(); hr != nil {
		header = &interval{from: hr.Row, to: hr.ToRow, header: true}
	}
	ivs := tw.nestIntervals("row", slices.Collect(s.RowGroups()), header)

	n := lastIndex(ivs)
	for _, r := range s.RowHeaderIndexes() {
		n = max(n, r+s.RowRepeat(r))
	}
	if s.CellCount() > 0 {
		rows, _ := s.UsedGridSize()
		n = max(n, rows)
	}
	for r := range tw.cov {
		n = max(n, r+1)
	}
	n = max(n, 1)

	nest(0, n-1, ivs,
		func(iv interval) {
			if iv.header {
				w.start("table:table-header-rows")
				return
			}
			w.start("table:table-row-group")
			if !iv.display {
				w.attr("table:display", "false")
			}
		},
		func(interval) { w.end() },
		tw.writeRowRun)
}

func (tw *tableWriter) hasContent(row uint32) bool {
	return tw.cellRows[row] || len(tw.cov[row]) > 0
}

func sameRow(a, b sheet.RowHeader) bool {
	return a.Style == b.Style && a.CellStyle == b.CellStyle && a.Visible == b.Visible && a.Height == b.Height
}

// colEnd is the column past a cell with its repeat or span, saturated at
// the end of the column domain.
func colEnd(col uint32, ref sheet.CellContentRef) uint32 {
	end := uint64(col) + uint64(max(ref.Repeat(), ref.ColSpan()))
	return uint32(min(end, math.MaxUint32))
}

// headerStart returns the index of the stored row header covering row.
func (tw *tableWriter) headerStart(row uint32) (uint32, bool) {
	i, found := slices.BinarySearch(tw.rowIdx, row)
	if found {
		return row, true
	}
	if i > 0 {
		start := tw.rowIdx[i-1]
		if h, _ := tw.s.RowHeaderAt(start); row-start < h.Repeat {
			return start, true
		}
	}
	return 0, false
}

// rowHeader returns the header in effect at row and how many rows from row
// on it still covers.
func (tw *tableWriter) rowHeader(row uint32) (sheet.RowHeader, uint32) {
	if start, ok := tw.headerStart(row); ok {
		h, _ := tw.s.RowHeaderAt(start)
		return h, h.Repeat - (row - start)
	}
	next := uint32(math.MaxUint32)
	if i, _ := slices.BinarySearch(tw.rowIdx, row); i < len(tw.rowIdx) {
		next = tw.rowIdx[i]
	}
	return sheet.NewRowHeader(), next - row
}

// cellRow returns the row whose cells are written for row r and for how
// many rows. A repeated header stands for copies of the cells stored at its
// first row, so those cells are written for every row it covers that holds
// nothing of its own.
func (tw *tableWriter) cellRow(r, n, to uint32) (src, repeat uint32, ok bool) {
	start, inHeader := tw.headerStart(r)
	switch {
	case tw.hasContent(r) && (!inHeader || start != r || !tw.repeatable(r)):
		return r, 1, true
	case tw.hasContent(r):
		src = r
	case inHeader && tw.repeatable(start):
		src = start
	default:
		return 0, 0, false
	}
	repeat = min(n, to-r+1)
	if r < math.MaxUint32 {
		repeat = min(repeat, tw.nextContent(r+1)-r)
	}
	return src, repeat, true
}

// repeatable reports whether the cells of row may be written for several
// rows: it holds cells and no span reaches into or out of it.
func (tw *tableWriter) repeatable(row uint32) bool {
	return tw.cellRows[row] && !tw.spanRows[row] && len(tw.cov[row]) == 0
}

// nextContent returns the first row at or after row holding cells.
func (tw *tableWriter) nextContent(row uint32) uint32 {
	if i, _ := slices.BinarySearch(tw.contentRows, row); i < len(tw.contentRows) {
		return tw.contentRows[i]
	}
	return math.MaxUint32
}

// writeRowRun writes rows from..to. Rows with cells are written one by one
// unless they start a repeated header; blank rows with equal headers are
// joined into one repeated row.
func (tw *tableWriter) writeRowRun(from, to uint32) {
	for r := from; r <= to; {
		h, n := tw.rowHeader(r)
		if src, repeat, ok := tw.cellRow(r, n, to); ok {
			tw.writeRow(src, h, repeat)
			if r+repeat-1 >= to {
				return
			}
			r += repeat
			continue
		}
		end := r
		for end <= to && !tw.hasContent(end) {
			h2, n := tw.rowHeader(end)
			if !sameRow(h, h2) {
				break
			}
			end += min(n, to-end+1, tw.nextContent(end)-end)
		}
		tw.writeRow(r, h, end-r)
		r = end
	}
}

func (tw *tableWriter) writeRow(row uint32, h sheet.RowHeader, repeat uint32) {
	w := tw.w
	w.start("table:table-row")
	w.attrIf("table:style-name", tw.styles.rowStyle(h))
	if repeat > 1 {
		w.attr("table:number-rows-repeated", strconv.FormatUint(uint64(repeat), 10))
	}
	if h.Visible != sheet.Visible {
		w.attr("table:visibility", h.Visible.String())
	}
	w.attrIf("table:default-cell-style-name", h.CellStyle)

	runs := tw.s.RowRuns(row, 0, tw.cfg.RepeatForEmpty, tw.cov)
	if len(runs) == 0 {
		w.start("table:table-cell")
		w.end()
	}
	for _, run := range runs {
		tw.writeRun(run)
	}
	w.end()
}

func (tw *tableWriter) writeRun(run sheet.CellRun) {
	w := tw.w
	ref, ok := run.Cell()
	switch {
	case run.Covered:
		w.start("table:covered-table-cell")
	case !ok:
		w.start("table:table-cell")
	default:
		writeCell(w, ref, run.Repeat)
		return
	}
	if run.Repeat > 1 {
		w.attr("table:number-columns-repeated", strconv.FormatUint(uint64(run.Repeat), 10))
	}
	w.end()
}

func writeCell(w *xmlWriter, ref sheet.CellContentRef, repeat uint32) {
	w.start("table:table-cell")
	if repeat > 1 {
		w.attr("table:number-columns-repeated", strconv.FormatUint(uint64(repeat), 10))
	}
	w.attrIf("table:style-name", ref.Style())
	w.attrIf("table:content-validation-name", ref.Validation())
	w.attrIf("table:formula", ref.Formula())
	if rs, cs := ref.RowSpan(), ref.ColSpan(); rs > 1 || cs > 1 {
		w.attr("table:number-columns-spanned", strconv.FormatUint(uint64(cs), 10))
		w.attr("table:number-rows-spanned", strconv.FormatUint(uint64(rs), 10))
	}
	if rs, cs := ref.MatrixRowSpan(), ref.MatrixColSpan(); rs > 1 || cs > 1 {
		w.attr("table:number-matrix-columns-spanned", strconv.FormatUint(uint64(cs), 10))
		w.attr("table:number-matrix-rows-spanned", strconv.FormatUint(uint64(rs), 10))
	}
	v := ref.Value()
	writeValueAttrs(w, v)

	if ann := ref.Annotation(); ann != nil {
		writeAnnotation(w, *ann)
	}
	for _, f := range ref.DrawFrames() {
		writeFrame(w, f)
	}
	writeValueText(w, v)
	w.end()
}

const dateLayout = "2006-01-02T15:04:05.999999999"

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func writeValueAttrs(w *xmlWriter, v sheet.Value) {
	switch v.Kind() {
	case sheet.ValueEmpty:
		return
	case sheet.ValueBoolean:
		b, _ := v.AsBool()
		w.attr("office:value-type", "boolean")
		w.attr("office:boolean-value", strconv.FormatBool(b))
	case sheet.ValueNumber, sheet.ValuePercentage:
		f, _ := v.AsFloat()
		w.attr("office:value-type", v.Kind().String())
		w.attr("office:value", formatFloat(f))
	case sheet.ValueCurrency:
		f, code, _ := v.AsCurrency()
		w.attr("office:value-type", "currency")
		w.attrIf("office:currency", code)
		w.attr("office:value", formatFloat(f))
	case sheet.ValueText, sheet.ValueTextMarkup:
		w.attr("office:value-type", "string")
	case sheet.ValueDateTime:
		t, _ := v.AsDateTime()
		w.attr("office:value-type", "date")
		w.attr("office:date-value", t.Format(dateLayout))
	case sheet.ValueTimeDuration:
		d, _ := v.AsDuration()
		w.attr("office:value-type", "time")
		w.attr("office:time-value", sheet.FormatDuration(d))
	}
}

// writeValueText writes the displayed paragraphs. Typed values get their
// plain rendering; rich text is written as kept.
func writeValueText(w *xmlWriter, v sheet.Value) {
	if markup, ok := v.AsMarkup(); ok {
		w.tags(markup)
		return
	}
	if v.IsEmpty() {
		return
	}
	for _, line := range strings.Split(v.String(), "\n") {
		w.start("text:p")
		writeParagraphText(w, line)
		w.end()
	}
}

// writeParagraphText encodes tabs as text:tab and space runs as text:s so
// they survive whitespace collapsing.
func writeParagraphText(w *xmlWriter, s string) {
	start := 0
	flush := func(i int) {
		if start < i {
			w.text(s[start:i])
		}
	}
	for i := 0; i < len(s); {
		switch s[i] {
		case '\t':
			flush(i)
			w.start("text:tab")
			w.end()
			i++
			start = i
		case ' ':
			j := i
			for j < len(s) && s[j] == ' ' {
				j++
			}
			n := j - i
			if i > 0 && n == 1 {
				i = j
				continue
			}
			flush(i)
			if i > 0 {
				w.text(" ")
				n--
			}
			w.start("text:s")
			if n > 1 {
				w.attr("text:c", strconv.Itoa(n))
			}
			w.end()
			i = j
			start = i
		default:
			i++
		}
	}
	flush(len(s))
}

func writeAnnotation(w *xmlWriter, a sheet.Annotation) {
	w.start("office:annotation")
	w.attrIf("office:name", a.Name)
	if a.Display {
		w.attr("office:display", "true")
	}
	if a.Author != "" {
		w.element("dc:creator", a.Author)
	}
	if !a.CreationDate.IsZero() {
		w.element("dc:date", a.CreationDate.Format(dateLayout))
	}
	w.tags(a.Text)
	w.end()
}

func writeFrame(w *xmlWriter, f sheet.DrawFrame) {
	w.start("draw:frame")
	w.attrIf("draw:name", f.Name)
	for _, a := range f.Attrs {
		w.attr(a.Name, a.Value)
	}
	w.attrIf("svg:x", f.X.String())
	w.attrIf("svg:y", f.Y.String())
	w.attrIf("svg:width", f.Width.String())
	w.attrIf("svg:height", f.Height.String())
	if f.ZIndex != 0 {
		w.attr("draw:z-index", strconv.Itoa(f.ZIndex))
	}
	w.tags(f.Content)
	w.end()
}
