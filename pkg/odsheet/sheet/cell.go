package sheet

// CellData is the stored form of one grid position. The common fields are
// inline; validation, spans, annotation and draw frames live in an extra
// bundle that is only allocated when one of them is set.
type CellData struct {
	Value   Value
	Formula string // unparsed formula, "" if none
	Style   string // cell style name, "" if none
	Repeat  uint32 // number of consecutive columns this cell stands for

	extra *cellExtra
}

type cellExtra struct {
	validation string
	span       CellSpan
	matrixSpan CellSpan
	annotation *Annotation
	drawFrames []DrawFrame
}

func newCellExtra() *cellExtra {
	return &cellExtra{span: NewCellSpan(), matrixSpan: NewCellSpan()}
}

func (e *cellExtra) clone() *cellExtra {
	c := *e
	if e.annotation != nil {
		a := e.annotation.Clone()
		c.annotation = &a
	}
	c.drawFrames = cloneFrames(e.drawFrames)
	return &c
}

// NewCellData returns an empty cell with repeat 1.
func NewCellData() CellData {
	return CellData{Repeat: 1}
}

// extraMut returns the extra bundle, allocating it on first use.
func (c *CellData) extraMut() *cellExtra {
	if c.extra == nil {
		c.extra = newCellExtra()
	}
	return c.extra
}

// HasExtra reports whether the extra bundle has been allocated.
func (c *CellData) HasExtra() bool {
	return c.extra != nil
}

// IsEmpty reports whether the cell has no value, no formula and no extra
// data. A style may still be set.
func (c *CellData) IsEmpty() bool {
	return c.Value.IsEmpty() && c.Formula == "" && c.extra == nil
}

// IsBlank is IsEmpty without a style.
func (c *CellData) IsBlank() bool {
	return c.IsEmpty() && c.Style == ""
}

// SameContent compares value, formula and style. Cells with extra data
// never compare equal, they are not merged into repeat runs.
func (c *CellData) SameContent(o *CellData) bool {
	if c.extra != nil || o.extra != nil {
		return false
	}
	return c.Formula == o.Formula && c.Style == o.Style && c.Value.Equal(o.Value)
}

// Clone deep-copies the cell.
func (c *CellData) Clone() CellData {
	d := *c
	d.Value = c.Value.Clone()
	if c.extra != nil {
		d.extra = c.extra.clone()
	}
	return d
}

// Content returns an owned snapshot of the cell.
func (c *CellData) Content() CellContent {
	cc := CellContent{
		Value:      c.Value.Clone(),
		Formula:    c.Formula,
		Style:      c.Style,
		Repeat:     c.Repeat,
		Span:       NewCellSpan(),
		MatrixSpan: NewCellSpan(),
	}
	if e := c.extra; e != nil {
		cc.Validation = e.validation
		cc.Span = e.span
		cc.MatrixSpan = e.matrixSpan
		if e.annotation != nil {
			a := e.annotation.Clone()
			cc.Annotation = &a
		}
		cc.DrawFrames = cloneFrames(e.drawFrames)
	}
	return cc
}

// IntoContent moves the data into a CellContent without copying and resets
// c to an empty cell.
func (c *CellData) IntoContent() CellContent {
	cc := CellContent{
		Value:      c.Value,
		Formula:    c.Formula,
		Style:      c.Style,
		Repeat:     c.Repeat,
		Span:       NewCellSpan(),
		MatrixSpan: NewCellSpan(),
	}
	if e := c.extra; e != nil {
		cc.Validation = e.validation
		cc.Span = e.span
		cc.MatrixSpan = e.matrixSpan
		cc.Annotation = e.annotation
		cc.DrawFrames = e.drawFrames
	}
	*c = CellData{}
	return cc
}

// Ref returns a borrowed view of the cell.
func (c *CellData) Ref() CellContentRef {
	return CellContentRef{data: c}
}

// CellContent is a denormalized, owned copy of everything stored for a cell.
type CellContent struct {
	Value      Value
	Style      string
	Formula    string
	Repeat     uint32
	Validation string
	Span       CellSpan
	MatrixSpan CellSpan
	Annotation *Annotation
	DrawFrames []DrawFrame
}

// NewCellContent returns an empty content with neutral spans and repeat 1.
func NewCellContent() CellContent {
	return CellContent{Repeat: 1, Span: NewCellSpan(), MatrixSpan: NewCellSpan()}
}

// IntoCellData moves the content into storage form. The extra bundle is
// only allocated if one of its fields differs from the default.
func (cc *CellContent) IntoCellData() CellData {
	repeat := cc.Repeat
	if repeat == 0 {
		repeat = 1
	}
	cd := CellData{
		Value:   cc.Value,
		Formula: cc.Formula,
		Style:   cc.Style,
		Repeat:  repeat,
	}
	span, matrix := normSpan(cc.Span), normSpan(cc.MatrixSpan)
	if cc.Validation != "" || !span.IsEmpty() || !matrix.IsEmpty() ||
		cc.Annotation != nil || len(cc.DrawFrames) > 0 {
		cd.extra = &cellExtra{
			validation: cc.Validation,
			span:       span,
			matrixSpan: matrix,
			annotation: cc.Annotation,
			drawFrames: cc.DrawFrames,
		}
	}
	*cc = CellContent{}
	return cd
}

// normSpan maps the zero CellSpan of a literal CellContent{} to (1,1).
func normSpan(s CellSpan) CellSpan {
	if s.RowSpan == 0 {
		s.RowSpan = 1
	}
	if s.ColSpan == 0 {
		s.ColSpan = 1
	}
	return s
}

// SetValue sets the value.
func (cc *CellContent) SetValue(v Value) { cc.Value = v }

// SetFormula sets the formula.
func (cc *CellContent) SetFormula(f string) { cc.Formula = f }

// ClearFormula removes the formula.
func (cc *CellContent) ClearFormula() { cc.Formula = "" }

// SetStyle sets the cell style.
func (cc *CellContent) SetStyle(style CellStyleRef) { cc.Style = style.String() }

// ClearStyle removes the cell style.
func (cc *CellContent) ClearStyle() { cc.Style = "" }

// SetRepeat sets the column repeat count. Panics if repeat is 0.
func (cc *CellContent) SetRepeat(repeat uint32) {
	mustPositive("repeat", repeat)
	cc.Repeat = repeat
}

// SetValidation sets the content validation.
func (cc *CellContent) SetValidation(v ValidationRef) { cc.Validation = v.String() }

// ClearValidation removes the content validation.
func (cc *CellContent) ClearValidation() { cc.Validation = "" }

// SetRowSpan sets the row span. Panics if rows is 0.
func (cc *CellContent) SetRowSpan(rows uint32) {
	cc.Span = normSpan(cc.Span)
	cc.Span.SetRowSpan(rows)
}

// SetColSpan sets the column span. Panics if cols is 0.
func (cc *CellContent) SetColSpan(cols uint32) {
	cc.Span = normSpan(cc.Span)
	cc.Span.SetColSpan(cols)
}

// SetMatrixRowSpan sets the row span of an array formula. Panics if rows is 0.
func (cc *CellContent) SetMatrixRowSpan(rows uint32) {
	cc.MatrixSpan = normSpan(cc.MatrixSpan)
	cc.MatrixSpan.SetRowSpan(rows)
}

// SetMatrixColSpan sets the column span of an array formula. Panics if cols is 0.
func (cc *CellContent) SetMatrixColSpan(cols uint32) {
	cc.MatrixSpan = normSpan(cc.MatrixSpan)
	cc.MatrixSpan.SetColSpan(cols)
}

// SetAnnotation sets the annotation.
func (cc *CellContent) SetAnnotation(a Annotation) { cc.Annotation = &a }

// ClearAnnotation removes the annotation.
func (cc *CellContent) ClearAnnotation() { cc.Annotation = nil }

// SetDrawFrames replaces the draw frames.
func (cc *CellContent) SetDrawFrames(frames []DrawFrame) { cc.DrawFrames = frames }

// CellContentRef is a read-only view into a Sheet's storage. It copies
// nothing and is only valid until the next mutation of the Sheet; call
// ToContent to keep the data.
type CellContentRef struct {
	data *CellData
}

// Value returns the value.
func (r CellContentRef) Value() Value { return r.data.Value }

// Formula returns the formula, "" if none.
func (r CellContentRef) Formula() string { return r.data.Formula }

// Style returns the cell style name, "" if none.
func (r CellContentRef) Style() string { return r.data.Style }

// Repeat returns the column repeat count.
func (r CellContentRef) Repeat() uint32 { return r.data.Repeat }

// Validation returns the validation name, "" if none.
func (r CellContentRef) Validation() string {
	if r.data.extra == nil {
		return ""
	}
	return r.data.extra.validation
}

// RowSpan returns the row span, 1 if not set.
func (r CellContentRef) RowSpan() uint32 {
	if r.data.extra == nil {
		return 1
	}
	return r.data.extra.span.RowSpan
}

// ColSpan returns the column span, 1 if not set.
func (r CellContentRef) ColSpan() uint32 {
	if r.data.extra == nil {
		return 1
	}
	return r.data.extra.span.ColSpan
}

// MatrixRowSpan returns the array formula row span, 1 if not set.
func (r CellContentRef) MatrixRowSpan() uint32 {
	if r.data.extra == nil {
		return 1
	}
	return r.data.extra.matrixSpan.RowSpan
}

// MatrixColSpan returns the array formula column span, 1 if not set.
func (r CellContentRef) MatrixColSpan() uint32 {
	if r.data.extra == nil {
		return 1
	}
	return r.data.extra.matrixSpan.ColSpan
}

// Annotation returns the annotation or nil.
func (r CellContentRef) Annotation() *Annotation {
	if r.data.extra == nil {
		return nil
	}
	return r.data.extra.annotation
}

// DrawFrames returns the draw frames. The slice is shared with the sheet.
func (r CellContentRef) DrawFrames() []DrawFrame {
	if r.data.extra == nil {
		return nil
	}
	return r.data.extra.drawFrames
}

// ToContent copies the referenced cell.
func (r CellContentRef) ToContent() CellContent {
	return r.data.Content()
}
