package sheet

// Style and validation references are plain names. The sheet never checks
// that the referenced style or validation exists.

// CellStyleRef names a cell style.
type CellStyleRef string

// RowStyleRef names a table-row style.
type RowStyleRef string

// ColStyleRef names a table-column style.
type ColStyleRef string

// TableStyleRef names a table style.
type TableStyleRef string

// ValidationRef names a content validation.
type ValidationRef string

func (r CellStyleRef) String() string  { return string(r) }
func (r RowStyleRef) String() string   { return string(r) }
func (r ColStyleRef) String() string   { return string(r) }
func (r TableStyleRef) String() string { return string(r) }
func (r ValidationRef) String() string { return string(r) }
