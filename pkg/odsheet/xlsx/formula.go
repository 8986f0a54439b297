package xlsx

import "strings"

// TranslateFormula converts an OpenFormula expression as stored in
// table:formula to Excel syntax. Only references and argument separators
// are rewritten: "of:=SUM([.A1:.B2];[Sheet2.C3])" becomes
// "SUM(A1:B2,Sheet2!C3)". Function names are kept as they are.
func TranslateFormula(f string) string {
	if i := strings.Index(f, ":="); i >= 0 && i < 8 {
		f = f[i+2:]
	} else {
		f = strings.TrimPrefix(f, "=")
	}

	var b strings.Builder
	for i := 0; i < len(f); i++ {
		switch c := f[i]; c {
		case '"':
			j := i + 1
			for j < len(f) {
				if f[j] == '"' {
					if j+1 < len(f) && f[j+1] == '"' {
						j += 2
						continue
					}
					break
				}
				j++
			}
			end := min(j+1, len(f))
			b.WriteString(f[i:end])
			i = end - 1
		case '[':
			end := closingBracket(f, i)
			if end < 0 {
				b.WriteString(f[i:])
				return b.String()
			}
			b.WriteString(translateRef(f[i+1 : end]))
			i = end
		case ';':
			b.WriteByte(',')
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// closingBracket finds the "]" matching the "[" at open, skipping quoted
// sheet names.
func closingBracket(f string, open int) int {
	quoted := false
	for i := open + 1; i < len(f); i++ {
		switch f[i] {
		case '\'':
			quoted = !quoted
		case ']':
			if !quoted {
				return i
			}
		}
	}
	return -1
}

// translateRef converts ".A1", "Sheet1.A1:.B2" or "$'My Sheet'.$A$1" to
// Excel form.
func translateRef(ref string) string {
	from, to, isRange := cutOutside(ref, ':')
	sheet, cell := splitSheet(from)
	out := cell
	if sheet != "" {
		out = sheet + "!" + cell
	}
	if isRange {
		toSheet, toCell := splitSheet(to)
		if toSheet != "" && toSheet != sheet {
			return out + ":" + toSheet + "!" + toCell
		}
		out += ":" + toCell
	}
	return out
}

// splitSheet cuts a reference at the last dot outside quotes.
func splitSheet(ref string) (sheet, cell string) {
	dot := -1
	quoted := false
	for i := 0; i < len(ref); i++ {
		switch ref[i] {
		case '\'':
			quoted = !quoted
		case '.':
			if !quoted {
				dot = i
			}
		}
	}
	if dot < 0 {
		return "", ref
	}
	return strings.TrimPrefix(ref[:dot], "$"), ref[dot+1:]
}

func cutOutside(s string, sep byte) (string, string, bool) {
	quoted := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\'':
			quoted = !quoted
		case sep:
			if !quoted {
				return s[:i], s[i+1:], true
			}
		}
	}
	return s, "", false
}
