package parser

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ukaji3/odsheet-go/pkg/odsheet/sheet"
)

// readSettings applies the ooo:view-settings of settings.xml to the
// sheets of wb. Other config-item-sets are kept verbatim.
func readSettings(r io.Reader, wb *sheet.WorkBook) error {
	decoder := xml.NewDecoder(r)
	// config:name of every open element
	var stack []string

	for {
		token, err := decoder.RawToken()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: settings.xml: %v", ErrInvalidFormat, err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			a := attrs(t)
			switch qname(t.Name) {
			case "config:config-item-set":
				if a["config:name"] != "ooo:view-settings" {
					tag, err := readXMLTag(decoder, t)
					if err != nil {
						return fmt.Errorf("%w: settings.xml: %v", ErrInvalidFormat, err)
					}
					wb.SettingsExtra = append(wb.SettingsExtra, tag)
					continue
				}
				stack = append(stack, a["config:name"])
			case "config:config-item":
				text, err := readElementText(decoder)
				if err != nil {
					return fmt.Errorf("%w: settings.xml: %v", ErrInvalidFormat, err)
				}
				if err := applySetting(wb, stack, a["config:name"], strings.TrimSpace(text)); err != nil {
					return err
				}
			default:
				stack = append(stack, a["config:name"])
			}
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
}

func applySetting(wb *sheet.WorkBook, stack []string, name, value string) error {
	n := len(stack)
	if n >= 2 && stack[n-2] == "Tables" {
		table := stack[n-1]
		s, ok := wb.SheetByName(table)
		if !ok {
			return nil
		}
		if err := applyTableSetting(s.ConfigMut(), name, value); err != nil {
			return NewReadError(table, "settings", 0, 0, fmt.Errorf("%s: %w", name, err))
		}
		return nil
	}
	if name == "ActiveTable" {
		wb.ActiveTable = value
	}
	return nil
}

func applyTableSetting(c *sheet.SheetConfig, name, value string) error {
	var err error
	switch name {
	case "CursorPositionX":
		c.CursorX, err = parseU32(value)
	case "CursorPositionY":
		c.CursorY, err = parseU32(value)
	case "HorizontalSplitMode":
		c.HorSplitMode, err = parseSplitMode(value)
	case "VerticalSplitMode":
		c.VertSplitMode, err = parseSplitMode(value)
	case "HorizontalSplitPosition":
		c.HorSplitPos, err = parseU32(value)
	case "VerticalSplitPosition":
		c.VertSplitPos, err = parseU32(value)
	case "ActiveSplitRange":
		c.ActiveSplitRange, err = parseI16(value)
	case "PositionLeft":
		c.PositionLeft, err = parseU32(value)
	case "PositionRight":
		c.PositionRight, err = parseU32(value)
	case "PositionTop":
		c.PositionTop, err = parseU32(value)
	case "PositionBottom":
		c.PositionBottom, err = parseU32(value)
	case "ZoomType":
		c.ZoomType, err = parseI16(value)
	case "ZoomValue":
		c.ZoomValue, err = parseI32(value)
	case "PageViewZoomValue":
		c.PageViewZoomValue, err = parseI32(value)
	case "ShowGrid":
		c.ShowGrid, err = strconv.ParseBool(value)
	}
	return err
}

func parseSplitMode(v string) (sheet.SplitMode, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return sheet.SplitNone, err
	}
	return sheet.ParseSplitMode(n)
}

func parseU32(v string) (uint32, error) {
	n, err := strconv.ParseUint(v, 10, 32)
	return uint32(n), err
}

func parseI16(v string) (int16, error) {
	n, err := strconv.ParseInt(v, 10, 16)
	return int16(n), err
}

func parseI32(v string) (int32, error) {
	n, err := strconv.ParseInt(v, 10, 32)
	return int32(n), err
}
