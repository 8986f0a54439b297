package parser

import (
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"

	"github.com/ukaji3/odsheet-go/pkg/odsheet/sheet"
)

// contentReader streams content.xml into a WorkBook.
type contentReader struct {
	decoder *xml.Decoder
	wb      *sheet.WorkBook
	cfg     Config
	log     *slog.Logger
	styles  StyleIndex
}

func readContent(r io.Reader, wb *sheet.WorkBook, cfg Config) error {
	cr := &contentReader{
		decoder: xml.NewDecoder(r),
		wb:      wb,
		cfg:     cfg,
		log:     cfg.logger(),
	}
	if err := cr.read(); err != nil {
		return fmt.Errorf("%w: content.xml: %w", ErrInvalidFormat, err)
	}
	return nil
}

func (cr *contentReader) read() error {
	inSpreadsheet := false
	for {
		token, err := cr.decoder.RawToken()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		se, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		switch name := qname(se.Name); name {
		case "office:document-content":
			for _, a := range se.Attr {
				if a.Name.Space == "xmlns" {
					cr.wb.XMLNS[a.Name.Local] = a.Value
				}
			}
		case "office:body":
		case "office:spreadsheet":
			inSpreadsheet = true
		case "office:automatic-styles":
			if cr.cfg.ContentOnly {
				if err := skipElement(cr.decoder); err != nil {
					return err
				}
				continue
			}
			tag, err := readXMLTag(cr.decoder, se)
			if err != nil {
				return err
			}
			for _, n := range tag.Content {
				if n.Tag != nil {
					cr.wb.AutoStyles = append(cr.wb.AutoStyles, *n.Tag)
				}
			}
			cr.styles = IndexStyles(cr.wb.AutoStyles)
			cr.log.Debug("automatic styles", "count", len(cr.wb.AutoStyles))
		case "table:table":
			s, err := cr.readTable(se)
			if err != nil {
				return err
			}
			cr.wb.PushSheet(s)
			cr.log.Debug("read table", "name", s.Name(), "cells", s.CellCount())
		default:
			if !inSpreadsheet && cr.cfg.ContentOnly && name == "office:font-face-decls" {
				if err := skipElement(cr.decoder); err != nil {
					return err
				}
				continue
			}
			tag, err := readXMLTag(cr.decoder, se)
			if err != nil {
				return err
			}
			if inSpreadsheet {
				cr.wb.Extra = append(cr.wb.Extra, tag)
			} else {
				cr.wb.Prelude = append(cr.wb.Prelude, tag)
			}
			cr.log.Debug("keep element", "name", name, "body", inSpreadsheet)
		}
	}
}
