// Package main provides the CLI entry point for odsheet-go.
package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ukaji3/odsheet-go/pkg/odsheet"
	"github.com/ukaji3/odsheet-go/pkg/odsheet/models"
	"github.com/ukaji3/odsheet-go/pkg/odsheet/output"
	"github.com/ukaji3/odsheet-go/pkg/odsheet/parser"
	"github.com/ukaji3/odsheet-go/pkg/odsheet/xlsx"
)

var (
	outputPath    string
	pretty        bool
	mode          string
	format        string
	optionsPath   string
	sheetsDir     string
	printAreasDir string
	contentOnly   bool
	ignoreEmpty   bool
	cloneRepeat   bool
	repeatEmpty   bool
	verbose       bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "odsheet [input.ods]",
		Short: "Read OpenDocument spreadsheets",
		Long: `odsheet-go reads an OpenDocument spreadsheet and outputs its structured
data (cells, merges, comments, frames, charts, tables) as JSON, renders it
as HTML, converts it to XLSX or saves it again as ODS.`,
		Args:         cobra.ExactArgs(1),
		RunE:         run,
		SilenceUsage: true,
	}

	f := rootCmd.Flags()
	f.StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	f.BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	f.StringVar(&mode, "mode", "standard", "Extraction mode: light, standard, verbose")
	f.StringVarP(&format, "format", "f", "json", "Output format: json, html, xlsx, ods")
	f.StringVar(&optionsPath, "options", "", "YAML file with read and extraction options")
	f.StringVar(&sheetsDir, "sheets-dir", "", "Directory for per-sheet output files")
	f.StringVar(&printAreasDir, "print-areas-dir", "", "Directory for per-print-area output files")
	f.BoolVar(&contentOnly, "content-only", false, "Skip styles, metadata and view settings")
	f.BoolVar(&ignoreEmpty, "ignore-empty", false, "Drop cells that carry nothing")
	f.BoolVar(&cloneRepeat, "clone-repeat", false, "Store every repetition of a repeated cell")
	f.BoolVar(&repeatEmpty, "repeat-empty", false, "Keep runs of empty cells compressed")
	f.BoolVarP(&verbose, "verbose", "v", false, "Log debug records to stderr")
	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}

	wb, err := odsheet.Read(inputPath, opts)
	if err != nil {
		return fmt.Errorf("read failed: %w", err)
	}
	opts.Logger.Info("read workbook", "path", inputPath, "sheets", wb.NumSheets())

	switch format {
	case "json":
		return writeJSON(cmd.OutOrStdout(), odsheet.Extract(wb, filepath.Base(inputPath), opts))
	case "html":
		title := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
		return writeOutput(cmd.OutOrStdout(), func(w io.Writer) error {
			return output.WriteHTML(w, wb, title)
		})
	case "xlsx":
		f, err := xlsx.ToXLSX(wb, xlsx.Config{Logger: opts.Logger})
		if err != nil {
			return fmt.Errorf("conversion failed: %w", err)
		}
		defer f.Close()
		return writeOutput(cmd.OutOrStdout(), func(w io.Writer) error {
			_, err := f.WriteTo(w)
			return err
		})
	case "ods":
		return writeOutput(cmd.OutOrStdout(), func(w io.Writer) error {
			return odsheet.WriteTo(w, wb, opts)
		})
	}
	return fmt.Errorf("invalid format: %s (must be json, html, xlsx, or ods)", format)
}

// loadOptions reads the options file, then applies the flags set on the
// command line.
func loadOptions(cmd *cobra.Command) (odsheet.Options, error) {
	opts := odsheet.DefaultOptions()
	if optionsPath != "" {
		f, err := os.Open(optionsPath)
		if err != nil {
			return opts, fmt.Errorf("open options: %w", err)
		}
		defer f.Close()
		if opts, err = odsheet.LoadOptions(f); err != nil {
			return opts, err
		}
	}

	flags := cmd.Flags()
	if optionsPath == "" || flags.Changed("mode") {
		m, err := odsheet.ParseMode(mode)
		if err != nil {
			return opts, err
		}
		opts.Mode = m
	}
	set := func(name string, dst *bool, v bool) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	set("content-only", &opts.ContentOnly, contentOnly)
	set("ignore-empty", &opts.IgnoreEmptyCells, ignoreEmpty)
	set("clone-repeat", &opts.UseCloneForRepeat, cloneRepeat)
	set("repeat-empty", &opts.UseRepeatForEmpty, repeatEmpty)

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts.Logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return opts, nil
}

// writeOutput writes to --output when set, otherwise to stdout.
func writeOutput(stdout io.Writer, write func(io.Writer) error) error {
	if outputPath == "" {
		return write(stdout)
	}
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func writeJSON(stdout io.Writer, wb *models.WorkbookData) error {
	jsonData, err := output.ToJSON(wb, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" || (sheetsDir == "" && printAreasDir == "") {
		err := writeOutput(stdout, func(w io.Writer) error {
			_, err := fmt.Fprintln(w, string(jsonData))
			return err
		})
		if err != nil {
			return err
		}
	}

	if sheetsDir != "" {
		if err := writeSheetFiles(wb, sheetsDir); err != nil {
			return fmt.Errorf("failed to write sheet files: %w", err)
		}
	}

	if printAreasDir != "" {
		if err := writePrintAreaFiles(wb, printAreasDir); err != nil {
			return fmt.Errorf("failed to write print area files: %w", err)
		}
	}

	return nil
}

func writeSheetFiles(wb *models.WorkbookData, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	for _, sheetName := range wb.SheetOrder {
		data := wb.Sheets[sheetName]
		jsonData, err := output.SheetToJSON(&data, pretty)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, fileName(sheetName)+".json")
		if err := os.WriteFile(filename, jsonData, 0o644); err != nil {
			return err
		}
	}

	return nil
}

func writePrintAreaFiles(wb *models.WorkbookData, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	for _, sheetName := range wb.SheetOrder {
		data := wb.Sheets[sheetName]
		for i, area := range data.PrintAreas {
			view := parser.NewPrintAreaView(wb.BookName, sheetName, data, area)
			jsonData, err := output.PrintAreaViewToJSON(&view, pretty)
			if err != nil {
				return err
			}

			filename := filepath.Join(dir, fmt.Sprintf("%s_area%d.json", fileName(sheetName), i+1))
			if err := os.WriteFile(filename, jsonData, 0o644); err != nil {
				return err
			}
		}
	}

	return nil
}

// fileName replaces path separators in a sheet name.
func fileName(sheetName string) string {
	return strings.NewReplacer("/", "_", `\`, "_").Replace(sheetName)
}
