// Package workbook writes the reconciled catalog into an xlsx workbook with
// embedded store media, and reads it back for the site renderer.
package workbook

import (
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/appshelf/appshelf/pkg/apps"
	"github.com/appshelf/appshelf/pkg/errors"
	"github.com/appshelf/appshelf/pkg/logging"
)

// SheetName is the single worksheet holding the catalog.
const SheetName = "Apps"

// Banner is written above the header row so nobody edits generated output
// by hand.
const Banner = "Warning: This table is auto-generated. Any changes made will be overridden."

const (
	bannerRow    = 1
	headerRow    = 2
	firstDataRow = 3

	dataRowHeight   = 160
	iconScale       = 0.1
	screenshotScale = 0.4

	// Each embedded screenshot is given two columns of room.
	screenshotColSpan = 2
)

// column describes one data column: header text, width, cell wrapping.
type column struct {
	header string
	width  float64
	wrap   bool
}

var columns = []column{
	{header: "Icon", width: 10},
	{header: "Google App ID", width: 40},
	{header: "Apple Track ID", width: 20},
	{header: "Title", width: 40},
	{header: "Genre", width: 15},
	{header: "Installs", width: 15},
	{header: "Release Date", width: 15},
	{header: "Google Url", width: 30, wrap: true},
	{header: "Apple Url", width: 30, wrap: true},
}

// Headers returns the header row texts in column order.
func Headers() []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = c.header
	}
	return out
}

// Writer appends reconciled rows plus their materialized media to a
// workbook. It is a single-writer component; the pipeline serializes calls
// to Append.
type Writer struct {
	file *excelize.File
	path string
	next int // next data row

	boldStyle int
	wrapStyle int
}

// NewWriter creates a workbook with the banner and header rows in place.
// The file is not written to disk until Save.
func NewWriter(path string) (*Writer, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, errors.WrapIO("create", path, err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, errors.WrapIO("create", path, err)
	}
	wrap, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}})
	if err != nil {
		return nil, errors.WrapIO("create", path, err)
	}

	w := &Writer{
		file:      f,
		path:      path,
		next:      firstDataRow,
		boldStyle: bold,
		wrapStyle: wrap,
	}

	if err := w.writePreamble(); err != nil {
		return nil, err
	}
	return w, nil
}

// writePreamble sets column widths and writes the banner and header rows.
func (w *Writer) writePreamble() error {
	for i, col := range columns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return errors.WrapIO("create", w.path, err)
		}
		if err := w.file.SetColWidth(SheetName, name, name, col.width); err != nil {
			return errors.WrapIO("create", w.path, err)
		}
	}

	if err := w.setCell(1, bannerRow, Banner, w.boldStyle); err != nil {
		return err
	}
	for i, col := range columns {
		if err := w.setCell(i+1, headerRow, col.header, w.boldStyle); err != nil {
			return err
		}
	}
	return nil
}

// Append writes one reconciled app as the next row, embedding its icon and
// screenshots. Rows are gap-free: the caller only invokes Append for
// entries that reconciled. Image embedding failures are logged and the cell
// left empty; they never fail the row.
func (w *Writer) Append(app *apps.App, iconPath string, screenshotPaths []string) error {
	row := w.next

	if err := w.file.SetRowHeight(SheetName, row, dataRowHeight); err != nil {
		return errors.WrapIO("write", w.path, err)
	}

	values := []string{
		app.GoogleID,
		app.AppleID,
		app.Title,
		app.Genre,
		app.Installs,
		app.ReleaseDate,
		app.GoogleURL,
		app.AppleURL,
	}
	for i, v := range values {
		if err := w.setCell(i+2, row, v, w.wrapStyle); err != nil {
			return err
		}
	}

	if iconPath != "" {
		w.embed(1, row, iconPath, iconScale)
	}
	for i, path := range screenshotPaths {
		w.embed(len(columns)+1+i*screenshotColSpan, row, path, screenshotScale)
	}

	w.next++
	return nil
}

// Rows returns how many data rows have been appended.
func (w *Writer) Rows() int {
	return w.next - firstDataRow
}

// Save replaces any existing workbook at the writer's path.
func (w *Writer) Save() error {
	if _, err := os.Stat(w.path); err == nil {
		if err := os.Remove(w.path); err != nil {
			return errors.WrapIO("delete", w.path, err)
		}
	}
	if err := w.file.SaveAs(w.path); err != nil {
		return errors.WrapIO("write", w.path, err)
	}
	return nil
}

// Close releases the in-memory workbook.
func (w *Writer) Close() error {
	return w.file.Close()
}

// setCell writes one styled cell.
func (w *Writer) setCell(col, row int, value string, style int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return errors.WrapIO("write", w.path, err)
	}
	if err := w.file.SetCellValue(SheetName, cell, value); err != nil {
		return errors.WrapIO("write", w.path, err)
	}
	if err := w.file.SetCellStyle(SheetName, cell, cell, style); err != nil {
		return errors.WrapIO("write", w.path, err)
	}
	return nil
}

// embed places a picture anchored at the given cell.
func (w *Writer) embed(col, row int, path string, scale float64) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("Bad picture anchor")
		return
	}
	err = w.file.AddPicture(SheetName, cell, path, &excelize.GraphicOptions{
		ScaleX: scale,
		ScaleY: scale,
	})
	if err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("Failed to embed picture")
	}
}
