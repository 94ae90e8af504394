package workbook

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/appshelf/appshelf/pkg/errors"
	"github.com/appshelf/appshelf/pkg/logging"
)

// Row is one catalog data row as read back from the workbook.
type Row struct {
	GoogleID    string
	AppleID     string
	Title       string
	Genre       string
	Installs    string
	ReleaseDate string
	GoogleURL   string
	AppleURL    string
}

// Header candidates tolerated on read, mirroring older workbook revisions.
var (
	googleIDHeaders  = []string{"Google App ID", "App ID"}
	appleIDHeaders   = []string{"Apple Track ID", "Apple ID", "Apple App ID"}
	titleHeaders     = []string{"Title"}
	genreHeaders     = []string{"Genre"}
	installsHeaders  = []string{"Installs"}
	releaseHeaders   = []string{"Release Date", "Released", "ReleaseDate"}
	googleURLHeaders = []string{"Google Url", "Google URL", "Url", "URL"}
	appleURLHeaders  = []string{"Apple Url", "Apple URL", "App Store Url", "App Store URL"}
)

// Read loads the catalog rows from a workbook, skipping the banner and
// header rows and any fully empty rows. A workbook without a Title column
// is structurally invalid and fails.
func Read(path string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logging.Warn().Err(err).Str("path", path).Msg("Failed to close workbook")
		}
	}()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		return nil, errors.WrapParse("xlsx", path, err)
	}
	if len(rows) < headerRow {
		return nil, errors.NewParseError("xlsx", path, "missing header row", nil)
	}

	headers := rows[headerRow-1]

	titleIdx := pickColumn(headers, titleHeaders)
	if titleIdx < 0 {
		return nil, errors.NewParseError("xlsx", path, "missing Title column", nil)
	}

	googleIdx := pickColumn(headers, googleIDHeaders)
	appleIdx := pickColumn(headers, appleIDHeaders)
	genreIdx := pickColumn(headers, genreHeaders)
	installsIdx := pickColumn(headers, installsHeaders)
	releaseIdx := pickColumn(headers, releaseHeaders)
	googleURLIdx := pickColumn(headers, googleURLHeaders)
	appleURLIdx := pickColumn(headers, appleURLHeaders)

	var out []Row
	for _, cells := range rows[headerRow:] {
		row := Row{
			GoogleID:    cellAt(cells, googleIdx),
			AppleID:     cellAt(cells, appleIdx),
			Title:       cellAt(cells, titleIdx),
			Genre:       cellAt(cells, genreIdx),
			Installs:    cellAt(cells, installsIdx),
			ReleaseDate: cellAt(cells, releaseIdx),
			GoogleURL:   cellAt(cells, googleURLIdx),
			AppleURL:    cellAt(cells, appleURLIdx),
		}
		if row == (Row{}) {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

// pickColumn finds the first candidate header present, case-insensitively.
func pickColumn(headers []string, candidates []string) int {
	for _, candidate := range candidates {
		for i, header := range headers {
			if strings.EqualFold(strings.TrimSpace(header), candidate) {
				return i
			}
		}
	}
	return -1
}

// cellAt reads a cell by index, tolerating short rows and a missing column.
func cellAt(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}
