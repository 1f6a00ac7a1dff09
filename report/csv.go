package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/hansblade/CMAC03-Auxilio-Estudantil/aggregate"
	"github.com/hansblade/CMAC03-Auxilio-Estudantil/errors"
)

// utf8BOM makes spreadsheet software detect the encoding of accented headers.
const utf8BOM = "\xEF\xBB\xBF"

var csvHeader = []string{"Grupo", "Media Vulnerabilidade", "Desvio Padrao", "N de Estudantes"}

// WriteGroupStatsCSV writes the per-group statistics to path as UTF-8 CSV
// with a byte order mark.
func WriteGroupStatsCSV(summary *aggregate.Summary, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapFatal(
			fmt.Errorf("%w: %v", errors.ErrWriteFailed, err),
			"CSVWriter", "WriteGroupStatsCSV", "create output file")
	}
	defer f.Close()

	if _, err := f.WriteString(utf8BOM); err != nil {
		return errors.WrapFatal(
			fmt.Errorf("%w: %v", errors.ErrWriteFailed, err),
			"CSVWriter", "WriteGroupStatsCSV", "write byte order mark")
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return errors.WrapFatal(
			fmt.Errorf("%w: %v", errors.ErrWriteFailed, err),
			"CSVWriter", "WriteGroupStatsCSV", "write header")
	}
	for _, g := range summary.Groups {
		record := []string{
			strconv.Itoa(g.Label),
			strconv.FormatFloat(g.Mean, 'f', 2, 64),
			strconv.FormatFloat(g.StdDev, 'f', 2, 64),
			strconv.Itoa(g.Count),
		}
		if err := w.Write(record); err != nil {
			return errors.WrapFatal(
				fmt.Errorf("%w: %v", errors.ErrWriteFailed, err),
				"CSVWriter", "WriteGroupStatsCSV", "write group record")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return errors.WrapFatal(
			fmt.Errorf("%w: %v", errors.ErrWriteFailed, err),
			"CSVWriter", "WriteGroupStatsCSV", "flush records")
	}
	return f.Close()
}
