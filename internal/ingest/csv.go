package ingest

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"os"

	"github.com/huangsam/speedreport/internal/contract"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// readCSV returns the raw rows of a delimited text file.
// The delimiter is whichever of ',', ';' or tab appears most in the first non-empty line.
func readCSV(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &contract.InputFormatError{Path: path, Reason: "cannot read file", Err: err}
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = detectDelimiter(data)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, &contract.InputFormatError{Path: path, Reason: "malformed CSV", Err: err}
	}
	return rows, nil
}

// detectDelimiter guesses the field separator from the first non-empty line.
func detectDelimiter(data []byte) rune {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		best, bestCount := ',', bytes.Count(line, []byte{','})
		for _, d := range []rune{';', '\t'} {
			if n := bytes.Count(line, []byte(string(d))); n > bestCount {
				best, bestCount = d, n
			}
		}
		return best
	}
	return ','
}
