package samplefile

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	domain "distfit/domain/fit"
	"distfit/internal/errors"
)

// DecodeText reads comma-separated numbers from r. Every token on every line is
// flattened into one sample, top to bottom and left to right. Blank lines are
// skipped; any token that is not a finite number fails the whole read.
func DecodeText(r io.Reader) (domain.Sample, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	var sample domain.Sample
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.MalformedInput("unreadable sample file", err)
		}

		for field, token := range record {
			value, err := strconv.ParseFloat(strings.TrimSpace(token), 64)
			if err == nil && (math.IsNaN(value) || math.IsInf(value, 0)) {
				err = fmt.Errorf("value %q is not finite", token)
			}
			if err != nil {
				line, column := reader.FieldPos(field)
				return nil, errors.MalformedInput(fmt.Sprintf("non-numeric token %q at line %d, column %d", token, line, column), err)
			}
			sample = append(sample, value)
		}
	}

	return sample, nil
}

// EncodeText writes sample as a single line of comma-separated values using
// the shortest representation that parses back to the same float64.
func EncodeText(w io.Writer, sample domain.Sample) error {
	record := make([]string, len(sample))
	for i, v := range sample {
		record[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(record); err != nil {
		return errors.Wrap(err, "failed to write sample row")
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.Wrap(err, "failed to flush sample row")
	}
	return nil
}
