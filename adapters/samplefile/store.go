package samplefile

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	domain "distfit/domain/fit"
	"distfit/internal"
	"distfit/internal/errors"
	"distfit/ports"
)

// Format identifies an on-disk sample encoding
type Format string

const (
	FormatText Format = "text"
	FormatXLSX Format = "xlsx"
)

// FormatForPath picks the codec from the file extension. Anything that is not
// a workbook is treated as comma-separated text.
func FormatForPath(path string) Format {
	if strings.ToLower(filepath.Ext(path)) == ".xlsx" {
		return FormatXLSX
	}
	return FormatText
}

// Store reads and writes sample files on the local filesystem
type Store struct {
	logger *internal.Logger
}

var _ ports.SampleStore = (*Store)(nil)

// NewStore creates a filesystem sample store
func NewStore(logger *internal.Logger) *Store {
	if logger == nil {
		logger = internal.NopLogger()
	}
	return &Store{logger: logger.WithPrefix("samplefile")}
}

// ReadSample loads the whole file at path into a sample
func (s *Store) ReadSample(ctx context.Context, path string) (domain.Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, errors.Wrapf(err, "cannot open sample file %s", path))
	}
	defer f.Close()

	format := FormatForPath(path)
	s.logger.Debug("reading %s sample from %s", format, path)

	var sample domain.Sample
	switch format {
	case FormatXLSX:
		sample, err = DecodeXLSX(f)
	default:
		sample, err = DecodeText(f)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	s.logger.Debug("read %d values from %s", len(sample), path)
	return sample, nil
}

// WriteSample encodes sample next to path and renames it into place, so a
// failed write never leaves a partial file behind.
func (s *Store) WriteSample(ctx context.Context, path string, sample domain.Sample) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	encode := EncodeText
	if FormatForPath(path) == FormatXLSX {
		encode = EncodeXLSX
	}

	if err := writeAtomically(path, func(w io.Writer) error { return encode(w, sample) }); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}

	s.logger.Debug("wrote %d values to %s", len(sample), path)
	return nil
}

func writeAtomically(path string, write func(io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.WithCode(errors.CodeInvalidInput, errors.Wrap(err, "cannot create output file"))
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = write(tmp); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to close output file")
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(err, "failed to move output file into place")
	}
	return nil
}
