package ports

import (
	"context"

	domain "distfit/domain/fit"
)

// SampleReader loads a sample from persistent storage
type SampleReader interface {
	// ReadSample flattens every value in the file at path, in read order
	ReadSample(ctx context.Context, path string) (domain.Sample, error)
}

// SampleWriter persists a sample
type SampleWriter interface {
	// WriteSample stores sample at path; on error no partial file is left behind
	WriteSample(ctx context.Context, path string, sample domain.Sample) error
}

// SampleStore reads and writes sample files
type SampleStore interface {
	SampleReader
	SampleWriter
}
