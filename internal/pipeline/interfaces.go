package pipeline

import (
	"context"

	"github.com/dvloznov/trx-etl/internal/dataset"
)

// Loader supplies the dataset a run starts from.
type Loader interface {
	Load(ctx context.Context, path string) (*dataset.Dataset, error)
}

// Writer serializes the finished dataset at the end of a run.
type Writer interface {
	Write(ctx context.Context, path string, d *dataset.Dataset) error
}
