package archive

import (
	"context"
	"fmt"

	"github.com/hupe1980/kmeans"
	"github.com/hupe1980/kmeans/blobstore"
)

// Save encodes a run and writes it to store under name.
func Save(ctx context.Context, store blobstore.Store, name string, res *kmeans.Result, optFns ...Option) error {
	data, err := Encode(res, optFns...)
	if err != nil {
		return err
	}
	if err := store.Put(ctx, name, data); err != nil {
		return fmt.Errorf("put %s: %w", name, err)
	}
	return nil
}

// Load reads and decodes the run stored under name.
// A missing archive yields an error satisfying errors.Is(err, blobstore.ErrNotFound).
func Load(ctx context.Context, store blobstore.Store, name string) (*kmeans.Result, error) {
	data, err := store.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", name, err)
	}
	res, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return res, nil
}
