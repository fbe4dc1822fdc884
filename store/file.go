package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/zeu5/linear-td/util"
)

// FileStore keeps every record in <dir>/<key>.json
type FileStore struct {
	dir string
}

var _ WeightStore = &FileStore{}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0777); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(key string) string {
	return path.Join(f.dir, key+".json")
}

func (f *FileStore) Save(_ context.Context, key string, r Record) error {
	bs, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return util.WriteToFile(f.path(key), string(bs))
}

func (f *FileStore) Load(_ context.Context, key string) (*Record, error) {
	bs, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	} else if err != nil {
		return nil, err
	}
	r := &Record{}
	if err := json.Unmarshal(bs, r); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", key, err)
	}
	return r, nil
}
