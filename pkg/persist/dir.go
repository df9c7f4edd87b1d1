package persist

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

var _ KV = Dir{}

// Dir stores one JSON file per key in a directory.
type Dir struct {
	dir string
}

func InDir(dir string) (Dir, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Dir{}, err
	}
	return Dir{dir}, nil
}

func (d Dir) Save(key string, v any) error {
	bs, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(d.path(key), bs, 0o660)
}

func (d Dir) Load(key string, v any) (bool, error) {
	bs, err := os.ReadFile(d.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(bs, v)
}

func (d Dir) path(key string) string {
	return filepath.Join(d.dir, key+".json")
}
