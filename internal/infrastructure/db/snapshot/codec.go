// Package snapshot stores each collection as a single CBOR file that is
// rewritten wholesale on every save.
package snapshot

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fxamacker/cbor/v2"
)

// formatVersion is written into every file so a future layout change can be
// detected on load.
const formatVersion = 1

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	// Nanosecond text timestamps; the default integer encoding drops the
	// sub-second part of CreatedAt.
	encOptions.Time = cbor.TimeRFC3339Nano
	encOptions.TimeTag = cbor.EncTagRequired
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("snapshot: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("snapshot: CBOR decoder initialization failed: " + err.Error())
	}
}

// envelope is the on-disk layout of every snapshot file.
type envelope[T any] struct {
	Version int `cbor:"version"`
	Items   []T `cbor:"items"`
}

// file is one snapshot on disk.
type file struct {
	path string
}

// read decodes the snapshot into items. A missing file yields no items.
func read[T any](f file) ([]T, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("read snapshot %s: %w", f.path, err)
	}

	var env envelope[T]
	if err := decMode.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", f.path, err)
	}
	if env.Version != formatVersion {
		return nil, fmt.Errorf("snapshot %s: unsupported format version %d", f.path, env.Version)
	}
	if env.Items == nil {
		env.Items = []T{}
	}
	return env.Items, nil
}

// write replaces the snapshot atomically: the new content goes to a temporary
// file in the same directory which is then renamed over the old one.
func write[T any](f file, items []T) error {
	data, err := encMode.Marshal(envelope[T]{Version: formatVersion, Items: items})
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", f.path, err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write snapshot %s: %w", f.path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync snapshot %s: %w", f.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot %s: %w", f.path, err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace snapshot %s: %w", f.path, err)
	}
	return nil
}

// Ping checks that dataDir exists (creating it if needed) and is a directory.
func Ping(dataDir string) error {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("snapshot directory %s: %w", dataDir, err)
	}
	info, err := os.Stat(dataDir)
	if err != nil {
		return fmt.Errorf("snapshot directory %s: %w", dataDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("snapshot directory %s: not a directory", dataDir)
	}
	return nil
}
