package engine

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	da "github.com/lintang-b-s/gpxmatch/pkg/datastructure"
	"github.com/lintang-b-s/gpxmatch/pkg/util"
	"go.uber.org/zap"
)

// Repository persists a MatchIndex as a single JSON file.
type Repository struct {
	path string
	log  *zap.Logger
}

func NewRepository(path string, log *zap.Logger) *Repository {
	return &Repository{path: path, log: log}
}

func (r *Repository) Path() string {
	return r.path
}

func (r *Repository) Exists() bool {
	_, err := os.Stat(r.path)
	return err == nil
}

// Load reads the index. If the file does not exist it returns an empty index
// together with util.ErrIndexNotBuilt.
func (r *Repository) Load() (*da.MatchIndex, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return da.NewMatchIndex(), util.WrapErrorf(err, util.ErrIndexNotBuilt, "match index %s does not exist", r.path)
		}
		return nil, util.WrapErrorf(err, util.ErrPersistence, "read match index %s: %v", r.path, err)
	}

	idx := da.NewMatchIndex()
	if err := json.Unmarshal(data, idx); err != nil {
		return nil, util.WrapErrorf(err, util.ErrCorruptIndex, "load match index %s: %v", r.path, err)
	}
	return idx, nil
}

// Save replaces the index file. The data goes to a temporary file in the same
// directory which is synced and renamed over the target, so readers see either
// the old or the new index.
func (r *Repository) Save(idx *da.MatchIndex) error {
	data, err := json.Marshal(idx)
	if err != nil {
		return util.WrapErrorf(err, util.ErrPersistence, "encode match index: %v", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return util.WrapErrorf(err, util.ErrPersistence, "create index directory %s: %v", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".matches-*.tmp")
	if err != nil {
		return util.WrapErrorf(err, util.ErrPersistence, "create temp file in %s: %v", dir, err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return util.WrapErrorf(err, util.ErrPersistence, "write match index: %v", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return util.WrapErrorf(err, util.ErrPersistence, "sync match index: %v", err)
	}
	if err := tmp.Close(); err != nil {
		return util.WrapErrorf(err, util.ErrPersistence, "close match index: %v", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return util.WrapErrorf(err, util.ErrPersistence, "chmod match index: %v", err)
	}
	if err := os.Rename(tmpPath, r.path); err != nil {
		return util.WrapErrorf(err, util.ErrPersistence, "rename match index into %s: %v", r.path, err)
	}

	success = true
	r.log.Info("match index saved", zap.String("path", r.path), zap.Int("pairs", idx.Len()))
	return nil
}
