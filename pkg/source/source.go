package source

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/dsnet/compress/bzip2"
	da "github.com/lintang-b-s/gpxmatch/pkg/datastructure"
	"github.com/lintang-b-s/gpxmatch/pkg/geo"
	"github.com/lintang-b-s/gpxmatch/pkg/util"
	"github.com/tkrajina/gpxgo/gpx"
	"go.uber.org/zap"
)

// CoordinateSource yields the ordered coordinates of a track.
type CoordinateSource interface {
	Resolve(id string) ([]geo.Coordinate, error)
}

type TrackLister interface {
	ListTracks() ([]string, error)
}

type TrackSource interface {
	CoordinateSource
	TrackLister
}

const (
	extGPX      = ".gpx"
	extGPXBzip2 = ".gpx.bz2"
	extJSON     = ".json"
)

func supported(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, extGPXBzip2) || strings.HasSuffix(lower, extGPX) ||
		strings.HasSuffix(lower, extJSON)
}

// DirectorySource resolves a track identifier as a file name inside dir.
// Files are re-read on every Resolve.
type DirectorySource struct {
	dir      string
	excluded map[string]struct{}
	log      *zap.Logger
}

func NewDirectorySource(dir string, log *zap.Logger) *DirectorySource {
	return &DirectorySource{dir: dir, excluded: make(map[string]struct{}), log: log}
}

func (ds *DirectorySource) Dir() string {
	return ds.dir
}

// Exclude hides files that live in dir but are not tracks, such as a match
// index written next to JSON point lists.
func (ds *DirectorySource) Exclude(paths ...string) {
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			ds.log.Warn("cannot exclude path", zap.String("path", p), zap.Error(err))
			continue
		}
		ds.excluded[abs] = struct{}{}
	}
}

func (ds *DirectorySource) isExcluded(name string) bool {
	if len(ds.excluded) == 0 {
		return false
	}
	abs, err := filepath.Abs(filepath.Join(ds.dir, name))
	if err != nil {
		return false
	}
	_, ok := ds.excluded[abs]
	return ok
}

// ListTracks returns the supported track files directly inside dir, sorted.
func (ds *DirectorySource) ListTracks() ([]string, error) {
	entries, err := os.ReadDir(ds.dir)
	if err != nil {
		return nil, fmt.Errorf("list tracks in %s: %w", ds.dir, err)
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !supported(e.Name()) || ds.isExcluded(e.Name()) {
			continue
		}
		ids = append(ids, e.Name())
	}
	sort.Strings(ids)
	return ids, nil
}

func (ds *DirectorySource) Resolve(id string) ([]geo.Coordinate, error) {
	if id == "" || id != filepath.Base(id) || id == "." || id == ".." {
		return nil, util.WrapErrorf(nil, util.ErrTrackNotFound, "track %q not found: not a file name", id)
	}
	if !supported(id) {
		return nil, util.WrapErrorf(nil, util.ErrTrackNotFound, "track %q not found: unsupported extension", id)
	}
	if ds.isExcluded(id) {
		return nil, util.WrapErrorf(nil, util.ErrTrackNotFound, "track %q not found: excluded from %s", id, ds.dir)
	}

	path := filepath.Join(ds.dir, id)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, util.WrapErrorf(err, util.ErrTrackNotFound, "track %q not found in %s", id, ds.dir)
		}
		return nil, util.WrapErrorf(err, util.ErrTrackNotFound, "track %q could not be opened: %v", id, err)
	}
	defer f.Close()

	coords, err := decode(id, f)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrTrackNotFound, "track %q could not be read: %v", id, err)
	}
	ds.log.Debug("resolved track", zap.String("track", id), zap.Int("points", len(coords)))
	return coords, nil
}

func decode(name string, r io.Reader) ([]geo.Coordinate, error) {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, extGPXBzip2):
		bz, err := bzip2.NewReader(r, &bzip2.ReaderConfig{})
		if err != nil {
			return nil, err
		}
		defer bz.Close()
		return decodeGPX(bz)
	case strings.HasSuffix(lower, extGPX):
		return decodeGPX(r)
	default:
		return decodePoints(r)
	}
}

// decodeGPX flattens track segments, then routes, then waypoints, in file order.
func decodeGPX(r io.Reader) ([]geo.Coordinate, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	doc, err := gpx.ParseBytes(data)
	if err != nil {
		return nil, err
	}

	coords := make([]geo.Coordinate, 0)
	for _, trk := range doc.Tracks {
		for _, seg := range trk.Segments {
			for _, p := range seg.Points {
				coords = append(coords, geo.NewCoordinate(p.Latitude, p.Longitude))
			}
		}
	}
	for _, rte := range doc.Routes {
		for _, p := range rte.Points {
			coords = append(coords, geo.NewCoordinate(p.Latitude, p.Longitude))
		}
	}
	for _, p := range doc.Waypoints {
		coords = append(coords, geo.NewCoordinate(p.Latitude, p.Longitude))
	}
	return coords, nil
}

func decodePoints(r io.Reader) ([]geo.Coordinate, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var points []da.Point
	if err := json.Unmarshal(data, &points); err != nil {
		return nil, err
	}
	return da.PointsToCoordinates(points), nil
}

// MemorySource is a map-backed source.
type MemorySource struct {
	mu     sync.RWMutex
	tracks map[string][]geo.Coordinate
}

func NewMemorySource() *MemorySource {
	return &MemorySource{tracks: make(map[string][]geo.Coordinate)}
}

func (ms *MemorySource) Put(id string, coords []geo.Coordinate) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	stored := make([]geo.Coordinate, len(coords))
	copy(stored, coords)
	ms.tracks[id] = stored
}

func (ms *MemorySource) Delete(id string) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.tracks, id)
}

func (ms *MemorySource) Resolve(id string) ([]geo.Coordinate, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	coords, ok := ms.tracks[id]
	if !ok {
		return nil, util.WrapErrorf(nil, util.ErrTrackNotFound, "track %q not found", id)
	}
	out := make([]geo.Coordinate, len(coords))
	copy(out, coords)
	return out, nil
}

func (ms *MemorySource) ListTracks() ([]string, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	ids := make([]string, 0, len(ms.tracks))
	for id := range ms.tracks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
