package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/lintang-b-s/gpxmatch/pkg/concurrent"
	da "github.com/lintang-b-s/gpxmatch/pkg/datastructure"
	"github.com/lintang-b-s/gpxmatch/pkg/geo"
	"github.com/lintang-b-s/gpxmatch/pkg/matcher"
	"github.com/lintang-b-s/gpxmatch/pkg/source"
	"github.com/lintang-b-s/gpxmatch/pkg/util"
	"go.uber.org/zap"
)

// UnresolvedPolicy decides what a build does with a track the source cannot resolve.
type UnresolvedPolicy uint8

const (
	// ABORT_ON_UNRESOLVED fails the whole build.
	ABORT_ON_UNRESOLVED UnresolvedPolicy = iota
	// SKIP_UNRESOLVED drops every pair involving the track.
	SKIP_UNRESOLVED
)

func ParseUnresolvedPolicy(s string) (UnresolvedPolicy, error) {
	switch s {
	case "", util.OnUnresolvedAbort:
		return ABORT_ON_UNRESOLVED, nil
	case util.OnUnresolvedSkip:
		return SKIP_UNRESOLVED, nil
	default:
		return ABORT_ON_UNRESOLVED, util.WrapErrorf(nil, util.ErrBadParamInput, "unknown unresolved track policy %q", s)
	}
}

type SkippedTrack struct {
	TrackID string
	Err     error
}

type BuildReport struct {
	Tracks        int
	PairsCompared int
	PairsStored   int
	Matches       int
	Skipped       []SkippedTrack
	Duration      time.Duration
}

// IndexBuilder compares every unordered pair of tracks and collects the
// non-empty results into a MatchIndex.
//
// Identifiers are de-duplicated and sorted, and the pair (ids[i], ids[j]) with
// i < j is stored as ids[i] -> ids[j]: the lexicographically smaller identifier
// is always the outer key. Callers cannot choose the stored direction.
type IndexBuilder struct {
	source     source.CoordinateSource
	matcher    *matcher.Matcher
	numWorkers int
	policy     UnresolvedPolicy
	log        *zap.Logger
}

func NewIndexBuilder(src source.CoordinateSource, m *matcher.Matcher, numWorkers int, policy UnresolvedPolicy,
	log *zap.Logger) *IndexBuilder {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &IndexBuilder{
		source:     src,
		matcher:    m,
		numWorkers: numWorkers,
		policy:     policy,
		log:        log,
	}
}

type pairJob struct {
	a, b int
}

type pairResult struct {
	a, b  int
	pairs []da.IndexPair
}

// Build resolves every track once, then matches all pairs on the worker pool.
// Results are merged on the calling goroutine in enumeration order.
func (ib *IndexBuilder) Build(ctx context.Context, trackIDs []string) (*da.MatchIndex, *BuildReport, error) {
	start := time.Now()
	ids := util.UniqueSorted(trackIDs)
	report := &BuildReport{}

	ib.log.Info("Building match index...", zap.Int("tracks", len(ids)), zap.Int("workers", ib.numWorkers),
		zap.Float64("tolerance_meters", ib.matcher.Equality().ToleranceMeters()))

	resolvedIDs := make([]string, 0, len(ids))
	coords := make([][]geo.Coordinate, 0, len(ids))
	for _, id := range ids {
		if util.StopConcurrentOperation(ctx) {
			return nil, nil, ctx.Err()
		}
		c, err := ib.source.Resolve(id)
		if err != nil {
			if ib.policy == SKIP_UNRESOLVED {
				ib.log.Warn("skipping unresolved track", zap.String("track", id), zap.Error(err))
				report.Skipped = append(report.Skipped, SkippedTrack{TrackID: id, Err: err})
				continue
			}
			return nil, nil, util.WrapErrorf(err, util.ErrTrackNotFound, "build aborted: track %q: %v", id, err)
		}
		resolvedIDs = append(resolvedIDs, id)
		coords = append(coords, c)
	}
	report.Tracks = len(resolvedIDs)

	prepared := concurrent.Run(ib.numWorkers, coords, func(c []geo.Coordinate) *matcher.Prepared {
		return ib.matcher.Prepare(c)
	})

	jobs := make([]pairJob, 0, len(resolvedIDs)*(len(resolvedIDs)-1)/2+1)
	for i := 0; i < len(resolvedIDs); i++ {
		for j := i + 1; j < len(resolvedIDs); j++ {
			jobs = append(jobs, pairJob{a: i, b: j})
		}
	}

	results := concurrent.Run(ib.numWorkers, jobs, func(job pairJob) pairResult {
		if util.StopConcurrentOperation(ctx) {
			return pairResult{a: job.a, b: job.b}
		}
		return pairResult{a: job.a, b: job.b, pairs: ib.matcher.MatchPrepared(coords[job.a], prepared[job.b])}
	})
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	idx := da.NewMatchIndex()
	for _, res := range results {
		report.PairsCompared++
		if len(res.pairs) == 0 {
			continue
		}
		if err := idx.Set(resolvedIDs[res.a], resolvedIDs[res.b], res.pairs); err != nil {
			return nil, nil, fmt.Errorf("store pair %q/%q: %w", resolvedIDs[res.a], resolvedIDs[res.b], err)
		}
		report.PairsStored++
		report.Matches += len(res.pairs)
	}

	report.Duration = time.Since(start)
	pairsComparedTotal.Add(float64(report.PairsCompared))
	matchesFoundTotal.Add(float64(report.Matches))
	buildDuration.Observe(report.Duration.Seconds())

	ib.log.Info("Match index built.", zap.Int("pairs_compared", report.PairsCompared),
		zap.Int("pairs_stored", report.PairsStored), zap.Int("matches", report.Matches),
		zap.Int("skipped_tracks", len(report.Skipped)), zap.Duration("duration", report.Duration))
	return idx, report, nil
}

// BuildAndSave builds the index and replaces the repository file with it.
// On any error the previous file is left untouched.
func (ib *IndexBuilder) BuildAndSave(ctx context.Context, trackIDs []string, repo *Repository) (*BuildReport, error) {
	idx, report, err := ib.Build(ctx, trackIDs)
	if err != nil {
		return nil, err
	}
	if err := repo.Save(idx); err != nil {
		return nil, err
	}
	return report, nil
}
