package engine

import (
	"github.com/lintang-b-s/gpxmatch/pkg/geo"
	"github.com/lintang-b-s/gpxmatch/pkg/matcher"
	"github.com/lintang-b-s/gpxmatch/pkg/source"
	"github.com/lintang-b-s/gpxmatch/pkg/util"
	"go.uber.org/zap"
)

// Engine wires the source, index repository, builder and query service from one config.
type Engine struct {
	source  *source.DirectorySource
	repo    *Repository
	builder *IndexBuilder
	query   *QueryService
}

func NewEngine(cfg *util.Config, logger *zap.Logger) (*Engine, error) {
	eq, err := geo.NewEquality(cfg.ToleranceMeters)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "%v", err)
	}
	policy, err := ParseUnresolvedPolicy(cfg.OnUnresolved)
	if err != nil {
		return nil, err
	}

	logger.Info("Starting gpx match engine...", zap.String("tracks_dir", cfg.TracksDir),
		zap.String("index_path", cfg.IndexPath))

	src := source.NewDirectorySource(cfg.TracksDir, logger)
	src.Exclude(cfg.IndexPath)
	repo := NewRepository(cfg.IndexPath, logger)
	return &Engine{
		source:  src,
		repo:    repo,
		builder: NewIndexBuilder(src, matcher.NewMatcher(eq), cfg.BuildWorkers, policy, logger),
		query:   NewQueryService(repo, src, logger),
	}, nil
}

func (e *Engine) GetSource() *source.DirectorySource {
	return e.source
}

func (e *Engine) GetRepository() *Repository {
	return e.repo
}

func (e *Engine) GetBuilder() *IndexBuilder {
	return e.builder
}

func (e *Engine) GetQueryService() *QueryService {
	return e.query
}
