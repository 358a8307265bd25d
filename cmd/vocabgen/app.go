package main

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/neurobagel/vocab-handling/internal/athena"
	"github.com/neurobagel/vocab-handling/internal/config"
	"github.com/neurobagel/vocab-handling/internal/hierarchy"
	"github.com/neurobagel/vocab-handling/internal/observability"
	"github.com/neurobagel/vocab-handling/internal/terms"
)

// App orchestrates one extraction run: concept table, hierarchy graph
// (cached or rebuilt), descendant closure, filtering, structuring, output.
type App struct {
	Config *config.Config
	RunID  string
}

type ExtractionResult struct {
	Mode        string
	GraphNodes  int
	GraphEdges  int
	CacheHit    bool
	CachePath   string
	Descendants int
	Emitted     int
	OutputPath  string
	Duration    time.Duration
}

func NewApp(cfg *config.Config) *App {
	return &App{
		Config: cfg,
		RunID:  uuid.NewString(),
	}
}

func (a *App) Extract(ctx context.Context, modeName, addTermsPath, outOverride string) (ExtractionResult, error) {
	ctx, span := observability.Tracer.Start(ctx, "app.Extract",
		trace.WithAttributes(attribute.String("mode", modeName)))
	defer span.End()

	start := time.Now()

	// Mode resolution happens before any file is touched.
	mode, err := a.Config.ResolveMode(modeName)
	if err != nil {
		return ExtractionResult{}, err
	}

	slog.Info("starting extraction", "run_id", a.RunID, "mode", modeName, "roots", mode.Roots)

	concepts, err := a.loadConcepts(ctx)
	if err != nil {
		return ExtractionResult{}, err
	}

	graph, cacheHit, err := a.acquireGraph(ctx)
	if err != nil {
		return ExtractionResult{}, err
	}

	candidates := a.queryDescendants(ctx, graph, mode.Roots)

	emitted, err := a.structureTerms(ctx, concepts, candidates, mode, addTermsPath)
	if err != nil {
		return ExtractionResult{}, err
	}

	outputPath := filepath.Join(a.Config.Paths.VocabDir, mode.Output)
	if outOverride != "" {
		outputPath = outOverride
	}
	if err := terms.WriteJSON(outputPath, emitted); err != nil {
		return ExtractionResult{}, err
	}

	observability.TermsEmitted.WithLabelValues(modeName).Set(float64(len(emitted)))
	slog.Info("extraction complete", "run_id", a.RunID, "mode", modeName,
		"terms", len(emitted), "output", outputPath, "duration", time.Since(start))

	return ExtractionResult{
		Mode:        modeName,
		GraphNodes:  graph.NodeCount(),
		GraphEdges:  graph.EdgeCount(),
		CacheHit:    cacheHit,
		CachePath:   a.Config.Paths.GraphCache,
		Descendants: len(candidates),
		Emitted:     len(emitted),
		OutputPath:  outputPath,
		Duration:    time.Since(start),
	}, nil
}

func (a *App) loadConcepts(ctx context.Context) ([]athena.Concept, error) {
	_, span := observability.Tracer.Start(ctx, "app.loadConcepts")
	defer span.End()

	start := time.Now()
	concepts, err := athena.LoadConcepts(a.Config.Paths.ConceptTable)
	observability.StageDuration.WithLabelValues("load_concepts").Observe(time.Since(start).Seconds())
	return concepts, err
}

// acquireGraph loads the cached hierarchy when the cache holds edges, and
// otherwise builds it from the relationship table and saves it. A cache hit
// skips the relationship table entirely; whether the cache still matches the
// current snapshot is the operator's responsibility.
func (a *App) acquireGraph(ctx context.Context) (*hierarchy.Graph, bool, error) {
	_, span := observability.Tracer.Start(ctx, "app.acquireGraph")
	defer span.End()

	start := time.Now()
	defer func() {
		observability.StageDuration.WithLabelValues("acquire_graph").Observe(time.Since(start).Seconds())
	}()

	store, err := hierarchy.OpenStore(a.Config.Paths.GraphCache)
	if err != nil {
		return nil, false, err
	}
	defer store.Close()

	empty, err := store.Empty()
	if err != nil {
		return nil, false, err
	}

	if !empty {
		slog.Info("loading hierarchy graph from cache", "path", store.Path())
		graph, err := store.Load()
		if err != nil {
			return nil, false, err
		}
		observability.GraphCacheHits.Inc()
		slog.Info("hierarchy graph loaded", "nodes", graph.NodeCount(), "edges", graph.EdgeCount())
		return graph, true, nil
	}

	relationships, err := athena.LoadRelationships(a.Config.Paths.RelationshipTable)
	if err != nil {
		return nil, false, err
	}

	slog.Info("building hierarchy graph", "is_a_rows", len(relationships))
	graph := hierarchy.Build(relationships)
	if err := store.Save(graph); err != nil {
		return nil, false, err
	}
	observability.GraphCacheMisses.Inc()
	slog.Info("hierarchy graph built and cached",
		"nodes", graph.NodeCount(), "edges", graph.EdgeCount(), "path", store.Path())
	return graph, false, nil
}

func (a *App) queryDescendants(ctx context.Context, graph *hierarchy.Graph, roots []int64) map[int64]bool {
	_, span := observability.Tracer.Start(ctx, "app.queryDescendants")
	defer span.End()

	start := time.Now()
	candidates := graph.Descendants(roots)
	observability.StageDuration.WithLabelValues("descendants").Observe(time.Since(start).Seconds())
	slog.Info("descendant closure computed", "roots", len(roots), "descendants", len(candidates))
	return candidates
}

func (a *App) structureTerms(ctx context.Context, concepts []athena.Concept, candidates map[int64]bool, mode config.Mode, addTermsPath string) ([]terms.Term, error) {
	_, span := observability.Tracer.Start(ctx, "app.structureTerms")
	defer span.End()

	start := time.Now()
	defer func() {
		observability.StageDuration.WithLabelValues("structure_terms").Observe(time.Since(start).Seconds())
	}()

	filtered := terms.Filter(concepts, candidates, mode.Domain)
	slog.Info("terms filtered", "candidates", len(candidates), "kept", len(filtered), "domain", mode.Domain)

	structured := terms.Structure(filtered, a.Config.Namespace)

	if addTermsPath == "" {
		return terms.Dedupe(structured), nil
	}

	additions, err := athena.LoadAdditions(addTermsPath)
	if err != nil {
		return nil, err
	}
	merged := terms.MergeAdditions(structured, additions, a.Config.Namespace)
	slog.Info("additional terms merged", "additions", len(additions), "total", len(merged))
	return merged, nil
}
