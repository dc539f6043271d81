// Package analysis orchestrates the full pipeline for one experiment:
// geometry resolution, temperature alignment, per-well transition
// detection, result reduction, region aggregation, and concentration
// computation, ending in a single atomic replacement write.
package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"inplab/internal/aggregation"
	"inplab/internal/alignment"
	"inplab/internal/analysis/store"
	"inplab/internal/concentration"
	"inplab/internal/detection"
	"inplab/internal/domain"
	"inplab/internal/geometry"
	"inplab/internal/platform/config"
	"inplab/internal/platform/metrics"
	"inplab/internal/results"
	"inplab/internal/runlog"
	id "inplab/pkg/domain"
	dErrors "inplab/pkg/domain-errors"
)

// regionNamespace seeds deterministic region identifiers so re-running an
// experiment with unchanged region definitions replaces rather than
// duplicates downstream rows.
var regionNamespace = uuid.MustParse("7e0c4a1f-5b2d-4c8a-9f36-1a2b3c4d5e6f")

// Service runs analysis pipelines and writes their replacement sets.
type Service struct {
	store   store.ResultStore
	logger  *slog.Logger
	metrics *metrics.Metrics
	events  chan<- runlog.Event
	cfg     config.Analysis
}

// Option configures optional Service collaborators.
type Option func(*Service)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics wires Prometheus instruments.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithEventSink wires a run-event channel. Sends never block: when the
// sink is full the event is dropped and logged.
func WithEventSink(events chan<- runlog.Event) Option {
	return func(s *Service) { s.events = events }
}

// WithConfig overrides the engine tuning.
func WithConfig(cfg config.Analysis) Option {
	return func(s *Service) { s.cfg = cfg }
}

// New creates the analysis service. The result store is required; logger,
// metrics, events and tuning are optional.
func New(resultStore store.ResultStore, opts ...Option) (*Service, error) {
	if resultStore == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "result store is required")
	}
	s := &Service{
		store: resultStore,
		cfg:   config.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.cfg.DebounceCount < 1 || s.cfg.MaxWorkers < 1 {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput,
			"invalid tuning: debounce=%d workers=%d", s.cfg.DebounceCount, s.cfg.MaxWorkers)
	}
	return s, nil
}

// Run executes the pipeline for one experiment and atomically replaces the
// experiment's derived rows.
//
// Configuration-level problems (geometry, alignment, invalid tuning) abort
// the run with an error. Per-entity problems (one well's malformed
// observations, one region with no wells) are isolated: the entity is
// skipped, a Warning is recorded, and the rest of the run proceeds, so a
// partial result is never presented as complete.
func (s *Service) Run(ctx context.Context, in Input) (Output, error) {
	start := time.Now()
	runID := id.NewRunID()
	logger := s.logger.With("run_id", runID.String(), "experiment_id", in.ExperimentID.String())

	if s.metrics != nil {
		s.metrics.RunsStarted.Inc()
	}
	s.emit(logger, runlog.Event{
		Timestamp:    start,
		RunID:        runID,
		ExperimentID: in.ExperimentID,
		Action:       runlog.ActionRunStarted,
	})

	if in.ExperimentID.IsNil() {
		return s.fail(logger, runID, in.ExperimentID, start,
			dErrors.New(dErrors.CodeInvalidInput, "experiment id is required"))
	}

	var warnings []Warning

	// ==== Geometry ====

	layout, err := geometry.Resolve(in.ExperimentID, in.Configuration)
	if err != nil {
		return s.fail(logger, runID, in.ExperimentID, start, err)
	}
	logger.Debug("geometry resolved", "wells", len(layout.Wells), "rows", layout.Rows, "cols", layout.Cols)

	// ==== Alignment ====

	readings, err := alignment.Align(in.ExperimentID, in.Probes, in.ProbeSamples)
	if err != nil {
		return s.fail(logger, runID, in.ExperimentID, start, err)
	}
	readingByID := make(map[id.ReadingID]domain.TemperatureReading, len(readings))
	for _, r := range readings {
		readingByID[r.ID] = r
	}

	// ==== Regions ====

	regions, regionWarnings := s.buildRegions(in.ExperimentID, in.Regions, layout)
	warnings = append(warnings, regionWarnings...)

	// ==== Detection ====

	classify := in.Classifier
	excluded := make(map[id.WellID]bool)
	if classify == nil {
		table, wellErrs := detection.BuildObservations(in.Observations, func(wid id.WellID) bool {
			_, ok := layout.Well(wid)
			return ok
		}, readings)
		classify = table.Classify
		for _, wid := range sortedWellIDs(wellErrs) {
			excluded[wid] = true
			warnings = append(warnings, Warning{
				Scope:   "well",
				Ref:     wid.String(),
				Message: wellErrs[wid].Error(),
			})
		}
	}

	detector, err := detection.New(s.cfg.DebounceCount)
	if err != nil {
		return s.fail(logger, runID, in.ExperimentID, start, err)
	}

	perWell := make([][]domain.WellPhaseTransition, len(layout.Wells))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxWorkers)
	for i, well := range layout.Wells {
		if excluded[well.ID] {
			continue
		}
		i, well := i, well
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			perWell[i] = detector.DetectWell(well, readings, classify)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return s.fail(logger, runID, in.ExperimentID, start, err)
	}

	transitionsByWell := make(map[id.WellID][]domain.WellPhaseTransition, len(layout.Wells))
	var transitions []domain.WellPhaseTransition
	for i, well := range layout.Wells {
		if len(perWell[i]) == 0 {
			continue
		}
		transitionsByWell[well.ID] = perWell[i]
		transitions = append(transitions, perWell[i]...)
	}

	// ==== Reduction and aggregation ====

	aggregator := aggregation.New(regions, layout.Wells)

	freezingResults, err := results.Reduce(layout.Wells, transitionsByWell, readingByID, aggregator.RegionFor)
	if err != nil {
		return s.fail(logger, runID, in.ExperimentID, start, err)
	}
	wellSummaries := results.Summarize(layout.Wells, transitionsByWell)

	curves := make([]*aggregation.RegionCurve, len(regions))
	curveErrs := make([]error, len(regions))
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxWorkers)
	for i, region := range regions {
		i, region := i, region
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			curve, err := aggregator.Aggregate(region, readings, transitionsByWell)
			if err != nil {
				curveErrs[i] = err
				return nil // isolated: siblings keep computing
			}
			curves[i] = &curve
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return s.fail(logger, runID, in.ExperimentID, start, err)
	}
	for i, cerr := range curveErrs {
		if cerr != nil {
			warnings = append(warnings, Warning{Scope: "region", Ref: regions[i].Name, Message: cerr.Error()})
		}
	}

	// ==== Concentration ====

	// One background curve per tray: the first background-keyed region on
	// that tray that produced a curve.
	backgroundByTray := make(map[int]*aggregation.RegionCurve)
	for i, region := range regions {
		if region.IsBackgroundKey && curves[i] != nil {
			if _, taken := backgroundByTray[region.TraySequence]; !taken {
				backgroundByTray[region.TraySequence] = curves[i]
			}
		}
	}

	var concentrations []domain.InpConcentration
	var outCurves []aggregation.RegionCurve
	regionsComputed := 0
	for i, region := range regions {
		if curves[i] == nil {
			continue
		}
		outCurves = append(outCurves, *curves[i])

		var background *aggregation.RegionCurve
		if !region.IsBackgroundKey {
			background = backgroundByTray[region.TraySequence]
		}
		rows, err := concentration.Calculate(*curves[i], background)
		if err != nil {
			warnings = append(warnings, Warning{Scope: "region", Ref: region.Name, Message: err.Error()})
			continue
		}
		concentrations = append(concentrations, rows...)
		regionsComputed++
	}

	// ==== Persist ====

	runResults := store.RunResults{
		ExperimentID:    in.ExperimentID,
		RunID:           runID,
		Wells:           layout.Wells,
		Readings:        readings,
		Transitions:     transitions,
		FreezingResults: freezingResults,
		Concentrations:  concentrations,
	}
	if err := s.store.ReplaceRunResults(ctx, runResults); err != nil {
		return s.fail(logger, runID, in.ExperimentID, start, err)
	}

	duration := time.Since(start)
	if s.metrics != nil {
		s.metrics.TransitionsCreated.Add(float64(len(transitions)))
		s.metrics.WarningsRaised.Add(float64(len(warnings)))
		s.metrics.ObserveRun(duration, false)
	}
	s.emit(logger, runlog.Event{
		Timestamp:          time.Now(),
		RunID:              runID,
		ExperimentID:       in.ExperimentID,
		Action:             runlog.ActionRunCompleted,
		ReadingsCreated:    len(readings),
		TransitionsCreated: len(transitions),
		WellsTracked:       len(layout.Wells),
		Warnings:           warningMessages(warnings),
	})
	logger.Info("analysis run completed",
		"duration", duration,
		"readings", len(readings),
		"transitions", len(transitions),
		"wells", len(layout.Wells),
		"regions_computed", regionsComputed,
		"warnings", len(warnings),
	)

	return Output{
		Results: runResults,
		Summary: RunSummary{
			RunID:              runID,
			ExperimentID:       in.ExperimentID,
			Status:             StatusCompleted,
			Duration:           duration,
			ReadingsCreated:    len(readings),
			TransitionsCreated: len(transitions),
			WellsTracked:       len(layout.Wells),
			RegionsComputed:    regionsComputed,
			Warnings:           warnings,
		},
		WellSummaries: wellSummaries,
		Curves:        outCurves,
	}, nil
}

// buildRegions validates region specs against the rotated tray grids.
// Invalid specs (unknown tray, bad rectangle, overlap with an earlier
// accepted region) become warnings; the region is skipped and its siblings
// proceed.
func (s *Service) buildRegions(experimentID id.ExperimentID, specs []domain.RegionSpec, layout *geometry.Layout) ([]domain.Region, []Warning) {
	var regions []domain.Region
	var warnings []Warning
	for _, spec := range specs {
		rows, cols, ok := layout.TrayDims(spec.TraySequence)
		if !ok {
			warnings = append(warnings, Warning{
				Scope: "region", Ref: spec.Name,
				Message: fmt.Sprintf("region %q references tray sequence %d not in the configuration", spec.Name, spec.TraySequence),
			})
			continue
		}
		region, err := domain.NewRegion(deriveRegionID(experimentID, spec), spec, rows, cols)
		if err != nil {
			warnings = append(warnings, Warning{Scope: "region", Ref: spec.Name, Message: err.Error()})
			continue
		}
		if prev, clash := overlapsAny(region, regions); clash {
			warnings = append(warnings, Warning{
				Scope: "region", Ref: spec.Name,
				Message: fmt.Sprintf("region %q overlaps region %q on tray sequence %d", spec.Name, prev, spec.TraySequence),
			})
			continue
		}
		regions = append(regions, region)
	}
	return regions, warnings
}

func overlapsAny(candidate domain.Region, accepted []domain.Region) (string, bool) {
	for _, r := range accepted {
		if r.TraySequence != candidate.TraySequence {
			continue
		}
		if candidate.RowMin <= r.RowMax && candidate.RowMax >= r.RowMin &&
			candidate.ColMin <= r.ColMax && candidate.ColMax >= r.ColMin {
			return r.Name, true
		}
	}
	return "", false
}

func (s *Service) fail(logger *slog.Logger, runID id.RunID, experimentID id.ExperimentID, start time.Time, err error) (Output, error) {
	duration := time.Since(start)
	if s.metrics != nil {
		s.metrics.ObserveRun(duration, true)
	}
	s.emit(logger, runlog.Event{
		Timestamp:    time.Now(),
		RunID:        runID,
		ExperimentID: experimentID,
		Action:       runlog.ActionRunFailed,
		Reason:       err.Error(),
	})
	logger.Error("analysis run failed", "duration", duration, "error", err)
	return Output{
		Summary: RunSummary{
			RunID:        runID,
			ExperimentID: experimentID,
			Status:       StatusFailed,
			Duration:     duration,
		},
	}, err
}

// emit sends a run event without ever blocking the pipeline.
func (s *Service) emit(logger *slog.Logger, event runlog.Event) {
	if s.events == nil {
		return
	}
	select {
	case s.events <- event:
	default:
		logger.Warn("run event sink full, dropping event", "action", string(event.Action))
	}
}

// sortedWellIDs fixes warning order for deterministic summaries.
func sortedWellIDs(wellErrs map[id.WellID]error) []id.WellID {
	ids := make([]id.WellID, 0, len(wellErrs))
	for wid := range wellErrs {
		ids = append(ids, wid)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}

func warningMessages(warnings []Warning) []string {
	if len(warnings) == 0 {
		return nil
	}
	out := make([]string, len(warnings))
	for i, w := range warnings {
		out[i] = fmt.Sprintf("%s %s: %s", w.Scope, w.Ref, w.Message)
	}
	return out
}

func deriveRegionID(experimentID id.ExperimentID, spec domain.RegionSpec) id.RegionID {
	name := fmt.Sprintf("%s/%d/%s/%d/%d/%d/%d",
		experimentID, spec.TraySequence, spec.Name,
		spec.RowMin, spec.ColMin, spec.RowMax, spec.ColMax)
	return id.RegionID(uuid.NewSHA1(regionNamespace, []byte(name)))
}
