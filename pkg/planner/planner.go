package planner

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/limaJavier/timetabling/pkg/model"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const DefaultMaxCombinations = 50_000

var ErrUnknownCourse = errors.New("unknown course")

type CatalogReader interface {
	// Course codes to plan, in order
	CourseCodes() []string
	Course(code string) (model.Course, bool)
}

type PinReader interface {
	Pins() []string
}

type GridReader interface {
	Grid() model.TimeGrid
}

type StaticPins []string

func (pins StaticPins) Pins() []string { return pins }

type StaticGrid model.TimeGrid

func (grid StaticGrid) Grid() model.TimeGrid { return model.TimeGrid(grid) }

// Planner generates conflict-free timetables from the current catalog, pins and grid. Every call to
// Generate recomputes from scratch. A Planner holds the result of its last generation and is not safe for
// concurrent use: callers must serialize calls or use one Planner per caller.
type Planner interface {
	Generate(mode SortMode) (GenerationResult, error)

	// Timetables found by the last generation
	ValidTimetables() []model.Timetable

	// Counters of the last generation
	Performance() Performance
}

type Performance struct {
	RunId                 uuid.UUID
	Start                 time.Time
	End                   time.Time
	CombinationsProcessed int
	ValidCount            int
}

func (performance Performance) Duration() time.Duration {
	return performance.End.Sub(performance.Start)
}

type GenerationResult struct {
	Timetables    []model.Timetable
	Truncated     bool // Enumeration stopped at the combination threshold
	Overridden    bool // Some category only had blocked options and the least blocked one was used
	Relaxed       bool // Blocked cells were released to find the timetables
	NoResultFound bool // Every course is satisfiable alone but no combination is valid
	Performance   Performance
}

// Sentinel reports whether the result stands for a course that cannot be satisfied on its own
func (result GenerationResult) Sentinel() bool {
	return len(result.Timetables) == 1 && result.Timetables[0].IsSentinel()
}

type Option func(planner *planner)

func WithLogger(logger *zap.Logger) Option {
	return func(planner *planner) {
		if logger != nil {
			planner.logger = logger
		}
	}
}

// WithObserver adds an observer of the generation signals
func WithObserver(observer Observer) Option {
	return func(planner *planner) {
		if observer != nil {
			planner.observers = append(planner.observers, observer)
		}
	}
}

func WithMetrics(metrics *Metrics) Option {
	return func(planner *planner) {
		if metrics != nil {
			planner.metrics = metrics
			planner.observers = append(planner.observers, metrics)
		}
	}
}

func WithMaxCombinations(maxCombinations int) Option {
	return func(planner *planner) {
		if maxCombinations > 0 {
			planner.maxCombinations = maxCombinations
		}
	}
}

// WithFallback toggles the substitution of the least blocked option when every option is blocked
func WithFallback(fallback bool) Option {
	return func(planner *planner) {
		planner.fallback = fallback
	}
}

// WithRelaxation toggles the release of blocked cells when no valid timetable exists
func WithRelaxation(relaxation bool) Option {
	return func(planner *planner) {
		planner.relaxation = relaxation
	}
}

type planner struct {
	catalog         CatalogReader
	pins            PinReader
	grid            GridReader
	logger          *zap.Logger
	observers       MultiObserver
	metrics         *Metrics
	maxCombinations int
	fallback        bool
	relaxation      bool

	// Last generation
	timetables  []model.Timetable
	performance Performance
	truncated   bool
}

func NewPlanner(catalog CatalogReader, pins PinReader, grid GridReader, options ...Option) Planner {
	planner := &planner{
		catalog:         catalog,
		pins:            pins,
		grid:            grid,
		logger:          zap.NewNop(),
		maxCombinations: DefaultMaxCombinations,
		fallback:        true,
		relaxation:      true,
	}
	for _, option := range options {
		option(planner)
	}
	return planner
}

func (planner *planner) ValidTimetables() []model.Timetable {
	return slices.Clone(planner.timetables)
}

func (planner *planner) Performance() Performance {
	return planner.performance
}

func (planner *planner) Generate(mode SortMode) (GenerationResult, error) {
	//** Reset
	if planner.truncated {
		planner.observers.OnEvent(Event{Kind: EventTruncationStopped})
	}
	planner.timetables, planner.truncated = nil, false
	performance := Performance{RunId: uuid.New(), Start: time.Now()}
	logger := planner.logger.With(zap.String("run_id", performance.RunId.String()))

	//** Snapshot inputs
	courses, err := planner.courses()
	if err != nil {
		return GenerationResult{}, err
	}
	pins, pinErrors := model.ParsePins(planner.pinList())
	for _, err := range pinErrors {
		logger.Warn("ignoring pin", zap.Error(err))
	}
	grid := model.NewTimeGrid()
	if planner.grid != nil && planner.grid.Grid() != nil {
		grid = planner.grid.Grid().Clone() // Working copy, relaxation writes into it
	}

	generation := &generation{
		pins:            model.NewPinSet(pins),
		grid:            grid,
		fallback:        planner.fallback,
		maxCombinations: planner.maxCombinations,
		recordBlocked:   true,
		logger:          logger,
		observer:        planner.observers,
	}

	logger.Debug("generation started",
		zap.Int("courses", len(courses)),
		zap.Int("pins", len(pins)),
		zap.String("sort_mode", string(mode)),
	)

	//** Generate
	result := GenerationResult{}
	timetables, satisfiable := generation.run(courses)
	if !satisfiable {
		logger.Info("a course cannot be satisfied on its own")
		result.Timetables = []model.Timetable{{}}
		return planner.finish(result, generation, performance, logger), nil
	}

	//** Relax
	if len(timetables) == 0 && planner.relaxation && len(generation.blocked) > 0 {
		timetables, result.Relaxed = planner.relax(generation, courses, logger)
	}

	//** Sort
	sortTimetables(timetables, mode)
	result.Timetables = timetables

	if len(timetables) == 0 && len(courses) > 0 {
		result.NoResultFound = true
		planner.observers.OnEvent(Event{Kind: EventNoResult, Processed: generation.processed})
	}

	return planner.finish(result, generation, performance, logger), nil
}

// relax releases the cells of blocked offerings, least blocked first, and regenerates after each release
// until some valid timetable shows up. Releases accumulate in the working grid. Every pass draws from the
// combination budget of the generation, relaxation stops when it runs out.
func (planner *planner) relax(generation *generation, courses []model.Course, logger *zap.Logger) ([]model.Timetable, bool) {
	candidates := slices.Clone(generation.blocked)
	slices.SortStableFunc(candidates, func(a, b blockedOffering) int {
		switch {
		case a.percentage < b.percentage:
			return -1
		case a.percentage > b.percentage:
			return 1
		}
		return 0
	})
	generation.recordBlocked = false

	for _, candidate := range candidates {
		if generation.processed >= generation.maxCombinations {
			generation.markTruncated(generation.processed)
			logger.Info("combination threshold reached while relaxing", zap.Int("combinations", generation.processed))
			return nil, false
		}
		generation.grid.Release(candidate.offering.Components)

		timetables, satisfiable := generation.run(courses)
		if !satisfiable || len(timetables) == 0 {
			continue
		}

		logger.Info("relaxed blocked cells",
			zap.String("course", candidate.courseCode),
			zap.String("base_id", candidate.offering.BaseId),
			zap.Float64("blocked_percentage", candidate.percentage),
		)
		planner.observers.OnEvent(Event{
			Kind:       EventRelaxed,
			CourseCode: candidate.courseCode,
			Component:  candidate.kind,
			BaseId:     candidate.offering.BaseId,
			Percentage: candidate.percentage,
		})
		return timetables, true
	}

	logger.Debug("relaxation exhausted", zap.Int("candidates", len(candidates)))
	return nil, false
}

func (planner *planner) finish(result GenerationResult, generation *generation, performance Performance, logger *zap.Logger) GenerationResult {
	result.Truncated = generation.truncated
	result.Overridden = generation.overridden

	performance.End = time.Now()
	performance.CombinationsProcessed = generation.processed
	performance.ValidCount = len(lo.Reject(result.Timetables, func(timetable model.Timetable, _ int) bool {
		return timetable.IsSentinel()
	}))
	result.Performance = performance

	planner.timetables = result.Timetables
	planner.performance = performance
	planner.truncated = result.Truncated
	if planner.metrics != nil {
		planner.metrics.ObserveGeneration(performance)
	}

	logger.Debug("generation finished",
		zap.Int("timetables", performance.ValidCount),
		zap.Int("combinations", performance.CombinationsProcessed),
		zap.Bool("truncated", result.Truncated),
		zap.Bool("overridden", result.Overridden),
		zap.Duration("duration", performance.Duration()),
	)
	return result
}

func (planner *planner) courses() ([]model.Course, error) {
	codes := planner.catalog.CourseCodes()
	courses := make([]model.Course, 0, len(codes))
	for _, code := range codes {
		course, ok := planner.catalog.Course(code)
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownCourse, code)
		}
		courses = append(courses, course)
	}
	return courses, nil
}

func (planner *planner) pinList() []string {
	if planner.pins == nil {
		return nil
	}
	return planner.pins.Pins()
}

// generation holds the state of a single Generate call
type generation struct {
	pins            model.PinSet
	grid            model.TimeGrid
	fallback        bool
	maxCombinations int
	recordBlocked   bool
	logger          *zap.Logger
	observer        Observer

	blocked    []blockedOffering
	processed  int
	truncated  bool
	overridden bool
}

// run builds the selections of every course, cross-combines them and keeps the valid candidates. Returns
// false when some course has no selection at all.
func (generation *generation) run(courses []model.Course) ([]model.Timetable, bool) {
	if len(courses) == 0 {
		return nil, true
	}

	perCourse := lo.Map(courses, func(course model.Course, _ int) []model.CourseSelection {
		return generation.courseSelections(course)
	})

	timetables := make([]model.Timetable, 0)
	satisfiable := generation.crossCombine(perCourse, func(timetable model.Timetable) {
		if IsTimetableValid(timetable) {
			timetables = append(timetables, timetable)
		}
	})
	return timetables, satisfiable
}

func (generation *generation) filter(courseCode string, kind model.ComponentKind, components []model.Component) filterResult {
	result := filterByGrid(courseCode, kind, components, generation.grid, generation.fallback)

	if generation.recordBlocked {
		generation.blocked = append(generation.blocked, result.blocked...)
	}
	if result.overridden {
		generation.overridden = true
		generation.logger.Info("every option is blocked, using the least blocked one",
			zap.String("course", courseCode),
			zap.String("component", string(kind)),
			zap.String("base_id", result.chosen.offering.BaseId),
			zap.Float64("blocked_percentage", result.chosen.percentage),
		)
		generation.observer.OnEvent(Event{
			Kind:       EventOverride,
			CourseCode: courseCode,
			Component:  kind,
			BaseId:     result.chosen.offering.BaseId,
			Percentage: result.chosen.percentage,
		})
	}
	return result
}

func (generation *generation) markTruncated(processed int) {
	if generation.truncated {
		return
	}
	generation.truncated = true
	generation.observer.OnEvent(Event{Kind: EventTruncationStarted, Processed: processed})
}
