package planner

import (
	"github.com/limaJavier/timetabling/pkg/model"

	"go.uber.org/zap"
)

type EventKind string

const (
	// Enumeration reached the combination threshold; the result is partial
	EventTruncationStarted EventKind = "truncation_started"
	// A previously reported truncation no longer applies (a new generation started)
	EventTruncationStopped EventKind = "truncation_stopped"
	// Every option of a category was blocked and the least blocked one was used instead
	EventOverride EventKind = "override"
	// Every course is satisfiable alone but no combination of them is valid
	EventNoResult EventKind = "no_result"
	// Blocked cells were released to find a result
	EventRelaxed EventKind = "relaxed"
)

type Event struct {
	Kind       EventKind
	CourseCode string
	Component  model.ComponentKind
	BaseId     string
	Percentage float64
	Processed  int
}

// Observer receives the advisory signals raised during generation
type Observer interface {
	OnEvent(event Event)
}

// NoopObserver discards all events
type NoopObserver struct{}

func (NoopObserver) OnEvent(Event) {}

// MultiObserver forwards every event to each of its observers
type MultiObserver []Observer

func (observers MultiObserver) OnEvent(event Event) {
	for _, observer := range observers {
		observer.OnEvent(event)
	}
}

// LogObserver writes events to a zap logger
type LogObserver struct {
	logger *zap.Logger
}

func NewLogObserver(logger *zap.Logger) *LogObserver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogObserver{logger: logger}
}

func (observer *LogObserver) OnEvent(event Event) {
	fields := []zap.Field{zap.String("event", string(event.Kind))}
	if event.CourseCode != "" {
		fields = append(fields,
			zap.String("course", event.CourseCode),
			zap.String("component", string(event.Component)),
			zap.String("base_id", event.BaseId),
			zap.Float64("blocked_percentage", event.Percentage),
		)
	}
	if event.Processed > 0 {
		fields = append(fields, zap.Int("processed", event.Processed))
	}

	switch event.Kind {
	case EventNoResult, EventTruncationStarted:
		observer.logger.Warn("generation signal", fields...)
	default:
		observer.logger.Info("generation signal", fields...)
	}
}
