package planner

import (
	"testing"

	"github.com/limaJavier/timetabling/pkg/model"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const catalogsDirectory = "../../test/catalogs/"
const timetablesDirectory = "../../test/timetables/"

func newComponent(id string, kind model.ComponentKind, days, time string) model.Component {
	return model.Component{
		Id:   id,
		Kind: kind,
		Schedule: model.ScheduleBlock{
			Days:      days,
			Time:      time,
			Duration:  "D2",
			StartDate: 1,
			EndDate:   60,
		},
	}
}

func withDates(component model.Component, duration string, startDate, endDate int) model.Component {
	component.Schedule.Duration = duration
	component.Schedule.StartDate = startDate
	component.Schedule.EndDate = endDate
	return component
}

func newCourse(code string, components ...model.Component) model.Course {
	course := model.Course{Code: code}
	for _, component := range components {
		switch component.Kind {
		case model.Main:
			course.Mains = append(course.Mains, component)
		case model.Lab:
			course.Labs = append(course.Labs, component)
		case model.Tutorial:
			course.Tutorials = append(course.Tutorials, component)
		case model.Seminar:
			course.Seminars = append(course.Seminars, component)
		}
	}
	return course
}

func newTestCatalog(t *testing.T, courses ...model.Course) model.Catalog {
	catalog, err := model.NewCatalog(courses...)
	require.NoError(t, err)
	return catalog
}

func newTestGeneration(t *testing.T, grid model.TimeGrid, pins ...string) *generation {
	parsed, errs := model.ParsePins(pins)
	require.Empty(t, errs)
	if grid == nil {
		grid = model.NewTimeGrid()
	}
	return &generation{
		pins:            model.NewPinSet(parsed),
		grid:            grid,
		fallback:        true,
		maxCombinations: DefaultMaxCombinations,
		recordBlocked:   true,
		logger:          zap.NewNop(),
		observer:        NoopObserver{},
	}
}

// Records every event it receives
type recordingObserver struct {
	events []Event
}

func (observer *recordingObserver) OnEvent(event Event) {
	observer.events = append(observer.events, event)
}

func (observer *recordingObserver) kinds() []EventKind {
	kinds := make([]EventKind, 0, len(observer.events))
	for _, event := range observer.events {
		kinds = append(kinds, event.Kind)
	}
	return kinds
}

func baseIds(components []model.Component) []string {
	ids := make([]string, 0, len(components))
	for _, component := range components {
		if len(ids) == 0 || ids[len(ids)-1] != component.BaseId() {
			ids = append(ids, component.BaseId())
		}
	}
	return ids
}
