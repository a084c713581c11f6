package planner

import (
	"slices"

	"github.com/limaJavier/timetabling/pkg/model"

	"github.com/samber/lo"
)

type conflictEvaluator interface {
	// Checks whether the active date windows of both components share at least one day (bounds inclusive)
	DatesOverlap(component1, component2 model.Component) bool

	// Checks whether both components meet on a common weekday
	DaysIntersect(component1, component2 model.Component) bool

	// Checks whether the slot ranges of both components overlap (open intervals)
	SlotsOverlap(component1, component2 model.Component) bool

	// Checks whether both components cannot be attended together
	Conflict(component1, component2 model.Component) bool
}

func newConflictEvaluator() conflictEvaluator {
	return &conflictEvaluatorStandard{}
}

type conflictEvaluatorStandard struct{}

func (evaluator *conflictEvaluatorStandard) DatesOverlap(component1, component2 model.Component) bool {
	return component1.Schedule.DatesOverlap(component2.Schedule)
}

func (evaluator *conflictEvaluatorStandard) DaysIntersect(component1, component2 model.Component) bool {
	days2 := component2.Schedule.Weekdays()
	return lo.SomeBy(component1.Schedule.Weekdays(), func(day string) bool {
		return slices.Contains(days2, day)
	})
}

func (evaluator *conflictEvaluatorStandard) SlotsOverlap(component1, component2 model.Component) bool {
	start1, end1, ok1 := component1.Schedule.SlotRange()
	start2, end2, ok2 := component2.Schedule.SlotRange()
	if !ok1 || !ok2 {
		return false
	}
	return start1 < end2 && start2 < end1
}

func (evaluator *conflictEvaluatorStandard) Conflict(component1, component2 model.Component) bool {
	return evaluator.DatesOverlap(component1, component2) &&
		evaluator.DaysIntersect(component1, component2) &&
		evaluator.SlotsOverlap(component1, component2)
}
