package planner

import (
	"github.com/limaJavier/timetabling/pkg/model"
)

type placedComponent struct {
	courseCode string
	component  model.Component
}

var defaultEvaluator = newConflictEvaluator()

// IsTimetableValid checks every pair of numeric-time components of the timetable and reports false on the
// first conflict. Components without a numeric time take no part in the check. Rows of one offering are a
// single choice and are never compared with each other.
func IsTimetableValid(timetable model.Timetable) bool {
	return isTimetableValid(timetable, defaultEvaluator)
}

func isTimetableValid(timetable model.Timetable, evaluator conflictEvaluator) bool {
	//** Flatten
	placed := make([]placedComponent, 0)
	for _, selection := range timetable.Selections {
		for _, component := range selection.Components() {
			if !component.Schedule.IsNumeric() {
				continue
			}
			placed = append(placed, placedComponent{courseCode: selection.CourseCode, component: component})
		}
	}

	//** Compare pairs
	for i := range len(placed) - 1 {
		for j := i + 1; j < len(placed); j++ {
			placed1, placed2 := placed[i], placed[j]
			if sameOfferingRows(placed1, placed2) {
				continue
			}
			if evaluator.Conflict(placed1.component, placed2.component) {
				return false
			}
		}
	}
	return true
}

func sameOfferingRows(placed1, placed2 placedComponent) bool {
	return placed1.courseCode == placed2.courseCode &&
		placed1.component.Kind == placed2.component.Kind &&
		placed1.component.BaseId() == placed2.component.BaseId()
}
