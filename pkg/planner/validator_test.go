package planner

import (
	"testing"

	"github.com/limaJavier/timetabling/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timetableOf(components ...model.Component) model.Timetable {
	timetable := model.Timetable{}
	for index, component := range components {
		timetable.Selections = append(timetable.Selections, model.CourseSelection{
			CourseCode:     string(rune('A' + index)),
			MainComponents: []model.Component{component},
		})
	}
	return timetable
}

func TestConflictEvaluator(t *testing.T) {
	evaluator := newConflictEvaluator()
	monday := newComponent("1", model.Main, "M W", "0800-0920")

	assert.True(t, evaluator.DaysIntersect(monday, newComponent("2", model.Main, "W F", "0800-0920")))
	assert.False(t, evaluator.DaysIntersect(monday, newComponent("2", model.Main, "T R", "0800-0920")))
	assert.True(t, evaluator.SlotsOverlap(monday, newComponent("2", model.Main, "T", "0830-1020")))
	assert.False(t, evaluator.SlotsOverlap(monday, newComponent("2", model.Main, "T", "0930-1050")))
	assert.False(t, evaluator.SlotsOverlap(monday, newComponent("2", model.Main, "T", "ONLINE")))
	assert.True(t, evaluator.DatesOverlap(monday, withDates(newComponent("2", model.Main, "M", "0800-0920"), "D2", 60, 90)))
	assert.False(t, evaluator.DatesOverlap(monday, withDates(newComponent("2", model.Main, "M", "0800-0920"), "D2", 61, 90)))
}

func TestIsTimetableValid(t *testing.T) {
	scenarios := []struct {
		name      string
		timetable model.Timetable
		valid     bool
	}{
		{
			name: "Same slots on the same day",
			timetable: timetableOf(
				newComponent("1", model.Main, "T R", "1100-1220"),
				newComponent("2", model.Main, "R", "1100-1220"),
			),
			valid: false,
		},
		{
			name: "Disjoint date windows",
			timetable: timetableOf(
				withDates(newComponent("1", model.Main, "M W", "0800-0920"), "D3", 1, 30),
				withDates(newComponent("2", model.Main, "M W", "0800-0920"), "D4", 31, 60),
			),
			valid: true,
		},
		{
			name: "Back to back",
			timetable: timetableOf(
				newComponent("1", model.Main, "M", "0800-0920"),
				newComponent("2", model.Main, "M", "0930-1050"),
			),
			valid: true,
		},
		{
			name: "Different days",
			timetable: timetableOf(
				newComponent("1", model.Main, "M W", "0800-0920"),
				newComponent("2", model.Main, "T R", "0800-0920"),
			),
			valid: true,
		},
		{
			name: "Non-numeric times are ignored",
			timetable: timetableOf(
				newComponent("1", model.Main, "M W", "0800-0920"),
				newComponent("2", model.Main, "M W", "TBA"),
			),
			valid: true,
		},
		{
			name:      "Sentinel",
			timetable: model.Timetable{},
			valid:     true,
		},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			assert.Equal(t, scenario.valid, IsTimetableValid(scenario.timetable))
		})
	}
}

func TestRowsOfOneOfferingAreNotCompared(t *testing.T) {
	timetable := model.Timetable{Selections: []model.CourseSelection{{
		CourseCode: "COSC1P02",
		MainComponents: []model.Component{
			newComponent("2417401-1", model.Main, "M", "0800-0920"),
			newComponent("2417401-2", model.Main, "M", "0800-0920"),
		},
	}}}

	assert.True(t, IsTimetableValid(timetable))
}

func TestIsTimetableValidFromFiles(t *testing.T) {
	scenarios := map[string]bool{
		"valid.json":       true,
		"conflicting.json": false,
	}

	for file, valid := range scenarios {
		//** Arrange
		input, err := model.InputFromJson(timetablesDirectory + file)
		require.NoError(t, err)

		//** Act
		result := IsTimetableValid(input.Timetable)

		//** Assert
		assert.Equal(t, valid, result, file)
	}
}
