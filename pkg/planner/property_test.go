package planner

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/limaJavier/timetabling/pkg/model"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var propertyDays = []string{"M", "T", "W", "R", "F", "M W", "T R"}

// randomCatalog builds courses whose sections land on a small set of days and hours so that conflicts,
// blocked sections and date windows all show up
func randomCatalog(t *testing.T, random *rand.Rand) model.Catalog {
	courses := make([]model.Course, 0)
	for course := range random.Intn(4) + 1 {
		code := fmt.Sprintf("RAND%d", course)
		components := make([]model.Component, 0)
		for section := range random.Intn(3) + 1 {
			hour := 8 + random.Intn(6)
			id := fmt.Sprintf("%d%d%d%d", course+1, course+1, course+1, section+1)
			main := newComponent(id, model.Main, propertyDays[random.Intn(len(propertyDays))], fmt.Sprintf("%02d00-%02d50", hour, hour))
			if random.Intn(3) == 0 {
				main = withDates(main, "D2", 31, 60)
			}
			components = append(components, main)

			if random.Intn(2) == 0 {
				lab := newComponent(id+"5", model.Lab, "F", fmt.Sprintf("%02d00-%02d50", hour+4, hour+4))
				components = append(components, lab)
			}
		}
		courses = append(courses, newCourse(code, components...))
	}
	return newTestCatalog(t, courses...)
}

func randomGrid(random *rand.Rand) model.TimeGrid {
	grid := model.NewTimeGrid()
	for range random.Intn(4) {
		start := random.Intn(model.SlotsPerDay)
		grid.Block(model.Weekdays[random.Intn(5)], start, start+random.Intn(4))
	}
	return grid
}

func TestGenerateProperties(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	evaluator := newConflictEvaluator()

	for iteration := range 200 {
		//** Arrange
		catalog := randomCatalog(t, random)
		grid := randomGrid(random)
		maxCombinations := random.Intn(20) + 1
		relaxation := random.Intn(2) == 0
		planner := newTestPlanner(t, catalog, nil, grid, WithMaxCombinations(maxCombinations), WithRelaxation(relaxation))

		//** Act
		result, err := planner.Generate(SortModes[random.Intn(len(SortModes))])
		require.NoError(t, err)

		//** Assert
		assert.LessOrEqual(t, result.Performance.CombinationsProcessed, maxCombinations, "iteration %d relaxation %v", iteration, relaxation)
		if result.Sentinel() {
			continue
		}
		for _, timetable := range result.Timetables {
			require.Len(t, timetable.Selections, catalog.Len(), "iteration %d", iteration)
			for index, code := range catalog.CourseCodes() {
				assert.Equal(t, code, timetable.Selections[index].CourseCode)
			}

			components := lo.Filter(timetable.Components(), func(component model.Component, _ int) bool {
				return component.Schedule.IsNumeric()
			})
			for i := range components {
				for j := i + 1; j < len(components); j++ {
					if components[i].BaseId() == components[j].BaseId() {
						continue
					}
					assert.False(t, evaluator.Conflict(components[i], components[j]), "iteration %d", iteration)
				}
			}
		}
	}
}
