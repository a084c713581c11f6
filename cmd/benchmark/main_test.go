package main

import (
	"testing"

	"github.com/limaJavier/timetabling/pkg/model"
	"github.com/limaJavier/timetabling/pkg/planner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordMatchesHeader(t *testing.T) {
	result := BenchmarkResult{
		Test:            TestMetadata{Name: "small.json", Courses: 2, Components: 5, Pins: 1},
		SortMode:        planner.SortByWaitingTime,
		MaxCombinations: 1000,
		Duration:        42,
		Combinations:    6,
		Timetables:      4,
		Truncated:       true,
		Result:          noResult,
	}

	row := record(result)

	assert.Len(t, row, len(header()))
	assert.Equal(t, []string{"small.json", "2", "5", "1", "sortByWaitingTime", "1000", "42", "6", "4", "true", "false", "false", "no-result"}, row)
}

func TestMeasureSmallCatalog(t *testing.T) {
	//** Arrange
	input, err := model.InputFromJson(catalogsDirectory + "two_courses.json")
	require.NoError(t, err)
	test := describe("two_courses.json", input)

	//** Act
	result := measure(test, input, planner.SortDefault, planner.DefaultMaxCombinations)

	//** Assert
	assert.Equal(t, 2, result.Test.Courses)
	assert.Equal(t, found, result.Result)
	assert.Positive(t, result.Timetables)
	assert.False(t, result.Truncated)
}
