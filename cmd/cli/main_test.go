package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/limaJavier/timetabling/pkg/model"
	"github.com/limaJavier/timetabling/pkg/planner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDirectory = "../../test/"

func execute(t *testing.T, args ...string) (int, error) {
	t.Helper()
	exitCode := 0
	root := newRootCmd(&exitCode)
	root.SetArgs(append(args, "--log-level", "error"))
	err := root.Execute()
	return exitCode, err
}

func TestGenerateCommand(t *testing.T) {
	//** Arrange
	outFile := filepath.Join(t.TempDir(), "out.json")

	//** Act
	exitCode, err := execute(t, "generate", "--file", testDirectory+"catalogs/two_courses.json", "--out", outFile, "--sort", "minimizeClassDays")

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, exitFound, exitCode)

	content, err := os.ReadFile(outFile)
	require.NoError(t, err)
	var output generationOutput
	require.NoError(t, json.Unmarshal(content, &output))
	assert.Len(t, output.Timetables, 3)
	assert.Equal(t, 4, output.CombinationsProcessed)
	assert.False(t, output.Infeasible)
}

func TestGenerateCommandRequiresFile(t *testing.T) {
	_, err := execute(t, "generate")

	assert.Error(t, err)
}

func TestGenerateCommandRejectsUnknownSort(t *testing.T) {
	_, err := execute(t, "generate", "--file", testDirectory+"catalogs/two_courses.json", "--sort", "random")

	assert.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	scenarios := map[string]int{
		"timetables/valid.json":       exitFound,
		"timetables/conflicting.json": exitInvalid,
	}

	for file, expected := range scenarios {
		exitCode, err := execute(t, "validate", "--file", testDirectory+file)

		require.NoError(t, err, file)
		assert.Equal(t, expected, exitCode, file)
	}
}

func TestValidateCommandRejectsComponentsOutsideTheCatalog(t *testing.T) {
	//** Arrange
	content, err := os.ReadFile(testDirectory + "timetables/valid.json")
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(content, &raw))
	selection := raw["timetable"].([]any)[1].(map[string]any)
	selection["components"].([]any)[0].(map[string]any)["id"] = "1900199"

	file := filepath.Join(t.TempDir(), "unknown_component.json")
	content, err = json.Marshal(raw)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(file, content, 0o644))

	//** Act
	exitCode, err := execute(t, "validate", "--file", file)

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, exitInvalid, exitCode)
}

func TestCheckSelections(t *testing.T) {
	input, err := model.InputFromJson(testDirectory + "timetables/valid.json")
	require.NoError(t, err)

	assert.NoError(t, checkSelections(input.Catalog, input.Timetable))

	missing := model.Timetable{Selections: input.Timetable.Selections[:1]}
	assert.ErrorContains(t, checkSelections(input.Catalog, missing), "MATH1P66 is selected 0 times")

	twice := model.Timetable{Selections: append(input.Timetable.Selections, input.Timetable.Selections[0])}
	assert.ErrorContains(t, checkSelections(input.Catalog, twice), "COSC1P02 is selected 2 times")
}

func TestValidateCommandWithoutTimetable(t *testing.T) {
	_, err := execute(t, "validate", "--file", testDirectory+"catalogs/two_courses.json")

	assert.Error(t, err)
}

func TestBuildGenerationOutput(t *testing.T) {
	component := model.Component{
		Id:       "2417401",
		Kind:     model.Main,
		Schedule: model.ScheduleBlock{Days: "M W", Time: "0800-0920", Duration: "D2", StartDate: 1, EndDate: 60},
		Pinned:   true,
	}
	timetable := model.Timetable{Selections: []model.CourseSelection{{CourseCode: "COSC1P02", MainComponents: []model.Component{component}}}}

	t.Run("Limit", func(t *testing.T) {
		output := buildGenerationOutput(planner.GenerationResult{Timetables: []model.Timetable{timetable, timetable, timetable}}, 2)

		require.Len(t, output.Timetables, 2)
		selection := output.Timetables[0][0]
		assert.Equal(t, "COSC1P02", selection.Course)
		assert.Equal(t, "2417401", selection.Main[0].Id)
		assert.True(t, selection.Main[0].Pinned)
		assert.Nil(t, selection.Lab)
	})

	t.Run("Sentinel", func(t *testing.T) {
		output := buildGenerationOutput(planner.GenerationResult{Timetables: []model.Timetable{{}}}, 0)

		assert.True(t, output.Infeasible)
		assert.Empty(t, output.Timetables)
	})
}
