package main

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/limaJavier/timetabling/pkg/model"
	"github.com/limaJavier/timetabling/pkg/planner"
)

const exitInvalid = 15

func newValidateCmd(app *app, exitCode *int) *cobra.Command {
	var filePath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that the timetable of an input file has no conflicting classes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if filePath == "" {
				return fmt.Errorf("an input file must be specified")
			}

			input, err := model.InputFromJson(filePath)
			if err != nil {
				return fmt.Errorf("cannot parse input file: %w", err)
			}
			if input.Timetable.IsSentinel() {
				return fmt.Errorf("the input file has no timetable section")
			}

			if err := checkSelections(input.Catalog, input.Timetable); err != nil {
				app.logger.Error("timetable does not match the catalog", zap.Error(err))
				*exitCode = exitInvalid
				fmt.Println("invalid")
				return nil
			}

			if !planner.IsTimetableValid(input.Timetable) {
				*exitCode = exitInvalid
				fmt.Println("invalid")
				return nil
			}

			*exitCode = exitFound
			fmt.Println("valid")
			return nil
		},
	}

	cmd.Flags().StringVar(&filePath, "file", "", "Path to the input file")
	return cmd
}

// checkSelections makes sure every planned course is selected exactly once and only with components the
// catalog offers for it
func checkSelections(catalog model.Catalog, timetable model.Timetable) error {
	counts := lo.CountValuesBy(timetable.Selections, func(selection model.CourseSelection) string {
		return selection.CourseCode
	})
	for _, code := range catalog.CourseCodes() {
		if counts[code] != 1 {
			return fmt.Errorf("course %s is selected %d times", code, counts[code])
		}

		course, _ := catalog.Course(code)
		selection, _ := timetable.Selection(code)
		for _, component := range selection.Components() {
			offered := lo.ContainsBy(course.Components(component.Kind), func(candidate model.Component) bool {
				return candidate.Id == component.Id
			})
			if !offered {
				return fmt.Errorf("course %s has no %s component %s", code, component.Kind, component.Id)
			}
		}
	}
	return nil
}
