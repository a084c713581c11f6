package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/limaJavier/timetabling/pkg/model"
	"github.com/limaJavier/timetabling/pkg/planner"
)

type componentOutput struct {
	Id        string `json:"id"`
	Days      string `json:"days"`
	Time      string `json:"time"`
	Duration  string `json:"duration"`
	StartDate int    `json:"startDate"`
	EndDate   int    `json:"endDate"`
	Pinned    bool   `json:"pinned,omitempty"`
}

type selectionOutput struct {
	Course   string            `json:"course"`
	Main     []componentOutput `json:"main"`
	Lab      []componentOutput `json:"lab,omitempty"`
	Tutorial []componentOutput `json:"tutorial,omitempty"`
	Seminar  []componentOutput `json:"seminar,omitempty"`
}

type generationOutput struct {
	RunId                 string              `json:"runId"`
	Timetables            [][]selectionOutput `json:"timetables"`
	Truncated             bool                `json:"truncated"`
	Overridden            bool                `json:"overridden"`
	Relaxed               bool                `json:"relaxed"`
	NoResultFound         bool                `json:"noResultFound"`
	Infeasible            bool                `json:"infeasible"`
	CombinationsProcessed int                 `json:"combinationsProcessed"`
	DurationMs            int64               `json:"durationMs"`
}

func newGenerateCmd(app *app, exitCode *int) *cobra.Command {
	var filePath, outFilePath string
	var limit int

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate every conflict-free timetable for the courses of an input file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if filePath == "" {
				return fmt.Errorf("an input file must be specified")
			}

			sortMode, err := planner.ParseSortMode(app.cfg.Planner.SortMode)
			if err != nil {
				return err
			}

			// Extract input
			input, err := model.InputFromJson(filePath)
			if err != nil {
				return fmt.Errorf("cannot parse input file: %w", err)
			}

			// Initialize engines
			metrics := planner.NewMetrics()
			engine := planner.NewPlanner(
				input.Catalog,
				planner.StaticPins(input.Pins),
				planner.StaticGrid(input.Grid),
				planner.WithLogger(app.logger),
				planner.WithObserver(planner.NewLogObserver(app.logger)),
				planner.WithMetrics(metrics),
				planner.WithMaxCombinations(app.cfg.Planner.MaxCombinations),
				planner.WithFallback(app.cfg.Planner.Fallback),
				planner.WithRelaxation(app.cfg.Planner.Relaxation),
			)

			// Build timetables
			result, err := engine.Generate(sortMode)
			if err != nil {
				return fmt.Errorf("an error occurred during timetable generation: %w", err)
			}

			if file := app.cfg.Metrics.File; file != "" {
				if err := metrics.WriteToTextfile(file); err != nil {
					app.logger.Warn("cannot write metrics file", zap.String("file", file), zap.Error(err))
				}
			}

			output := buildGenerationOutput(result, limit)
			outputJson, err := json.MarshalIndent(output, "", "  ")
			if err != nil {
				return fmt.Errorf("an error occurred while building output json: %w", err)
			}

			// Verify outfile is empty, if so then write the results to the Standard Output
			if outFilePath == "" {
				fmt.Println(string(outputJson))
			} else if err := os.WriteFile(outFilePath, outputJson, 0666); err != nil {
				return fmt.Errorf("an error occurred while writing to the output file: %w", err)
			}

			if result.Sentinel() || result.NoResultFound {
				*exitCode = exitNotFound
			} else {
				*exitCode = exitFound
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&filePath, "file", "", "Path to the input file")
	cmd.Flags().StringVar(&outFilePath, "out", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of timetables written to the output; 0 writes all of them")
	cmd.Flags().String("sort", "default", "Sort mode: \"default\", \"sortByWaitingTime\" or \"minimizeClassDays\"")
	cmd.Flags().Int("max-combinations", planner.DefaultMaxCombinations, "Maximum number of candidate timetables enumerated")
	cmd.Flags().Bool("fallback", true, "Use the least blocked option when every option of a category is blocked")
	cmd.Flags().Bool("relaxation", true, "Release blocked cells when no valid timetable exists")
	_ = app.v.BindPFlag("planner.sort_mode", cmd.Flags().Lookup("sort"))
	_ = app.v.BindPFlag("planner.max_combinations", cmd.Flags().Lookup("max-combinations"))
	_ = app.v.BindPFlag("planner.fallback", cmd.Flags().Lookup("fallback"))
	_ = app.v.BindPFlag("planner.relaxation", cmd.Flags().Lookup("relaxation"))

	return cmd
}

func buildGenerationOutput(result planner.GenerationResult, limit int) generationOutput {
	timetables := result.Timetables
	if result.Sentinel() {
		timetables = nil
	}
	if limit > 0 && len(timetables) > limit {
		timetables = timetables[:limit]
	}

	return generationOutput{
		RunId: result.Performance.RunId.String(),
		Timetables: lo.Map(timetables, func(timetable model.Timetable, _ int) []selectionOutput {
			return lo.Map(timetable.Selections, func(selection model.CourseSelection, _ int) selectionOutput {
				return selectionOutput{
					Course:   selection.CourseCode,
					Main:     componentsOutput(selection.MainComponents),
					Lab:      componentsOutput(selection.Secondary.Lab),
					Tutorial: componentsOutput(selection.Secondary.Tutorial),
					Seminar:  componentsOutput(selection.Secondary.Seminar),
				}
			})
		}),
		Truncated:             result.Truncated,
		Overridden:            result.Overridden,
		Relaxed:               result.Relaxed,
		NoResultFound:         result.NoResultFound,
		Infeasible:            result.Sentinel(),
		CombinationsProcessed: result.Performance.CombinationsProcessed,
		DurationMs:            result.Performance.Duration().Milliseconds(),
	}
}

func componentsOutput(components []model.Component) []componentOutput {
	if len(components) == 0 {
		return nil
	}
	return lo.Map(components, func(component model.Component, _ int) componentOutput {
		return componentOutput{
			Id:        component.Id,
			Days:      component.Schedule.Days,
			Time:      component.Schedule.Time,
			Duration:  component.Schedule.Duration,
			StartDate: component.Schedule.StartDate,
			EndDate:   component.Schedule.EndDate,
			Pinned:    component.Pinned,
		}
	})
}
