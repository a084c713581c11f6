package model

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

type RawComponent struct {
	Id        string `mapstructure:"id"`
	Type      string `mapstructure:"type"`
	Days      string `mapstructure:"days"`
	Time      string `mapstructure:"time"`
	Duration  string `mapstructure:"duration"`
	StartDate int    `mapstructure:"startDate"`
	EndDate   int    `mapstructure:"endDate"`
}

type RawCourse struct {
	Code       string         `mapstructure:"code"`
	Components []RawComponent `mapstructure:"components"`
}

type RawSelection struct {
	Course     string         `mapstructure:"course"`
	Components []RawComponent `mapstructure:"components"`
}

type RawPlannerInput struct {
	Courses   []RawCourse    `mapstructure:"courses"`
	Selected  []string       `mapstructure:"selected"` // Course codes to plan; every course when empty
	Pins      []string       `mapstructure:"pins"`
	Grid      map[string]any `mapstructure:"grid"`
	Timetable []RawSelection `mapstructure:"timetable"` // Only read by validation
}

// PlannerInput is the snapshot a generation runs against
type PlannerInput struct {
	Catalog   Catalog
	Pins      []string
	Grid      TimeGrid
	Timetable Timetable
}

func InputFromJson(file string) (PlannerInput, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return PlannerInput{}, fmt.Errorf("cannot read input file: %w", err)
	}

	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return PlannerInput{}, fmt.Errorf("cannot parse input file: %w", err)
	}

	var rawInput RawPlannerInput
	if err := decode(inputJson, &rawInput); err != nil {
		return PlannerInput{}, fmt.Errorf("cannot decode input file: %w", err)
	}
	return ProcessRawInput(rawInput)
}

func ProcessRawInput(rawInput RawPlannerInput) (PlannerInput, error) {
	//** Manage courses
	courses := make([]Course, 0, len(rawInput.Courses))
	for _, rawCourse := range rawInput.Courses {
		course, err := processRawCourse(rawCourse)
		if err != nil {
			return PlannerInput{}, err
		}
		courses = append(courses, course)
	}

	// Restrict to the selected courses, keeping the selection order
	if len(rawInput.Selected) > 0 {
		byCode := lo.KeyBy(courses, func(course Course) string { return course.Code })
		selected := make([]Course, 0, len(rawInput.Selected))
		for _, code := range rawInput.Selected {
			course, ok := byCode[code]
			if !ok {
				return PlannerInput{}, fmt.Errorf("selected course %q is not in the catalog", code)
			}
			selected = append(selected, course)
		}
		courses = selected
	}

	catalog, err := NewCatalog(courses...)
	if err != nil {
		return PlannerInput{}, err
	}

	//** Manage grid
	grid, err := GridFromMap(rawInput.Grid)
	if err != nil {
		return PlannerInput{}, err
	}

	//** Manage timetable
	timetable := Timetable{}
	for _, rawSelection := range rawInput.Timetable {
		components, err := processRawComponents(rawSelection.Course, rawSelection.Components)
		if err != nil {
			return PlannerInput{}, err
		}
		selection := CourseSelection{CourseCode: rawSelection.Course}
		for _, component := range components {
			switch component.Kind {
			case Main:
				selection.MainComponents = append(selection.MainComponents, component)
			case Lab:
				selection.Secondary.Lab = append(selection.Secondary.Lab, component)
			case Tutorial:
				selection.Secondary.Tutorial = append(selection.Secondary.Tutorial, component)
			case Seminar:
				selection.Secondary.Seminar = append(selection.Secondary.Seminar, component)
			}
		}
		timetable.Selections = append(timetable.Selections, selection)
	}

	return PlannerInput{
		Catalog:   catalog,
		Pins:      rawInput.Pins,
		Grid:      grid,
		Timetable: timetable,
	}, nil
}

func processRawCourse(rawCourse RawCourse) (Course, error) {
	code := strings.TrimSpace(rawCourse.Code)
	if code == "" {
		return Course{}, fmt.Errorf("course without code")
	}

	components, err := processRawComponents(code, rawCourse.Components)
	if err != nil {
		return Course{}, err
	}

	byKind := lo.GroupBy(components, func(component Component) ComponentKind { return component.Kind })
	return Course{
		Code:      code,
		Mains:     byKind[Main],
		Labs:      byKind[Lab],
		Tutorials: byKind[Tutorial],
		Seminars:  byKind[Seminar],
	}, nil
}

func processRawComponents(code string, rawComponents []RawComponent) ([]Component, error) {
	components := make([]Component, 0, len(rawComponents))
	seen := make(map[string]bool)
	for _, rawComponent := range rawComponents {
		kind, err := ParseComponentKind(rawComponent.Type)
		if err != nil {
			return nil, fmt.Errorf("course %q, component %q: %w", code, rawComponent.Id, err)
		}

		// Rows may share a base id, but every row must be distinguishable
		if seen[rawComponent.Id] {
			return nil, fmt.Errorf("course %q: duplicate component id %q", code, rawComponent.Id)
		}
		seen[rawComponent.Id] = true

		components = append(components, Component{
			Id:   rawComponent.Id,
			Kind: kind,
			Schedule: ScheduleBlock{
				Days:      rawComponent.Days,
				Time:      rawComponent.Time,
				Duration:  rawComponent.Duration,
				StartDate: rawComponent.StartDate,
				EndDate:   rawComponent.EndDate,
			},
		})
	}
	return components, nil
}

// GridFromMap builds a grid from weekday entries that are either lists of blocked "HHMM-HHMM" ranges or
// rows of SlotsPerDay booleans
func GridFromMap(rawGrid map[string]any) (TimeGrid, error) {
	grid := NewTimeGrid()
	for day, rawSlots := range rawGrid {
		day = strings.ToUpper(day)
		if !lo.Contains(Weekdays, day) {
			return nil, fmt.Errorf("grid: unknown weekday %q", day)
		}

		var values []any
		if err := decode(rawSlots, &values); err != nil {
			return nil, fmt.Errorf("grid: weekday %q: %w", day, err)
		}

		for index, value := range values {
			switch value := value.(type) {
			case bool:
				if index >= SlotsPerDay {
					return nil, fmt.Errorf("grid: weekday %q has more than %d slots", day, SlotsPerDay)
				}
				grid[day][index] = value
			case string:
				block := ScheduleBlock{Time: value}
				start, end, ok := block.Footprint()
				if !ok {
					return nil, fmt.Errorf("grid: weekday %q: invalid range %q", day, value)
				}
				grid.Block(day, start, end-1)
			default:
				return nil, fmt.Errorf("grid: weekday %q: unsupported entry %v", day, value)
			}
		}
	}
	return grid, nil
}

func decode(input any, output any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           output,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}
