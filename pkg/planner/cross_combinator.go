package planner

import (
	"github.com/limaJavier/timetabling/pkg/model"

	"github.com/samber/lo"
)

// crossCombine enumerates every candidate timetable made of one selection per course and hands each one
// to visit. Enumeration stops once the generation has processed as many combinations as the threshold
// allows, counting earlier passes. Returns false when some course has no selection at all, in which case
// nothing is enumerated.
func (generation *generation) crossCombine(perCourse [][]model.CourseSelection, visit func(timetable model.Timetable)) bool {
	if lo.SomeBy(perCourse, func(selections []model.CourseSelection) bool { return len(selections) == 0 }) {
		return false
	}

	radices := lo.Map(perCourse, func(selections []model.CourseSelection, _ int) int { return len(selections) })
	budget := max(generation.maxCombinations-generation.processed, 0)
	processed, truncated := enumerate(radices, budget, func(choices []int) bool {
		timetable := model.Timetable{Selections: make([]model.CourseSelection, len(choices))}
		for course, choice := range choices {
			timetable.Selections[course] = perCourse[course][choice]
		}
		visit(timetable)
		return true
	})

	generation.processed += processed
	if truncated {
		generation.markTruncated(generation.processed)
	}
	return true
}
