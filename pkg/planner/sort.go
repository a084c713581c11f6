package planner

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/limaJavier/timetabling/pkg/model"

	"github.com/samber/lo"
)

type SortMode string

const (
	SortDefault           SortMode = "default"
	SortByWaitingTime     SortMode = "sortByWaitingTime"
	SortMinimizeClassDays SortMode = "minimizeClassDays"
)

var SortModes = []SortMode{SortDefault, SortByWaitingTime, SortMinimizeClassDays}

func ParseSortMode(mode string) (SortMode, error) {
	if mode == "" {
		return SortDefault, nil
	}
	if sortMode, ok := lo.Find(SortModes, func(sortMode SortMode) bool { return string(sortMode) == mode }); ok {
		return sortMode, nil
	}
	return "", fmt.Errorf("unknown sort mode %q, allowed values are %v", mode, SortModes)
}

// sortTimetables orders the timetables in place. Equal keys keep their generation order.
func sortTimetables(timetables []model.Timetable, mode SortMode) {
	switch mode {
	case SortByWaitingTime:
		type key struct{ waiting, days int }
		keys := lo.Map(timetables, func(timetable model.Timetable, _ int) key {
			return key{waiting: WaitingTime(timetable), days: ClassDays(timetable)}
		})
		sortByKeys(timetables, keys, func(a, b key) int {
			if a.waiting != b.waiting {
				return cmp.Compare(a.waiting, b.waiting)
			}
			return cmp.Compare(a.days, b.days)
		})
	case SortMinimizeClassDays:
		keys := lo.Map(timetables, func(timetable model.Timetable, _ int) int { return ClassDays(timetable) })
		sortByKeys(timetables, keys, cmp.Compare[int])
	}
}

// Sorts the timetables by precomputed keys so each key is computed once
func sortByKeys[K any](timetables []model.Timetable, keys []K, compare func(a, b K) int) {
	order := lo.Range(len(timetables))
	slices.SortStableFunc(order, func(a, b int) int { return compare(keys[a], keys[b]) })

	sorted := lo.Map(order, func(index int, _ int) model.Timetable { return timetables[index] })
	copy(timetables, sorted)
}

// WaitingTime returns the total idle minutes between consecutive classes of the same weekday
func WaitingTime(timetable model.Timetable) int {
	perDay := make(map[string][][2]int)
	for _, component := range timetable.Components() {
		start, end, ok := component.Schedule.MinuteRange()
		if !ok {
			continue
		}
		for _, day := range component.Schedule.Weekdays() {
			perDay[day] = append(perDay[day], [2]int{start, end})
		}
	}

	waiting := 0
	for _, intervals := range perDay {
		slices.SortFunc(intervals, func(a, b [2]int) int { return cmp.Compare(a[0], b[0]) })

		latestEnd := intervals[0][1]
		for _, interval := range intervals[1:] {
			if interval[0] > latestEnd {
				waiting += interval[0] - latestEnd
			}
			latestEnd = max(latestEnd, interval[1])
		}
	}
	return waiting
}

// ClassDays returns how many distinct weekdays have at least one numeric-time class
func ClassDays(timetable model.Timetable) int {
	days := make(map[string]bool)
	for _, component := range timetable.Components() {
		if !component.Schedule.IsNumeric() {
			continue
		}
		for _, day := range component.Schedule.Weekdays() {
			days[day] = true
		}
	}
	return len(days)
}
