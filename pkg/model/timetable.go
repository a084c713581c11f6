package model

import "github.com/samber/lo"

// SecondaryComponents holds the chosen lab, tutorial and seminar offerings; nil when the course has none
type SecondaryComponents struct {
	Lab      []Component
	Tutorial []Component
	Seminar  []Component
}

func (secondary SecondaryComponents) Of(kind ComponentKind) []Component {
	switch kind {
	case Lab:
		return secondary.Lab
	case Tutorial:
		return secondary.Tutorial
	case Seminar:
		return secondary.Seminar
	}
	return nil
}

// CourseSelection is one internally consistent choice of offerings for a course
type CourseSelection struct {
	CourseCode     string
	MainComponents []Component
	Secondary      SecondaryComponents
}

func (selection CourseSelection) Components() []Component {
	return lo.Flatten([][]Component{
		selection.MainComponents,
		selection.Secondary.Lab,
		selection.Secondary.Tutorial,
		selection.Secondary.Seminar,
	})
}

// Timetable holds one selection per requested course. A timetable without selections is the sentinel
// produced when some course cannot be satisfied on its own.
type Timetable struct {
	Selections []CourseSelection
}

func (timetable Timetable) IsSentinel() bool {
	return len(timetable.Selections) == 0
}

func (timetable Timetable) Components() []Component {
	return lo.FlatMap(timetable.Selections, func(selection CourseSelection, _ int) []Component {
		return selection.Components()
	})
}

// Selection returns the selection made for the course
func (timetable Timetable) Selection(courseCode string) (CourseSelection, bool) {
	return lo.Find(timetable.Selections, func(selection CourseSelection) bool {
		return selection.CourseCode == courseCode
	})
}
