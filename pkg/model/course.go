package model

import (
	"fmt"
	"strings"
)

type ComponentKind string

const (
	Main     ComponentKind = "MAIN"
	Lab      ComponentKind = "LAB"
	Tutorial ComponentKind = "TUT"
	Seminar  ComponentKind = "SEM"
)

// Secondary kinds in the order they are combined
var SecondaryKinds = []ComponentKind{Lab, Tutorial, Seminar}

func ParseComponentKind(kind string) (ComponentKind, error) {
	switch ComponentKind(strings.ToUpper(strings.TrimSpace(kind))) {
	case Main, "LEC", "LECTURE":
		return Main, nil
	case Lab, "LABORATORY":
		return Lab, nil
	case Tutorial, "TUTORIAL":
		return Tutorial, nil
	case Seminar, "SEMINAR":
		return Seminar, nil
	}
	return "", fmt.Errorf("unknown component kind %q", kind)
}

type Component struct {
	Id       string
	Kind     ComponentKind
	Schedule ScheduleBlock
	Pinned   bool // Set when a pin restricted the component's category to this component
}

func (component Component) BaseId() string {
	return BaseId(component.Id)
}

type Course struct {
	Code      string
	Mains     []Component
	Labs      []Component
	Tutorials []Component
	Seminars  []Component
}

// Returns the raw components of the given kind
func (course Course) Components(kind ComponentKind) []Component {
	switch kind {
	case Main:
		return course.Mains
	case Lab:
		return course.Labs
	case Tutorial:
		return course.Tutorials
	case Seminar:
		return course.Seminars
	}
	return nil
}

// Catalog is an ordered, read-only collection of courses keyed by course code
type Catalog struct {
	codes   []string
	courses map[string]Course
}

func NewCatalog(courses ...Course) (Catalog, error) {
	catalog := Catalog{
		codes:   make([]string, 0, len(courses)),
		courses: make(map[string]Course, len(courses)),
	}

	for _, course := range courses {
		if _, ok := catalog.courses[course.Code]; ok {
			return Catalog{}, fmt.Errorf("duplicate course code %q", course.Code)
		}
		catalog.codes = append(catalog.codes, course.Code)
		catalog.courses[course.Code] = course
	}
	return catalog, nil
}

func (catalog Catalog) CourseCodes() []string {
	codes := make([]string, len(catalog.codes))
	copy(codes, catalog.codes)
	return codes
}

func (catalog Catalog) Course(code string) (Course, bool) {
	course, ok := catalog.courses[code]
	return course, ok
}

func (catalog Catalog) Len() int {
	return len(catalog.codes)
}
