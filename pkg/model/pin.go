package model

import (
	"errors"
	"fmt"
	"strings"
)

type PinKind string

const (
	PinDuration PinKind = "DURATION"
	PinMain     PinKind = "MAIN"
	PinLab      PinKind = "LAB"
	PinTutorial PinKind = "TUT"
	PinSeminar  PinKind = "SEM"
)

var ErrMalformedPin = errors.New("malformed pin")

// Pin is a user lock: it restricts a course to a duration code or to a specific component base id
type Pin struct {
	CourseCode string
	Kind       PinKind
	Value      string
}

func (pin Pin) String() string {
	return fmt.Sprintf("%v %v %v", pin.CourseCode, pin.Kind, pin.Value)
}

// PinKindOf maps a component kind to the pin kind that locks it
func PinKindOf(kind ComponentKind) PinKind {
	return PinKind(kind)
}

// ParsePin parses "<course> <kind> <value>", e.g. "COSC1P02 LAB 2417405"
func ParsePin(pin string) (Pin, error) {
	fields := strings.Fields(pin)
	if len(fields) != 3 {
		return Pin{}, fmt.Errorf("%w %q: expected \"<course> <kind> <value>\"", ErrMalformedPin, pin)
	}

	kind := PinKind(strings.ToUpper(fields[1]))
	switch kind {
	case PinDuration, PinMain, PinLab, PinTutorial, PinSeminar:
	default:
		return Pin{}, fmt.Errorf("%w %q: unknown kind %q", ErrMalformedPin, pin, fields[1])
	}

	value := fields[2]
	if kind != PinDuration {
		value = BaseId(value)
	}
	return Pin{CourseCode: fields[0], Kind: kind, Value: value}, nil
}

// ParsePins parses every pin, returning the valid ones together with the errors of the malformed ones
func ParsePins(pins []string) ([]Pin, []error) {
	parsed := make([]Pin, 0, len(pins))
	var errs []error
	for _, raw := range pins {
		pin, err := ParsePin(raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		parsed = append(parsed, pin)
	}
	return parsed, errs
}

// PinSet indexes pins by course and kind
type PinSet map[[2]string][]string

func NewPinSet(pins []Pin) PinSet {
	set := make(PinSet)
	for _, pin := range pins {
		key := [2]string{pin.CourseCode, string(pin.Kind)}
		set[key] = append(set[key], pin.Value)
	}
	return set
}

// Values returns the pinned values for the course and kind, nil when nothing is pinned
func (set PinSet) Values(courseCode string, kind PinKind) []string {
	return set[[2]string{courseCode, string(kind)}]
}
