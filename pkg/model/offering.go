package model

import (
	"strings"

	"github.com/samber/lo"
)

// Separators that introduce a per-row disambiguation suffix in component ids
const baseIdSeparators = "-_"

// Position of the character compared by SameOffering
const offeringCharacter = 3

// Offering is an atomic choice: all the rows sharing a base id
type Offering struct {
	BaseId     string
	Components []Component
}

// Duration code of the offering, taken from its first row
func (offering Offering) Duration() string {
	if len(offering.Components) == 0 {
		return ""
	}
	return offering.Components[0].Schedule.Duration
}

// BaseId strips the disambiguation suffix from a component id ("2417405-1" -> "2417405")
func BaseId(id string) string {
	if index := strings.IndexAny(id, baseIdSeparators); index >= 0 {
		return id[:index]
	}
	return id
}

// GroupByBaseId groups components into offerings, keeping the order in which base ids first appear
func GroupByBaseId(components []Component) []Offering {
	order := lo.Uniq(lo.Map(components, func(component Component, _ int) string { return component.BaseId() }))
	grouped := lo.GroupBy(components, func(component Component) string { return component.BaseId() })

	return lo.Map(order, func(baseId string, _ int) Offering {
		return Offering{BaseId: baseId, Components: grouped[baseId]}
	})
}

// SameOffering reports whether a secondary component plausibly belongs to the same rotation as a main
// offering. Catalog ids encode the rotation in their 4th character (the last one for shorter ids).
func SameOffering(idA, idB string) bool {
	a, okA := offeringKey(BaseId(idA))
	b, okB := offeringKey(BaseId(idB))
	return okA && okB && a == b
}

func offeringKey(id string) (byte, bool) {
	if len(id) == 0 {
		return 0, false
	}
	if len(id) > offeringCharacter {
		return id[offeringCharacter], true
	}
	return id[len(id)-1], true
}
