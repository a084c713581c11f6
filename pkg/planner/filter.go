package planner

import (
	"slices"

	"github.com/limaJavier/timetabling/pkg/model"

	"github.com/samber/lo"
)

// An offering dropped (or substituted) because some of its cells are blocked
type blockedOffering struct {
	courseCode string
	kind       model.ComponentKind
	offering   model.Offering
	percentage float64 // Accumulated over the offering's rows
}

type filterResult struct {
	components []model.Component
	overridden bool
	chosen     *blockedOffering // Substitute used when overridden
	blocked    []blockedOffering
}

// filterByGrid keeps the offerings whose rows avoid every blocked cell. When all of them are blocked and
// fallback is enabled, the least blocked offering is returned alone and the result is marked overridden.
func filterByGrid(courseCode string, kind model.ComponentKind, components []model.Component, grid model.TimeGrid, fallback bool) filterResult {
	if len(components) == 0 {
		return filterResult{}
	}

	available := make([]model.Offering, 0)
	blocked := make([]blockedOffering, 0)
	for _, offering := range model.GroupByBaseId(components) {
		if !lo.SomeBy(offering.Components, func(component model.Component) bool {
			return model.IsComponentBlocked(component, grid)
		}) {
			available = append(available, offering)
			continue
		}

		percentage := lo.SumBy(offering.Components, func(component model.Component) float64 {
			return model.BlockedPercentage(component, grid)
		})
		blocked = append(blocked, blockedOffering{
			courseCode: courseCode,
			kind:       kind,
			offering:   offering,
			percentage: percentage,
		})
	}

	if len(available) > 0 {
		return filterResult{
			components: flattenOfferings(available),
			blocked:    blocked,
		}
	}

	if len(blocked) == 0 || !fallback {
		return filterResult{blocked: blocked}
	}

	// Every offering is blocked: substitute the least blocked one (first wins on ties)
	chosen := lo.MinBy(blocked, func(a, b blockedOffering) bool { return a.percentage < b.percentage })
	return filterResult{
		components: chosen.offering.Components,
		overridden: true,
		chosen:     &chosen,
		blocked: lo.Filter(blocked, func(candidate blockedOffering, _ int) bool {
			return candidate.offering.BaseId != chosen.offering.BaseId
		}),
	}
}

// restrictToPins keeps the components whose base id is pinned and marks them; no pins means no restriction
func restrictToPins(components []model.Component, pinned []string) []model.Component {
	if len(pinned) == 0 {
		return components
	}

	restricted := make([]model.Component, 0, len(components))
	for _, component := range components {
		if slices.Contains(pinned, component.BaseId()) {
			component.Pinned = true
			restricted = append(restricted, component)
		}
	}
	return restricted
}

// restrictToDurations keeps the components of a pinned duration; no pins means no restriction
func restrictToDurations(components []model.Component, durations []string) []model.Component {
	if len(durations) == 0 {
		return components
	}
	return lo.Filter(components, func(component model.Component, _ int) bool {
		return slices.Contains(durations, component.Schedule.Duration)
	})
}

func flattenOfferings(offerings []model.Offering) []model.Component {
	return lo.FlatMap(offerings, func(offering model.Offering, _ int) []model.Component {
		return offering.Components
	})
}
