package planner

import (
	"github.com/limaJavier/timetabling/pkg/model"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// courseSelections builds every (main, lab, tutorial, seminar) choice for one course that survives the
// grid and the pins. The selections are not validated against each other yet. An empty result means the
// course cannot be satisfied on its own.
func (generation *generation) courseSelections(course model.Course) []model.CourseSelection {
	durations := generation.pins.Values(course.Code, model.PinDuration)

	//** Mains
	mainResult := generation.filter(course.Code, model.Main, restrictToDurations(course.Mains, durations))
	mains := restrictToPins(mainResult.components, generation.pins.Values(course.Code, model.PinMain))
	mainOfferings := model.GroupByBaseId(mains)
	if len(mainOfferings) == 0 {
		generation.logger.Debug("course has no feasible main offering", zap.String("course", course.Code))
		return nil
	}

	// The rotation heuristic only discriminates between several main offerings
	singleMain := len(model.GroupByBaseId(course.Mains)) == 1

	//** Secondaries
	secondaries := make(map[model.ComponentKind][]model.Component, len(model.SecondaryKinds))
	for _, kind := range model.SecondaryKinds {
		result := generation.filter(course.Code, kind, restrictToDurations(course.Components(kind), durations))
		secondaries[kind] = restrictToPins(result.components, generation.pins.Values(course.Code, model.PinKindOf(kind)))
	}

	//** Combine
	selections := make([]model.CourseSelection, 0)
	for _, main := range mainOfferings {
		options, feasible := generation.secondaryOptions(course, main, secondaries, singleMain)
		if !feasible {
			generation.logger.Debug("main offering has no matching secondary offering",
				zap.String("course", course.Code),
				zap.String("main", main.BaseId),
			)
			continue
		}

		radices := lo.Map(options, func(option [][]model.Component, _ int) int { return len(option) })
		_, truncated := enumerate(radices, generation.maxCombinations, func(choices []int) bool {
			selections = append(selections, model.CourseSelection{
				CourseCode:     course.Code,
				MainComponents: main.Components,
				Secondary: model.SecondaryComponents{
					Lab:      options[0][choices[0]],
					Tutorial: options[1][choices[1]],
					Seminar:  options[2][choices[2]],
				},
			})
			return true
		})
		if truncated {
			generation.markTruncated(len(selections))
		}
	}

	return selections
}

// secondaryOptions returns, per secondary kind, the offerings that can accompany the main offering. A kind
// the course does not have contributes a single nil option. Returns false when a kind the course has
// cannot be matched.
func (generation *generation) secondaryOptions(
	course model.Course,
	main model.Offering,
	secondaries map[model.ComponentKind][]model.Component,
	singleMain bool,
) ([][][]model.Component, bool) {
	options := make([][][]model.Component, 0, len(model.SecondaryKinds))

	for _, kind := range model.SecondaryKinds {
		// Categories without raw entries are optional
		if len(course.Components(kind)) == 0 {
			options = append(options, [][]model.Component{nil})
			continue
		}

		candidates := secondaries[kind]
		matched := lo.Filter(candidates, func(component model.Component, _ int) bool {
			return component.Schedule.Duration == main.Duration() &&
				(singleMain || model.SameOffering(main.BaseId, component.Id))
		})

		offerings := model.GroupByBaseId(matched)
		if len(offerings) == 0 {
			// A pin naming an id that survived filtering overrides the pairing heuristic
			pinned := generation.pins.Values(course.Code, model.PinKindOf(kind))
			if len(pinned) == 0 || len(candidates) == 0 {
				return nil, false
			}
			offerings = model.GroupByBaseId(candidates)
		}

		options = append(options, lo.Map(offerings, func(offering model.Offering, _ int) []model.Component {
			return offering.Components
		}))
	}

	return options, true
}
