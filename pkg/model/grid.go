package model

import "github.com/samber/lo"

// TimeGrid maps a weekday code to its half-hour slots; true means the slot is blocked
type TimeGrid map[string][]bool

func NewTimeGrid() TimeGrid {
	grid := make(TimeGrid, len(Weekdays))
	for _, day := range Weekdays {
		grid[day] = make([]bool, SlotsPerDay)
	}
	return grid
}

func (grid TimeGrid) Clone() TimeGrid {
	clone := make(TimeGrid, len(grid))
	for day, slots := range grid {
		clone[day] = make([]bool, len(slots))
		copy(clone[day], slots)
	}
	return clone
}

func (grid TimeGrid) Blocked(day string, slot int) bool {
	slots, ok := grid[day]
	if !ok || slot < 0 || slot >= len(slots) {
		return false
	}
	return slots[slot]
}

// Block marks the slots in [start, end] of the given day as blocked
func (grid TimeGrid) Block(day string, start, end int) {
	grid.set(day, start, end, true)
}

// Unblock clears the slots in [start, end] of the given day
func (grid TimeGrid) Unblock(day string, start, end int) {
	grid.set(day, start, end, false)
}

func (grid TimeGrid) set(day string, start, end int, value bool) {
	if _, ok := grid[day]; !ok {
		grid[day] = make([]bool, SlotsPerDay)
	}
	for slot := max(start, 0); slot <= end && slot < len(grid[day]); slot++ {
		grid[day][slot] = value
	}
}

// Unblocks every cell of the components' footprints
func (grid TimeGrid) Release(components []Component) {
	for _, component := range components {
		start, end, ok := component.Schedule.Footprint()
		if !ok {
			continue
		}
		for _, day := range component.Schedule.Weekdays() {
			grid.Unblock(day, start, end-1)
		}
	}
}

// IsSlotAvailable checks that none of the slots in [start, end] of the day is blocked
func IsSlotAvailable(grid TimeGrid, day string, start, end int) bool {
	for slot := start; slot <= end; slot++ {
		if grid.Blocked(day, slot) {
			return false
		}
	}
	return true
}

// Checks whether any slot of the component's footprint is blocked. Non-numeric times and times outside the
// grid are never blocked
func IsComponentBlocked(component Component, grid TimeGrid) bool {
	start, end, ok := component.Schedule.Footprint()
	if !ok {
		return false
	}
	return lo.SomeBy(component.Schedule.Weekdays(), func(day string) bool {
		return !IsSlotAvailable(grid, day, start, end-1)
	})
}

// BlockedPercentage returns the share (0-100) of the component's day x slot footprint that is blocked.
// Components without a numeric time or without meeting days count as fully blocked; components outside the
// grid count as free.
func BlockedPercentage(component Component, grid TimeGrid) float64 {
	start, end, ok := component.Schedule.Footprint()
	days := component.Schedule.Weekdays()
	if !ok || len(days) == 0 {
		return 100
	}
	if start == end {
		return 0
	}

	total, blocked := 0, 0
	for _, day := range days {
		for slot := start; slot < end; slot++ {
			total++
			if grid.Blocked(day, slot) {
				blocked++
			}
		}
	}
	return float64(blocked) / float64(total) * 100
}
