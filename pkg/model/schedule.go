package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/samber/lo"
)

const (
	FirstHour   = 8  // Grid starts at 08:00
	LastHour    = 22 // Grid ends at 22:00
	SlotsPerDay = (LastHour - FirstHour) * 2
)

// Weekday codes in calendar order
var Weekdays = []string{"M", "T", "W", "R", "F", "S", "U"}

var numericTime = regexp.MustCompile(`^\s*(\d{3,4}|\d{1,2}:\d{2})\s*-\s*(\d{3,4}|\d{1,2}:\d{2})\s*$`)

type ScheduleBlock struct {
	Days      string // Weekday codes, e.g. "M W" or "MW"
	Time      string // "HHMM-HHMM" in 24h format, or a non-numeric marker such as "TBA" or "ONLINE"
	Duration  string // Opaque term code distinguishing date-windowed variants
	StartDate int    // Ordinal of the first active day (inclusive)
	EndDate   int    // Ordinal of the last active day (inclusive)
}

// Weekdays returns the weekday codes the block meets on, in the order they were written
func (block ScheduleBlock) Weekdays() []string {
	days := strings.TrimSpace(block.Days)
	if days == "" {
		return nil
	}

	var codes []string
	if strings.ContainsFunc(days, unicode.IsSpace) {
		codes = strings.Fields(days)
	} else {
		codes = lo.Map([]rune(days), func(day rune, _ int) string { return string(day) })
	}

	codes = lo.Map(codes, func(day string, _ int) string { return strings.ToUpper(day) })
	return lo.Uniq(lo.Filter(codes, func(day string, _ int) bool { return lo.Contains(Weekdays, day) }))
}

// Checks whether the block carries a "start-end" time that slot arithmetic can be applied to
func (block ScheduleBlock) IsNumeric() bool {
	_, _, ok := block.MinuteRange()
	return ok
}

// Returns start and end as minutes since midnight
func (block ScheduleBlock) MinuteRange() (start, end int, ok bool) {
	matches := numericTime.FindStringSubmatch(block.Time)
	if matches == nil {
		return 0, 0, false
	}

	start, err := parseMinutes(matches[1])
	if err != nil {
		return 0, 0, false
	}
	end, err = parseMinutes(matches[2])
	if err != nil || end < start {
		return 0, 0, false
	}
	return start, end, true
}

// Returns the first and last slot (both inclusive) covered by the block, clamped to the grid
func (block ScheduleBlock) SlotRange() (start, end int, ok bool) {
	if !block.IsNumeric() {
		return 0, 0, false
	}
	startTime, endTime, _ := strings.Cut(block.Time, "-")

	start, err := TimeToSlot(startTime)
	if err != nil {
		return 0, 0, false
	}
	end, err = TimeToSlot(endTime)
	if err != nil {
		return 0, 0, false
	}

	start, end = clampSlot(start), clampSlot(end)
	return start, end, true
}

// Footprint returns the half-open slot range [start, end) the block occupies on the grid, the same range
// the validator compares. A block shorter than a slot still occupies its start slot. The part outside the
// 08:00-22:00 grid is dropped, so a block entirely outside it has an empty footprint.
func (block ScheduleBlock) Footprint() (start, end int, ok bool) {
	startMinutes, endMinutes, ok := block.MinuteRange()
	if !ok {
		return 0, 0, false
	}

	start = minutesToSlot(startMinutes)
	end = max(minutesToSlot(endMinutes), start+1)
	start, end = max(start, 0), min(end, SlotsPerDay)
	if start >= end {
		return 0, 0, true
	}
	return start, end, true
}

// Checks whether the active windows of both blocks share at least one day (bounds inclusive)
func (block ScheduleBlock) DatesOverlap(other ScheduleBlock) bool {
	return block.StartDate <= other.EndDate && other.StartDate <= block.EndDate
}

// TimeToSlot converts a time of day ("0830", "830" or "08:30") into a half-hour slot index of the
// 08:00-22:00 grid. The result is not clamped: times before 08:00 yield negative indices.
func TimeToSlot(time string) (int, error) {
	minutes, err := parseMinutes(strings.TrimSpace(time))
	if err != nil {
		return 0, err
	}

	return minutesToSlot(minutes), nil
}

func minutesToSlot(minutes int) int {
	slot := (minutes/60 - FirstHour) * 2
	if minutes%60 >= 30 {
		slot++
	}
	return slot
}

func parseMinutes(time string) (int, error) {
	time = strings.ReplaceAll(time, ":", "")
	if len(time) < 3 || len(time) > 4 {
		return 0, fmt.Errorf("invalid time of day %q", time)
	}

	value, err := strconv.Atoi(time)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", time, err)
	}

	hour, minute := value/100, value%100
	if hour > 24 || minute > 59 {
		return 0, fmt.Errorf("invalid time of day %q", time)
	}
	return hour*60 + minute, nil
}

func clampSlot(slot int) int {
	return max(0, min(slot, SlotsPerDay-1))
}
