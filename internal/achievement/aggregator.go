// Package achievement groups a recipient's logged sets by week and day, and narrows and
// pages the groups for display.
package achievement

import (
	"fmt"

	"github.com/prpradhan13/myBuddy-sub000/internal/domain"
)

// DefaultWeek is selected when the caller has not picked a week, whether or not
// week 1 has any achievements.
const DefaultWeek = 1

// Key identifies a group.
type Key struct {
	WeekNumber int
	DayName    string
}

func (k Key) String() string {
	return fmt.Sprintf("week_%d_%s", k.WeekNumber, k.DayName)
}

// Group holds the achievements logged for one day of one week.
type Group struct {
	WeekNumber  int                  `json:"weekNumber"`
	DayName     string               `json:"dayName"`
	WorkoutName string               `json:"workoutName"`
	PlanName    string               `json:"planName"`
	Exercises   []domain.Achievement `json:"exercises"`
}

func (g Group) Key() Key {
	return Key{WeekNumber: g.WeekNumber, DayName: g.DayName}
}

// Groups is an insertion-ordered mapping from Key to Group.
type Groups struct {
	keys   []Key
	groups map[Key]*Group
}

// GroupByWeekAndDay puts every record into the group of its (week, day) pair. Groups appear
// in the order their first record appears, and records keep their input order within a
// group. A group takes its workout and plan names from its first record.
func GroupByWeekAndDay(records []domain.Achievement) *Groups {
	g := &Groups{
		keys:   make([]Key, 0),
		groups: make(map[Key]*Group),
	}
	for _, rec := range records {
		key := Key{WeekNumber: rec.WeekNumber, DayName: rec.DayName}
		group, ok := g.groups[key]
		if !ok {
			group = &Group{
				WeekNumber:  rec.WeekNumber,
				DayName:     rec.DayName,
				WorkoutName: rec.WorkoutName,
				PlanName:    rec.PlanName,
				Exercises:   make([]domain.Achievement, 0),
			}
			g.groups[key] = group
			g.keys = append(g.keys, key)
		}
		group.Exercises = append(group.Exercises, rec)
	}
	return g
}

func (g *Groups) Len() int {
	if g == nil {
		return 0
	}
	return len(g.keys)
}

// Keys returns the group keys in insertion order.
func (g *Groups) Keys() []Key {
	if g == nil {
		return []Key{}
	}
	return append([]Key(nil), g.keys...)
}

// Get returns a copy of the group stored under key.
func (g *Groups) Get(key Key) (Group, bool) {
	if g == nil {
		return Group{}, false
	}
	group, ok := g.groups[key]
	if !ok {
		return Group{}, false
	}
	return copyGroup(group), true
}

// List returns copies of all groups in insertion order.
func (g *Groups) List() []Group {
	out := make([]Group, 0, g.Len())
	if g == nil {
		return out
	}
	for _, key := range g.keys {
		out = append(out, copyGroup(g.groups[key]))
	}
	return out
}

func copyGroup(group *Group) Group {
	c := *group
	c.Exercises = append(make([]domain.Achievement, 0, len(group.Exercises)), group.Exercises...)
	return c
}

// FilterGroups keeps the groups of selectedWeek, in insertion order. An empty selectedDay
// keeps every day of that week; otherwise only the matching day is kept.
func FilterGroups(groups *Groups, selectedWeek int, selectedDay string) []Group {
	out := make([]Group, 0)
	if groups == nil {
		return out
	}
	for _, key := range groups.keys {
		if key.WeekNumber != selectedWeek {
			continue
		}
		if selectedDay != "" && key.DayName != selectedDay {
			continue
		}
		out = append(out, copyGroup(groups.groups[key]))
	}
	return out
}

// UniqueWeeks lists the distinct week numbers of records in first-seen order.
func UniqueWeeks(records []domain.Achievement) []int {
	seen := make(map[int]struct{})
	weeks := make([]int, 0)
	for _, rec := range records {
		if _, ok := seen[rec.WeekNumber]; ok {
			continue
		}
		seen[rec.WeekNumber] = struct{}{}
		weeks = append(weeks, rec.WeekNumber)
	}
	return weeks
}

// UniqueDays lists the distinct day names of records in first-seen order.
func UniqueDays(records []domain.Achievement) []string {
	seen := make(map[string]struct{})
	days := make([]string, 0)
	for _, rec := range records {
		if _, ok := seen[rec.DayName]; ok {
			continue
		}
		seen[rec.DayName] = struct{}{}
		days = append(days, rec.DayName)
	}
	return days
}

// Paginate returns page pageNumber (1-based) of pageSize groups. Pages past the end,
// non-positive page numbers and non-positive sizes give an empty page.
func Paginate(groups []Group, pageSize, pageNumber int) []Group {
	if pageSize < 1 || pageNumber < 1 {
		return []Group{}
	}
	start := (pageNumber - 1) * pageSize
	if start >= len(groups) {
		return []Group{}
	}
	end := start + pageSize
	if end > len(groups) {
		end = len(groups)
	}
	return append(make([]Group, 0, end-start), groups[start:end]...)
}

// PageCount is the number of non-empty pages total groups fill at pageSize per page.
func PageCount(total, pageSize int) int {
	if total <= 0 || pageSize < 1 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
