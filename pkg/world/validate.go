package world

import (
	"fmt"
	"regexp"
	"slices"
)

var validIDRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

// Report is the outcome of a consistency check over the world tables.
// Errors are internal contradictions (references to items or enemies
// that do not exist). Warnings are dangling exits: the shipped world
// deliberately carries a few paths that lead nowhere, and the engine
// refuses to travel through them.
type Report struct {
	Errors   []string
	Warnings []string
}

// OK reports whether the world has no hard errors.
func (r *Report) OK() bool {
	return len(r.Errors) == 0
}

// Validate cross-checks every location's exits, items, enemies and
// events. knownEvents is the catalogue of event names the engine can
// dispatch; pass nil to skip event checking.
func (w *World) Validate(knownEvents []string) *Report {
	r := &Report{}

	for id := range w.items {
		if !validIDRegex.MatchString(id) {
			r.Errors = append(r.Errors, fmt.Sprintf("item ID %q is not lowercase snake_case", id))
		}
	}
	for id := range w.enemies {
		if !validIDRegex.MatchString(id) {
			r.Errors = append(r.Errors, fmt.Sprintf("enemy ID %q is not lowercase snake_case", id))
		}
	}

	for id, loc := range w.locations {
		if !validIDRegex.MatchString(id) {
			r.Errors = append(r.Errors, fmt.Sprintf("location ID %q is not lowercase snake_case", id))
		}
		for _, exit := range loc.Exits {
			if _, ok := w.locations[exit]; !ok {
				r.Warnings = append(r.Warnings, fmt.Sprintf("location %q has dangling exit %q", id, exit))
			}
		}
		for _, item := range loc.Items {
			if _, ok := w.items[item]; !ok {
				r.Errors = append(r.Errors, fmt.Sprintf("location %q references unknown item %q", id, item))
			}
		}
		for _, enemy := range loc.Enemies {
			if _, ok := w.enemies[enemy]; !ok {
				r.Errors = append(r.Errors, fmt.Sprintf("location %q references unknown enemy %q", id, enemy))
			}
		}
		if knownEvents != nil {
			for _, ev := range loc.Events {
				if !slices.Contains(knownEvents, ev) {
					r.Errors = append(r.Errors, fmt.Sprintf("location %q references unknown event %q", id, ev))
				}
			}
		}
	}

	if _, ok := w.locations[StartLocation]; !ok {
		r.Errors = append(r.Errors, fmt.Sprintf("start location %q does not exist", StartLocation))
	}
	if _, ok := w.locations[VictoryLocation]; !ok {
		r.Errors = append(r.Errors, fmt.Sprintf("victory location %q does not exist", VictoryLocation))
	}

	return r
}
