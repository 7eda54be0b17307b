package tui

import (
	"strconv"
	"strings"
)

// Stats backs the profile screen counters. They are session-local and move
// only when a pickup is confirmed.
type Stats struct {
	FoodSavedKg        int
	Transactions       int
	MealsRedistributed int
}

// demoStats matches the numbers the profile screen started from.
func demoStats() Stats {
	return Stats{FoodSavedKg: 247, Transactions: 18, MealsRedistributed: 156}
}

// RecordCompletion credits a finished exchange against the counters.
func (s *Stats) RecordCompletion(quantity string) {
	s.Transactions++
	kg := parseKg(quantity)
	s.FoodSavedKg += kg
	// rough conversion used across the app: one kilo feeds two
	s.MealsRedistributed += kg * 2
}

// parseKg pulls the leading number out of a quantity string like "25 kg".
func parseKg(quantity string) int {
	fields := strings.Fields(strings.TrimSpace(quantity))
	if len(fields) == 0 {
		return 0
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0
	}
	return n
}
