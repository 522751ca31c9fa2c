package scheduler

import (
	"math/rand"
	"sort"
)

// runState tracks per-faculty load for the duration of a single
// generation run. It is seeded fresh each call: running counts and
// occupied dates never leak between runs or load historical totals.
type runState struct {
	counts   map[string]int
	occupied map[string]map[string]struct{}
}

func newRunState(roster []RosterEntry) *runState {
	state := &runState{
		counts:   make(map[string]int, len(roster)),
		occupied: make(map[string]map[string]struct{}, len(roster)),
	}
	for _, entry := range roster {
		state.counts[entry.Username] = 0
		state.occupied[entry.Username] = make(map[string]struct{})
	}
	return state
}

// isOccupied reports whether the faculty member was already assigned a
// slot on this calendar date during the current run
func (s *runState) isOccupied(username, date string) bool {
	_, ok := s.occupied[username][date]
	return ok
}

// markAssigned records one assignment: bumps the running count and
// reserves the date for the rest of the run
func (s *runState) markAssigned(username, date string) {
	s.counts[username]++
	if s.occupied[username] == nil {
		s.occupied[username] = make(map[string]struct{})
	}
	s.occupied[username][date] = struct{}{}
}

// allocateSections assigns the eligible pool to the slot's sections.
// The pool is shuffled uniformly, stable-sorted ascending by running
// assignment count (the shuffle supplies tie-break order among equal
// counts), then consumed in fixed-size chunks, one per section in
// ascending section order.
//
// If the pool is smaller than sections x perSection the whole slot fails
// with a capacity fault; nothing is partially assigned.
func allocateSections(rnd *rand.Rand, pool []Candidate, slot SlotRequest, perSection int) ([]SectionAssignment, *CapacityError) {
	needed := slot.SectionsPerSlot * perSection
	if len(pool) < needed {
		return nil, &CapacityError{
			SlotNumber: slot.SlotNumber,
			Subject:    slot.Subject,
			Date:       slot.Date,
			Needed:     needed,
			Available:  len(pool),
		}
	}

	rnd.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].AssignmentCount < pool[j].AssignmentCount
	})

	sections := make([]SectionAssignment, 0, slot.SectionsPerSlot)
	for section := 1; section <= slot.SectionsPerSlot; section++ {
		chunk := make([]Candidate, perSection)
		copy(chunk, pool[:perSection])
		pool = pool[perSection:]

		sections = append(sections, SectionAssignment{
			SectionNumber: section,
			Faculty:       chunk,
		})
	}

	return sections, nil
}
