// Package board holds the client-side view of the bug list. State is a
// plain value; the only way to change it is Reduce, which is fed the
// results of completed API calls.
package board

import (
	"slices"

	"github.com/sumire/bugs/internal/domain"
)

// State is the client's mirror of the server's bug list.
type State struct {
	Bugs    []domain.Bug
	Loading bool
	Err     string
}

// Action is a change to apply to State.
type Action interface {
	isAction()
}

// FetchStarted marks the start of a full reload.
type FetchStarted struct{}

// Fetched replaces the list with a fresh server copy.
type Fetched struct{ Bugs []domain.Bug }

// FetchFailed records a failed reload.
type FetchFailed struct{ Err string }

// Added records a bug the server accepted.
type Added struct{ Bug domain.Bug }

// Updated records a bug as returned by the server after an update.
type Updated struct{ Bug domain.Bug }

// Removed records a confirmed deletion.
type Removed struct{ ID string }

func (FetchStarted) isAction() {}
func (Fetched) isAction()      {}
func (FetchFailed) isAction()  {}
func (Added) isAction()        {}
func (Updated) isAction()      {}
func (Removed) isAction()      {}

// Reduce returns the state that results from applying a to s. s is not
// modified.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case FetchStarted:
		s.Loading = true
		s.Err = ""
	case Fetched:
		s.Bugs = slices.Clone(a.Bugs)
		s.Loading = false
		s.Err = ""
	case FetchFailed:
		s.Loading = false
		s.Err = a.Err
	case Added:
		bugs := make([]domain.Bug, 0, len(s.Bugs)+1)
		bugs = append(bugs, a.Bug)
		s.Bugs = append(bugs, s.Bugs...)
	case Updated:
		s.Bugs = slices.Clone(s.Bugs)
		for i := range s.Bugs {
			if s.Bugs[i].ID == a.Bug.ID {
				s.Bugs[i] = a.Bug
			}
		}
	case Removed:
		s.Bugs = slices.DeleteFunc(slices.Clone(s.Bugs), func(b domain.Bug) bool {
			return b.ID == a.ID
		})
	}
	return s
}

// Find returns the bug with the given ID.
func (s State) Find(id string) (domain.Bug, bool) {
	i := slices.IndexFunc(s.Bugs, func(b domain.Bug) bool { return b.ID == id })
	if i < 0 {
		return domain.Bug{}, false
	}
	return s.Bugs[i], true
}

// CountByStatus tallies bugs per status.
func (s State) CountByStatus() map[domain.Status]int {
	counts := make(map[domain.Status]int, len(domain.Statuses))
	for _, b := range s.Bugs {
		counts[b.Status]++
	}
	return counts
}
