package entities

import "sort"

// LearnedSet is the subset of a module's catalog the user marked as learned.
// Members may include identifiers from an older catalog until pruned.
type LearnedSet struct {
	Module  ModuleKey
	members map[string]struct{}
}

// NewLearnedSet creates a set seeded with members.
func NewLearnedSet(module ModuleKey, members ...string) *LearnedSet {
	s := &LearnedSet{
		Module:  module,
		members: make(map[string]struct{}, len(members)),
	}
	for _, m := range members {
		s.members[m] = struct{}{}
	}
	return s
}

// Add inserts key and reports whether membership changed.
func (s *LearnedSet) Add(key string) bool {
	if _, ok := s.members[key]; ok {
		return false
	}
	s.members[key] = struct{}{}
	return true
}

// Remove deletes key and reports whether membership changed.
func (s *LearnedSet) Remove(key string) bool {
	if _, ok := s.members[key]; !ok {
		return false
	}
	delete(s.members, key)
	return true
}

func (s *LearnedSet) Has(key string) bool {
	_, ok := s.members[key]
	return ok
}

func (s *LearnedSet) Len() int {
	return len(s.members)
}

// Members returns the members sorted, so persisted payloads are stable.
func (s *LearnedSet) Members() []string {
	out := make([]string, 0, len(s.members))
	for m := range s.members {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy.
func (s *LearnedSet) Clone() *LearnedSet {
	return NewLearnedSet(s.Module, s.Members()...)
}

// Retain drops every member not in valid and returns how many were dropped.
func (s *LearnedSet) Retain(valid map[string]struct{}) int {
	dropped := 0
	for m := range s.members {
		if _, ok := valid[m]; !ok {
			delete(s.members, m)
			dropped++
		}
	}
	return dropped
}
