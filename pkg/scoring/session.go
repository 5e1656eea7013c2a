package scoring

// Session tracks which ranked candidates a user accepted or rejected.
// Accepted indices always refer to the current candidate list: rejecting a
// candidate shifts later indices down with it. Session is not safe for
// concurrent use.
type Session struct {
	candidates  []Candidate
	accepted    []int
	maxAccepted int
}

// NewSession starts a session over ranked candidates.
func NewSession(cands []Candidate, maxAccepted int) *Session {
	c := make([]Candidate, len(cands))
	copy(c, cands)
	return &Session{candidates: c, maxAccepted: maxAccepted}
}

// Candidates returns the candidates still on offer.
func (s *Session) Candidates() []Candidate {
	out := make([]Candidate, len(s.candidates))
	copy(out, s.candidates)
	return out
}

// Accept marks candidate i as accepted. It reports false when i is out of
// range, already accepted, or the accepted list is full.
func (s *Session) Accept(i int) bool {
	if i < 0 || i >= len(s.candidates) {
		return false
	}
	for _, a := range s.accepted {
		if a == i {
			return false
		}
	}
	if s.maxAccepted > 0 && len(s.accepted) >= s.maxAccepted {
		return false
	}
	s.accepted = append(s.accepted, i)
	return true
}

// Reject removes candidate i from the list and from the accepted set.
func (s *Session) Reject(i int) bool {
	if i < 0 || i >= len(s.candidates) {
		return false
	}
	s.candidates = append(s.candidates[:i:i], s.candidates[i+1:]...)

	kept := s.accepted[:0]
	for _, a := range s.accepted {
		switch {
		case a == i:
			continue
		case a > i:
			kept = append(kept, a-1)
		default:
			kept = append(kept, a)
		}
	}
	s.accepted = kept
	return true
}

// IsAccepted reports whether candidate i is accepted.
func (s *Session) IsAccepted(i int) bool {
	for _, a := range s.accepted {
		if a == i {
			return true
		}
	}
	return false
}

// AcceptedIndices returns accepted indices in acceptance order.
func (s *Session) AcceptedIndices() []int {
	return append([]int(nil), s.accepted...)
}

// Accepted returns the accepted candidates in acceptance order.
func (s *Session) Accepted() []Candidate {
	out := make([]Candidate, 0, len(s.accepted))
	for _, a := range s.accepted {
		out = append(out, s.candidates[a])
	}
	return out
}

// Clear forgets all acceptances, typically after they were saved.
func (s *Session) Clear() {
	s.accepted = nil
}
