package entry

// Renormalize places the cursor so that it keeps the numeric weight it
// had before a reformat. offset is the value returned by Step and shift
// is the number of decades the display moved, for example 3 when the
// text switched from Hz to kHz.
func (s *State) Renormalize(offset, shift int) {
	a := s.Analysis()
	next := offset - shift
	c := a.Implied - next

	// Crossing the decimal separator skips one position.
	switch {
	case next >= 0 && offset < 0:
		c--
	case next < 0 && offset >= 0:
		c++
	}

	if a.HasDecimal() && c == a.Decimal+1 {
		c = a.Decimal
	}
	s.cursor = clamp(c, 0, a.NumberEnd())
	s.selPos, s.selLen = 0, 0
}
