package entry

// unityMantissa is inserted in front of an exponent marker that has no
// mantissa.
const unityMantissa = "1.0"

// maxCanonicalPasses bounds the rewrite loop. A single pass suffices for
// any buffer reachable through ProcessKey.
const maxCanonicalPasses = 4

// Canonicalize rewrites the buffer into canonical notation and reports
// whether anything changed. The cursor shifts with text inserted or
// removed at or before it.
func (s *State) Canonicalize() bool {
	changed := false
	for i := 0; i < maxCanonicalPasses; i++ {
		if !s.canonicalPass() {
			break
		}
		changed = true
	}
	return changed
}

func (s *State) canonicalPass() bool {
	changed := false

	// An exponent sign cannot outlive its marker.
	a := s.Analysis()
	if !a.HasExponent() {
		for i := a.NumberEnd() - 1; i > 0; i-- {
			if isSign(s.text[i]) {
				s.remove(i, 1)
				if i < s.cursor {
					s.cursor--
				}
				changed = true
			}
		}
	}

	a = s.Analysis()
	if a.HasExponent() && !a.ExponentSign && a.NumberEnd() >= a.Exponent+2 {
		s.insertShift(a.Exponent+1, '+')
		changed = true
	}

	a = s.Analysis()
	if a.HasExponent() {
		if a.Exponent == 0 || (!isDigit(s.text[a.Exponent-1]) && s.text[a.Exponent-1] != s.cfg.Separator) {
			s.insertShift(a.Exponent, s.unity()...)
			changed = true
		}
	}

	a = s.Analysis()
	if a.HasDecimal() && (a.Decimal == 0 || !isDigit(s.text[a.Decimal-1])) {
		s.insertShift(a.Decimal, '0')
		changed = true
	}

	return changed
}

func (s *State) unity() []rune {
	r := []rune(unityMantissa)
	for i := range r {
		if r[i] == '.' {
			r[i] = s.cfg.Separator
		}
	}
	return r
}

// insertShift inserts r at pos and moves the cursor along when pos is at
// or before it.
func (s *State) insertShift(pos int, r ...rune) {
	s.insert(pos, r...)
	if pos <= s.cursor {
		s.cursor += len(r)
	}
}
