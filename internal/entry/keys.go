package entry

// KeyResult describes the effect of ProcessKey.
type KeyResult struct {
	// Changed is true when the text or cursor moved.
	Changed bool

	// Committing is true when the key selected a unit; the caller should
	// parse and publish the value immediately.
	Committing bool
}

// ProcessKey applies one typed character at the cursor. An active
// selection is deleted first. Keys that would break the grammar, and
// edits that would exceed MaxLength, leave the buffer unchanged.
func (s *State) ProcessKey(r rune) KeyResult {
	before := s.snapshot()

	hadSelection := s.deleteSelection()
	a := s.Analysis()

	var res KeyResult
	switch {
	case isDigit(r):
		s.processDigit(r, a)
	case r == s.cfg.Separator:
		s.processSeparator(a)
	case r == 'e' || r == 'E':
		s.processExponent(a)
	case isSign(r):
		s.processSign(r, a)
	case r == Backspace:
		if !hadSelection {
			s.processBackspace(a)
		}
	case r == Delete:
		if !hadSelection {
			s.processDelete(a)
		}
	default:
		if m, ok := s.cfg.Units.ByLetter(r); ok {
			if a.HasTerminator() {
				s.text = s.text[:a.Terminator]
			}
			s.text = append(s.text, ' ')
			s.text = append(s.text, []rune(m.Suffix)...)
			s.cursor = clamp(s.cursor, 0, len(s.text))
			res.Committing = true
		}
	}

	s.Canonicalize()

	if len(s.text) > s.cfg.MaxLength {
		s.restore(before)
		return KeyResult{}
	}

	res.Changed = s.cursor != before.cursor || string(s.text) != string(before.text)
	return res
}

func (s *State) deleteSelection() bool {
	if s.selLen == 0 {
		return false
	}
	s.remove(s.selPos, s.selLen)
	s.cursor = s.selPos
	s.selPos, s.selLen = 0, 0
	return true
}

// snapToNumber moves a cursor that sits inside the terminator back to
// the end of the number.
func (s *State) snapToNumber(a Analysis) {
	if a.HasTerminator() && s.cursor > a.Terminator {
		s.cursor = a.Terminator
	}
}

func (s *State) processDigit(r rune, a Analysis) {
	s.snapToNumber(a)
	end := a.NumberEnd()
	if !a.HasExponent() || s.cursor <= a.Exponent || end-(a.Exponent+1) < MaxExponentLength {
		s.insert(s.cursor, r)
		s.cursor++
	}
}

func (s *State) processSeparator(a Analysis) {
	s.snapToNumber(a)
	if !a.HasDecimal() && (!a.HasExponent() || s.cursor <= a.Exponent) {
		s.insert(s.cursor, s.cfg.Separator)
		s.cursor++
	}
}

func (s *State) processExponent(a Analysis) {
	s.snapToNumber(a)
	if !a.HasExponent() {
		s.insert(s.cursor, 'E')
		s.cursor++
	}
}

func (s *State) processSign(r rune, a Analysis) {
	if !a.HasExponent() || s.cursor <= a.Exponent {
		if a.Sign {
			s.text[0] = r
			return
		}
		s.insert(0, r)
		s.cursor++
		return
	}

	pos := a.Exponent + 1
	if pos < len(s.text) && isSign(s.text[pos]) {
		s.text[pos] = r
		return
	}
	s.insert(pos, r)
	s.cursor++
}

func (s *State) processBackspace(a Analysis) {
	if a.HasTerminator() && s.cursor > a.Terminator {
		s.text = s.text[:a.Terminator]
		s.cursor = len(s.text)
		return
	}
	if s.cursor > 0 {
		s.remove(s.cursor-1, 1)
		s.cursor--
	}
}

func (s *State) processDelete(a Analysis) {
	if a.HasTerminator() && s.cursor >= a.Terminator {
		s.text = s.text[:a.Terminator]
		s.cursor = len(s.text)
		return
	}
	if s.cursor < len(s.text) {
		s.remove(s.cursor, 1)
	}
}
