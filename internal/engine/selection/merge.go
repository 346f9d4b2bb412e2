package selection

// Override replaces one field of a selection during Merge.
type Override func(*Selection)

// AnchorKey overrides the anchor block.
func AnchorKey(key string) Override {
	return func(s *Selection) { s.AnchorKey = key }
}

// AnchorOffset overrides the anchor offset.
func AnchorOffset(offset int) Override {
	return func(s *Selection) { s.AnchorOffset = offset }
}

// FocusKey overrides the focus block.
func FocusKey(key string) Override {
	return func(s *Selection) { s.FocusKey = key }
}

// FocusOffset overrides the focus offset.
func FocusOffset(offset int) Override {
	return func(s *Selection) { s.FocusOffset = offset }
}

// Merge returns a new selection built from s with the given overrides
// applied in order. s itself is never modified.
func (s Selection) Merge(overrides ...Override) Selection {
	out := s
	for _, o := range overrides {
		o(&out)
	}
	return out
}
