package content

import (
	"errors"
	"slices"
	"testing"
)

func mustBlock(t *testing.T, key string, typ BlockType, text string, styles ...StyleRange) *Block {
	t.Helper()
	b, err := NewBlock(key, typ, text, styles...)
	if err != nil {
		t.Fatalf("NewBlock(%q): %v", key, err)
	}
	return b
}

func mustModel(t *testing.T, blocks ...*Block) *Model {
	t.Helper()
	m, err := NewModel(blocks, nil)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return m
}

func TestEmptyModel(t *testing.T) {
	m := Empty()

	if m.Len() != 1 {
		t.Fatalf("expected 1 block, got %d", m.Len())
	}
	b := m.First()
	if b.Type() != Unstyled {
		t.Errorf("expected unstyled block, got %s", b.Type())
	}
	if b.Text() != "" {
		t.Errorf("expected empty text, got %q", b.Text())
	}
	if len(b.Key()) != keyLen {
		t.Errorf("expected key of length %d, got %q", keyLen, b.Key())
	}
	if m.HasText() {
		t.Error("empty model should not have text")
	}
}

func TestNewModelRejectsEmpty(t *testing.T) {
	if _, err := NewModel(nil, nil); !errors.Is(err, ErrEmptyModel) {
		t.Errorf("expected ErrEmptyModel, got %v", err)
	}
}

func TestNewModelRejectsDuplicateKeys(t *testing.T) {
	a := mustBlock(t, "k", Unstyled, "a")
	b := mustBlock(t, "k", Unstyled, "b")
	if _, err := NewModel([]*Block{a, b}, nil); !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestNewBlockValidatesRanges(t *testing.T) {
	tests := []struct {
		name  string
		style StyleRange
	}{
		{"negative start", StyleRange{Bold, -1, 2}},
		{"empty", StyleRange{Bold, 2, 2}},
		{"inverted", StyleRange{Bold, 3, 1}},
		{"past end", StyleRange{Bold, 0, 6}},
		{"no name", StyleRange{"", 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBlock("k", Unstyled, "hello", tt.style)
			if !errors.Is(err, ErrInvalidRange) {
				t.Errorf("expected ErrInvalidRange, got %v", err)
			}
		})
	}
}

func TestInvalidUTF8Rejected(t *testing.T) {
	if _, err := NewBlock("k", Unstyled, "a\xffb"); !errors.Is(err, ErrInvalidText) {
		t.Errorf("NewBlock: expected ErrInvalidText, got %v", err)
	}

	m := mustModel(t, mustBlock(t, "a", Unstyled, "abc"))
	if got, err := ReplaceRange(m, "a", Range{1, 1}, "\xff"); !errors.Is(err, ErrInvalidText) || got != nil {
		t.Errorf("ReplaceRange: expected ErrInvalidText, got %v, %v", got, err)
	}
	if got, err := ReplaceRangeStyled(m, "a", Range{1, 2}, "x\xc3", []InlineStyle{Bold}); !errors.Is(err, ErrInvalidText) || got != nil {
		t.Errorf("ReplaceRangeStyled: expected ErrInvalidText, got %v, %v", got, err)
	}
}

func TestNewBlockNormalizesStyles(t *testing.T) {
	b := mustBlock(t, "k", Unstyled, "hello world",
		StyleRange{Bold, 4, 8},
		StyleRange{Red, 0, 1},
		StyleRange{Bold, 0, 2},
		StyleRange{Bold, 2, 4},
		StyleRange{Bold, 9, 11},
	)

	want := []StyleRange{
		{Bold, 0, 8},
		{Bold, 9, 11},
		{Red, 0, 1},
	}
	if got := b.Styles(); !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestBlockLenCountsCodePoints(t *testing.T) {
	b := mustBlock(t, "k", Unstyled, "héllo✓", StyleRange{Bold, 5, 6})
	if b.Len() != 6 {
		t.Errorf("expected 6 code points, got %d", b.Len())
	}
	if got := b.Slice(Range{1, 2}); got != "é" {
		t.Errorf("expected é, got %q", got)
	}
}

func TestReplaceRangeInsert(t *testing.T) {
	m := mustModel(t, mustBlock(t, "a", Unstyled, "Hello World"))

	m2, err := ReplaceRange(m, "a", Range{5, 5}, ",")
	if err != nil {
		t.Fatalf("ReplaceRange: %v", err)
	}
	if got := m2.First().Text(); got != "Hello, World" {
		t.Errorf("expected 'Hello, World', got %q", got)
	}
	if got := m.First().Text(); got != "Hello World" {
		t.Errorf("original model changed: %q", got)
	}
}

func TestReplaceRangeErrors(t *testing.T) {
	m := mustModel(t, mustBlock(t, "a", Unstyled, "abc"))

	if _, err := ReplaceRange(m, "zz", Range{0, 1}, ""); !errors.Is(err, ErrUnknownBlock) {
		t.Errorf("expected ErrUnknownBlock, got %v", err)
	}
	for _, r := range []Range{{-1, 1}, {2, 1}, {0, 4}, {4, 4}} {
		if got, err := ReplaceRange(m, "a", r, "x"); !errors.Is(err, ErrInvalidRange) || got != nil {
			t.Errorf("range %s: expected ErrInvalidRange and nil model, got %v, %v", r, got, err)
		}
	}
}

func TestReplaceRangeStylePolicy(t *testing.T) {
	tests := []struct {
		name  string
		style StyleRange
		edit  Range
		text  string
		want  []StyleRange
	}{
		{"after edit shifts", StyleRange{Bold, 6, 9}, Range{1, 3}, "xxxx", []StyleRange{{Bold, 8, 11}}},
		{"before edit unchanged", StyleRange{Bold, 0, 2}, Range{4, 6}, "", []StyleRange{{Bold, 0, 2}}},
		{"inside deletion dropped", StyleRange{Bold, 2, 4}, Range{1, 5}, "", nil},
		{"straddles start clipped", StyleRange{Bold, 0, 4}, Range{2, 6}, "", []StyleRange{{Bold, 0, 2}}},
		{"straddles end clipped", StyleRange{Bold, 3, 8}, Range{1, 5}, "", []StyleRange{{Bold, 1, 4}}},
		{"contains insertion grows", StyleRange{Bold, 1, 5}, Range{3, 3}, "ab", []StyleRange{{Bold, 1, 7}}},
		{"ends at insertion stays", StyleRange{Bold, 1, 3}, Range{3, 3}, "ab", []StyleRange{{Bold, 1, 3}}},
		{"starts at insertion shifts", StyleRange{Bold, 3, 5}, Range{3, 3}, "ab", []StyleRange{{Bold, 5, 7}}},
		{"replacement inside grows", StyleRange{Bold, 0, 9}, Range{2, 4}, "xyz", []StyleRange{{Bold, 0, 10}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mustModel(t, mustBlock(t, "a", Unstyled, "0123456789", tt.style))
			m2, err := ReplaceRange(m, "a", tt.edit, tt.text)
			if err != nil {
				t.Fatalf("ReplaceRange: %v", err)
			}
			if got := m2.First().Styles(); !slices.Equal(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestReplaceRangeInverseRestoresText(t *testing.T) {
	texts := []string{"", "a", "hello world", "ünïcödé text"}
	for _, text := range texts {
		m := mustModel(t, mustBlock(t, "a", Unstyled, text))
		n := m.First().Len()
		for start := 0; start <= n; start++ {
			for end := start; end <= n; end++ {
				for _, ins := range []string{"", "X", "✓✓"} {
					r := Range{start, end}
					old := m.First().Slice(r)
					m2, err := ReplaceRange(m, "a", r, ins)
					if err != nil {
						t.Fatalf("ReplaceRange(%s, %q): %v", r, ins, err)
					}
					back := Range{start, start + len([]rune(ins))}
					m3, err := ReplaceRange(m2, "a", back, old)
					if err != nil {
						t.Fatalf("inverse ReplaceRange(%s, %q): %v", back, old, err)
					}
					if m3.First().Text() != text {
						t.Errorf("text %q range %s insert %q: got %q after inverse", text, r, ins, m3.First().Text())
					}
				}
			}
		}
	}
}

func TestReplaceRangeStyled(t *testing.T) {
	m := mustModel(t, mustBlock(t, "a", Unstyled, "abcd", StyleRange{Bold, 0, 4}))

	m2, err := ReplaceRangeStyled(m, "a", Range{2, 2}, "XY", []InlineStyle{Red})
	if err != nil {
		t.Fatalf("ReplaceRangeStyled: %v", err)
	}
	want := []StyleRange{{Bold, 0, 2}, {Bold, 4, 6}, {Red, 2, 4}}
	if got := m2.First().Styles(); !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSetBlockType(t *testing.T) {
	m := mustModel(t, mustBlock(t, "a", Unstyled, "title", StyleRange{Bold, 0, 5}))

	m2, err := SetBlockType(m, "a", HeaderOne)
	if err != nil {
		t.Fatalf("SetBlockType: %v", err)
	}
	b := m2.First()
	if b.Type() != HeaderOne {
		t.Errorf("expected header-one, got %s", b.Type())
	}
	if b.Text() != "title" || !slices.Equal(b.Styles(), []StyleRange{{Bold, 0, 5}}) {
		t.Errorf("text or styles changed: %s", b)
	}
	if m.First().Type() != Unstyled {
		t.Error("original model changed")
	}

	if _, err := SetBlockType(m, "missing", HeaderOne); !errors.Is(err, ErrUnknownBlock) {
		t.Errorf("expected ErrUnknownBlock, got %v", err)
	}
}

func TestToggleInlineStyle(t *testing.T) {
	tests := []struct {
		name   string
		styles []StyleRange
		r      Range
		want   []StyleRange
	}{
		{"adds to unstyled", nil, Range{1, 3}, []StyleRange{{Bold, 1, 3}}},
		{"removes when fully covered", []StyleRange{{Bold, 0, 6}}, Range{2, 4}, []StyleRange{{Bold, 0, 2}, {Bold, 4, 6}}},
		{"extends partial overlap", []StyleRange{{Bold, 0, 2}, {Bold, 4, 5}}, Range{1, 6}, []StyleRange{{Bold, 0, 6}}},
		{"merges adjacent", []StyleRange{{Bold, 0, 2}}, Range{2, 4}, []StyleRange{{Bold, 0, 4}}},
		{"other styles untouched", []StyleRange{{Red, 0, 6}}, Range{0, 6}, []StyleRange{{Bold, 0, 6}, {Red, 0, 6}}},
		{"empty range no-op", []StyleRange{{Red, 0, 1}}, Range{3, 3}, []StyleRange{{Red, 0, 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mustModel(t, mustBlock(t, "a", Unstyled, "abcdef", tt.styles...))
			m2, err := ToggleInlineStyle(m, "a", tt.r, Bold)
			if err != nil {
				t.Fatalf("ToggleInlineStyle: %v", err)
			}
			if got := m2.First().Styles(); !slices.Equal(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestToggleInlineStyleTwiceRestores(t *testing.T) {
	m := mustModel(t, mustBlock(t, "a", Unstyled, "abcdef", StyleRange{Bold, 0, 2}))
	m2, err := ToggleInlineStyle(m, "a", Range{0, 6}, Bold)
	if err != nil {
		t.Fatal(err)
	}
	m3, err := ToggleInlineStyle(m2, "a", Range{0, 6}, Bold)
	if err != nil {
		t.Fatal(err)
	}
	if got := m3.First().Styles(); len(got) != 0 {
		t.Errorf("expected no styles after double toggle, got %v", got)
	}
}

func TestToggleInlineStyleOutOfBounds(t *testing.T) {
	m := mustModel(t, mustBlock(t, "a", Unstyled, "abc"))
	if _, err := ToggleInlineStyle(m, "a", Range{1, 9}, Bold); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}

func TestSplitBlock(t *testing.T) {
	m := mustModel(t, mustBlock(t, "a", HeaderOne, "abcdef", StyleRange{Bold, 2, 5}))

	m2, err := SplitBlock(m, "a", 3, "b")
	if err != nil {
		t.Fatalf("SplitBlock: %v", err)
	}
	if m2.Len() != 2 {
		t.Fatalf("expected 2 blocks, got %d", m2.Len())
	}
	head, tail := m2.BlockAt(0), m2.BlockAt(1)
	if head.Key() != "a" || head.Text() != "abc" || !slices.Equal(head.Styles(), []StyleRange{{Bold, 2, 3}}) {
		t.Errorf("unexpected head %s", head)
	}
	if tail.Key() != "b" || tail.Text() != "def" || tail.Type() != HeaderOne || !slices.Equal(tail.Styles(), []StyleRange{{Bold, 0, 2}}) {
		t.Errorf("unexpected tail %s", tail)
	}
	if m2.Index("b") != 1 {
		t.Errorf("expected index 1 for new block, got %d", m2.Index("b"))
	}
}

func TestSplitBlockAtEndStartsParagraph(t *testing.T) {
	m := mustModel(t, mustBlock(t, "a", HeaderOne, "Title"))
	m2, err := SplitBlock(m, "a", 5, "a")
	if err != nil {
		t.Fatalf("SplitBlock: %v", err)
	}
	tail := m2.BlockAt(1)
	if tail.Type() != Unstyled {
		t.Errorf("expected unstyled tail, got %s", tail.Type())
	}
	if tail.Key() == "a" {
		t.Error("taken key should be replaced with a fresh one")
	}
}

func TestMergeWithPrevious(t *testing.T) {
	m := mustModel(t,
		mustBlock(t, "a", Blockquote, "ab", StyleRange{Red, 0, 2}),
		mustBlock(t, "b", Unstyled, "cd", StyleRange{Red, 0, 1}),
	)

	m2, at, err := MergeWithPrevious(m, "b")
	if err != nil {
		t.Fatalf("MergeWithPrevious: %v", err)
	}
	if at != 2 {
		t.Errorf("expected join offset 2, got %d", at)
	}
	if m2.Len() != 1 {
		t.Fatalf("expected 1 block, got %d", m2.Len())
	}
	b := m2.First()
	if b.Key() != "a" || b.Type() != Blockquote || b.Text() != "abcd" {
		t.Errorf("unexpected merged block %s", b)
	}
	if !slices.Equal(b.Styles(), []StyleRange{{Red, 0, 3}}) {
		t.Errorf("unexpected merged styles %v", b.Styles())
	}

	if _, _, err := MergeWithPrevious(m, "a"); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange for first block, got %v", err)
	}
}

func TestDeleteSpanAcrossBlocks(t *testing.T) {
	m := mustModel(t,
		mustBlock(t, "a", HeaderOne, "hello", StyleRange{Bold, 0, 5}),
		mustBlock(t, "b", Unstyled, "middle"),
		mustBlock(t, "c", Unstyled, "world", StyleRange{Red, 3, 5}),
	)

	m2, err := DeleteSpan(m, "a", 2, "c", 3)
	if err != nil {
		t.Fatalf("DeleteSpan: %v", err)
	}
	if m2.Len() != 1 {
		t.Fatalf("expected 1 block, got %d", m2.Len())
	}
	b := m2.First()
	if b.Text() != "held" || b.Type() != HeaderOne {
		t.Errorf("unexpected block %s", b)
	}
	want := []StyleRange{{Bold, 0, 2}, {Red, 2, 4}}
	if !slices.Equal(b.Styles(), want) {
		t.Errorf("expected %v, got %v", want, b.Styles())
	}

	if _, err := DeleteSpan(m, "c", 0, "a", 1); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange for reversed span, got %v", err)
	}
}

func TestStylesAt(t *testing.T) {
	b := mustBlock(t, "a", Unstyled, "abcdef", StyleRange{Bold, 0, 3}, StyleRange{Red, 2, 4})

	tests := []struct {
		offset int
		want   []InlineStyle
	}{
		{0, []InlineStyle{Bold}},
		{2, []InlineStyle{Bold, Red}},
		{3, []InlineStyle{Red}},
		{5, nil},
	}
	for _, tt := range tests {
		if got := b.StylesAt(tt.offset); !slices.Equal(got, tt.want) {
			t.Errorf("offset %d: expected %v, got %v", tt.offset, tt.want, got)
		}
	}
}

func TestModelEqual(t *testing.T) {
	a := mustModel(t, mustBlock(t, "a", Unstyled, "x", StyleRange{Bold, 0, 1}))
	b := mustModel(t, mustBlock(t, "a", Unstyled, "x", StyleRange{Bold, 0, 1}))
	if !a.Equal(b) {
		t.Error("expected structurally equal models")
	}
	if a.Equal(b.WithEntityMap([]byte(`{"0":{}}`))) {
		t.Error("entity map should take part in equality")
	}
	c := mustModel(t, mustBlock(t, "a", HeaderOne, "x", StyleRange{Bold, 0, 1}))
	if a.Equal(c) {
		t.Error("block type should take part in equality")
	}
}

func TestPlainText(t *testing.T) {
	m := mustModel(t, mustBlock(t, "a", Unstyled, "one"), mustBlock(t, "b", Unstyled, "two"))
	if got := m.PlainText(); got != "one\ntwo" {
		t.Errorf("expected 'one\\ntwo', got %q", got)
	}
}
