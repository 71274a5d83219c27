package phonetics

import (
	"strings"
	"unicode"
)

// IsHiragana reports whether r is in the hiragana block.
func IsHiragana(r rune) bool {
	return r >= 0x3040 && r <= 0x309F
}

// IsKatakana reports whether r is in the katakana block.
func IsKatakana(r rune) bool {
	return r >= 0x30A0 && r <= 0x30FF
}

// foldKatakana maps a katakana letter to its hiragana counterpart by the
// fixed block offset. Characters outside U+30A1..U+30F6 pass unchanged.
func foldKatakana(r rune) rune {
	if r >= 0x30A1 && r <= 0x30F6 {
		return r - 0x60
	}
	return r
}

// stripWhitespace removes all whitespace, keeping everything else intact.
func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}

// FoldKana produces the Japanese comparison key: whitespace stripped,
// katakana folded to hiragana, hiragana kept, the long-vowel mark ー and any
// other character dropped.
func FoldKana(s string) string {
	var b strings.Builder
	for _, r := range stripWhitespace(s) {
		switch {
		case IsKatakana(r):
			if r == 'ー' {
				continue
			}
			b.WriteRune(foldKatakana(r))
		case IsHiragana(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}
