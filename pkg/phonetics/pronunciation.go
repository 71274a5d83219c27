package phonetics

import (
	"strings"
	"unicode"
)

// trailingRelease maps each trailing consonant (clusters included) to the
// single consonant actually released into a following null-onset syllable.
var trailingRelease = map[rune]rune{
	'ㄱ': 'ㄱ', 'ㄲ': 'ㄲ', 'ㄳ': 'ㄱ',
	'ㄴ': 'ㄴ', 'ㄵ': 'ㄴ', 'ㄶ': 'ㄴ',
	'ㄷ': 'ㄷ',
	'ㄹ': 'ㄹ', 'ㄺ': 'ㄹ', 'ㄻ': 'ㄹ', 'ㄼ': 'ㄹ', 'ㄽ': 'ㄹ', 'ㄾ': 'ㄹ', 'ㄿ': 'ㄹ', 'ㅀ': 'ㄹ',
	'ㅁ': 'ㅁ',
	'ㅂ': 'ㅂ', 'ㅄ': 'ㅂ',
	'ㅅ': 'ㅅ', 'ㅆ': 'ㅆ',
	'ㅇ': 'ㅇ',
	'ㅈ': 'ㅈ', 'ㅊ': 'ㅊ',
	'ㅋ': 'ㅋ', 'ㅌ': 'ㅌ', 'ㅍ': 'ㅍ',
	'ㅎ': 'ㅎ',
}

// Place-of-articulation classes for nasal assimilation.
var (
	velarTrailing    = map[rune]bool{'ㄱ': true, 'ㅋ': true, 'ㄲ': true, 'ㄳ': true, 'ㄺ': true}
	alveolarTrailing = map[rune]bool{'ㄷ': true, 'ㅅ': true, 'ㅆ': true, 'ㅈ': true, 'ㅊ': true, 'ㅌ': true, 'ㅎ': true}
	labialTrailing   = map[rune]bool{'ㅂ': true, 'ㅍ': true, 'ㅄ': true}
)

// syllable is one unit of the pronunciation rewrite passes: either a
// decomposed hangul block or a pass-through alphanumeric character.
type syllable struct {
	hangul   bool
	lead     rune
	vowel    rune
	trailing rune // 0 = none
	other    rune // set when hangul is false
}

// simplifyTrailing collapses a trailing cluster to its released consonant.
func simplifyTrailing(trailing rune) rune {
	if trailing == 0 {
		return 0
	}
	if rep, ok := trailingRelease[trailing]; ok {
		return rep
	}
	return trailing
}

// decomposeSyllables sanitizes the input and splits it into syllable records.
// Non-hangul alphanumerics become pass-through tokens; everything else is
// dropped.
func decomposeSyllables(s string) []syllable {
	var items []syllable
	for _, r := range sanitizeKorean(s) {
		if lead, vowel, trailing, ok := Decompose(r); ok {
			items = append(items, syllable{hangul: true, lead: lead, vowel: vowel, trailing: trailing})
			continue
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			items = append(items, syllable{other: r})
		}
	}
	return items
}

// applyLiaison moves a syllable-final consonant into the onset of a following
// null-onset (ㅇ) syllable. Clusters move their released consonant only.
func applyLiaison(items []syllable) {
	for i := 0; i+1 < len(items); i++ {
		a, b := &items[i], &items[i+1]
		if !a.hangul || !b.hangul {
			continue
		}
		if a.trailing == 0 || b.lead != 'ㅇ' {
			continue
		}
		move, ok := trailingRelease[a.trailing]
		if !ok {
			continue
		}
		b.lead = move
		a.trailing = 0
	}
}

// applyAssimilation rewrites trailing consonants before nasal onsets to their
// nasal homologue, and handles the ㄴ/ㄹ pair which surfaces as ㄹㄹ in either
// order. Must run after applyLiaison: liaison can clear trailing consonants
// and create the adjacencies this pass inspects.
func applyAssimilation(items []syllable) {
	for i := 0; i+1 < len(items); i++ {
		a, b := &items[i], &items[i+1]
		if !a.hangul || !b.hangul {
			continue
		}
		if a.trailing == 0 {
			continue
		}

		released := simplifyTrailing(a.trailing)
		if released == 'ㄴ' && b.lead == 'ㄹ' {
			a.trailing = 'ㄹ'
			b.lead = 'ㄹ'
			continue
		}
		if released == 'ㄹ' && b.lead == 'ㄴ' {
			a.trailing = 'ㄹ'
			b.lead = 'ㄹ'
			continue
		}

		if b.lead != 'ㄴ' && b.lead != 'ㅁ' {
			continue
		}
		switch {
		case velarTrailing[a.trailing]:
			a.trailing = 'ㅇ'
		case alveolarTrailing[a.trailing]:
			a.trailing = 'ㄴ'
		case labialTrailing[a.trailing]:
			a.trailing = 'ㅁ'
		}
	}
}

// serializeSyllables flattens syllable records back into a jamo sequence.
func serializeSyllables(items []syllable) string {
	var b strings.Builder
	for _, it := range items {
		if !it.hangul {
			b.WriteRune(it.other)
			continue
		}
		b.WriteRune(it.lead)
		b.WriteRune(it.vowel)
		if it.trailing != 0 {
			b.WriteRune(it.trailing)
		}
	}
	return b.String()
}

// NormalizePronunciation produces the Korean pronunciation comparison key:
// decomposition followed by liaison and nasal assimilation, with every
// surviving trailing cluster collapsed to its released consonant.
func NormalizePronunciation(s string) string {
	items := decomposeSyllables(s)
	applyLiaison(items)
	applyAssimilation(items)

	for i := range items {
		if items[i].hangul {
			items[i].trailing = simplifyTrailing(items[i].trailing)
		}
	}

	return serializeSyllables(items)
}
