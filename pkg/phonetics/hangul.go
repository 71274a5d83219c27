// Package phonetics normalizes Korean and Japanese text into comparable
// phonetic symbol sequences. Korean syllables are decomposed into jamo with
// optional pronunciation rewriting (liaison, nasal assimilation); Japanese
// text is folded into hiragana, with romaji and hangul transliteration paths
// for queries written in a different script.
package phonetics

import (
	"strings"
	"unicode"
)

// Jamo lookup tables for decomposing precomposed syllables (U+AC00..U+D7A3).
// 19 leads, 21 vowels, 28 trailing slots (index 0 = no trailing consonant).
var (
	leadJamo  = []rune("ㄱㄲㄴㄷㄸㄹㅁㅂㅃㅅㅆㅇㅈㅉㅊㅋㅌㅍㅎ")
	vowelJamo = []rune("ㅏㅐㅑㅒㅓㅔㅕㅖㅗㅘㅙㅚㅛㅜㅝㅞㅟㅠㅡㅢㅣ")
	trailJamo = append([]rune{0}, []rune("ㄱㄲㄳㄴㄵㄶㄷㄹㄺㄻㄼㄽㄾㄿㅀㅁㅂㅄㅅㅆㅇㅈㅊㅋㅌㅍㅎ")...)
)

const (
	hangulBase = 0xAC00
	hangulEnd  = 0xD7A3
)

// IsHangulSyllable reports whether r is a precomposed hangul syllable block.
func IsHangulSyllable(r rune) bool {
	return r >= hangulBase && r <= hangulEnd
}

// Decompose splits a precomposed syllable into lead, vowel and trailing jamo.
// trailing is 0 when the syllable has no trailing consonant.
func Decompose(r rune) (lead, vowel, trailing rune, ok bool) {
	if !IsHangulSyllable(r) {
		return 0, 0, 0, false
	}
	idx := int(r - hangulBase)
	return leadJamo[idx/588], vowelJamo[(idx%588)/28], trailJamo[idx%28], true
}

const koreanPunctuation = "\"'.,!?(){}[]:;~`@#$%^&*+=/\\|<>—-"

// sanitizeKorean lowercases the input, strips all whitespace and drops the
// fixed punctuation set.
func sanitizeKorean(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsSpace(r) || strings.ContainsRune(koreanPunctuation, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NormalizeBasic produces the literal comparison key: sanitized input with
// every hangul syllable decomposed into flat jamo and alphanumerics passed
// through lowercased. All other characters are dropped.
func NormalizeBasic(s string) string {
	var b strings.Builder
	for _, r := range sanitizeKorean(s) {
		if lead, vowel, trailing, ok := Decompose(r); ok {
			b.WriteRune(lead)
			b.WriteRune(vowel)
			if trailing != 0 {
				b.WriteRune(trailing)
			}
			continue
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
