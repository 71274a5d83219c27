package phonetics

import "strings"

// romajiPair is one entry of the ordered transliteration table.
type romajiPair struct {
	key  string
	kana string
}

// romajiTable is tried in order at each scan position. Palatalized 3-letter
// keys come before plain consonant-vowel keys so "kya" never mis-segments
// into "k" + "ya".
var romajiTable = []romajiPair{
	{"kya", "きゃ"}, {"kyu", "きゅ"}, {"kyo", "きょ"},
	{"gya", "ぎゃ"}, {"gyu", "ぎゅ"}, {"gyo", "ぎょ"},
	{"sha", "しゃ"}, {"shu", "しゅ"}, {"sho", "しょ"},
	{"sya", "しゃ"}, {"syu", "しゅ"}, {"syo", "しょ"},
	{"ja", "じゃ"}, {"ju", "じゅ"}, {"jo", "じょ"},
	{"jya", "じゃ"}, {"jyu", "じゅ"}, {"jyo", "じょ"},
	{"cha", "ちゃ"}, {"chu", "ちゅ"}, {"cho", "ちょ"},
	{"tya", "ちゃ"}, {"tyu", "ちゅ"}, {"tyo", "ちょ"},
	{"nya", "にゃ"}, {"nyu", "にゅ"}, {"nyo", "にょ"},
	{"hya", "ひゃ"}, {"hyu", "ひゅ"}, {"hyo", "ひょ"},
	{"bya", "びゃ"}, {"byu", "びゅ"}, {"byo", "びょ"},
	{"pya", "ぴゃ"}, {"pyu", "ぴゅ"}, {"pyo", "ぴょ"},
	{"mya", "みゃ"}, {"myu", "みゅ"}, {"myo", "みょ"},
	{"rya", "りゃ"}, {"ryu", "りゅ"}, {"ryo", "りょ"},
	{"shi", "し"}, {"chi", "ち"}, {"tsu", "つ"},
	{"fu", "ふ"},
	{"ka", "か"}, {"ki", "き"}, {"ku", "く"}, {"ke", "け"}, {"ko", "こ"},
	{"sa", "さ"}, {"si", "し"}, {"su", "す"}, {"se", "せ"}, {"so", "そ"},
	{"ta", "た"}, {"ti", "ち"}, {"tu", "つ"}, {"te", "て"}, {"to", "と"},
	{"na", "な"}, {"ni", "に"}, {"nu", "ぬ"}, {"ne", "ね"}, {"no", "の"},
	{"ha", "は"}, {"hi", "ひ"}, {"hu", "ふ"}, {"he", "へ"}, {"ho", "ほ"},
	{"ma", "ま"}, {"mi", "み"}, {"mu", "む"}, {"me", "め"}, {"mo", "も"},
	{"ya", "や"}, {"yu", "ゆ"}, {"yo", "よ"},
	{"ra", "ら"}, {"ri", "り"}, {"ru", "る"}, {"re", "れ"}, {"ro", "ろ"},
	{"wa", "わ"}, {"wo", "を"},
	{"ga", "が"}, {"gi", "ぎ"}, {"gu", "ぐ"}, {"ge", "げ"}, {"go", "ご"},
	{"za", "ざ"}, {"zi", "じ"}, {"zu", "ず"}, {"ze", "ぜ"}, {"zo", "ぞ"},
	{"da", "だ"}, {"di", "ぢ"}, {"du", "づ"}, {"de", "で"}, {"do", "ど"},
	{"ba", "ば"}, {"bi", "び"}, {"bu", "ぶ"}, {"be", "べ"}, {"bo", "ぼ"},
	{"pa", "ぱ"}, {"pi", "ぴ"}, {"pu", "ぷ"}, {"pe", "ぺ"}, {"po", "ぽ"},
	{"a", "あ"}, {"i", "い"}, {"u", "う"}, {"e", "え"}, {"o", "お"},
	{"n", "ん"},
}

// geminateConsonants are the letters whose doubling inserts the small っ.
const geminateConsonants = "kstphgzbdrjmc"

// RomajiToHiragana greedily transliterates ASCII romaji into hiragana.
// Non-letter characters are discarded before scanning; an unmatchable
// position is skipped one character at a time.
func RomajiToHiragana(s string) string {
	var letters []byte
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' {
			letters = append(letters, byte(r))
		}
	}
	if len(letters) == 0 {
		return ""
	}

	x := string(letters)
	var b strings.Builder
	for i := 0; i < len(x); {
		if i+1 < len(x) && x[i] == x[i+1] && strings.IndexByte(geminateConsonants, x[i]) >= 0 {
			b.WriteRune('っ')
			i++
			continue
		}
		matched := false
		for _, p := range romajiTable {
			if strings.HasPrefix(x[i:], p.key) {
				b.WriteString(p.kana)
				i += len(p.key)
				matched = true
				break
			}
		}
		if !matched {
			i++
		}
	}
	return b.String()
}

// hangulOnsetRomaji maps a syllable's lead consonant to a romaji onset.
var hangulOnsetRomaji = map[rune]string{
	'ㅇ': "", 'ㄱ': "g", 'ㄲ': "k", 'ㅋ': "k",
	'ㄴ': "n", 'ㄷ': "d", 'ㄸ': "t", 'ㅌ': "t",
	'ㄹ': "r", 'ㅁ': "m", 'ㅂ': "b", 'ㅃ': "p", 'ㅍ': "p",
	'ㅅ': "s", 'ㅆ': "s", 'ㅈ': "j", 'ㅉ': "ch", 'ㅊ': "ch",
	'ㅎ': "h",
}

// hangulVowelRomaji maps a syllable's vowel to a romaji rime.
var hangulVowelRomaji = map[rune]string{
	'ㅏ': "a", 'ㅐ': "e", 'ㅑ': "ya", 'ㅒ': "ya",
	'ㅓ': "o", 'ㅔ': "e", 'ㅕ': "yo", 'ㅖ': "ye",
	'ㅗ': "o", 'ㅘ': "wa", 'ㅙ': "we", 'ㅚ': "o",
	'ㅛ': "yo", 'ㅜ': "u", 'ㅝ': "wo", 'ㅞ': "we", 'ㅟ': "wi",
	'ㅠ': "yu", 'ㅡ': "u", 'ㅢ': "i", 'ㅣ': "i",
}

// HangulToHiraganaGuess projects Korean text into hiragana on a best-effort
// basis: each syllable's lead and vowel (trailing ignored) are mapped to a
// romaji approximation, ASCII letters pass through lowercased, and the
// resulting romaji is transliterated.
func HangulToHiraganaGuess(s string) string {
	var romaji strings.Builder
	for _, r := range stripWhitespace(s) {
		if lead, vowel, _, ok := Decompose(r); ok {
			romaji.WriteString(hangulOnsetRomaji[lead])
			romaji.WriteString(hangulVowelRomaji[vowel])
			continue
		}
		lower := r
		if r >= 'A' && r <= 'Z' {
			lower = r + ('a' - 'A')
		}
		if lower >= 'a' && lower <= 'z' {
			romaji.WriteRune(lower)
		}
	}
	return RomajiToHiragana(romaji.String())
}
