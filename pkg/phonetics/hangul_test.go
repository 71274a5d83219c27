package phonetics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeBasic(t *testing.T) {
	t.Run("decomposes syllables into flat jamo", func(t *testing.T) {
		assert.Equal(t, "ㅇㅏㄴㄴㅕㅇ", NormalizeBasic("안녕"))
		assert.Equal(t, "ㅂㅏㅂㅇㅡㄹ", NormalizeBasic("밥을"))
	})

	t.Run("invariant under whitespace and case", func(t *testing.T) {
		inputs := []string{"AB안녕", "ab 안녕", "  Ab안 녕\t", "a B 안\n녕"}
		for _, in := range inputs {
			assert.Equal(t, "abㅇㅏㄴㄴㅕㅇ", NormalizeBasic(in), "input %q", in)
		}
	})

	t.Run("drops punctuation", func(t *testing.T) {
		assert.Equal(t, "ㅇㅏㄴㄴㅕㅇ", NormalizeBasic(`"안녕?!..."`))
	})

	t.Run("passes alphanumerics lowercased", func(t *testing.T) {
		assert.Equal(t, "abc123", NormalizeBasic("ABC 123"))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, "", NormalizeBasic(""))
		assert.Equal(t, "", NormalizeBasic("   ?!  "))
	})
}

func TestNormalizePronunciation(t *testing.T) {
	t.Run("liaison moves trailing into null onset", func(t *testing.T) {
		// 밥을: ㅂ moves into the following ㅇ slot
		assert.Equal(t, "ㅂㅏㅂㅡㄹ", NormalizePronunciation("밥을"))
	})

	t.Run("liaison releases cluster's last consonant", func(t *testing.T) {
		// 읽어: ㄺ releases ㄹ
		assert.Equal(t, "ㅇㅣㄹㅓ", NormalizePronunciation("읽어"))
	})

	t.Run("velar nasal assimilation", func(t *testing.T) {
		// 국물: ㄱ before ㅁ becomes ㅇ
		assert.Equal(t, "ㄱㅜㅇㅁㅜㄹ", NormalizePronunciation("국물"))
	})

	t.Run("labial nasal assimilation", func(t *testing.T) {
		// 밥만: ㅂ before ㅁ becomes ㅁ
		assert.Equal(t, "ㅂㅏㅁㅁㅏㄴ", NormalizePronunciation("밥만"))
	})

	t.Run("lateralization in both orders", func(t *testing.T) {
		// 신라 -> ㄹㄹ, 설날 -> ㄹㄹ
		assert.Equal(t, "ㅅㅣㄹㄹㅏ", NormalizePronunciation("신라"))
		assert.Equal(t, "ㅅㅓㄹㄹㅏㄹ", NormalizePronunciation("설날"))
	})

	t.Run("final cluster collapses to released consonant", func(t *testing.T) {
		assert.Equal(t, "ㄷㅏㄹ", NormalizePronunciation("닭"))
	})

	t.Run("non-korean runs pass through untouched", func(t *testing.T) {
		assert.Equal(t, "abc", NormalizePronunciation("ABC"))
		// alphanumeric between syllables blocks liaison
		assert.Equal(t, "ㅂㅏㅂxㅇㅡㄹ", NormalizePronunciation("밥x을"))
	})
}

func TestDecompose(t *testing.T) {
	lead, vowel, trailing, ok := Decompose('한')
	assert.True(t, ok)
	assert.Equal(t, 'ㅎ', lead)
	assert.Equal(t, 'ㅏ', vowel)
	assert.Equal(t, 'ㄴ', trailing)

	lead, vowel, trailing, ok = Decompose('가')
	assert.True(t, ok)
	assert.Equal(t, 'ㄱ', lead)
	assert.Equal(t, 'ㅏ', vowel)
	assert.Equal(t, rune(0), trailing)

	_, _, _, ok = Decompose('a')
	assert.False(t, ok)
}
