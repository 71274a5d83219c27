// Package search resolves raw queries into ranked clip results. The query is
// projected into the same normalized symbol space as the clips' cached
// projections, then scored by containment and trigram similarity.
package search

import (
	"context"
	"sort"
	"strings"

	"github.com/killallgit/voice-search-api/internal/models"
	"github.com/killallgit/voice-search-api/internal/store"
	"github.com/killallgit/voice-search-api/pkg/phonetics"
)

// Mode selects the comparison space for a search.
type Mode string

const (
	ModeBasic   Mode = "basic"    // literal jamo + alphanumerics
	ModeKoSound Mode = "ko_sound" // Korean pronunciation
	ModeJpSound Mode = "jp_sound" // Japanese kana reading
)

// ParseMode maps a raw mode string to a Mode, falling back to basic.
func ParseMode(raw string) Mode {
	switch Mode(strings.ToLower(raw)) {
	case ModeKoSound:
		return ModeKoSound
	case ModeJpSound:
		return ModeJpSound
	default:
		return ModeBasic
	}
}

// Params are the inputs of one search request.
type Params struct {
	Query     string
	ProfileID string // empty = all profiles
	Mode      Mode
	Limit     int
}

// Service ranks clips against a query.
type Service interface {
	Search(ctx context.Context, params Params) ([]models.Clip, error)
}

// ServiceImpl implements Service against the clip store.
type ServiceImpl struct {
	store *store.Store
}

// NewService creates a new search service
func NewService(s *store.Store) *ServiceImpl {
	return &ServiceImpl{store: s}
}

// DefaultLimit bounds result sets when the caller does not.
const DefaultLimit = 50

// Search projects the query per the mode and returns ranked matches. An
// empty normalized query returns the most recent clips instead of scoring.
func (s *ServiceImpl) Search(ctx context.Context, params Params) ([]models.Clip, error) {
	if params.Limit <= 0 {
		params.Limit = DefaultLimit
	}

	data, err := s.store.View()
	if err != nil {
		return nil, err
	}

	clips := data.Clips
	if params.ProfileID != "" {
		filtered := clips[:0:0]
		for _, c := range clips {
			if c.ProfileID == params.ProfileID {
				filtered = append(filtered, c)
			}
		}
		clips = filtered
	}

	needle := normalizeQuery(params.Query, params.Mode)
	if needle == "" {
		sort.SliceStable(clips, func(i, j int) bool {
			return clips[i].CreatedAt.After(clips[j].CreatedAt)
		})
		return truncate(clips, params.Limit), nil
	}

	type scored struct {
		clip  models.Clip
		score int
	}
	var results []scored
	for _, c := range clips {
		hay, ok := haystack(c, params.Mode)
		if !ok {
			continue
		}
		if sc := Score(needle, hay); sc > 0 {
			results = append(results, scored{clip: c, score: sc})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		return results[i].clip.CreatedAt.After(results[j].clip.CreatedAt)
	})

	out := make([]models.Clip, 0, len(results))
	for _, r := range results {
		out = append(out, r.clip)
	}
	return truncate(out, params.Limit), nil
}

// normalizeQuery projects the raw query into the mode's comparison space.
// For Japanese mode the query script is auto-detected to pick the
// transliteration path.
func normalizeQuery(query string, mode Mode) string {
	switch mode {
	case ModeKoSound:
		return phonetics.NormalizePronunciation(query)
	case ModeJpSound:
		return projectJapanese(query)
	default:
		return phonetics.NormalizeBasic(query)
	}
}

// projectJapanese picks the transliteration path by the query's script:
// kana wins, then Latin letters as romaji, then hangul as a best-effort
// phonetic guess. No recognizable script normalizes to empty.
func projectJapanese(query string) string {
	hasKana, hasLatin, hasHangul := false, false, false
	for _, r := range query {
		switch {
		case phonetics.IsHiragana(r) || phonetics.IsKatakana(r):
			hasKana = true
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			hasLatin = true
		case phonetics.IsHangulSyllable(r):
			hasHangul = true
		}
	}

	switch {
	case hasKana:
		return phonetics.FoldKana(query)
	case hasLatin:
		return phonetics.RomajiToHiragana(query)
	case hasHangul:
		return phonetics.HangulToHiraganaGuess(query)
	default:
		return ""
	}
}

// haystack returns the clip's projection for the mode. The cached field is
// authoritative; recomputing from the transcript is a compatibility fallback
// for records imported without precomputed projections.
func haystack(c models.Clip, mode Mode) (string, bool) {
	switch mode {
	case ModeKoSound:
		if !containsHangul(c.Transcript) {
			return "", false
		}
		if c.KoPronNorm != "" {
			return c.KoPronNorm, true
		}
		return phonetics.NormalizePronunciation(c.Transcript), true
	case ModeJpSound:
		hay := c.JpKanaNorm
		if hay == "" {
			hay = phonetics.FoldKana(c.Transcript)
		}
		if hay == "" {
			return "", false
		}
		return hay, true
	default:
		if c.Norm != "" {
			return c.Norm, true
		}
		return phonetics.NormalizeBasic(c.Transcript), true
	}
}

func containsHangul(s string) bool {
	for _, r := range s {
		if phonetics.IsHangulSyllable(r) {
			return true
		}
	}
	return false
}

func truncate(clips []models.Clip, limit int) []models.Clip {
	if len(clips) > limit {
		clips = clips[:limit]
	}
	return clips
}
