package types

import (
	"github.com/killallgit/voice-search-api/internal/services/clipcache"
	"github.com/killallgit/voice-search-api/internal/services/jobs"
	"github.com/killallgit/voice-search-api/internal/services/library"
	"github.com/killallgit/voice-search-api/internal/services/search"
	"github.com/killallgit/voice-search-api/internal/store"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	Store          *store.Store
	LibraryService library.Service
	SearchService  search.Service
	JobService     jobs.Service
	ClipCache      clipcache.Service
}
