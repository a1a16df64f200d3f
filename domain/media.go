package domain

import "time"

// Media kinds and statuses.
const (
	MediaMovie  = "movie"
	MediaSeries = "series"

	WatchStatusToWatch  = "to-watch"
	WatchStatusWatching = "watching"
	WatchStatusWatched  = "watched"

	MediaBook    = "book"
	MediaPodcast = "podcast"

	ConsumeStatusToConsume = "to-consume"
	ConsumeStatusConsuming = "consuming"
	ConsumeStatusConsumed  = "consumed"
)

// MovieSeries is a watch-list entry.
type MovieSeries struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ValidMovieSeriesType reports whether t is movie or series.
func ValidMovieSeriesType(t string) bool {
	return t == MediaMovie || t == MediaSeries
}

// ValidWatchStatus reports whether s is an accepted watch-list status.
func ValidWatchStatus(s string) bool {
	switch s {
	case WatchStatusToWatch, WatchStatusWatching, WatchStatusWatched:
		return true
	}
	return false
}

// BookPodcast is a reading/listening list entry.
type BookPodcast struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidBookPodcastType reports whether t is book or podcast.
func ValidBookPodcastType(t string) bool {
	return t == MediaBook || t == MediaPodcast
}

// ValidConsumeStatus reports whether s is an accepted reading-list status.
func ValidConsumeStatus(s string) bool {
	switch s {
	case ConsumeStatusToConsume, ConsumeStatusConsuming, ConsumeStatusConsumed:
		return true
	}
	return false
}
