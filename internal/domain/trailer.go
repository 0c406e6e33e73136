package domain

import (
	"context"
	"net/url"
)

const (
	youtubeSite     = "YouTube"
	trailerType     = "Trailer"
	youtubeWatchURL = "https://www.youtube.com/watch"
)

// Video is a single entry of a provider's video list for a movie.
type Video struct {
	Key      string
	Name     string
	Site     string
	Type     string
	Official bool
}

func (v Video) isYouTubeTrailer() bool {
	return v.Site == youtubeSite && v.Type == trailerType
}

type VideoProvider interface {
	MovieVideos(ctx context.Context, tmdbID int) ([]Video, error)
}

// SelectTrailer picks the first official YouTube trailer, falling back to the first
// YouTube trailer of any kind.
func SelectTrailer(videos []Video) (string, bool) {
	for _, v := range videos {
		if v.isYouTubeTrailer() && v.Official {
			return WatchURL(v.Key), true
		}
	}

	for _, v := range videos {
		if v.isYouTubeTrailer() {
			return WatchURL(v.Key), true
		}
	}

	return "", false
}

func WatchURL(key string) string {
	return youtubeWatchURL + "?v=" + url.QueryEscape(key)
}
