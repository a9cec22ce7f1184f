package model

import "strings"

type VideoKind string

const (
	VideoDirectFile     VideoKind = "direct_file"     // проигрывается тегом <video>
	VideoEmbeddedPlayer VideoKind = "embedded_player" // сторонний плеер в iframe
)

// S3Scheme объекты в собственном бакете, подписываются при выдаче
const S3Scheme = "s3://"

// VideoSource результат классификации video_url урока
type VideoSource struct {
	Kind        VideoKind `json:"kind"`
	URL         string    `json:"url"`          // исходный video_url
	PlaybackURL string    `json:"playback_url"` // что отдаётся плееру
}

// ResolveVideo классифицирует ссылку на видео.
// storageHost - токен хоста файлового хранилища (например "supabase").
func ResolveVideo(rawURL, storageHost string) VideoSource {
	if strings.HasPrefix(rawURL, S3Scheme) ||
		strings.Contains(rawURL, ".mp4") ||
		(storageHost != "" && strings.Contains(rawURL, storageHost)) {
		return VideoSource{Kind: VideoDirectFile, URL: rawURL, PlaybackURL: rawURL}
	}

	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return VideoSource{Kind: VideoEmbeddedPlayer, URL: rawURL, PlaybackURL: rawURL + sep + "autoplay=1"}
}

// IsStorageObject видео лежит в собственном S3 бакете
func (v VideoSource) IsStorageObject() bool {
	return v.Kind == VideoDirectFile && strings.HasPrefix(v.URL, S3Scheme)
}

// StorageKey возвращает ключ объекта для s3:// ссылок
func (v VideoSource) StorageKey() string {
	return strings.TrimPrefix(v.URL, S3Scheme)
}
