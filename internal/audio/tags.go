package audio

import (
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2"
)

// TrackTitle returns a display title for the song at path.
// MP3 files with ID3v2 artist/title frames yield "Artist - Title";
// everything else falls back to the file name without extension.
func TrackTitle(path string) string {
	fallback := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	if !strings.EqualFold(filepath.Ext(path), ".mp3") {
		return fallback
	}

	tag, err := id3v2.Open(path, id3v2.Options{
		Parse:       true,
		ParseFrames: []string{"Artist", "Title"},
	})
	if err != nil {
		return fallback
	}
	defer func() { _ = tag.Close() }()

	title := strings.TrimSpace(tag.Title())
	artist := strings.TrimSpace(tag.Artist())

	switch {
	case title != "" && artist != "":
		return artist + " - " + title
	case title != "":
		return title
	default:
		return fallback
	}
}
