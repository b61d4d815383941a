package assets

import (
	"testing"

	"github.com/1000nettles/heywait/settings"
)

func TestMarkerImagesEmbedded(t *testing.T) {
	s := settings.Default()
	for _, path := range []string{s.ImageFor(false), s.ImageFor(true), "assets/" + s.ImageFor(true)} {
		b, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile(%s): %v", path, err)
		}
		if len(b) < 8 || string(b[1:4]) != "PNG" {
			t.Fatalf("%s is not a png", path)
		}
	}
}

func TestCleanAssetPath(t *testing.T) {
	tests := map[string]string{
		"":                         "",
		"img/a.png":                "img/a.png",
		"assets/img/a.png":         "img/a.png",
		"/home/x/assets/img/a.png": "img/a.png",
		"/elsewhere/a.png":         "a.png",
	}
	for in, want := range tests {
		if got := cleanAssetPath(in); got != want {
			t.Fatalf("cleanAssetPath(%q) = %q, want %q", in, got, want)
		}
	}
}
