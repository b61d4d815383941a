package render

import (
	"errors"
	"testing"
)

func TestMissingImageIsRemembered(t *testing.T) {
	key := "img/does-not-exist.png"
	if _, err := LoadImage(key); err == nil {
		t.Fatalf("expected error for %s", key)
	}
	if err := missingImage(key); err == nil {
		t.Fatalf("failure not cached")
	}

	want := errors.New("boom")
	registerMissing("other", want)
	if _, err := LoadImage("other"); !errors.Is(err, want) {
		t.Fatalf("err = %v, want cached error", err)
	}
}

func TestEmptyKey(t *testing.T) {
	if _, err := LoadImage(""); err == nil {
		t.Fatalf("expected error for empty key")
	}
	if GetImage("") != nil {
		t.Fatalf("empty key returned an image")
	}
}
