package storage

import (
	"errors"
	"testing"
)

func TestPageTokenRoundTrip(t *testing.T) {
	token := EncodePageToken("arcana-fireball")
	if token == "" || token == "arcana-fireball" {
		t.Fatalf("token should be opaque, got %q", token)
	}
	id, err := DecodePageToken(token)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if id != "arcana-fireball" {
		t.Fatalf("id = %q", id)
	}
}

func TestDecodePageToken(t *testing.T) {
	if id, err := DecodePageToken("  "); err != nil || id != "" {
		t.Fatalf("blank token = (%q, %v)", id, err)
	}
	if _, err := DecodePageToken("!!not base64!!"); !errors.Is(err, ErrInvalidPageToken) {
		t.Fatalf("err = %v, want ErrInvalidPageToken", err)
	}
	if EncodePageToken("") != "" {
		t.Fatal("empty id should encode to empty token")
	}
}
