package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsImageURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://example.com/pic.png", true},
		{"http://example.com/a/b/pic.JPG", true},
		{"https://example.com/pic.webp?size=large", true},
		{"https://example.com/pic.txt", false},
		{"https://example.com/pic", false},
		{"ftp://example.com/pic.png", false},
		{"not a url at all ://", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsImageURL(tt.url), "IsImageURL(%q)", tt.url)
	}
}

func TestFetchImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("imagebytes"))
	}))
	defer srv.Close()

	data, name, err := FetchImage(context.Background(), srv.URL+"/token/42.png", FetchOptions{})
	require.NoError(t, err)
	assert.Equal(t, []byte("imagebytes"), data)
	assert.Equal(t, "42.png", name)
}

func TestFetchImageNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, _, err := FetchImage(context.Background(), srv.URL+"/missing.png", FetchOptions{})
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "very lo...", Truncate("very long message", 10))
	assert.Equal(t, "abc", Truncate("abcdef", 3))
}
