package utils

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

const maxImageFetchSize = 8 * 1024 * 1024 // Discord embed/attachment cap is 8MB on the free tier

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}

// IsImageURL reports whether raw parses as an http(s) URL whose path ends
// in a recognized image extension.
func IsImageURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	ext := strings.ToLower(path.Ext(u.Path))
	for _, e := range imageExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// FetchOptions holds optional parameters for fetching remote images.
type FetchOptions struct {
	Timeout time.Duration
	Client  *http.Client
}

// FetchImage downloads image bytes from url into memory. The read is
// capped at maxImageFetchSize; larger responses fail rather than truncate.
// Returns the bytes and the filename derived from the URL path.
func FetchImage(ctx context.Context, rawURL string, opts FetchOptions) ([]byte, string, error) {
	if opts.Timeout == 0 {
		opts.Timeout = 15 * time.Second
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	reqCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build image request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", fmt.Errorf("fetch image: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageFetchSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("read image body: %w", err)
	}
	if len(data) > maxImageFetchSize {
		return nil, "", fmt.Errorf("image exceeds %d byte limit", maxImageFetchSize)
	}

	name := path.Base(rawURL)
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	if name == "" || name == "." || name == "/" {
		name = "image.png"
	}

	return data, name, nil
}
