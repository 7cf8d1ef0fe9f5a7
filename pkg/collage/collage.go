// Package collage renders a grid image from a set of remote NFT images.
package collage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/nfnt/resize"

	"github.com/wrmarte/MuscleRHB/pkg/errorx"
	"github.com/wrmarte/MuscleRHB/pkg/logger"
	"github.com/wrmarte/MuscleRHB/pkg/utils"
)

const defaultTileSize = 256

type Options struct {
	// TileSize is the square edge of each grid cell in pixels.
	TileSize int
	Fetch    utils.FetchOptions
}

// Compose downloads each image URL, squares it to the tile size and lays
// the tiles out in a near-square grid, returned PNG-encoded. Individual
// failed tiles are skipped; only an entirely empty grid fails.
func Compose(ctx context.Context, urls []string, opts Options) ([]byte, error) {
	if opts.TileSize <= 0 {
		opts.TileSize = defaultTileSize
	}

	tiles := make([]image.Image, 0, len(urls))
	for _, url := range urls {
		img, err := fetchTile(ctx, url, opts)
		if err != nil {
			logger.WarnCF("collage", "Skipping tile", map[string]any{
				"url":   url,
				"error": err.Error(),
			})
			continue
		}
		tiles = append(tiles, img)
	}

	if len(tiles) == 0 {
		return nil, errorx.New(errorx.Upstream, "🚫 Couldn't fetch any of the images.")
	}

	return render(tiles, opts.TileSize)
}

func fetchTile(ctx context.Context, url string, opts Options) (image.Image, error) {
	data, _, err := utils.FetchImage(ctx, url, opts.Fetch)
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	return resize.Resize(uint(opts.TileSize), uint(opts.TileSize), img, resize.Lanczos2), nil
}

func render(tiles []image.Image, tileSize int) ([]byte, error) {
	cols := int(math.Ceil(math.Sqrt(float64(len(tiles)))))
	rows := (len(tiles) + cols - 1) / cols

	canvas := image.NewRGBA(image.Rect(0, 0, cols*tileSize, rows*tileSize))
	for i, tile := range tiles {
		x := (i % cols) * tileSize
		y := (i / cols) * tileSize
		rect := image.Rect(x, y, x+tileSize, y+tileSize)
		draw.Draw(canvas, rect, tile, tile.Bounds().Min, draw.Src)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("encode collage: %w", err)
	}
	return buf.Bytes(), nil
}
