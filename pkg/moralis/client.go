// Package moralis is the NFT lookup adapter over the Moralis deep-index
// API. Assets are fetched fresh per command; nothing here is cached.
package moralis

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/wrmarte/MuscleRHB/pkg/errorx"
)

var (
	ErrNoAssets = errorx.New(errorx.NoAssets, "❌ No NFTs found.")
)

type Options struct {
	APIKey  string
	BaseURL string
	// Chain is the Moralis chain identifier, e.g. "base".
	Chain string
	// PageSize bounds every request. Random selection is uniform over the
	// returned page only, not the full collection; with large collections
	// this is a deliberate single-request trade-off.
	PageSize int
	Timeout  time.Duration

	IPFSGateway      string
	PlaceholderImage string
}

type Client struct {
	http *resty.Client
	opts Options
}

func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://deep-index.moralis.io/api/v2.2"
	}
	if opts.Chain == "" {
		opts.Chain = "base"
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 40
	}
	if opts.Timeout == 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.IPFSGateway == "" {
		opts.IPFSGateway = "https://ipfs.io/ipfs/"
	}
	if opts.PlaceholderImage == "" {
		opts.PlaceholderImage = "https://via.placeholder.com/300x300"
	}

	client := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetHeader("accept", "application/json").
		SetHeader("X-API-Key", opts.APIKey)

	return &Client{http: client, opts: opts}
}

type pageResponse struct {
	Result []rawAsset `json:"result"`
}

type rawAsset struct {
	TokenID string `json:"token_id"`
	// Metadata arrives as an embedded JSON string, not an object.
	Metadata string `json:"metadata"`
}

// CollectionNFTs fetches one bounded page of assets for the contract.
func (c *Client) CollectionNFTs(ctx context.Context, contract string) ([]Asset, error) {
	return c.fetchPage(ctx, fmt.Sprintf("/nft/%s", contract))
}

// WalletNFTs fetches one bounded page of the contract's assets held by owner.
func (c *Client) WalletNFTs(ctx context.Context, owner, contract string) ([]Asset, error) {
	return c.fetchPage(ctx, fmt.Sprintf("/%s/nft/%s", owner, contract))
}

func (c *Client) fetchPage(ctx context.Context, path string) ([]Asset, error) {
	var page pageResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"chain":  c.opts.Chain,
			"format": "decimal",
			"limit":  strconv.Itoa(c.opts.PageSize),
		}).
		SetResult(&page).
		// decode the page even when the upstream mislabels the body
		ForceContentType("application/json").
		Get(path)
	if err != nil {
		return nil, errorx.Wrap(errorx.Upstream, err, "🚫 Could not reach the NFT indexer.")
	}
	if resp.IsError() {
		return nil, errorx.New(errorx.Upstream, "🚫 The NFT indexer returned an error.")
	}

	assets := make([]Asset, 0, len(page.Result))
	for _, raw := range page.Result {
		assets = append(assets, c.normalize(raw))
	}
	return assets, nil
}

// PickRandom selects one asset uniformly from the fetched page. A page of
// one always yields that asset; an empty page fails with ErrNoAssets.
func PickRandom(assets []Asset) (Asset, error) {
	if len(assets) == 0 {
		return Asset{}, ErrNoAssets
	}
	return assets[rand.Intn(len(assets))], nil
}

// PickRandomN selects up to n distinct assets from the page, in random
// order. Fewer than n assets on the page yields all of them.
func PickRandomN(assets []Asset, n int) ([]Asset, error) {
	if len(assets) == 0 {
		return nil, ErrNoAssets
	}
	idx := rand.Perm(len(assets))
	if n > len(idx) {
		n = len(idx)
	}
	picked := make([]Asset, 0, n)
	for _, i := range idx[:n] {
		picked = append(picked, assets[i])
	}
	return picked, nil
}
