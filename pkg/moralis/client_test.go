package moralis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrmarte/MuscleRHB/pkg/errorx"
)

const contract = "0xc38e2ae060440c9269cceb8c0ea8019a66ce8927"

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return NewClient(Options{
		APIKey:  "test-key",
		BaseURL: srv.URL,
	})
}

func pageBody(t *testing.T, assets ...rawAsset) []byte {
	t.Helper()
	body, err := json.Marshal(pageResponse{Result: assets})
	require.NoError(t, err)
	return body
}

func TestCollectionNFTsSendsAPIKeyAndQuery(t *testing.T) {
	var gotKey, gotChain, gotLimit, gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-Key")
		gotChain = r.URL.Query().Get("chain")
		gotLimit = r.URL.Query().Get("limit")
		gotPath = r.URL.Path
		w.Write(pageBody(t, rawAsset{TokenID: "1"}))
	})

	_, err := client.CollectionNFTs(context.Background(), contract)
	require.NoError(t, err)

	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "base", gotChain)
	assert.Equal(t, "40", gotLimit)
	assert.Equal(t, "/nft/"+contract, gotPath)
}

func TestWalletNFTsScopesToOwner(t *testing.T) {
	owner := "0x1111111111111111111111111111111111111111"
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write(pageBody(t, rawAsset{TokenID: "7"}))
	})

	assets, err := client.WalletNFTs(context.Background(), owner, contract)
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, "/"+owner+"/nft/"+contract, gotPath)
}

func TestFetchPageUpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.CollectionNFTs(context.Background(), contract)
	require.Error(t, err)
	assert.Equal(t, errorx.Upstream, errorx.CodeOf(err))
}

func TestPickRandomEmptyPage(t *testing.T) {
	_, err := PickRandom(nil)
	assert.ErrorIs(t, err, ErrNoAssets)
}

func TestPickRandomSingleResult(t *testing.T) {
	only := Asset{TokenID: "42"}
	for i := 0; i < 10; i++ {
		got, err := PickRandom([]Asset{only})
		require.NoError(t, err)
		assert.Equal(t, only, got)
	}
}

func TestPickRandomStaysOnPage(t *testing.T) {
	page := []Asset{{TokenID: "1"}, {TokenID: "2"}, {TokenID: "3"}}
	for i := 0; i < 50; i++ {
		got, err := PickRandom(page)
		require.NoError(t, err)
		assert.Contains(t, page, got)
	}
}

func TestPickRandomNDistinct(t *testing.T) {
	page := []Asset{{TokenID: "1"}, {TokenID: "2"}, {TokenID: "3"}, {TokenID: "4"}}

	picked, err := PickRandomN(page, 3)
	require.NoError(t, err)
	require.Len(t, picked, 3)

	seen := map[string]bool{}
	for _, a := range picked {
		assert.False(t, seen[a.TokenID], "token %s picked twice", a.TokenID)
		seen[a.TokenID] = true
	}
}

func TestPickRandomNShortPage(t *testing.T) {
	page := []Asset{{TokenID: "1"}}

	picked, err := PickRandomN(page, 4)
	require.NoError(t, err)
	assert.Len(t, picked, 1)

	_, err = PickRandomN(nil, 4)
	assert.ErrorIs(t, err, ErrNoAssets)
}

func TestFetchPageDecodesMislabeledBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write(pageBody(t, rawAsset{TokenID: "5"}))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Options{APIKey: "k", BaseURL: srv.URL})
	assets, err := client.CollectionNFTs(context.Background(), contract)
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, "5", assets[0].TokenID)
}
