// Package pimps picks showcase assets from the collection, optionally
// scoped to a caller's linked wallet.
package pimps

import (
	"context"

	"github.com/wrmarte/MuscleRHB/pkg/moralis"
	"github.com/wrmarte/MuscleRHB/pkg/wallet"
)

type Service struct {
	directory *wallet.Directory
	nft       *moralis.Client
	contract  string
}

func NewService(directory *wallet.Directory, nft *moralis.Client, contract string) *Service {
	return &Service{
		directory: directory,
		nft:       nft,
		contract:  contract,
	}
}

// RandomFromCollection returns one asset picked from a single indexer page.
func (s *Service) RandomFromCollection(ctx context.Context) (moralis.Asset, error) {
	page, err := s.nft.CollectionNFTs(ctx, s.contract)
	if err != nil {
		return moralis.Asset{}, err
	}
	return moralis.PickRandom(page)
}

// RandomOwned returns one asset owned by userID's linked wallet. The
// wallet lookup happens first; an unlinked user never causes an indexer
// request.
func (s *Service) RandomOwned(ctx context.Context, userID string) (moralis.Asset, error) {
	address, err := s.directory.Lookup(ctx, userID)
	if err != nil {
		return moralis.Asset{}, err
	}

	page, err := s.nft.WalletNFTs(ctx, address, s.contract)
	if err != nil {
		return moralis.Asset{}, err
	}
	return moralis.PickRandom(page)
}

// RandomSetFromCollection returns up to n distinct assets for collages.
func (s *Service) RandomSetFromCollection(ctx context.Context, n int) ([]moralis.Asset, error) {
	page, err := s.nft.CollectionNFTs(ctx, s.contract)
	if err != nil {
		return nil, err
	}
	return moralis.PickRandomN(page, n)
}

// RandomOwnedSet returns up to n distinct assets held by userID's wallet.
func (s *Service) RandomOwnedSet(ctx context.Context, userID string, n int) ([]moralis.Asset, error) {
	address, err := s.directory.Lookup(ctx, userID)
	if err != nil {
		return nil, err
	}

	page, err := s.nft.WalletNFTs(ctx, address, s.contract)
	if err != nil {
		return nil, err
	}
	return moralis.PickRandomN(page, n)
}
