package service

import (
	"context"
	"time"

	"github.com/futurecast/futurecast/database/model"
	"github.com/futurecast/futurecast/logger"
	"github.com/futurecast/futurecast/staking"

	"github.com/ethereum/go-ethereum/common"
	"github.com/patrickmn/go-cache"
)

const (
	AccessFree  = "free"
	AccessBasic = "basic"
	AccessFull  = "full"
)

const (
	decimalsKey = "decimals"
	metadataTTL = 10 * time.Minute
)

// StakeService resolves a user's stake level in whole tokens. Levels are never stored; every
// call goes back to the ledger. Only the token's decimals are cached.
type StakeService struct {
	reader   staking.StakeReader
	metadata *cache.Cache
}

// NewStakeService returns a service backed by reader. A nil reader means no ledger is
// configured and every user is at level 0.
func NewStakeService(reader staking.StakeReader) *StakeService {
	return &StakeService{
		reader:   reader,
		metadata: cache.New(metadataTTL, metadataTTL),
	}
}

func (s *StakeService) LevelFor(ctx context.Context, user *model.User) int {
	if s == nil || s.reader == nil || user == nil {
		return 0
	}
	if !common.IsHexAddress(user.WalletAddress) {
		return 0
	}
	raw, err := s.reader.StakeOf(ctx, common.HexToAddress(user.WalletAddress))
	if err != nil {
		logger.Warningf("read stake of %s failed: %v", user.WalletAddress, err)
		return 0
	}
	return int(staking.ToTokens(raw, s.decimals(ctx)))
}

func (s *StakeService) decimals(ctx context.Context) uint8 {
	if v, ok := s.metadata.Get(decimalsKey); ok {
		return v.(uint8)
	}
	decimals, err := s.reader.Decimals(ctx)
	if err != nil {
		logger.Debugf("read token decimals failed, assuming %d: %v", staking.DefaultDecimals, err)
		return staking.DefaultDecimals
	}
	s.metadata.SetDefault(decimalsKey, decimals)
	return decimals
}

func (s *StakeService) AccessLevel(level int) string {
	switch {
	case level >= staking.LevelFull:
		return AccessFull
	case level >= staking.LevelBasic:
		return AccessBasic
	}
	return AccessFree
}
