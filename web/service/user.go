package service

import (
	"regexp"
	"strings"

	"github.com/futurecast/futurecast/database"
	"github.com/futurecast/futurecast/database/model"
	"github.com/futurecast/futurecast/logger"
	"github.com/futurecast/futurecast/util/common"
	"github.com/futurecast/futurecast/util/crypto"
	"github.com/futurecast/futurecast/util/metrics"
)

var walletAddressPattern = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

const emailDomain = "futurecast.app"

// NormalizeAddress validates a wallet address and lowercases it. Addresses are stored
// lowercased so checksummed and plain spellings resolve to the same user.
func NormalizeAddress(address string) (string, error) {
	address = strings.TrimSpace(address)
	if !walletAddressPattern.MatchString(address) {
		return "", ErrInvalidAddress
	}
	return strings.ToLower(address), nil
}

type UserService struct{}

// LoginOrCreate returns the user owning address, creating it on first sight. created reports
// whether a row was inserted.
func (s *UserService) LoginOrCreate(address string) (user *model.User, created bool, err error) {
	addr, err := NormalizeAddress(address)
	if err != nil {
		metrics.WalletLogins.WithLabelValues("invalid").Inc()
		return nil, false, err
	}

	user, err = s.GetByAddress(addr)
	if err == nil {
		metrics.WalletLogins.WithLabelValues("existing").Inc()
		return user, false, nil
	}
	if !database.IsNotFound(err) {
		return nil, false, err
	}

	hash, err := crypto.PlaceholderPasswordHash()
	if err != nil {
		return nil, false, common.NewErrorf("hash placeholder password: %v", err)
	}

	db := database.GetDB()
	user = &model.User{}
	result := db.Where(model.User{WalletAddress: addr}).
		Attrs(model.User{
			Name:     "User " + addr[2:6],
			Email:    addr + "@" + emailDomain,
			Password: hash,
		}).
		FirstOrCreate(user)
	if result.Error != nil {
		return nil, false, result.Error
	}
	created = result.RowsAffected > 0
	if created {
		logger.Infof("created wallet user %d for %s", user.Id, addr)
		metrics.WalletLogins.WithLabelValues("created").Inc()
	} else {
		metrics.WalletLogins.WithLabelValues("existing").Inc()
	}
	return user, created, nil
}

func (s *UserService) GetByAddress(address string) (*model.User, error) {
	addr, err := NormalizeAddress(address)
	if err != nil {
		return nil, err
	}
	db := database.GetDB()
	user := &model.User{}
	err = db.Model(model.User{}).
		Where("wallet_address = ?", addr).
		First(user).
		Error
	if err != nil {
		return nil, err
	}
	return user, nil
}
