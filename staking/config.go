package staking

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// ReaderKind selects which forecast lookup the staking contract exposes.
type ReaderKind string

const (
	// ReaderForecasts uses the public mapping getter forecasts(uint256).
	ReaderForecasts ReaderKind = "forecasts"
	// ReaderGetForecast uses an explicit getForecast(uint256) view.
	ReaderGetForecast ReaderKind = "getForecast"
)

func ParseReaderKind(s string) (ReaderKind, error) {
	switch ReaderKind(s) {
	case ReaderForecasts, ReaderGetForecast:
		return ReaderKind(s), nil
	case "":
		return ReaderForecasts, nil
	}
	return "", fmt.Errorf("unknown forecast reader %q", s)
}

// Config is handed to the flow at construction; nothing in this package reads the environment.
type Config struct {
	TokenAddress   string
	StakingAddress string
	Reader         ReaderKind

	// OnProgress, if set, is called synchronously on every transition.
	OnProgress func(Progress)
}

// Validate checks both contract addresses are well formed.
func (c Config) Validate() error {
	if !common.IsHexAddress(c.TokenAddress) || !common.IsHexAddress(c.StakingAddress) {
		return newError(CodeInvalidContractConfig, nil,
			"invalid contract configuration (token=%q, staking=%q)", c.TokenAddress, c.StakingAddress)
	}
	return nil
}

func (c Config) StakingContractAddress() common.Address {
	return common.HexToAddress(c.StakingAddress)
}

func (c Config) TokenContractAddress() common.Address {
	return common.HexToAddress(c.TokenAddress)
}
