package service

import (
	"context"
	"math/big"
	"path/filepath"
	"testing"

	"github.com/futurecast/futurecast/database"
	"github.com/futurecast/futurecast/database/model"
	"github.com/futurecast/futurecast/staking"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

const testAddress = "0xAbCdEf0123456789aBcDeF0123456789AbCdEf01"

func setup(t *testing.T) {
	t.Helper()
	require.NoError(t, database.InitDB(filepath.Join(t.TempDir(), "test.db")))
	t.Cleanup(func() {
		database.CloseDB()
	})
}

type fakeStakeReader struct {
	stake       *big.Int
	decimals    uint8
	decimalsErr error
	err         error
	calls       int
	decimalsN   int
	account     common.Address
}

func (r *fakeStakeReader) StakeOf(_ context.Context, account common.Address) (*big.Int, error) {
	r.calls++
	r.account = account
	return r.stake, r.err
}

func (r *fakeStakeReader) Decimals(context.Context) (uint8, error) {
	r.decimalsN++
	return r.decimals, r.decimalsErr
}

func stakeOf(tokens int64) *fakeStakeReader {
	return &fakeStakeReader{stake: staking.ParseUnits(tokens, 18), decimals: 18}
}

func seedForecasts(t *testing.T, svc *ForecastService) []*model.Forecast {
	t.Helper()
	rows := []struct {
		id      int
		country string
		title   string
	}{
		{11111, "Nigeria", "GDP Growth 2026"},
		{22222, "Nigeria", "Inflation Rate 2026"},
		{33333, "Ghana", "GDP Growth 2026"},
		{44444, "Kenya", "Interest Rate 2026"},
	}
	var forecasts []*model.Forecast
	for _, r := range rows {
		f, err := model.NewForecast(r.id, r.country, r.title, "+2.5%", model.ForecastDetail{
			Detail:     r.country + " detail",
			Confidence: 75,
			KeyDrivers: []string{"Oil price recovery"},
		})
		require.NoError(t, err)
		forecasts = append(forecasts, f)
	}
	require.NoError(t, svc.ReplaceAll(forecasts))
	return forecasts
}
