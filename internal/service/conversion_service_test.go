package service_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/apperrors"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/model"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/service"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/testutil"
)

type fixedState model.ViewState

func (f fixedState) State() model.ViewState { return model.ViewState(f) }

func resolvedState(source, target model.Currency) fixedState {
	v := model.NewViewState().WithStatus(model.RateStatusFresh)
	v.Currencies = []model.Currency{source, target}
	v.Source = model.Success(source)
	v.Target = model.Success(target)
	return fixedState(v)
}

func TestConversionService_Convert(t *testing.T) {
	now := time.Date(2026, time.October, 19, 10, 0, 0, 0, time.UTC)
	usd := testutil.NewCurrency("USD").WithValue(1).Currency()
	eur := testutil.NewCurrency("EUR").WithValue(0.92).Currency()

	t.Run("multiplies by target over source", func(t *testing.T) {
		svc := testutil.NewTestConversionService(t, resolvedState(usd, eur), now)

		got, err := svc.Convert(100)
		require.NoError(t, err)

		assert.Equal(t, "USD", got.SourceCode)
		assert.Equal(t, "EUR", got.TargetCode)
		assert.Equal(t, 0.92, got.Rate)
		assert.Equal(t, 92.0, got.Result)
		assert.Equal(t, "19th October, 2026.", got.Date)
	})

	t.Run("inverse direction", func(t *testing.T) {
		svc := testutil.NewTestConversionService(t, resolvedState(eur, usd), now)

		got, err := svc.Convert(10)
		require.NoError(t, err)
		assert.Equal(t, 1.086957, got.Rate)
		assert.Equal(t, 10.8696, got.Result)
	})

	t.Run("zero amount", func(t *testing.T) {
		svc := testutil.NewTestConversionService(t, resolvedState(usd, eur), now)

		got, err := svc.Convert(0)
		require.NoError(t, err)
		assert.Equal(t, 0.0, got.Result)
	})

	t.Run("negative amount", func(t *testing.T) {
		svc := testutil.NewTestConversionService(t, resolvedState(usd, eur), now)

		_, err := svc.Convert(-1)
		assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
	})

	t.Run("non-finite amount", func(t *testing.T) {
		svc := testutil.NewTestConversionService(t, resolvedState(usd, eur), now)

		for _, amount := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
			assert.NotPanics(t, func() {
				_, err := svc.Convert(amount)
				assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
			})
		}
	})

	t.Run("unresolved selection", func(t *testing.T) {
		svc := testutil.NewTestConversionService(t, fixedState(model.NewViewState()), now)

		_, err := svc.Convert(1)
		assert.ErrorIs(t, err, apperrors.ErrSelectionNotResolved)
	})

	t.Run("zero source rate", func(t *testing.T) {
		broken := testutil.NewCurrency("XXX").WithValue(0).Currency()
		svc := testutil.NewTestConversionService(t, resolvedState(broken, eur), now)

		_, err := svc.Convert(1)
		assert.ErrorIs(t, err, apperrors.ErrZeroRate)
	})

	t.Run("reads the live sync state", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.SeedCurrencies(t, db, testutil.SampleCurrencies())
		syncSvc, _, _ := testutil.NewTestSyncService(t, db, testutil.NewMockRateClient(), service.SyncOptions{})
		syncSvc.Refresh(context.Background())

		got, err := testutil.NewTestConversionService(t, syncSvc, now).Convert(50)
		require.NoError(t, err)
		assert.Equal(t, 46.0, got.Result)
	})
}

func TestFormatDisplayDate(t *testing.T) {
	tests := []struct {
		day  int
		want string
	}{
		{1, "1st October, 2026."},
		{2, "2nd October, 2026."},
		{3, "3rd October, 2026."},
		{4, "4th October, 2026."},
		{11, "11th October, 2026."},
		{12, "12th October, 2026."},
		{13, "13th October, 2026."},
		{21, "21st October, 2026."},
		{22, "22nd October, 2026."},
		{23, "23rd October, 2026."},
		{31, "31st October, 2026."},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := service.FormatDisplayDate(time.Date(2026, time.October, tt.day, 12, 0, 0, 0, time.UTC))
			assert.Equal(t, tt.want, got)
		})
	}
}
