package service

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/apperrors"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/model"
)

// Decimal places kept in conversion output.
const (
	RatePlaces   = 6
	ResultPlaces = 4
)

// StateReader exposes the published view state.
type StateReader interface {
	State() model.ViewState
}

// ConversionService converts amounts between the resolved source and target currencies.
type ConversionService struct {
	state StateReader
	now   func() time.Time
}

// NewConversionService creates a new ConversionService. A nil now uses time.Now.
func NewConversionService(state StateReader, now func() time.Time) *ConversionService {
	if now == nil {
		now = time.Now
	}
	return &ConversionService{state: state, now: now}
}

// Convert multiplies amount by target/source using the currently resolved selection.
func (s *ConversionService) Convert(amount float64) (model.Conversion, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return model.Conversion{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidAmount, amount)
	}

	view := s.state.State()
	source, sourceOK := view.Source.Data()
	target, targetOK := view.Target.Data()
	if !sourceOK || !targetOK {
		return model.Conversion{}, apperrors.ErrSelectionNotResolved
	}

	rate, err := ExchangeRate(source.Value, target.Value)
	if err != nil {
		return model.Conversion{}, err
	}
	result := decimal.NewFromFloat(amount).Mul(rate)

	return model.Conversion{
		Amount:     amount,
		SourceCode: source.Code,
		TargetCode: target.Code,
		Rate:       rate.Round(RatePlaces).InexactFloat64(),
		Result:     result.Round(ResultPlaces).InexactFloat64(),
		Date:       FormatDisplayDate(s.now()),
	}, nil
}

// ExchangeRate returns how many target units one source unit buys.
func ExchangeRate(source, target float64) (decimal.Decimal, error) {
	sourceValue := decimal.NewFromFloat(source)
	if sourceValue.IsZero() {
		return decimal.Zero, apperrors.ErrZeroRate
	}
	return decimal.NewFromFloat(target).DivRound(sourceValue, 16), nil
}

// FormatDisplayDate renders t as "19th October, 2026.".
func FormatDisplayDate(t time.Time) string {
	day := t.Day()
	return fmt.Sprintf("%d%s %s, %d.", day, ordinalSuffix(day), t.Month(), t.Year())
}

func ordinalSuffix(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
