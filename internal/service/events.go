package service

import (
	"context"

	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/model"
)

// Event is an action sent by the presentation layer.
type Event interface {
	event()
}

// RefreshRates runs a sync.
type RefreshRates struct{}

// SwitchCurrencies swaps the published source and target selections.
type SwitchCurrencies struct{}

// SaveSourceCurrencyCode persists a new source code.
type SaveSourceCurrencyCode struct {
	Code string
}

// SaveTargetCurrencyCode persists a new target code.
type SaveTargetCurrencyCode struct {
	Code string
}

func (RefreshRates) event()           {}
func (SwitchCurrencies) event()       {}
func (SaveSourceCurrencyCode) event() {}
func (SaveTargetCurrencyCode) event() {}

// SendEvent dispatches ev. Refresh and save events run in their own goroutine under
// ctx and are joined by Wait; a switch is applied before SendEvent returns.
func (s *SyncService) SendEvent(ctx context.Context, ev Event) {
	switch ev := ev.(type) {
	case RefreshRates:
		s.spawn(func() { s.Refresh(ctx) })
	case SwitchCurrencies:
		s.Switch()
	case SaveSourceCurrencyCode:
		s.spawn(func() { s.saveCode(ctx, model.CurrencySource, ev.Code) })
	case SaveTargetCurrencyCode:
		s.spawn(func() { s.saveCode(ctx, model.CurrencyTarget, ev.Code) })
	default:
		s.logger.Warn("ignoring unknown event", "event", ev)
	}
}

func (s *SyncService) spawn(fn func()) {
	s.tasks.Add(1)
	go func() {
		defer s.tasks.Done()
		fn()
	}()
}

func (s *SyncService) saveCode(ctx context.Context, kind model.CurrencyType, code string) {
	save := s.prefs.SaveSourceCode
	if kind == model.CurrencyTarget {
		save = s.prefs.SaveTargetCode
	}
	if err := save(ctx, code); err != nil {
		s.logger.Error("failed to save currency code", "type", kind, "code", code, "error", err)
	}
}
