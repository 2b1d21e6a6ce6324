package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/apperrors"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/currencyapi"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/metrics"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/model"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/observable"
)

// RateStore is the durable cache of the last fetched record set.
type RateStore interface {
	ReadAll(ctx context.Context) ([]model.Currency, error)
	Insert(ctx context.Context, c model.Currency) error
	DeleteAll(ctx context.Context) error
	// ReplaceAll clears the store and inserts currencies as one unit.
	ReplaceAll(ctx context.Context, currencies []model.Currency) error
}

// PreferenceStore holds the last-updated timestamp and the selected codes.
type PreferenceStore interface {
	SaveLastUpdated(ctx context.Context, iso string) error
	IsDataFresh(ctx context.Context, now time.Time) bool
	SaveSourceCode(ctx context.Context, code string) error
	SaveTargetCode(ctx context.Context, code string) error
	SourceCode() string
	TargetCode() string
	ObserveSourceCode(ctx context.Context) <-chan string
	ObserveTargetCode(ctx context.Context) <-chan string
}

// SyncOptions tunes the coordinator.
type SyncOptions struct {
	// FetchWhenEmpty fetches remotely whenever the store is empty, even if the
	// stored timestamp is still fresh. When false a fresh timestamp with an empty
	// store reports Fresh with no rates.
	FetchWhenEmpty bool

	// FetchTimeout bounds a remote fetch. Zero leaves it to the rate source.
	FetchTimeout time.Duration

	// Now overrides the clock.
	Now func() time.Time
}

// SyncService decides between the cached record set and a remote fetch, keeps the
// cache and timestamp in step, and publishes the resulting ViewState.
type SyncService struct {
	store   RateStore
	prefs   PreferenceStore
	source  currencyapi.Client
	metrics *metrics.SyncMetrics
	logger  *slog.Logger
	opts    SyncOptions

	state *observable.Value[model.ViewState]

	// refreshMu serialises refresh runs; HTTP requests and the scheduler may overlap.
	refreshMu sync.Mutex
	tasks     sync.WaitGroup
	watchers  sync.WaitGroup
}

// NewSyncService creates the coordinator. It publishes the Idle state until the
// first refresh runs.
func NewSyncService(
	store RateStore,
	prefs PreferenceStore,
	source currencyapi.Client,
	syncMetrics *metrics.SyncMetrics,
	logger *slog.Logger,
	opts SyncOptions,
) *SyncService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if syncMetrics == nil {
		syncMetrics = metrics.NewSyncMetrics()
	}
	return &SyncService{
		store:   store,
		prefs:   prefs,
		source:  source,
		metrics: syncMetrics,
		logger:  logger,
		opts:    opts,
		state:   observable.NewValue(model.NewViewState()),
	}
}

// Start subscribes to the selected codes and runs the initial refresh in the
// background. Subscriptions end when ctx is done.
func (s *SyncService) Start(ctx context.Context) {
	s.watch(ctx, model.CurrencySource, s.prefs.ObserveSourceCode(ctx))
	s.watch(ctx, model.CurrencyTarget, s.prefs.ObserveTargetCode(ctx))
	s.SendEvent(ctx, RefreshRates{})
}

func (s *SyncService) watch(ctx context.Context, kind model.CurrencyType, codes <-chan string) {
	s.watchers.Add(1)
	go func() {
		defer s.watchers.Done()
		for code := range codes {
			s.resolve(kind, code)
		}
		s.logger.Debug("selection watcher stopped", "type", kind, "reason", context.Cause(ctx))
	}()
}

// Refresh runs one sync. It never returns an error: every failure ends in the
// Stale status with the cache and timestamp left as they were.
func (s *SyncService) Refresh(ctx context.Context) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()
	s.run(ctx, s.refresh)
}

// SyncIfStale fetches remotely only when the stored timestamp is no longer fresh.
// It reports whether a fetch was attempted.
func (s *SyncService) SyncIfStale(ctx context.Context) bool {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	started := time.Now()
	if s.prefs.IsDataFresh(ctx, s.opts.Now()) {
		s.metrics.ObserveRefresh(metrics.OutcomeScheduled, started)
		return false
	}
	s.run(ctx, s.fetch)
	return true
}

func (s *SyncService) run(ctx context.Context, step func(context.Context) string) {
	started := time.Now()
	outcome := metrics.OutcomeFailed
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("refresh panicked", "panic", r)
			s.setStatus(model.RateStatusStale)
			outcome = metrics.OutcomeFailed
		}
		s.metrics.ObserveRefresh(outcome, started)
	}()

	s.setStatus(model.RateStatusIdle)
	outcome = step(ctx)
}

func (s *SyncService) refresh(ctx context.Context) string {
	cached, err := s.store.ReadAll(ctx)
	if err != nil {
		s.logger.Warn("failed to read cached rates", "error", err)
	}
	if err == nil && len(cached) > 0 {
		s.adopt(cached)
		s.setStatus(model.RateStatusFresh)
		s.logger.Debug("using cached rates", "count", len(cached))
		return metrics.OutcomeCacheHit
	}

	if !s.opts.FetchWhenEmpty && s.prefs.IsDataFresh(ctx, s.opts.Now()) {
		s.setStatus(model.RateStatusFresh)
		return metrics.OutcomeFresh
	}

	return s.fetch(ctx)
}

func (s *SyncService) fetch(ctx context.Context) string {
	if s.opts.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.FetchTimeout)
		defer cancel()
	}

	snapshot, err := s.source.LatestRates(ctx)
	if err != nil {
		s.metrics.FetchErrorsTotal.WithLabelValues(errorKind(err)).Inc()
		s.logger.Error("failed to fetch latest rates", "error", err)
		s.setStatus(model.RateStatusStale)
		return metrics.OutcomeFailed
	}

	if err := s.store.ReplaceAll(ctx, snapshot.Currencies); err != nil {
		s.logger.Error("failed to cache rates", "error", err)
		s.setStatus(model.RateStatusStale)
		return metrics.OutcomeFailed
	}

	// The store is committed; memory follows it even if the timestamp write fails.
	s.adopt(snapshot.Currencies)
	if err := s.prefs.SaveLastUpdated(ctx, snapshot.LastUpdated); err != nil {
		s.logger.Error("failed to save last updated", "error", err)
		s.setStatus(model.RateStatusStale)
		return metrics.OutcomeFailed
	}
	s.setStatus(model.RateStatusFresh)
	if ts, err := time.Parse(time.RFC3339, snapshot.LastUpdated); err == nil {
		s.metrics.LastUpdated.Set(float64(ts.Unix()))
	}
	s.logger.Info("fetched latest rates",
		"count", len(snapshot.Currencies),
		"last_updated", snapshot.LastUpdated,
	)
	return metrics.OutcomeFetched
}

// adopt publishes a new record set and re-resolves both selections against it.
func (s *SyncService) adopt(currencies []model.Currency) {
	currencies = slices.Clone(currencies)
	if currencies == nil {
		currencies = []model.Currency{}
	}

	// Codes are read under the state lock; a save racing this adopt is then
	// re-resolved by its watcher after the new set is published.
	s.state.Update(func(v model.ViewState) model.ViewState {
		v.Currencies = currencies
		v.Source = resolveCode(currencies, s.prefs.SourceCode())
		v.Target = resolveCode(currencies, s.prefs.TargetCode())
		return v
	})
	s.metrics.CurrenciesCached.Set(float64(len(currencies)))
}

func (s *SyncService) resolve(kind model.CurrencyType, code string) {
	s.state.Update(func(v model.ViewState) model.ViewState {
		resolved := resolveCode(v.Currencies, code)
		if kind == model.CurrencySource {
			v.Source = resolved
		} else {
			v.Target = resolved
		}
		return v
	})
}

func resolveCode(currencies []model.Currency, code string) model.RequestState[model.Currency] {
	if c, ok := model.FindCurrency(currencies, code); ok {
		return model.Success(c)
	}
	return model.Failure[model.Currency](apperrors.ErrCurrencyNotFound.Error())
}

func (s *SyncService) setStatus(status model.RateStatus) {
	s.state.Update(func(v model.ViewState) model.ViewState {
		return v.WithStatus(status)
	})
}

// Switch swaps the source and target selections in the published state only.
func (s *SyncService) Switch() model.ViewState {
	return s.state.Update(func(v model.ViewState) model.ViewState {
		v.Source, v.Target = v.Target, v.Source
		return v
	}).Clone()
}

// SwitchAndPersist swaps the selections and saves the swapped codes. Both sides
// must be resolved.
func (s *SyncService) SwitchAndPersist(ctx context.Context) (model.ViewState, error) {
	current := s.state.Get()
	source, sourceOK := current.Source.Data()
	target, targetOK := current.Target.Data()
	if !sourceOK || !targetOK {
		return current.Clone(), apperrors.ErrSelectionNotResolved
	}

	if err := s.prefs.SaveSourceCode(ctx, target.Code); err != nil {
		return current.Clone(), err
	}
	if err := s.prefs.SaveTargetCode(ctx, source.Code); err != nil {
		return current.Clone(), err
	}

	// The subscriptions re-resolve asynchronously; apply the swap now so the
	// caller sees it.
	return s.state.Update(func(v model.ViewState) model.ViewState {
		v.Source = resolveCode(v.Currencies, target.Code)
		v.Target = resolveCode(v.Currencies, source.Code)
		return v
	}).Clone(), nil
}

// SaveSourceCode persists a new source selection.
func (s *SyncService) SaveSourceCode(ctx context.Context, code string) error {
	return s.prefs.SaveSourceCode(ctx, code)
}

// SaveTargetCode persists a new target selection.
func (s *SyncService) SaveTargetCode(ctx context.Context, code string) error {
	return s.prefs.SaveTargetCode(ctx, code)
}

// State returns a copy of the current ViewState.
func (s *SyncService) State() model.ViewState {
	return s.state.Get().Clone()
}

// Subscribe streams the current ViewState and every later change until ctx is done.
// Delivered values must be treated as read-only.
func (s *SyncService) Subscribe(ctx context.Context) <-chan model.ViewState {
	return s.state.Subscribe(ctx)
}

// SearchCurrencies filters the adopted record set by code or country name.
func (s *SyncService) SearchCurrencies(query string) []model.Currency {
	currencies := s.state.Get().Currencies
	query = strings.TrimSpace(query)
	if query == "" {
		return slices.Clone(currencies)
	}

	needle := strings.ToLower(query)
	out := make([]model.Currency, 0)
	for _, c := range currencies {
		if strings.Contains(strings.ToLower(c.Code), needle) ||
			strings.Contains(strings.ToLower(c.Country), needle) {
			out = append(out, c)
		}
	}
	return out
}

// Wait blocks until every task started by SendEvent has finished.
func (s *SyncService) Wait() {
	s.tasks.Wait()
}

// Close waits for the selection subscriptions to end. Cancel the context passed
// to Start first.
func (s *SyncService) Close() {
	s.tasks.Wait()
	s.watchers.Wait()
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrAPIKeyMissing):
		return "api_key"
	case errors.Is(err, apperrors.ErrNetwork):
		return "network"
	case errors.Is(err, apperrors.ErrUnexpectedStatus):
		return "status"
	case errors.Is(err, apperrors.ErrDecode):
		return "decode"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "other"
	}
}
