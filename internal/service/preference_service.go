package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/apperrors"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/freshness"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/model"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/observable"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/repository"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/secret"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/validation"
)

// Preference keys.
const (
	KeyLastUpdated    = "lastUpdated"
	KeySourceCurrency = "sourceCurrency"
	KeyTargetCurrency = "targetCurrency"
	KeyAPIKey         = "apiKey"
)

// PreferenceService persists the last-updated timestamp, the selected currency codes
// and the encrypted provider API key. Selected codes are also published as streams.
type PreferenceService struct {
	prefRepo *repository.PreferenceRepository
	box      *secret.Box
	policy   freshness.Policy
	logger   *slog.Logger

	source *observable.Value[string]
	target *observable.Value[string]
}

// NewPreferenceService loads the stored selection, falling back to USD and EUR.
func NewPreferenceService(
	ctx context.Context,
	prefRepo *repository.PreferenceRepository,
	box *secret.Box,
	policy freshness.Policy,
	logger *slog.Logger,
) (*PreferenceService, error) {
	source, err := loadCode(ctx, prefRepo, KeySourceCurrency, model.DefaultSourceCode)
	if err != nil {
		return nil, err
	}
	target, err := loadCode(ctx, prefRepo, KeyTargetCurrency, model.DefaultTargetCode)
	if err != nil {
		return nil, err
	}

	return &PreferenceService{
		prefRepo: prefRepo,
		box:      box,
		policy:   policy,
		logger:   logger,
		source:   observable.NewValue(source),
		target:   observable.NewValue(target),
	}, nil
}

func loadCode(ctx context.Context, repo *repository.PreferenceRepository, key, fallback string) (string, error) {
	code, ok, err := repo.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("failed to load %s: %w", key, err)
	}
	if !ok || code == "" {
		return fallback, nil
	}
	return code, nil
}

// SaveLastUpdated stores the provider timestamp. A value that is not RFC 3339 is
// logged and skipped, leaving the previous timestamp in place.
func (s *PreferenceService) SaveLastUpdated(ctx context.Context, iso string) error {
	ts, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		s.logger.Warn("skipping unparseable last-updated timestamp",
			"value", iso,
			"error", err,
		)
		return nil
	}

	if err := s.prefRepo.Set(ctx, KeyLastUpdated, repository.FormatTime(ts)); err != nil {
		return fmt.Errorf("failed to save last updated: %w", err)
	}
	return nil
}

// LastUpdated returns the stored timestamp, or the zero time when none was saved.
func (s *PreferenceService) LastUpdated(ctx context.Context) (time.Time, error) {
	raw, ok, err := s.prefRepo.Get(ctx, KeyLastUpdated)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to load last updated: %w", err)
	}
	if !ok {
		return time.Time{}, nil
	}

	ts, err := repository.ParseTime(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidTimestamp, raw)
	}
	return ts, nil
}

// IsDataFresh reports whether the stored timestamp is on the same calendar date as now
// and less than 24 hours old. Any read failure counts as stale.
func (s *PreferenceService) IsDataFresh(ctx context.Context, now time.Time) bool {
	ts, err := s.LastUpdated(ctx)
	if err != nil {
		s.logger.Warn("treating rates as stale", "error", err)
		return false
	}
	return s.policy.IsFresh(ts, now)
}

// SaveSourceCode persists the source code and publishes it to subscribers.
func (s *PreferenceService) SaveSourceCode(ctx context.Context, code string) error {
	return s.saveCode(ctx, KeySourceCurrency, code, s.source)
}

// SaveTargetCode persists the target code and publishes it to subscribers.
func (s *PreferenceService) SaveTargetCode(ctx context.Context, code string) error {
	return s.saveCode(ctx, KeyTargetCurrency, code, s.target)
}

func (s *PreferenceService) saveCode(ctx context.Context, key, code string, stream *observable.Value[string]) error {
	if err := validation.ValidateCurrencyCode(code); err != nil {
		return err
	}
	if err := s.prefRepo.Set(ctx, key, code); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrFailedToSaveSelection, err)
	}
	stream.Set(code)
	return nil
}

func (s *PreferenceService) SourceCode() string { return s.source.Get() }

func (s *PreferenceService) TargetCode() string { return s.target.Get() }

// ObserveSourceCode emits the current source code and every later change until ctx ends.
func (s *PreferenceService) ObserveSourceCode(ctx context.Context) <-chan string {
	return s.source.Subscribe(ctx)
}

// ObserveTargetCode emits the current target code and every later change until ctx ends.
func (s *PreferenceService) ObserveTargetCode(ctx context.Context) <-chan string {
	return s.target.Subscribe(ctx)
}

// Selection returns the persisted codes.
func (s *PreferenceService) Selection() model.Selection {
	return model.Selection{SourceCode: s.SourceCode(), TargetCode: s.TargetCode()}
}

// SaveAPIKey encrypts and stores the provider API key.
func (s *PreferenceService) SaveAPIKey(ctx context.Context, apiKey string) error {
	if apiKey == "" {
		return apperrors.ErrAPIKeyMissing
	}
	token, err := s.box.Encrypt(apiKey)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrFailedToSaveAPIKey, err)
	}
	if err := s.prefRepo.Set(ctx, KeyAPIKey, token); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrFailedToSaveAPIKey, err)
	}
	return nil
}

// ClearAPIKey removes the stored provider API key.
func (s *PreferenceService) ClearAPIKey(ctx context.Context) error {
	return s.prefRepo.Delete(ctx, KeyAPIKey)
}

// StoredAPIKey decrypts the stored provider API key.
func (s *PreferenceService) StoredAPIKey(ctx context.Context) (string, error) {
	token, ok, err := s.prefRepo.Get(ctx, KeyAPIKey)
	if err != nil {
		return "", fmt.Errorf("failed to load api key: %w", err)
	}
	if !ok || token == "" {
		return "", apperrors.ErrAPIKeyMissing
	}
	return s.box.Decrypt(token)
}

// HasStoredAPIKey reports whether an encrypted key is on record.
func (s *PreferenceService) HasStoredAPIKey(ctx context.Context) bool {
	token, ok, err := s.prefRepo.Get(ctx, KeyAPIKey)
	return err == nil && ok && token != ""
}

// APIKeyResolver prefers the configured key and falls back to the stored one.
type APIKeyResolver struct {
	Configured string
	Prefs      *PreferenceService
}

// APIKey implements currencyapi.KeySource.
func (r APIKeyResolver) APIKey(ctx context.Context) (string, error) {
	if r.Configured != "" {
		return r.Configured, nil
	}
	if r.Prefs == nil {
		return "", apperrors.ErrAPIKeyMissing
	}
	return r.Prefs.StoredAPIKey(ctx)
}
