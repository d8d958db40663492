package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ausare-dev/personal-finance-manager/internal/models"
	"github.com/ausare-dev/personal-finance-manager/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ErrRateNotFound means no stored rate chain resolves the pair.
var ErrRateNotFound = errors.New("exchange rate not found")

// RateSource fetches the latest rates for one base currency from an
// external provider.
type RateSource interface {
	Latest(ctx context.Context, base string) (map[string]decimal.Decimal, error)
}

// refreshBases are fetched on every refresh cycle.
var refreshBases = []string{"USD", "EUR", "RUB"}

// persistTargets limits which targets are stored for non-USD bases.
// A USD base persists every target the source returns.
var persistTargets = map[string]bool{
	"USD": true, "EUR": true, "RUB": true,
	"GBP": true, "JPY": true, "CNY": true,
}

// CurrencyService resolves exchange rates from the stored table and
// refreshes the table from an external source.
type CurrencyService struct {
	store  repository.Store
	source RateSource
	log    zerolog.Logger
}

func NewCurrencyService(store repository.Store, source RateSource, log zerolog.Logger) *CurrencyService {
	return &CurrencyService{store: store, source: source, log: log}
}

// GetRate resolves from→to at full precision. Resolution order:
// same currency, direct row, inverse row, then a USD bridge when
// neither endpoint is USD.
func (s *CurrencyService) GetRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))
	if !validCurrencyCode(from) || !validCurrencyCode(to) {
		return decimal.Zero, Invalid("currency must be a 3-letter code")
	}
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	if r, err := s.lookup(ctx, from, to); err == nil {
		return r, nil
	} else if !errors.Is(err, repository.ErrRecordNotFound) {
		return decimal.Zero, err
	}

	if r, err := s.lookup(ctx, to, from); err == nil {
		return decimal.NewFromInt(1).Div(r), nil
	} else if !errors.Is(err, repository.ErrRecordNotFound) {
		return decimal.Zero, err
	}

	if from != "USD" && to != "USD" {
		toUSD, err := s.lookup(ctx, from, "USD")
		if err != nil && !errors.Is(err, repository.ErrRecordNotFound) {
			return decimal.Zero, err
		}
		fromUSD, err2 := s.lookup(ctx, "USD", to)
		if err2 != nil && !errors.Is(err2, repository.ErrRecordNotFound) {
			return decimal.Zero, err2
		}
		if err == nil && err2 == nil {
			return toUSD.Mul(fromUSD), nil
		}
	}

	return decimal.Zero, ErrRateNotFound
}

// Convert multiplies amount by the resolved rate, rounded to 2
// decimals for display.
func (s *CurrencyService) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	rate, err := s.GetRate(ctx, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(rate).Round(2), nil
}

// Rates returns every stored pair.
func (s *CurrencyService) Rates(ctx context.Context) ([]models.CurrencyRate, error) {
	return s.store.CurrencyRates().All(ctx)
}

// RatesByBase returns the stored pairs with the given base currency.
func (s *CurrencyService) RatesByBase(ctx context.Context, base string) ([]models.CurrencyRate, error) {
	base = strings.ToUpper(strings.TrimSpace(base))
	if !validCurrencyCode(base) {
		return nil, Invalid("currency must be a 3-letter code, got " + base)
	}
	return s.store.CurrencyRates().ByBase(ctx, base)
}

// Refresh fetches rates for each base currency and upserts them.
// A failure for one base is logged and skipped so the remaining
// bases still update.
func (s *CurrencyService) Refresh(ctx context.Context) error {
	for _, base := range refreshBases {
		rates, err := s.source.Latest(ctx, base)
		if err != nil {
			s.log.Error().Err(err).Str("base", base).Msg("rate refresh failed, skipping base")
			continue
		}
		stored := 0
		for target, rate := range rates {
			target = strings.ToUpper(target)
			if target == base || !rate.IsPositive() {
				continue
			}
			if base != "USD" && !persistTargets[target] {
				continue
			}
			err := s.store.CurrencyRates().Upsert(ctx, &models.CurrencyRate{
				FromCurrency: base,
				ToCurrency:   target,
				Rate:         rate,
			})
			if err != nil {
				s.log.Error().Err(err).Str("base", base).Str("target", target).Msg("rate upsert failed")
				continue
			}
			stored++
		}
		s.log.Info().Str("base", base).Int("pairs", stored).Msg("rates refreshed")
	}
	return nil
}

func (s *CurrencyService) lookup(ctx context.Context, from, to string) (decimal.Decimal, error) {
	r, err := s.store.CurrencyRates().Find(ctx, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	return r.Rate, nil
}
