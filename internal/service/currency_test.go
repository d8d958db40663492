package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ausare-dev/personal-finance-manager/internal/models"
	"github.com/ausare-dev/personal-finance-manager/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRateSource struct {
	rates map[string]map[string]decimal.Decimal
	fail  map[string]bool
	calls []string
}

func (f *fakeRateSource) Latest(ctx context.Context, base string) (map[string]decimal.Decimal, error) {
	f.calls = append(f.calls, base)
	if f.fail[base] {
		return nil, errors.New("upstream unavailable")
	}
	return f.rates[base], nil
}

func seedRate(t *testing.T, store *repository.MemoryStore, from, to, rate string) {
	t.Helper()
	require.NoError(t, store.CurrencyRates().Upsert(context.Background(), &models.CurrencyRate{
		FromCurrency: from, ToCurrency: to, Rate: dec(rate),
	}))
}

func newCurrencyService(store *repository.MemoryStore, source RateSource) *CurrencyService {
	return NewCurrencyService(store, source, zerolog.Nop())
}

func TestGetRateSelf(t *testing.T) {
	svc := newCurrencyService(repository.NewMemoryStore(), nil)
	r, err := svc.GetRate(context.Background(), "XYZ", "XYZ")
	require.NoError(t, err)
	assert.True(t, r.Equal(dec("1")), "self rate without any stored row")
}

func TestGetRateDirect(t *testing.T) {
	store := repository.NewMemoryStore()
	seedRate(t, store, "USD", "RUB", "90.5")
	svc := newCurrencyService(store, nil)

	r, err := svc.GetRate(context.Background(), "USD", "RUB")
	require.NoError(t, err)
	assert.True(t, r.Equal(dec("90.5")))
}

func TestGetRateInverse(t *testing.T) {
	store := repository.NewMemoryStore()
	seedRate(t, store, "USD", "EUR", "0.8")
	svc := newCurrencyService(store, nil)

	r, err := svc.GetRate(context.Background(), "EUR", "USD")
	require.NoError(t, err)
	assert.True(t, r.Equal(dec("1.25")), "1/0.8 = 1.25, got %s", r)
}

func TestGetRateBridge(t *testing.T) {
	store := repository.NewMemoryStore()
	seedRate(t, store, "EUR", "USD", "1.25")
	seedRate(t, store, "USD", "RUB", "90")
	svc := newCurrencyService(store, nil)

	r, err := svc.GetRate(context.Background(), "EUR", "RUB")
	require.NoError(t, err)
	assert.True(t, r.Equal(dec("112.5")), "1.25*90, got %s", r)
}

func TestGetRateDirectBeatsBridge(t *testing.T) {
	store := repository.NewMemoryStore()
	seedRate(t, store, "EUR", "RUB", "100")
	seedRate(t, store, "EUR", "USD", "1.25")
	seedRate(t, store, "USD", "RUB", "90")
	svc := newCurrencyService(store, nil)

	r, err := svc.GetRate(context.Background(), "EUR", "RUB")
	require.NoError(t, err)
	assert.True(t, r.Equal(dec("100")), "direct row wins over bridge")
}

func TestGetRateNotFound(t *testing.T) {
	svc := newCurrencyService(repository.NewMemoryStore(), nil)
	_, err := svc.GetRate(context.Background(), "GBP", "JPY")
	assert.ErrorIs(t, err, ErrRateNotFound)
}

func TestConvertRounds(t *testing.T) {
	store := repository.NewMemoryStore()
	seedRate(t, store, "USD", "EUR", "0.857")
	svc := newCurrencyService(store, nil)

	got, err := svc.Convert(context.Background(), dec("10"), "USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, "8.57", got.StringFixed(2))
}

func TestRefreshPerBaseFailureIsolation(t *testing.T) {
	store := repository.NewMemoryStore()
	source := &fakeRateSource{
		rates: map[string]map[string]decimal.Decimal{
			"USD": {"EUR": dec("0.8"), "RUB": dec("90"), "KZT": dec("450")},
			"RUB": {"USD": dec("0.011"), "KZT": dec("5")},
		},
		fail: map[string]bool{"EUR": true},
	}
	svc := newCurrencyService(store, source)

	require.NoError(t, svc.Refresh(context.Background()))
	assert.Equal(t, []string{"USD", "EUR", "RUB"}, source.calls, "all bases attempted despite EUR failure")

	// USD base persists every returned target
	_, err := store.CurrencyRates().Find(context.Background(), "USD", "KZT")
	assert.NoError(t, err)

	// non-USD base is limited to the allow-list
	_, err = store.CurrencyRates().Find(context.Background(), "RUB", "USD")
	assert.NoError(t, err)
	_, err = store.CurrencyRates().Find(context.Background(), "RUB", "KZT")
	assert.ErrorIs(t, err, repository.ErrRecordNotFound)
}

func TestRefreshUpserts(t *testing.T) {
	store := repository.NewMemoryStore()
	seedRate(t, store, "USD", "EUR", "0.5")
	source := &fakeRateSource{
		rates: map[string]map[string]decimal.Decimal{
			"USD": {"EUR": dec("0.9")},
			"EUR": {},
			"RUB": {},
		},
	}
	svc := newCurrencyService(store, source)

	require.NoError(t, svc.Refresh(context.Background()))

	r, err := store.CurrencyRates().Find(context.Background(), "USD", "EUR")
	require.NoError(t, err)
	assert.True(t, r.Rate.Equal(dec("0.9")), "existing pair overwritten")

	all, err := store.CurrencyRates().All(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1, "no duplicate pair rows")
}
