package service

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/farmmitra/FarmMitraGo/internal/domain"
	"github.com/farmmitra/FarmMitraGo/internal/repository"
)

//go:embed market_quotes.json
var marketQuotesJSON []byte

// baseQuote is a commodity's reference price and the band it fluctuates in.
type baseQuote struct {
	Name         string `json:"name"`
	Base         int    `json:"base"`
	Spread       int    `json:"spread"`
	ChangeSpread int    `json:"change_spread"`
	Unit         string `json:"unit,omitempty"`
}

// baseQuoteTable groups base quotes by commodity category.
type baseQuoteTable struct {
	Cereals    []baseQuote `json:"cereals"`
	Vegetables []baseQuote `json:"vegetables"`
	Pulses     []baseQuote `json:"pulses"`
}

// MarketService produces the current market price board. Prices are the
// embedded base quotes perturbed within their spread, cached so repeated
// reads within the cache window see the same numbers.
type MarketService struct {
	cache  repository.MarketCache
	logger *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand

	quotes baseQuoteTable
}

// NewMarketService creates a new market service. The service takes sole
// ownership of rng; its mutex does not cover draws made elsewhere.
func NewMarketService(cache repository.MarketCache, rng *rand.Rand, logger *slog.Logger) (*MarketService, error) {
	var quotes baseQuoteTable
	if err := json.Unmarshal(marketQuotesJSON, &quotes); err != nil {
		return nil, fmt.Errorf("parse market quotes: %w", err)
	}

	return &MarketService{
		cache:  cache,
		logger: logger,
		rng:    rng,
		quotes: quotes,
	}, nil
}

// GetPrices returns the current market snapshot, serving from cache when
// a recent snapshot exists.
func (s *MarketService) GetPrices(ctx context.Context) (*domain.MarketSnapshot, error) {
	if s.cache != nil {
		if snapshot, err := s.cache.GetSnapshot(ctx); err == nil {
			return snapshot, nil
		}
	}

	snapshot := s.generateSnapshot()

	if s.cache != nil {
		if err := s.cache.SaveSnapshot(ctx, snapshot); err != nil {
			s.logger.WarnContext(ctx, "failed to cache market snapshot",
				slog.String("error", err.Error()),
			)
		}
	}

	return snapshot, nil
}

// generateSnapshot perturbs every base quote within its spread.
func (s *MarketService) generateSnapshot() *domain.MarketSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return &domain.MarketSnapshot{
		Cereals:    s.perturb(s.quotes.Cereals),
		Vegetables: s.perturb(s.quotes.Vegetables),
		Pulses:     s.perturb(s.quotes.Pulses),
		UpdatedAt:  time.Now().UTC(),
	}
}

func (s *MarketService) perturb(bases []baseQuote) []domain.MarketQuote {
	quotes := make([]domain.MarketQuote, 0, len(bases))
	for _, b := range bases {
		quotes = append(quotes, domain.MarketQuote{
			Name:   b.Name,
			Price:  b.Base + s.randWithin(b.Spread),
			Change: s.randWithin(b.ChangeSpread),
			Unit:   b.Unit,
		})
	}
	return quotes
}

// randWithin returns a uniform value in [-spread, spread].
func (s *MarketService) randWithin(spread int) int {
	if spread <= 0 {
		return 0
	}
	return s.rng.Intn(2*spread+1) - spread
}
