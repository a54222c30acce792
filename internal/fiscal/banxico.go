package fiscal

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Series SF43718 is the FIX USD/MXN reference rate.
const banxicoAPIURL = "https://www.banxico.org.mx/SieAPIRest/service/v1/series/SF43718/datos/oportuno"

// Sanity bounds: a rate outside this window means a broken response,
// not a market move worth recording.
var (
	banxicoRateFloor   = decimal.NewFromInt(10)
	banxicoRateCeiling = decimal.NewFromInt(30)
)

// BanxicoClient fetches the USD/MXN reference rate from the Banxico
// SIE API.
type BanxicoClient struct {
	token      string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

type banxicoResponse struct {
	BMX struct {
		Series []struct {
			Datos []struct {
				Fecha string `json:"fecha"`
				Dato  string `json:"dato"`
			} `json:"datos"`
		} `json:"series"`
	} `json:"bmx"`
}

// NewBanxicoClient creates a client with the given API token.
func NewBanxicoClient(token string, logger *zap.Logger) *BanxicoClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	if token == "" {
		logger.Warn("banxico token not set, exchange rate updates will fail")
	}
	return &BanxicoClient{
		token:      token,
		baseURL:    banxicoAPIURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

// ExchangeRate fetches the most recent USD/MXN rate.
func (c *BanxicoClient) ExchangeRate(ctx context.Context) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Bmx-Token", c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to fetch from banxico: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return decimal.Zero, fmt.Errorf("banxico api returned status %d: %s", resp.StatusCode, body)
	}

	var data banxicoResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse banxico response: %w", err)
	}
	if len(data.BMX.Series) == 0 || len(data.BMX.Series[0].Datos) == 0 {
		return decimal.Zero, fmt.Errorf("no data points in banxico response")
	}

	latest := data.BMX.Series[0].Datos[0]
	rate, err := decimal.NewFromString(latest.Dato)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse exchange rate %q: %w", latest.Dato, err)
	}
	if rate.LessThan(banxicoRateFloor) || rate.GreaterThan(banxicoRateCeiling) {
		return decimal.Zero, fmt.Errorf("exchange rate %s is outside reasonable bounds", rate)
	}

	c.logger.Info("exchange rate fetched",
		zap.String("rate", rate.String()),
		zap.String("date", latest.Fecha),
		zap.String("source", "banxico"))
	return rate, nil
}
