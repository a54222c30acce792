package fiscal

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Indicator 539262 is the annual UMA value. The endpoint answers JSONP,
// so the callback wrapper has to be stripped before decoding.
const inegiAPIURL = "https://www.inegi.org.mx/app/api/indicadores/interna_v1_3/ValorIndicador/539262/00/null/es/null/null/3/pd/0/null/null/null/null/6/json/%s"

// Sanity bounds on the annual UMA in MXN.
var (
	umaAnnualFloor   = decimal.NewFromInt(30000)
	umaAnnualCeiling = decimal.NewFromInt(60000)
)

var jsonpCallbackRE = regexp.MustCompile(`^[a-zA-Z_$][a-zA-Z0-9_$]*\((.*)\);?$`)

// UMAValues are the three reference-unit figures derived from one
// annual observation.
type UMAValues struct {
	Daily   decimal.Decimal
	Monthly decimal.Decimal
	Annual  decimal.Decimal
}

// INEGIClient fetches the UMA reference unit from the INEGI indicator
// API.
type INEGIClient struct {
	token      string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

type inegiResponse struct {
	Value     []string `json:"value"`
	Dimension struct {
		Periods struct {
			Category struct {
				Label []struct {
					Key   string `json:"Key"`
					Value string `json:"Value"`
				} `json:"label"`
			} `json:"category"`
		} `json:"periods"`
	} `json:"dimension"`
}

// NewINEGIClient creates a client with the given API token.
func NewINEGIClient(token string, logger *zap.Logger) *INEGIClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	if token == "" {
		logger.Warn("inegi token not set, UMA updates will fail")
	}
	return &INEGIClient{
		token:      token,
		baseURL:    inegiAPIURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

// UMA fetches the annual UMA for the current year and derives the
// monthly and daily values from it.
func (c *INEGIClient) UMA(ctx context.Context) (*UMAValues, error) {
	url := fmt.Sprintf(c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from inegi: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("inegi api returned status %d: %s", resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var data inegiResponse
	if err := json.Unmarshal([]byte(stripJSONPCallback(string(body))), &data); err != nil {
		return nil, fmt.Errorf("failed to parse inegi response: %w", err)
	}
	if len(data.Value) == 0 || len(data.Dimension.Periods.Category.Label) == 0 {
		return nil, fmt.Errorf("no observations in inegi response")
	}

	annual, year, err := c.pickObservation(&data)
	if err != nil {
		return nil, err
	}
	if annual.LessThan(umaAnnualFloor) || annual.GreaterThan(umaAnnualCeiling) {
		return nil, fmt.Errorf("annual uma %s is outside reasonable bounds", annual)
	}

	values := &UMAValues{
		Annual:  annual,
		Monthly: annual.Div(decimal.NewFromInt(12)).Round(2),
		Daily:   annual.Div(decimal.NewFromInt(365)).Round(2),
	}
	c.logger.Info("uma fetched",
		zap.String("annual", values.Annual.String()),
		zap.String("monthly", values.Monthly.String()),
		zap.String("daily", values.Daily.String()),
		zap.String("year", year),
		zap.String("source", "inegi"))
	return values, nil
}

// pickObservation prefers the current calendar year and falls back to
// the newest observation when the current year is not published yet.
func (c *INEGIClient) pickObservation(data *inegiResponse) (decimal.Decimal, string, error) {
	currentYear := strconv.Itoa(time.Now().Year())
	for i, period := range data.Dimension.Periods.Category.Label {
		if period.Value == currentYear && i < len(data.Value) && data.Value[i] != "NA" {
			value, err := parseINEGIValue(data.Value[i])
			if err != nil {
				return decimal.Zero, "", err
			}
			return value, period.Value, nil
		}
	}

	if data.Value[0] == "NA" {
		return decimal.Zero, "", fmt.Errorf("no valid uma observations in inegi data")
	}
	value, err := parseINEGIValue(data.Value[0])
	if err != nil {
		return decimal.Zero, "", err
	}
	return value, data.Dimension.Periods.Category.Label[0].Value, nil
}

// parseINEGIValue handles the API's thousands separators ("41,273.52").
func parseINEGIValue(s string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse uma value %q: %w", s, err)
	}
	return value, nil
}

func stripJSONPCallback(jsonp string) string {
	matches := jsonpCallbackRE.FindStringSubmatch(strings.TrimSpace(jsonp))
	if len(matches) > 1 {
		return matches[1]
	}
	return jsonp
}
