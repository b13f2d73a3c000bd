package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/draftkit/valuation-api/internal/models"
)

// DefaultMarketTab is the superflex tab of the market sheet.
const DefaultMarketTab = "SF"

// MarketSheetConfig controls the market sheet client.
type MarketSheetConfig struct {
	// BaseURL overrides https://docs.google.com for tests.
	BaseURL      string
	DefaultSheet string
	DefaultTab   string
	HTTPClient   *http.Client
	Timeout      time.Duration
}

// MarketSheetClient reads a market value table from a Google Sheet CSV export.
type MarketSheetClient struct {
	baseURL    string
	sheet      string
	tab        string
	httpClient httpDoer
}

// NewMarketSheetClient constructs a market sheet client.
func NewMarketSheetClient(cfg MarketSheetConfig) *MarketSheetClient {
	tab := cfg.DefaultTab
	if tab == "" {
		tab = DefaultMarketTab
	}
	return &MarketSheetClient{
		baseURL:    normalizeBaseURL(cfg.BaseURL, "https://docs.google.com"),
		sheet:      cfg.DefaultSheet,
		tab:        tab,
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
	}
}

// SheetID extracts the document id from a sheet URL. A bare id is returned
// unchanged.
func SheetID(sheet string) (string, error) {
	sheet = strings.TrimSpace(sheet)
	if sheet == "" {
		return "", fmt.Errorf("market sheet: empty sheet reference")
	}
	if i := strings.Index(sheet, "/d/"); i >= 0 {
		id := sheet[i+3:]
		if j := strings.IndexAny(id, "/?#"); j >= 0 {
			id = id[:j]
		}
		if id == "" {
			return "", fmt.Errorf("market sheet: no document id in %q", sheet)
		}
		return id, nil
	}
	if strings.Contains(sheet, "/") {
		return "", fmt.Errorf("market sheet: no document id in %q", sheet)
	}
	return sheet, nil
}

// CSVURL builds the gviz CSV export URL for one tab of a sheet.
func (c *MarketSheetClient) CSVURL(sheet, tab string) (string, error) {
	if sheet == "" {
		sheet = c.sheet
	}
	if tab == "" {
		tab = c.tab
	}
	id, err := SheetID(sheet)
	if err != nil {
		return "", err
	}
	q := url.Values{}
	q.Set("tqx", "out:csv")
	q.Set("sheet", tab)
	return c.baseURL + "/spreadsheets/d/" + url.PathEscape(id) + "/gviz/tq?" + q.Encode(), nil
}

// Market fetches and parses the market table. Empty sheet or tab use the
// configured defaults.
func (c *MarketSheetClient) Market(ctx context.Context, sheet, tab string) ([]models.MarketEntry, error) {
	u, err := c.CSVURL(sheet, tab)
	if err != nil {
		return nil, err
	}
	body, err := get(ctx, c.httpClient, "market", u)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	entries, err := ParseMarket(body)
	if err != nil {
		fetchFailures.WithLabelValues("market").Inc()
		return nil, err
	}
	return entries, nil
}

// Defaults returns the configured sheet and tab.
func (c *MarketSheetClient) Defaults() (sheet, tab string) {
	return c.sheet, c.tab
}
