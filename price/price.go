// Package price looks up current prices of non fiat currencies, from static
// values or from JSON web APIs.
package price

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/ledger"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ErrNoSource is returned for a currency without a configured source.
var ErrNoSource = errors.New("no price source")

// Source describes where the price of one currency comes from: either a
// static value, or a JSON document at URL and the jsonpath of the price in
// it.
//
// URL is expanded with the environment, so API keys can stay out of the
// sources file, and "{symbol}" is replaced by the currency code.
type Source struct {
	URL    string           `json:"url,omitempty"`
	Path   string           `json:"path,omitempty"`
	Static *decimal.Decimal `json:"static,omitempty"`
}

// Lookup implements ledger.PriceLookup over a set of sources.
type Lookup struct {
	sources map[ledger.Currency]Source
	client  *http.Client
}

var _ ledger.PriceLookup = (*Lookup)(nil)

// New returns a Lookup. A nil client means http.DefaultClient.
func New(sources map[ledger.Currency]Source, client *http.Client) *Lookup {
	if client == nil {
		client = http.DefaultClient
	}
	return &Lookup{sources: sources, client: client}
}

// Static returns a Lookup for fixed prices.
func Static(prices map[ledger.Currency]decimal.Decimal) *Lookup {
	sources := make(map[ledger.Currency]Source, len(prices))
	for c, p := range prices {
		sources[c] = Source{Static: &p}
	}
	return New(sources, nil)
}

// Price returns the price of one unit of currency.
func (l *Lookup) Price(ctx context.Context, currency ledger.Currency) (decimal.Decimal, error) {
	src, ok := l.sources[currency]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s: %w", currency, ErrNoSource)
	}
	if src.Static != nil {
		return *src.Static, nil
	}
	if src.URL == "" {
		return decimal.Zero, fmt.Errorf("%s: %w: neither url nor static", currency, ErrNoSource)
	}
	addr := strings.ReplaceAll(os.ExpandEnv(src.URL), "{symbol}", url.PathEscape(currency.Code()))
	var jobj any
	if err := jwget(ctx, l.client, addr, &jobj); err != nil {
		return decimal.Zero, fmt.Errorf("error retrieving %s: %w", currency, err)
	}
	path := src.Path
	if path == "" {
		path = "$"
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error reading %s at %q: %w", currency, path, err)
	}
	// jsonpath returns either a single value or a list of matches, keep the
	// first one.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	p, err := toDecimal(jval)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error reading %s at %q: %w", currency, path, err)
	}
	if !p.IsPositive() {
		return decimal.Zero, fmt.Errorf("no price for %s: got %v", currency, p)
	}
	zerolog.Ctx(ctx).Debug().Stringer("currency", currency).Stringer("price", p).Msg("price found")
	return p, nil
}

// toDecimal converts a decoded JSON value. Some APIs return prices as
// strings, sometimes with a decimal comma.
func toDecimal(v any) (decimal.Decimal, error) {
	switch x := v.(type) {
	case json.Number:
		return decimal.NewFromString(x.String())
	case float64:
		return decimal.NewFromFloat(x), nil
	case string:
		s := strings.ReplaceAll(strings.ReplaceAll(x, " ", ""), ",", ".")
		return decimal.NewFromString(s)
	default:
		return decimal.Zero, fmt.Errorf("not a number: %v", v)
	}
}

// jwget performs an HTTP GET request and decodes the JSON response into
// data, numbers are kept as json.Number.
func jwget(ctx context.Context, client *http.Client, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	return dec.Decode(data)
}

// ParseSources reads a sources document: a JSON object keyed by currency,
// e.g.
//
//	{
//	  "crypto:ETH": {"url": "https://api.example.com/v1/{symbol}?key=$QUOTE_KEY", "path": "$.data.price"},
//	  "metal:XAU": {"static": 2300}
//	}
func ParseSources(r io.Reader) (map[ledger.Currency]Source, error) {
	var raw map[string]Source
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("could not decode price sources: %w", err)
	}
	sources := make(map[ledger.Currency]Source, len(raw))
	for k, src := range raw {
		c, err := ledger.ParseCurrency(k)
		if err != nil {
			return nil, fmt.Errorf("price source %q: %w", k, err)
		}
		if src.Static == nil && src.URL == "" {
			return nil, fmt.Errorf("price source %q: neither url nor static", k)
		}
		sources[c] = src
	}
	return sources, nil
}

// LoadSources reads a sources file.
func LoadSources(path string) (map[ledger.Currency]Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open price sources %q: %w", path, err)
	}
	defer f.Close()
	return ParseSources(f)
}
