package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/zachd/stretch-my-time-off/internal/optimizer"
	"github.com/zachd/stretch-my-time-off/pkg/dateutil"
)

const (
	// DefaultRemoteURL is the Nager.Date public holiday endpoint
	DefaultRemoteURL   = "https://date.nager.at/api/v3/PublicHolidays/{year}/{country}"
	defaultHTTPTimeout = 10 * time.Second
	defaultCacheTTL    = 24 * time.Hour
)

// RemoteProvider fetches holidays from a JSON HTTP API and caches them per
// country, region and year
type RemoteProvider struct {
	apiURL     string
	httpClient *http.Client
	logger     *zap.Logger
	cache      map[string]*cachedHolidays
	cacheMu    sync.RWMutex
	cacheTTL   time.Duration
}

type cachedHolidays struct {
	data      []optimizer.Holiday
	fetchedAt time.Time
}

// remoteHoliday is one element of the API response
type remoteHoliday struct {
	Date      string   `json:"date"`
	EndDate   string   `json:"endDate,omitempty"`
	LocalName string   `json:"localName"`
	Name      string   `json:"name"`
	Global    *bool    `json:"global"`
	Counties  []string `json:"counties"`
	Types     []string `json:"types"`
}

// NewRemoteProvider creates a provider for apiURL. The URL may contain
// {year} and {country} placeholders.
func NewRemoteProvider(apiURL string, cacheTTL time.Duration, logger *zap.Logger) *RemoteProvider {
	if apiURL == "" {
		apiURL = DefaultRemoteURL
	}
	if cacheTTL == 0 {
		cacheTTL = defaultCacheTTL
	}

	return &RemoteProvider{
		apiURL: apiURL,
		httpClient: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
		logger:   logger,
		cache:    make(map[string]*cachedHolidays),
		cacheTTL: cacheTTL,
	}
}

// Holidays returns the public holidays of country in year. With a region,
// only nationwide holidays and those of that region are kept.
func (p *RemoteProvider) Holidays(ctx context.Context, country, region string, year int) ([]optimizer.Holiday, error) {
	country = NormalizeCountry(country)
	region = NormalizeCountry(region)
	cacheKey := fmt.Sprintf("%s/%s/%d", country, region, year)

	p.cacheMu.RLock()
	if cached, ok := p.cache[cacheKey]; ok {
		if time.Since(cached.fetchedAt) < p.cacheTTL {
			p.cacheMu.RUnlock()
			p.logger.Debug("Using cached holidays", zap.String("key", cacheKey))
			return copyHolidays(cached.data), nil
		}
	}
	p.cacheMu.RUnlock()

	entries, err := p.fetch(ctx, country, year)
	if err != nil {
		return nil, err
	}

	holidays := p.convert(entries, country, region)
	holidays = sortHolidays(inYear(holidays, year))

	p.cacheMu.Lock()
	p.cache[cacheKey] = &cachedHolidays{
		data:      holidays,
		fetchedAt: time.Now(),
	}
	p.cacheMu.Unlock()

	p.logger.Info("Holidays fetched from API",
		zap.String("country", country),
		zap.String("region", region),
		zap.Int("year", year),
		zap.Int("count", len(holidays)))

	return copyHolidays(holidays), nil
}

func (p *RemoteProvider) fetch(ctx context.Context, country string, year int) ([]remoteHoliday, error) {
	url := strings.NewReplacer(
		"{year}", strconv.Itoa(year),
		"{country}", country,
	).Replace(p.apiURL)

	p.logger.Debug("Fetching holidays", zap.String("url", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holidays: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCountry, country)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var entries []remoteHoliday
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to parse holidays JSON: %w", err)
	}

	return entries, nil
}

// convert keeps public holidays that apply to region and expands ranges
func (p *RemoteProvider) convert(entries []remoteHoliday, country, region string) []optimizer.Holiday {
	holidays := make([]optimizer.Holiday, 0, len(entries))
	for _, e := range entries {
		if !e.isPublic() || !e.appliesTo(country, region) {
			continue
		}

		from, err := dateutil.Parse(e.Date)
		if err != nil {
			p.logger.Warn("Failed to parse holiday date",
				zap.String("date", e.Date),
				zap.Error(err))
			continue
		}

		var to dateutil.Date
		if e.EndDate != "" {
			if to, err = dateutil.Parse(e.EndDate); err != nil {
				p.logger.Warn("Failed to parse holiday end date",
					zap.String("date", e.EndDate),
					zap.Error(err))
			}
		}

		name := e.Name
		if name == "" {
			name = e.LocalName
		}
		holidays = append(holidays, expand(from, to, name)...)
	}
	return holidays
}

func (e remoteHoliday) isPublic() bool {
	if len(e.Types) == 0 {
		return true
	}
	for _, t := range e.Types {
		if strings.EqualFold(t, "public") {
			return true
		}
	}
	return false
}

func (e remoteHoliday) appliesTo(country, region string) bool {
	if e.Global == nil || *e.Global || len(e.Counties) == 0 {
		return true
	}
	if region == "" {
		return false
	}
	for _, c := range e.Counties {
		c = NormalizeCountry(c)
		if c == region || c == country+"-"+region {
			return true
		}
	}
	return false
}

// ClearCache clears the cache
func (p *RemoteProvider) ClearCache() {
	p.cacheMu.Lock()
	defer p.cacheMu.Unlock()

	p.cache = make(map[string]*cachedHolidays)
	p.logger.Info("Holiday cache cleared")
}

func copyHolidays(holidays []optimizer.Holiday) []optimizer.Holiday {
	out := make([]optimizer.Holiday, len(holidays))
	copy(out, holidays)
	return out
}
