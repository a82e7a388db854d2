package calendar

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/at"
	"github.com/rickar/cal/v2/au"
	"github.com/rickar/cal/v2/be"
	"github.com/rickar/cal/v2/ca"
	"github.com/rickar/cal/v2/de"
	"github.com/rickar/cal/v2/dk"
	"github.com/rickar/cal/v2/es"
	"github.com/rickar/cal/v2/fi"
	"github.com/rickar/cal/v2/fr"
	"github.com/rickar/cal/v2/gb"
	"github.com/rickar/cal/v2/ie"
	"github.com/rickar/cal/v2/it"
	"github.com/rickar/cal/v2/nl"
	"github.com/rickar/cal/v2/no"
	"github.com/rickar/cal/v2/pl"
	"github.com/rickar/cal/v2/pt"
	"github.com/rickar/cal/v2/se"
	"github.com/rickar/cal/v2/us"
	"go.uber.org/zap"

	"github.com/zachd/stretch-my-time-off/internal/optimizer"
	"github.com/zachd/stretch-my-time-off/pkg/dateutil"
)

// rule sets by ISO 3166-1 alpha-2 code. Countries whose rules only exist per
// region are keyed "CC-REGION" and listed in defaultRegions.
var builtinRules = map[string][]*cal.Holiday{
	"AT":     at.Holidays,
	"AU-ACT": au.HolidaysACT,
	"AU-NSW": au.HolidaysNSW,
	"AU-NT":  au.HolidaysNT,
	"AU-QLD": au.HolidaysQLD,
	"AU-SA":  au.HolidaysSA,
	"AU-TAS": au.HolidaysTAS,
	"AU-VIC": au.HolidaysVIC,
	"AU-WA":  au.HolidaysWA,
	"BE":     be.Holidays,
	"CA":     ca.Holidays,
	"DE":     de.Holidays,
	"DK":     dk.Holidays,
	"ES":     es.Holidays,
	"FI":     fi.Holidays,
	"FR":     fr.Holidays,
	"GB":     gb.Holidays,
	"IE":     ie.Holidays,
	"IT":     it.Holidays,
	"NL":     nl.Holidays,
	"NO":     no.Holidays,
	"PL":     pl.Holidays,
	"PT":     pt.Holidays,
	"SE":     se.Holidays,
	"US":     us.Holidays,
}

// defaultRegions picks the rule set used when a region-only country is
// asked for without a known region. NSW is the most populous state.
var defaultRegions = map[string]string{
	"AU": "NSW",
}

// BuiltinProvider computes holidays offline from rule sets
type BuiltinProvider struct {
	rules          map[string][]*cal.Holiday
	defaultRegions map[string]string
	logger         *zap.Logger
}

// NewBuiltinProvider creates a provider over the bundled rule sets
func NewBuiltinProvider(logger *zap.Logger) *BuiltinProvider {
	return &BuiltinProvider{
		rules:          builtinRules,
		defaultRegions: defaultRegions,
		logger:         logger,
	}
}

// Countries lists the supported country codes in order
func (p *BuiltinProvider) Countries() []string {
	seen := make(map[string]bool)
	for key := range p.rules {
		code, _, _ := strings.Cut(key, "-")
		seen[code] = true
	}
	codes := make([]string, 0, len(seen))
	for code := range seen {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Holidays returns the public and bank holidays of country in year, plus
// their substitute days when a holiday is observed on another date. A region
// selects its own rule set where one exists; otherwise the national rules
// apply.
func (p *BuiltinProvider) Holidays(ctx context.Context, country, region string, year int) ([]optimizer.Holiday, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	code := NormalizeCountry(country)
	rules, used, ok := p.rulesFor(code, NormalizeCountry(region))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCountry, country)
	}

	var holidays []optimizer.Holiday
	// observed dates may cross the year boundary
	for y := year - 1; y <= year+1; y++ {
		for _, rule := range rules {
			if rule.Type != cal.ObservancePublic && rule.Type != cal.ObservanceBank {
				continue
			}
			actual, observed := rule.Calc(y)
			if actual.IsZero() {
				continue
			}
			holidays = append(holidays, optimizer.Holiday{
				Date: dateutil.FromTime(actual),
				Name: rule.Name,
			})
			if !observed.IsZero() && dateutil.FromTime(observed) != dateutil.FromTime(actual) {
				holidays = append(holidays, optimizer.Holiday{
					Date: dateutil.FromTime(observed),
					Name: rule.Name + " (observed)",
				})
			}
		}
	}
	holidays = sortHolidays(inYear(holidays, year))

	p.logger.Debug("Computed builtin holidays",
		zap.String("country", code),
		zap.String("region", used),
		zap.Int("year", year),
		zap.Int("count", len(holidays)))

	return holidays, nil
}

// rulesFor resolves the rule set of country and region, returning the region
// actually used
func (p *BuiltinProvider) rulesFor(country, region string) ([]*cal.Holiday, string, bool) {
	if region != "" {
		if rules, ok := p.rules[country+"-"+region]; ok {
			return rules, region, true
		}
	}
	if rules, ok := p.rules[country]; ok {
		return rules, "", true
	}
	if def, ok := p.defaultRegions[country]; ok {
		rules, ok := p.rules[country+"-"+def]
		return rules, def, ok
	}
	return nil, "", false
}
