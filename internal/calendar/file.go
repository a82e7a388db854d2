package calendar

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/zachd/stretch-my-time-off/internal/optimizer"
	"github.com/zachd/stretch-my-time-off/pkg/dateutil"
)

// FileProvider serves holidays from a local text file
type FileProvider struct {
	filePath string
	logger   *zap.Logger

	mu   sync.RWMutex
	data map[string][]optimizer.Holiday // key: "CC" or "CC-REGION"
}

// NewFileProvider creates a new FileProvider instance
func NewFileProvider(filePath string, logger *zap.Logger) *FileProvider {
	return &FileProvider{
		filePath: filePath,
		logger:   logger,
		data:     make(map[string][]optimizer.Holiday),
	}
}

// Load loads holiday data from file.
//
// Format: YYYY-MM-DD[..YYYY-MM-DD] CC[-REGION] Name
// Example: 2025-12-25..2025-12-26 GB Christmas
func (fp *FileProvider) Load() error {
	file, err := os.Open(fp.filePath)
	if err != nil {
		return fmt.Errorf("failed to open holiday file: %w", err)
	}
	defer file.Close()

	data := make(map[string][]optimizer.Holiday)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, " ", 3)
		if len(parts) < 3 {
			fp.logger.Warn("Invalid line format", zap.String("line", line))
			continue
		}

		from, to, err := parseDateRange(parts[0])
		if err != nil {
			fp.logger.Warn("Failed to parse date", zap.String("date", parts[0]), zap.Error(err))
			continue
		}

		key := NormalizeCountry(parts[1])
		data[key] = append(data[key], expand(from, to, strings.TrimSpace(parts[2]))...)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading holiday file: %w", err)
	}

	fp.mu.Lock()
	fp.data = data
	fp.mu.Unlock()

	fp.logger.Info("Holiday file loaded",
		zap.String("file", fp.filePath),
		zap.Int("keys", len(data)))

	return nil
}

// Holidays returns the country's holidays in year plus those of region
func (fp *FileProvider) Holidays(ctx context.Context, country, region string, year int) ([]optimizer.Holiday, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	country = NormalizeCountry(country)
	region = NormalizeCountry(region)

	fp.mu.RLock()
	defer fp.mu.RUnlock()

	national, ok := fp.data[country]
	regional := fp.data[country+"-"+region]
	if !ok && (region == "" || regional == nil) {
		return nil, fmt.Errorf("%w: %q not in %s", ErrUnknownCountry, country, fp.filePath)
	}

	holidays := inYear(national, year)
	if region != "" {
		holidays = append(holidays, inYear(regional, year)...)
	}
	return sortHolidays(holidays), nil
}

func parseDateRange(s string) (dateutil.Date, dateutil.Date, error) {
	fromStr, toStr, isRange := strings.Cut(s, "..")

	from, err := dateutil.Parse(fromStr)
	if err != nil {
		return dateutil.Date{}, dateutil.Date{}, err
	}
	if !isRange {
		return from, from, nil
	}

	to, err := dateutil.Parse(toStr)
	if err != nil {
		return dateutil.Date{}, dateutil.Date{}, err
	}
	if to.Before(from) {
		return dateutil.Date{}, dateutil.Date{}, fmt.Errorf("range %s ends before it starts", s)
	}
	return from, to, nil
}
