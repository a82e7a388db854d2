package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zachd/stretch-my-time-off/internal/config"
	"github.com/zachd/stretch-my-time-off/internal/planner"
	"github.com/zachd/stretch-my-time-off/pkg/dateutil"
)

func setupConfig(t *testing.T, storageType string) string {
	t.Helper()
	dir := t.TempDir()

	holidays := filepath.Join(dir, "holidays.txt")
	require.NoError(t, os.WriteFile(holidays, []byte(
		"# test holidays\n"+
			"2024-01-01 IE New Year's Day\n"+
			"2024-01-08 IE Founders Day\n"), 0o644))

	storage := filepath.Join(dir, "state", "preferences.json")
	if storageType == config.StorageSQLite {
		storage = filepath.Join(dir, "state", "preferences.db")
	}

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"calendar:\n"+
			"  type: file\n"+
			"  fallback_file: "+holidays+"\n"+
			"storage:\n"+
			"  type: "+storageType+"\n"+
			"  path: "+storage+"\n"+
			"log:\n"+
			"  level: error\n"), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestPlanCommand_JSON(t *testing.T) {
	for _, storageType := range []string{config.StorageFile, config.StorageSQLite} {
		t.Run(storageType, func(t *testing.T) {
			cfgPath := setupConfig(t, storageType)

			out, err := run(t, "plan", "--config", cfgPath,
				"--country", "ie", "--year", "2024",
				"--start", "2024-01-01", "--end", "2024-01-14",
				"--days", "4", "--json")
			require.NoError(t, err)

			var plan planner.Plan
			require.NoError(t, json.Unmarshal([]byte(out), &plan))
			assert.Equal(t, []dateutil.Date{
				dateutil.New(2024, time.January, 5),
				dateutil.New(2024, time.January, 4),
				dateutil.New(2024, time.January, 3),
				dateutil.New(2024, time.January, 2),
			}, plan.OptimizedDays)
			assert.Equal(t, 8, plan.TotalDaysOff)

			out, err = run(t, "prefs", "get", "selectedCountry", "--config", cfgPath)
			require.NoError(t, err)
			assert.Equal(t, "IE\n", out)
		})
	}
}

func TestPlanCommand_Text(t *testing.T) {
	cfgPath := setupConfig(t, config.StorageFile)

	out, err := run(t, "plan", "--config", cfgPath,
		"--country", "IE", "--year", "2024",
		"--start", "2024-01-01", "--end", "2024-01-14",
		"--days", "4")
	require.NoError(t, err)

	assert.Contains(t, out, "Plan for IE 2024 (2024-01-01 to 2024-01-14)")
	assert.Contains(t, out, "Tue 2024-01-02")
	assert.Contains(t, out, "2024-01-01 .. 2024-01-08   8 days  (4 off, holiday)")
}

func TestPlanCommand_Errors(t *testing.T) {
	cfgPath := setupConfig(t, config.StorageFile)

	tests := []struct {
		name string
		args []string
	}{
		{name: "bad start", args: []string{"--country", "IE", "--start", "soon"}},
		{name: "bad fixed day", args: []string{"--country", "IE", "--fixed", "2024-01-02,later"}},
		{name: "unknown country", args: []string{"--country", "FR", "--year", "2024"}},
		{name: "bad weekend", args: []string{"--country", "IE", "--weekend", "9"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, append([]string{"plan", "--config", cfgPath}, tt.args...)...)
			assert.Error(t, err)
		})
	}
}

func TestHideAndListHolidays(t *testing.T) {
	cfgPath := setupConfig(t, config.StorageFile)

	_, err := run(t, "prefs", "hide", "2024-01-08", "--country", "IE", "--config", cfgPath)
	require.NoError(t, err)

	out, err := run(t, "holidays", "--country", "IE", "--year", "2024", "--json", "--config", cfgPath)
	require.NoError(t, err)

	var holidays []planner.PlannedHoliday
	require.NoError(t, json.Unmarshal([]byte(out), &holidays))
	require.Len(t, holidays, 2)
	assert.False(t, holidays[0].Hidden)
	assert.True(t, holidays[1].Hidden)

	_, err = run(t, "prefs", "hide", "2024-01-08", "--country", "IE", "--show", "--config", cfgPath)
	require.NoError(t, err)

	out, err = run(t, "holidays", "--country", "IE", "--year", "2024", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Mon 2024-01-08  Founders Day\n")
	assert.NotContains(t, out, "(hidden)")
}

func TestAllowanceCommand(t *testing.T) {
	cfgPath := setupConfig(t, config.StorageFile)

	out, err := run(t, "allowance", "us", "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "US: 10 days\n", out)

	_, err = run(t, "allowance", "XX", "--config", cfgPath)
	assert.Error(t, err)
}

func TestPrefsCommands(t *testing.T) {
	cfgPath := setupConfig(t, config.StorageFile)

	_, err := run(t, "prefs", "set", "year", "2025", "--config", cfgPath)
	require.NoError(t, err)

	out, err := run(t, "prefs", "get", "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "year = 2025\n", out)

	_, err = run(t, "prefs", "get", "daysOff", "--config", cfgPath)
	assert.Error(t, err)

	out, err = run(t, "prefs", "weekend", "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "Sunday, Saturday\n", out)

	out, err = run(t, "prefs", "weekend", "5", "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "Sunday, Friday, Saturday\n", out)

	out, err = run(t, "prefs", "weekend", "0", "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "Friday, Saturday\n", out)

	_, err = run(t, "prefs", "weekend", "7", "--config", cfgPath)
	assert.Error(t, err)
}

func TestInitLogger_File(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "stretch.log")

	l, err := initLogger("debug", logFile)
	require.NoError(t, err)
	l.Info("hello")
	_ = l.Sync()

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"timestamp"`)
}
