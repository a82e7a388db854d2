package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zachd/stretch-my-time-off/internal/allowance"
	"github.com/zachd/stretch-my-time-off/internal/calendar"
	"github.com/zachd/stretch-my-time-off/internal/optimizer"
	"github.com/zachd/stretch-my-time-off/internal/planner"
	"github.com/zachd/stretch-my-time-off/internal/prefs"
	"github.com/zachd/stretch-my-time-off/pkg/dateutil"
)

const rule = "═══════════════════════════════════════════════════════"

func planCmd() *cobra.Command {
	var (
		country, region      string
		year, days           int
		startStr, endStr     string
		fixedStr, excludeStr string
		weekend              []int
		asJSON               bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Pick the days off that give the longest breaks",
		Long:  "Spend a budget of paid days off on the work days between holidays and weekends. Missing flags fall back to saved preferences and config.",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := planner.PlanRequest{
				Country: country,
				Region:  region,
				Year:    year,
			}

			var err error
			if req.Start, err = parseOptionalDate(startStr); err != nil {
				return fmt.Errorf("invalid start date: %w", err)
			}
			if req.End, err = parseOptionalDate(endStr); err != nil {
				return fmt.Errorf("invalid end date: %w", err)
			}
			if req.FixedDays, err = dateutil.ParseList(fixedStr); err != nil {
				return fmt.Errorf("invalid fixed days: %w", err)
			}
			if req.ExcludedDays, err = dateutil.ParseList(excludeStr); err != nil {
				return fmt.Errorf("invalid excluded days: %w", err)
			}
			if cmd.Flags().Changed("days") {
				req.Budget = &days
			}
			if cmd.Flags().Changed("weekend") {
				req.WeekendDays = weekend
			}

			provider, err := initProvider(cfg.Calendar)
			if err != nil {
				return err
			}
			manager, store, err := initializeManager(cfg, provider)
			if err != nil {
				return err
			}
			defer store.Close()

			plan, err := manager.Plan(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("planning failed: %w", err)
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), plan)
			}
			printPlan(cmd.OutOrStdout(), plan)
			return nil
		},
	}

	cmd.Flags().StringVar(&country, "country", "", "ISO 3166-1 alpha-2 country code (default: saved or configured)")
	cmd.Flags().StringVar(&region, "region", "", "Region or state code, e.g. BY")
	cmd.Flags().IntVar(&year, "year", 0, "Year to plan (default: saved or current)")
	cmd.Flags().IntVar(&days, "days", 0, "Days off to spend (default: saved or country allowance)")
	cmd.Flags().StringVar(&startStr, "start", "", "First day to consider (YYYY-MM-DD, default: Jan 1)")
	cmd.Flags().StringVar(&endStr, "end", "", "Last day to consider (YYYY-MM-DD, default: Dec 31)")
	cmd.Flags().StringVar(&fixedStr, "fixed", "", "Comma separated days already taken off")
	cmd.Flags().StringVar(&excludeStr, "exclude", "", "Comma separated days that must stay work days")
	cmd.Flags().IntSliceVar(&weekend, "weekend", nil, "Weekend weekdays, 0 = Sunday (default: saved or configured)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the plan as JSON")

	return cmd
}

func holidaysCmd() *cobra.Command {
	var (
		country, region string
		year            int
		listCountries   bool
		asJSON          bool
	)

	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "List public holidays of a country",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if listCountries {
				for _, code := range calendar.NewBuiltinProvider(logger).Countries() {
					fmt.Fprintln(out, code)
				}
				return nil
			}

			if country == "" {
				country = cfg.Planner.Country
			}
			if country == "" {
				return fmt.Errorf("--country is required")
			}
			if year == 0 {
				year = dateutil.Today().Year
			}

			provider, err := initProvider(cfg.Calendar)
			if err != nil {
				return err
			}
			manager, store, err := initializeManager(cfg, provider)
			if err != nil {
				return err
			}
			defer store.Close()

			holidays, err := manager.Holidays(cmd.Context(), calendar.NormalizeCountry(country), region, year)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(out, holidays)
			}
			printHolidays(out, calendar.NormalizeCountry(country), year, holidays)
			return nil
		},
	}

	cmd.Flags().StringVar(&country, "country", "", "ISO 3166-1 alpha-2 country code")
	cmd.Flags().StringVar(&region, "region", "", "Region or state code")
	cmd.Flags().IntVar(&year, "year", 0, "Year (default: current)")
	cmd.Flags().BoolVar(&listCountries, "countries", false, "List countries with built-in holiday rules")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print holidays as JSON")

	return cmd
}

func allowanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "allowance [country]",
		Short: "Show the statutory minimum paid days off",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				for _, code := range allowance.Countries() {
					fmt.Fprintf(out, "%s  %2d\n", code, allowance.Days(code))
				}
				return nil
			}

			code := calendar.NormalizeCountry(args[0])
			days, ok := allowance.Lookup(code)
			if !ok {
				return fmt.Errorf("no allowance known for %q", code)
			}
			fmt.Fprintf(out, "%s: %d days\n", code, days)
			return nil
		},
	}
}

func prefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Read and change saved preferences",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get [key]",
		Short: "Print one preference or all of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := initStore(cfg.Storage)
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				value, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("failed to get %s: %w", args[0], err)
				}
				fmt.Fprintln(out, value)
				return nil
			}

			all, err := store.All(cmd.Context())
			if err != nil {
				return err
			}
			keys := make([]string, 0, len(all))
			for k := range all {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(out, "%s = %s\n", k, all[k])
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Save a preference",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := initStore(cfg.Storage)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Set(cmd.Context(), args[0], args[1]); err != nil {
				return fmt.Errorf("failed to set %s: %w", args[0], err)
			}
			logger.Info("Preference saved", zap.String("key", args[0]))
			return nil
		},
	})

	cmd.AddCommand(hideCmd())
	cmd.AddCommand(weekendCmd())

	return cmd
}

func hideCmd() *cobra.Command {
	var (
		country string
		show    bool
	)

	cmd := &cobra.Command{
		Use:   "hide <date>",
		Short: "Hide a holiday so it is planned as a work day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateutil.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid date: %w", err)
			}
			if country == "" {
				country = cfg.Planner.Country
			}

			store, err := initStore(cfg.Storage)
			if err != nil {
				return err
			}
			defer store.Close()

			manager := planner.NewManager(nil, prefs.New(store), planner.Defaults{}, logger)
			return manager.SetHolidayHidden(cmd.Context(), country, date, !show)
		},
	}

	cmd.Flags().StringVar(&country, "country", "", "Country the holiday belongs to")
	cmd.Flags().BoolVar(&show, "show", false, "Show a hidden holiday again")

	return cmd
}

func weekendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weekend [day]",
		Short: "Print the weekend days, or toggle one (0 = Sunday)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := initStore(cfg.Storage)
			if err != nil {
				return err
			}
			defer store.Close()

			p := prefs.New(store)
			fallback, err := optimizer.WeekendSetFromInts(cfg.Planner.WeekendDays)
			if err != nil {
				return err
			}
			current, err := p.WeekendDaysOr(cmd.Context(), fallback)
			if err != nil {
				return err
			}

			days := current.Ints()
			if len(args) == 1 {
				day, err := strconv.Atoi(args[0])
				if err != nil || day < 0 || day > 6 {
					return fmt.Errorf("day must be between 0 and 6, got %q", args[0])
				}
				days = prefs.ToggleWeekendDay(days, day)

				weekend, err := optimizer.WeekendSetFromInts(days)
				if err != nil {
					return err
				}
				if err := p.SetWeekendDays(cmd.Context(), weekend); err != nil {
					return err
				}
			}

			names := make([]string, 0, len(days))
			for _, d := range days {
				names = append(names, time.Weekday(d).String())
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, ", "))
			return nil
		},
	}
}

func printPlan(w io.Writer, plan *planner.Plan) {
	fmt.Fprintf(w, "\n📅 Plan for %s %d (%s to %s)\n", plan.Country, plan.Year, plan.Start, plan.End)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "  Budget:          %d days\n", plan.Budget)
	fmt.Fprintf(w, "  Days used:       %d\n", plan.DaysUsed)
	fmt.Fprintf(w, "  Total days off:  %d\n", plan.TotalDaysOff)

	if len(plan.OptimizedDays) > 0 {
		days := append([]dateutil.Date(nil), plan.OptimizedDays...)
		sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

		fmt.Fprintln(w, "\n  Take off:")
		for _, d := range days {
			fmt.Fprintf(w, "    %s %s\n", d.Format("Mon"), d)
		}
	}

	if len(plan.Periods) > 0 {
		fmt.Fprintln(w, "\n  Breaks:")
		for _, p := range plan.Periods {
			note := ""
			if p.IncludesHoliday {
				note = ", holiday"
			}
			fmt.Fprintf(w, "    %s .. %s  %2d days  (%d off%s)\n",
				p.StartDate, p.EndDate, p.TotalDays, p.UsedDaysOff, note)
		}
	}
}

func printHolidays(w io.Writer, country string, year int, holidays []planner.PlannedHoliday) {
	fmt.Fprintf(w, "\n🎉 Holidays in %s %d\n", country, year)
	fmt.Fprintln(w, rule)
	for _, h := range holidays {
		mark := ""
		if h.Hidden {
			mark = "  (hidden)"
		}
		fmt.Fprintf(w, "  %s %s  %s%s\n", h.Date.Format("Mon"), h.Date, h.Name, mark)
	}
}

// parseOptionalDate returns the zero Date for an empty flag
func parseOptionalDate(s string) (dateutil.Date, error) {
	if strings.TrimSpace(s) == "" {
		return dateutil.Date{}, nil
	}
	return dateutil.Parse(s)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
