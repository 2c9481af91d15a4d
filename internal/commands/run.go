package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/salescope-dev/salescope/internal/analytics"
	"github.com/salescope-dev/salescope/internal/catalog"
	"github.com/salescope-dev/salescope/internal/config"
	"github.com/salescope-dev/salescope/internal/input"
	"github.com/salescope-dev/salescope/internal/logging"
	"github.com/salescope-dev/salescope/internal/model"
	"github.com/salescope-dev/salescope/internal/report"
	"github.com/salescope-dev/salescope/internal/runlog"
	"github.com/salescope-dev/salescope/internal/sales"
)

const totalSteps = 14

func newRunCommand() *cobra.Command {
	var configPath string
	var yes bool
	var region string
	var minAmount string
	var maxAmount string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full sales analytics pipeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			filter, err := filterFromFlags(region, minAmount, maxAmount)
			if err != nil {
				return err
			}
			// Flags imply a non-interactive run.
			interactive := !yes && region == "" && minAmount == "" && maxAmount == ""

			return runPipeline(cmd, cfg, filter, interactive)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "salescope.yaml", "path to config file")
	cmd.Flags().BoolVar(&yes, "yes", false, "run without prompting")
	cmd.Flags().StringVar(&region, "region", "", "only include this region")
	cmd.Flags().StringVar(&minAmount, "min-amount", "", "minimum transaction amount")
	cmd.Flags().StringVar(&maxAmount, "max-amount", "", "maximum transaction amount")

	return cmd
}

func filterFromFlags(region, minAmount, maxAmount string) (sales.Filter, error) {
	filter := sales.Filter{Region: region}
	if minAmount != "" {
		d, err := decimal.NewFromString(minAmount)
		if err != nil {
			return sales.Filter{}, fmt.Errorf("invalid --min-amount %q: %w", minAmount, err)
		}
		filter.MinAmount = decimal.NewNullDecimal(d)
	}
	if maxAmount != "" {
		d, err := decimal.NewFromString(maxAmount)
		if err != nil {
			return sales.Filter{}, fmt.Errorf("invalid --max-amount %q: %w", maxAmount, err)
		}
		filter.MaxAmount = decimal.NewNullDecimal(d)
	}
	return filter, nil
}

func runPipeline(cmd *cobra.Command, cfg *config.Config, filter sales.Filter, interactive bool) error {
	log := logging.New(cfg.Logging.Level)
	runID := uuid.NewString()
	log = log.With().Str("run_id", runID).Logger()

	cmd.Println(strings.Repeat("=", 47))
	cmd.Println("     SALES ANALYTICS SYSTEM")
	cmd.Println(strings.Repeat("=", 47))

	// 1. Read raw lines.
	step(cmd, 1, "Reading sales data")
	lines, err := input.ReadLines(cfg.Input.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("sales data file not found: %w", err)
	}
	if err != nil {
		return err
	}
	log.Info().Int("lines", len(lines)).Msg("sales data read")

	// 2. Parse.
	step(cmd, 2, "Parsing and cleaning data")
	txns := sales.Parse(lines)
	log.Info().Int("parsed", len(txns)).Int("dropped", len(lines)-len(txns)).Msg("lines parsed")

	// 3. Filter options: validate without filters and show the user
	// what is available before asking.
	step(cmd, 3, "Analyzing filter options")
	preview := sales.ValidateAndFilter(txns, sales.Filter{})
	printObservations(cmd, preview.Observations)
	if interactive {
		filter, err = promptFilter(cmd, preview.Observations)
		if err != nil {
			return err
		}
	}

	// 4. Validate and filter for real.
	step(cmd, 4, "Validating transactions")
	res := sales.ValidateAndFilter(txns, filter)
	cmd.Printf("    Valid: %d | Invalid: %d\n", res.Summary.FinalCount, res.Summary.Invalid)
	if res.Summary.FilteredByRegion > 0 {
		cmd.Printf("    Removed by region filter: %d\n", res.Summary.FilteredByRegion)
	}
	if res.Summary.FilteredByAmount > 0 {
		cmd.Printf("    Removed by amount filter: %d\n", res.Summary.FilteredByAmount)
	}

	// 5-10. Analytics passes. Each is independent; the report renders
	// from the same validated set.
	step(cmd, 5, "Calculating total revenue")
	total := analytics.TotalRevenue(res.Valid)
	log.Info().Str("total_revenue", total.StringFixed(2)).Msg("revenue computed")

	step(cmd, 6, "Analyzing daily trend")
	trend := analytics.DailyTrend(res.Valid)
	log.Info().Int("days", len(trend)).Msg("daily trend computed")

	step(cmd, 7, "Finding peak sales day")
	if peak, ok := analytics.PeakDay(res.Valid); ok {
		log.Info().Str("date", peak.Date).Str("revenue", peak.Revenue.StringFixed(2)).Msg("peak day found")
	} else {
		log.Warn().Msg("no data for peak day")
	}

	step(cmd, 8, "Analyzing customers")
	customers := analytics.Customers(res.Valid)
	log.Info().Int("customers", len(customers)).Msg("customer analysis computed")

	step(cmd, 9, "Ranking products")
	top := analytics.TopProducts(res.Valid, cfg.Report.TopProducts)
	low := analytics.LowProducts(res.Valid, cfg.Report.LowThreshold)
	log.Info().Int("top", len(top)).Int("low", len(low)).Msg("products ranked")

	step(cmd, 10, "Analyzing regions")
	regions := analytics.RegionSales(res.Valid)
	log.Info().Int("regions", len(regions)).Msg("region analysis computed")

	// 11. Catalog fetch. A failed fetch degrades to an empty catalog;
	// the pipeline continues with nothing matched.
	step(cmd, 11, "Fetching product catalog")
	client := catalog.NewClient(cfg.Catalog.URL, cfg.Catalog.Limit, cfg.Catalog.Timeout.Std())
	products, err := client.FetchProducts(cmd.Context())
	if err != nil {
		log.Warn().Err(err).Msg("catalog fetch failed, continuing without enrichment data")
		products = nil
	}
	log.Info().Int("products", len(products)).Msg("catalog fetched")

	// 12. Enrich.
	step(cmd, 12, "Enriching sales data")
	mapping := catalog.BuildMapping(products)
	enriched := catalog.Enrich(res.Valid, mapping)
	matched := 0
	for _, e := range enriched {
		if e.Match {
			matched++
		}
	}
	if len(enriched) > 0 {
		cmd.Printf("    Matched %d/%d (%.1f%%)\n", matched, len(enriched), float64(matched)/float64(len(enriched))*100)
	}

	// 13. Save enriched export.
	step(cmd, 13, "Saving enriched data")
	if err := writeEnrichedFile(cfg.Output.EnrichedPath, enriched); err != nil {
		return err
	}

	// 14. Report.
	step(cmd, 14, "Generating report")
	text := report.Build(report.Data{
		GeneratedAt:  time.Now(),
		ReportID:     runID,
		Valid:        res.Valid,
		Enriched:     enriched,
		TopProducts:  cfg.Report.TopProducts,
		TopCustomers: cfg.Report.TopCustomers,
		TrendRows:    cfg.Report.TrendRows,
		LowThreshold: cfg.Report.LowThreshold,
	})
	if err := os.WriteFile(cfg.Output.ReportPath, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if err := runlog.Append(".", runlog.Entry{
		Timestamp:    time.Now(),
		RunID:        runID,
		InputPath:    cfg.Input.Path,
		Parsed:       len(txns),
		Valid:        res.Summary.FinalCount,
		Invalid:      res.Summary.Invalid,
		Matched:      matched,
		TotalRevenue: total,
	}); err != nil {
		log.Warn().Err(err).Msg("failed to append run log")
	}

	cmd.Println(strings.Repeat("=", 47))
	cmd.Println("Files generated:")
	cmd.Printf("  - Enriched data: %s\n", cfg.Output.EnrichedPath)
	cmd.Printf("  - Full report:   %s\n", cfg.Output.ReportPath)
	cmd.Println(strings.Repeat("=", 47))
	return nil
}

func step(cmd *cobra.Command, n int, msg string) {
	cmd.Printf("[%2d/%d] %s...\n", n, totalSteps, msg)
}

func printObservations(cmd *cobra.Command, obs sales.Observations) {
	if !obs.HasAmount {
		cmd.Println("    No valid transactions to filter.")
		return
	}
	cmd.Printf("    Available regions: %s\n", strings.Join(obs.Regions, ", "))
	cmd.Printf("    Transaction amount range: %s to %s\n", obs.MinAmount.StringFixed(2), obs.MaxAmount.StringFixed(2))
}

// promptFilter asks the user once whether to filter, then collects the
// optional region and amount bounds. Blank answers leave a criterion
// open.
func promptFilter(cmd *cobra.Command, obs sales.Observations) (sales.Filter, error) {
	reader := bufio.NewReader(cmd.InOrStdin())

	answer, err := ask(cmd, reader, "\nDo you want to filter data? (y/n): ")
	if err != nil {
		return sales.Filter{}, err
	}
	if !strings.EqualFold(answer, "y") {
		return sales.Filter{}, nil
	}

	var filter sales.Filter
	if filter.Region, err = ask(cmd, reader, "Region (blank for all): "); err != nil {
		return sales.Filter{}, err
	}

	minStr, err := ask(cmd, reader, "Minimum amount (blank for none): ")
	if err != nil {
		return sales.Filter{}, err
	}
	maxStr, err := ask(cmd, reader, "Maximum amount (blank for none): ")
	if err != nil {
		return sales.Filter{}, err
	}
	return mergeAmountBounds(filter, minStr, maxStr)
}

func mergeAmountBounds(filter sales.Filter, minStr, maxStr string) (sales.Filter, error) {
	if minStr != "" {
		d, err := decimal.NewFromString(minStr)
		if err != nil {
			return sales.Filter{}, fmt.Errorf("invalid minimum amount %q: %w", minStr, err)
		}
		filter.MinAmount = decimal.NewNullDecimal(d)
	}
	if maxStr != "" {
		d, err := decimal.NewFromString(maxStr)
		if err != nil {
			return sales.Filter{}, fmt.Errorf("invalid maximum amount %q: %w", maxStr, err)
		}
		filter.MaxAmount = decimal.NewNullDecimal(d)
	}
	return filter, nil
}

func ask(cmd *cobra.Command, reader *bufio.Reader, prompt string) (string, error) {
	cmd.Print(prompt)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		// EOF with no input means no answer; treat as blank.
		return "", nil
	}
	return strings.TrimSpace(line), nil
}

func writeEnrichedFile(path string, enriched []model.Enriched) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating enriched export: %w", err)
	}

	if err := sales.WriteEnriched(f, enriched); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing enriched export: %w", err)
	}
	return nil
}
