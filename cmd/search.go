package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/crashtools/socorro-cli/core"
	"github.com/crashtools/socorro-cli/core/auth"
	"github.com/crashtools/socorro-cli/core/fetch"
	"github.com/crashtools/socorro-cli/core/normalize"
	"github.com/crashtools/socorro-cli/core/output"
	"github.com/crashtools/socorro-cli/core/render"
)

var (
	flagSignature       string
	flagProduct         string
	flagVersion         string
	flagPlatform        string
	flagCPUArch         string
	flagChannel         string
	flagPlatformVersion string
	flagProcessType     string
	flagDays            int
	flagLimit           int
	flagFacets          []string
	flagFacetsSize      int
	flagSort            string
	flagSearchOut       string
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search and aggregate crashes",
	Long: `Search and aggregate crashes via the Super Search API.

Multiple filters are combined with AND logic. Use --facet to aggregate
results by field (can be repeated).

Examples:
  socorro-cli search --signature "mozilla::AudioDecoderInputTrack"
  socorro-cli search --product Fenix --days 14
  socorro-cli search --product Firefox --facet platform --facet version
  socorro-cli search --channel nightly --days 14 --facet signature --facets-size 20

Top crashers:
  To list the top crash signatures by volume, use --facet signature. When
  --facet is used, individual crash rows are hidden by default; pass a
  nonzero --limit to also show individual crashes.

Signature patterns:
  Exact match:  --signature "OOM | small"
  Contains:     --signature "~AudioDecoder"`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&flagSignature, "signature", "", "Filter by crash signature (use ~ prefix for contains match)")
	searchCmd.Flags().StringVar(&flagProduct, "product", "", "Filter by product name (default from config, else Firefox)")
	searchCmd.Flags().StringVar(&flagVersion, "version", "", "Filter by product version (e.g. 120.0)")
	searchCmd.Flags().StringVar(&flagPlatform, "platform", "", "Filter by platform (Windows, Linux, Mac OS X, Android)")
	searchCmd.Flags().StringVar(&flagCPUArch, "cpu-arch", "", "Filter by CPU architecture (amd64, x86, arm64, arm)")
	searchCmd.Flags().StringVar(&flagChannel, "channel", "", "Filter by release channel (release, beta, nightly, esr, aurora, default)")
	searchCmd.Flags().StringVar(&flagPlatformVersion, "platform-version", "", "Filter by OS version string (~ prefix for contains match)")
	searchCmd.Flags().StringVar(&flagProcessType, "process-type", "", "Filter by process type (parent, content, gpu, ...)")
	searchCmd.Flags().IntVar(&flagDays, "days", 0, "Search crashes from the last N days (default from config, else 7)")
	searchCmd.Flags().IntVar(&flagLimit, "limit", -1, "Maximum crash rows to return (default 10, or 0 when --facet is used)")
	searchCmd.Flags().StringArrayVar(&flagFacets, "facet", nil, "Aggregate results by field (repeatable)")
	searchCmd.Flags().IntVar(&flagFacetsSize, "facets-size", 0, "Number of facet buckets to return per field")
	searchCmd.Flags().StringVar(&flagSort, "sort", "-date", "Sort field (prefix with - for descending)")
	searchCmd.Flags().StringVarP(&flagSearchOut, "output", "o", "", "Write output to a file instead of stdout")
}

func runSearch(cmd *cobra.Command, args []string) error {
	renderer, err := render.Select(outputFormat)
	if err != nil {
		return err
	}

	params := searchParams()
	client := fetch.NewClient(cfg.APIBaseURL, auth.Token, logger)
	raw, err := client.Search(context.Background(), params)
	if err != nil {
		return err
	}

	result := normalize.Search(raw, params.Limit, params.Facets, params.FacetsSize)
	data, err := renderer.RenderSearch(result)
	if err != nil {
		return err
	}

	defaultName := ""
	if outputFormat == core.FormatPDF {
		defaultName = "search" + renderer.Extension()
	}
	_, err = output.New(flagSearchOut).Write(data, defaultName)
	return err
}

// searchParams resolves flags against config defaults. An unset --limit
// means 10 rows, or none at all once facets are requested: facet-only
// queries should not imply row fetching.
func searchParams() core.SearchParams {
	product := flagProduct
	if product == "" {
		product = cfg.DefaultProduct
	}
	days := flagDays
	if days <= 0 {
		days = cfg.DefaultDays
	}
	limit := flagLimit
	if limit < 0 {
		if len(flagFacets) > 0 {
			limit = 0
		} else {
			limit = 10
		}
	}
	return core.SearchParams{
		Signature:       flagSignature,
		Product:         product,
		Version:         flagVersion,
		Platform:        flagPlatform,
		CPUArch:         flagCPUArch,
		Channel:         flagChannel,
		PlatformVersion: flagPlatformVersion,
		ProcessType:     flagProcessType,
		Days:            days,
		Limit:           limit,
		Facets:          flagFacets,
		FacetsSize:      flagFacetsSize,
		Sort:            flagSort,
	}
}
