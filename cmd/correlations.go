package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crashtools/socorro-cli/core"
	"github.com/crashtools/socorro-cli/core/fetch"
	"github.com/crashtools/socorro-cli/core/normalize"
	"github.com/crashtools/socorro-cli/core/output"
	"github.com/crashtools/socorro-cli/core/render"
)

var (
	flagCorrSignature string
	flagCorrChannel   string
	flagCorrOut       string
)

var correlationsCmd = &cobra.Command{
	Use:   "correlations",
	Short: "Show over-represented attributes for a crash signature",
	Long: `Show attributes that are statistically over-represented in crashes with a
given signature compared to the overall crash population.

Correlation data is pre-computed daily for the top ~200 signatures per
channel. Signatures outside the top ~200 return a not-found error. No API
token is needed.

Examples:
  socorro-cli correlations --signature "UiaNode::ProviderInfo::~ProviderInfo"
  socorro-cli correlations --signature "OOM | small" --channel nightly
  socorro-cli correlations --signature "OOM | small" --format json

Output columns:
  sig_%  - share of this signature's crashes that have the attribute
  ref_%  - share of all crashes on the channel that have the attribute`,
	RunE: runCorrelations,
}

func init() {
	rootCmd.AddCommand(correlationsCmd)

	correlationsCmd.Flags().StringVar(&flagCorrSignature, "signature", "", "Crash signature (exact match)")
	correlationsCmd.Flags().StringVar(&flagCorrChannel, "channel", "release", "Release channel (release, beta, nightly, esr)")
	correlationsCmd.Flags().StringVarP(&flagCorrOut, "output", "o", "", "Write output to a file instead of stdout")
	_ = correlationsCmd.MarkFlagRequired("signature")
}

func runCorrelations(cmd *cobra.Command, args []string) error {
	renderer, err := render.Select(outputFormat)
	if err != nil {
		return err
	}

	client := fetch.NewCorrelationsClient(cfg.CorrelationsBaseURL, logger)
	ctx := context.Background()

	totals, err := client.FetchTotals(ctx)
	if err != nil {
		return err
	}
	if _, ok := totals.TotalForChannel(flagCorrChannel); !ok {
		return fmt.Errorf("unknown channel %q (valid channels: release, beta, nightly, esr)", flagCorrChannel)
	}

	raw, err := client.FetchSignature(ctx, flagCorrSignature, flagCorrChannel)
	if err != nil {
		return err
	}

	summary := normalize.Correlations(flagCorrSignature, flagCorrChannel, totals, raw)
	data, err := renderer.RenderCorrelations(summary)
	if err != nil {
		return err
	}

	defaultName := ""
	if outputFormat == core.FormatPDF {
		defaultName = "correlations_" + output.SanitizeName(flagCorrSignature) + renderer.Extension()
	}
	_, err = output.New(flagCorrOut).Write(data, defaultName)
	return err
}
