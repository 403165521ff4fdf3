package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crashtools/socorro-cli/batch"
	"github.com/crashtools/socorro-cli/core"
	"github.com/crashtools/socorro-cli/core/auth"
	"github.com/crashtools/socorro-cli/core/fetch"
	"github.com/crashtools/socorro-cli/core/normalize"
	"github.com/crashtools/socorro-cli/core/output"
	"github.com/crashtools/socorro-cli/core/render"
)

var (
	flagDepth      int
	flagFull       bool
	flagAllThreads bool
	flagCrashOut   string
)

var crashCmd = &cobra.Command{
	Use:   "crash <crash-id>...",
	Short: "Fetch details about specific crashes",
	Long: `Fetch details about specific crashes from Socorro.

Each crash ID can be:
  - A bare UUID: 247653e8-7a18-4836-97d1-42a720260120
  - A full Socorro URL: https://crash-stats.mozilla.org/report/index/247653e8-...

Examples:
  socorro-cli crash 247653e8-7a18-4836-97d1-42a720260120
  socorro-cli crash <crash-id> --depth 20
  socorro-cli crash <crash-id> --all-threads
  socorro-cli crash <crash-id> --full

Rate limits:
  --full and --format json skip the API token so the server strips protected
  fields from the response. These modes use unauthenticated rate limits even
  when a token is configured. Compact, markdown, and pdf formats still
  benefit from a stored token.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCrash,
}

func init() {
	rootCmd.AddCommand(crashCmd)

	crashCmd.Flags().IntVar(&flagDepth, "depth", 10, "Number of stack frames to show per thread")
	crashCmd.Flags().BoolVar(&flagFull, "full", false, "Output the complete raw crash data (skips the API token)")
	crashCmd.Flags().BoolVar(&flagAllThreads, "all-threads", false, "Show stacks from all threads, not just the crashing thread")
	crashCmd.Flags().StringVarP(&flagCrashOut, "output", "o", "", "Write output to a file instead of stdout")
}

func runCrash(cmd *cobra.Command, args []string) error {
	renderer, err := render.Select(outputFormat)
	if err != nil {
		return err
	}

	client := fetch.NewClient(cfg.APIBaseURL, auth.Token, logger)
	writer := output.New(flagCrashOut)
	ctx := context.Background()

	// Deduplicate IDs so a pasted list never fetches the same crash twice.
	queue := batch.NewQueue()
	for _, arg := range args {
		queue.Add(extractCrashID(arg))
	}

	// Skipping the token forces the server to strip protected fields; raw
	// passthrough modes must never carry them.
	useAuth := !flagFull && outputFormat != core.FormatJSON

	var failed int
	for queue.HasNext() {
		crashID := queue.Next()
		if err := fetchAndRender(ctx, client, renderer, writer, crashID, useAuth); err != nil {
			if queue.Len() == 1 {
				return err
			}
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", crashID, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d crashes failed", failed, queue.Len())
	}
	return nil
}

func fetchAndRender(ctx context.Context, client *fetch.Client, renderer core.Renderer, writer *output.Writer, crashID string, useAuth bool) error {
	result, err := client.FetchCrash(ctx, crashID, useAuth)
	if err != nil {
		return err
	}

	var data []byte
	if flagFull {
		data = result.Payload
	} else {
		summary := normalize.Crash(result.Record, flagDepth, flagAllThreads)
		data, err = renderer.RenderCrash(summary)
		if err != nil {
			return err
		}
	}

	defaultName := ""
	if outputFormat == core.FormatPDF {
		defaultName = "crash_" + output.SanitizeName(crashID) + renderer.Extension()
	}
	dest, err := writer.Write(data, defaultName)
	if err != nil {
		return err
	}
	if dest != "-" {
		fmt.Fprintf(os.Stderr, "written: %s\n", dest)
	}
	return nil
}

// extractCrashID accepts a bare crash ID or a pasted crash-stats URL and
// returns the ID.
func extractCrashID(input string) string {
	if !strings.HasPrefix(input, "http://") && !strings.HasPrefix(input, "https://") {
		return input
	}
	// Last non-empty path segment, tolerating trailing slashes.
	for _, seg := range reverse(strings.Split(input, "/")) {
		if seg != "" {
			return seg
		}
	}
	return input
}

func reverse(s []string) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}
