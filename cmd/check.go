package cmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/helpdoc/core/fetch"
	"github.com/gaurav-prasanna/helpdoc/crawl"
)

var (
	flagHome   string
	flagStrict bool
)

var checkCmd = &cobra.Command{
	Use:   "check [html-dir]",
	Short: "Check the links of a built HTML site",
	Long: `Check walks the built HTML pages breadth-first from the home topic and
reports links to pages that do not exist. With --strict, pages that cannot be
reached from the home topic are reported as errors too.

External links and static assets are not followed.

Examples:
  helpdoc check
  helpdoc check ../obj/doc-html --strict`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&flagHome, "home", "", "Topic id to start from (default: the configured home topic)")
	checkCmd.Flags().BoolVar(&flagStrict, "strict", false, "Fail on pages unreachable from the home topic")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := GetBaseLogger(cmd)
	if err != nil {
		return err
	}

	dir := cfg.HTMLOut
	if len(args) == 1 {
		dir = args[0]
	}
	home := flagHome
	if home == "" {
		home = cfg.Names.WithDefaults().HomeTopic
	}

	fetcher := fetch.New(dir)
	pages, err := fetcher.Pages()
	if err != nil {
		return err
	}
	logger.Debug("checking links", "dir", dir, "home", home, "pages", len(pages))

	report, err := crawl.Check(cmd.Context(), home, fetcher, pages)
	if err != nil {
		return fmt.Errorf("checking links: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Reached %d of %d pages from %s (%d external links skipped)\n",
		len(report.Reachable), len(pages), home, report.External)
	if len(report.Dead) > 0 || len(report.Orphans) > 0 {
		fmt.Fprint(out, problemTable(report))
	}

	if len(report.Dead) > 0 {
		return fmt.Errorf("%d dead links", len(report.Dead))
	}
	if flagStrict && len(report.Orphans) > 0 {
		return fmt.Errorf("%d unreachable pages", len(report.Orphans))
	}
	fmt.Fprintln(out, "✓ No dead links")
	return nil
}

func problemTable(report crawl.Report) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Problem", "Page", "Linked From"})
	for _, d := range report.Dead {
		t.AppendRow(table.Row{"dead link", d.Target, d.From})
	}
	for _, o := range report.Orphans {
		t.AppendRow(table.Row{"unreachable", o, ""})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true},
		{Number: 2, AutoMerge: true},
	})
	style := table.StyleLight
	style.Options.DrawBorder = false
	t.SetStyle(style)
	return t.Render() + "\n"
}
