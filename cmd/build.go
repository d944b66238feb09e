// The build command orchestrates the pipeline:
// read sources → parse → render → write → splice diagrams.

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/helpdoc/config"
	"github.com/gaurav-prasanna/helpdoc/core/build"
)

// Flag variables.
var (
	flagTopics     string
	flagProcedures string
	flagDiagrams   string
	flagTemplate   string
	flagTextOut    string
	flagHTMLOut    string
	flagTempDir    string
	flagMarkdown   string
	flagPDF        string
	flagManifest   string
	flagEncoder    string
	flagSplicer    string
	flagTimeout    time.Duration
	flagJobs       int
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Compile the documentation sources",
	Long: `Build reads every topic and procedure source, writes the aggregate help file
and one HTML page per topic, then re-encodes each diagram to code page 437 and
splices it into the help file.

Flags override the values of the config file.

Examples:
  helpdoc build
  helpdoc build --config doc/helpdoc.yaml --markdown ./out/md
  helpdoc build --pdf ./out/manual.pdf --manifest ./out/manifest.json
  helpdoc build --encoder iconv --splicer ../obj/insert-cp437-diagram`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	// Sources.
	buildCmd.Flags().StringVar(&flagTopics, "topics", "", "Topic source directory")
	buildCmd.Flags().StringVar(&flagProcedures, "procedures", "", "Procedure source directory")
	buildCmd.Flags().StringVar(&flagDiagrams, "diagrams", "", "Diagram source directory")
	buildCmd.Flags().StringVar(&flagTemplate, "template", "", "HTML page template with [TITLE] and [BODY] (default: built in)")

	// Outputs.
	buildCmd.Flags().StringVar(&flagTextOut, "text_out", "", "Output directory of help.txt")
	buildCmd.Flags().StringVar(&flagHTMLOut, "html_out", "", "Output directory of the HTML pages")
	buildCmd.Flags().StringVar(&flagTempDir, "temp_dir", "", "Directory for re-encoded diagrams")
	buildCmd.Flags().StringVar(&flagMarkdown, "markdown", "", "Also write Markdown pages to this directory")
	buildCmd.Flags().StringVar(&flagPDF, "pdf", "", "Also write a PDF manual to this file")
	buildCmd.Flags().StringVar(&flagManifest, "manifest", "", "Also write a JSON topic manifest to this file")

	// External tools.
	buildCmd.Flags().StringVar(&flagEncoder, "encoder", "", "Diagram encoder: builtin or iconv")
	buildCmd.Flags().StringVar(&flagSplicer, "splicer", "", "Diagram splicer: builtin or the path of a helper binary")
	buildCmd.Flags().DurationVar(&flagTimeout, "timeout", config.DefaultToolTimeout, "Time limit of each external tool call")

	buildCmd.Flags().IntVar(&flagJobs, "jobs", 0, "Files rendered in parallel (default: number of CPUs)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyBuildFlags(cmd, cfg)

	logger, err := GetBaseLogger(cmd)
	if err != nil {
		return err
	}

	driver, err := build.New(cfg, logger, cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("initializing build: %w", err)
	}

	res, err := driver.Run(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Built %d topics, %d procedures, %d diagrams\n", res.Topics, res.Procedures, res.Diagrams)
	return nil
}

// applyBuildFlags copies every flag set on the command line over cfg.
func applyBuildFlags(cmd *cobra.Command, cfg *config.Config) {
	paths := map[string]*string{
		"topics":     &cfg.TopicsDir,
		"procedures": &cfg.ProceduresDir,
		"diagrams":   &cfg.DiagramsDir,
		"template":   &cfg.Template,
		"text_out":   &cfg.TextOut,
		"html_out":   &cfg.HTMLOut,
		"temp_dir":   &cfg.TempDir,
		"markdown":   &cfg.MarkdownOut,
		"pdf":        &cfg.PDFOut,
		"manifest":   &cfg.ManifestOut,
		"encoder":    &cfg.Encoder,
		"splicer":    &cfg.Splicer,
	}
	flags := cmd.Flags()
	for name, dst := range paths {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	if flags.Changed("timeout") {
		cfg.ToolTimeout = flagTimeout
	}
	if flags.Changed("jobs") {
		cfg.Jobs = flagJobs
	}
}
