package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/helpdoc/config"
	"github.com/gaurav-prasanna/helpdoc/core/markup"
	"github.com/gaurav-prasanna/helpdoc/core/procedure"
	"github.com/gaurav-prasanna/helpdoc/core/source"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the topics and procedures of the sources",
	Long: `List parses every topic and procedure source and prints one row per topic
with its id, title and source size. Sources that fail to parse are listed with
their error.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := GetBaseLogger(cmd)
	if err != nil {
		return err
	}
	logger.Debug("listing sources", "topics", cfg.TopicsDir, "procedures", cfg.ProceduresDir)
	return listSources(cmd.OutOrStdout(), cfg)
}

func listSources(out io.Writer, cfg *config.Config) error {
	engine := markup.New(cfg.Names, nil)

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"Kind", "Topic", "Title", "Size"})

	topics, err := source.ListFiles(cfg.TopicsDir)
	if err != nil {
		return err
	}
	for _, path := range topics {
		title := ""
		topic, err := source.ReadTopic(path)
		if err == nil {
			title, err = engine.Title(topic.Body)
		}
		if err != nil {
			title = "error: " + err.Error()
		}
		t.AppendRow(table.Row{"topic", source.Name(path), title, fileSize(path)})
	}

	procs, err := source.ListFiles(cfg.ProceduresDir)
	if err != nil {
		return err
	}
	for _, path := range procs {
		p, err := procedure.ParseFile(path)
		if err != nil {
			t.AppendRow(table.Row{"procedure", source.Name(path), "error: " + err.Error(), fileSize(path)})
			continue
		}
		var sigs []string
		for _, o := range p.Overloads {
			sigs = append(sigs, o.Signature(p.Name))
		}
		t.AppendRow(table.Row{"procedure", p.TopicID(), strings.Join(sigs, "\n"), fileSize(path)})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true},
	})
	style := table.StyleLight
	style.Options.DrawBorder = false
	t.SetStyle(style)
	t.Render()

	fmt.Fprintf(out, "%d topics, %d procedures\n", len(topics), len(procs))
	return nil
}

func fileSize(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "?"
	}
	return humanize.Bytes(uint64(info.Size()))
}
