package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Aquid0/Prompt-Heatmap/internal/bootstrap"
	"github.com/Aquid0/Prompt-Heatmap/internal/platform/config"
	heatmapview "github.com/Aquid0/Prompt-Heatmap/internal/ui/views/heatmap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// globalFlags are the persistent root flags shared by every subcommand.
type globalFlags struct {
	vault        string
	configFile   string
	logLevel     string
	checklist    string
	records      string
	dateFormat   string
	counterField string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:           "prompt-heatmap",
		Short:         "Draw writing prompts from a vault checklist and track answered days",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&flags.vault, "vault", ".", "vault root directory")
	pf.StringVar(&flags.configFile, "config", "", "config file (default <vault>/.prompt-heatmap/config.yaml)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug|info|warn|error")
	pf.StringVar(&flags.checklist, "checklist", "", "vault-relative path of the prompt checklist note")
	pf.StringVar(&flags.records, "records", "", "vault-relative folder for daily record notes")
	pf.StringVar(&flags.dateFormat, "date-format", "", "locale tag, strftime pattern or Go layout for record names")
	pf.StringVar(&flags.counterField, "counter-field", "", "frontmatter field holding the answered count")

	root.AddCommand(newDrawCmd(flags))
	root.AddCommand(newPromptsCmd(flags))
	root.AddCommand(newRecordCmd(flags))
	root.AddCommand(newHeatmapCmd(flags))
	root.AddCommand(newHistoryCmd(flags))
	root.AddCommand(newConfigCmd(flags))
	root.AddCommand(newTUICmd(flags))
	return root
}

func loadConfig(flags *globalFlags) (config.Config, error) {
	return config.Load(config.Options{
		VaultPath:  flags.vault,
		ConfigFile: flags.configFile,
		Overrides: map[string]string{
			"checklist_path":         flags.checklist,
			"record_folder_path":     flags.records,
			"date_key_format":        flags.dateFormat,
			"answered_counter_field": flags.counterField,
			"log.level":              flags.logLevel,
		},
	})
}

func loadApp(ctx context.Context, flags *globalFlags) (*bootstrap.App, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(ctx, cfg, bootstrap.Options{})
}

func newDrawCmd(flags *globalFlags) *cobra.Command {
	var open bool
	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Draw one prompt and log it in today's record note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			out, err := app.DrawCLI.Run(cmd.Context(), open)
			if out.PickID != "" {
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintln(w, out.Message)
				_, _ = fmt.Fprintf(w, "prompt: %s\n", out.Label)
				_, _ = fmt.Fprintf(w, "record: %s (%d answered)\n", out.RecordPath, out.Answered)
			}
			if err != nil {
				return err
			}
			if out.Opened {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "opened %s\n", out.RecordPath)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&open, "open", false, "open the record note with the system handler")
	return cmd
}

func newPromptsCmd(flags *globalFlags) *cobra.Command {
	prompts := &cobra.Command{Use: "prompts", Short: "Prompt checklist queries"}

	prompts.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Count pending and completed prompts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.ChecklistCLI.Status(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d pending (%d drawable), %d done, %d lines\n",
				out.Path, out.Pending, out.Eligible, out.Done, out.Lines)
			return nil
		},
	})

	prompts.AddCommand(&cobra.Command{
		Use:   "pending",
		Short: "List prompts that can still be drawn",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.ChecklistCLI.Pending(cmd.Context())
			if err != nil {
				return err
			}
			if len(out.Entries) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no pending prompts")
				return nil
			}
			for _, e := range out.Entries {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%4d  %s\n", e.Line, e.Label)
			}
			return nil
		},
	})
	return prompts
}

func newRecordCmd(flags *globalFlags) *cobra.Command {
	record := &cobra.Command{Use: "record", Short: "Daily record notes"}

	var dateKey string
	show := &cobra.Command{
		Use:   "show",
		Short: "Show the prompts logged in a daily record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.RecordCLI.Show(cmd.Context(), dateKey)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "%s (%d answered)\n", out.Path, out.Answered)
			for i, label := range out.Labels {
				_, _ = fmt.Fprintf(w, "%d. %s\n", i+1, label)
			}
			return nil
		},
	}
	show.Flags().StringVar(&dateKey, "date", "", "date key as it appears in the note name (default today)")

	reindex := &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the record index from the vault",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.RecordCLI.Reindex(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "indexed %d records, skipped %d\n", out.Indexed, out.Skipped)
			return nil
		},
	}

	record.AddCommand(show, reindex)
	return record
}

func newHeatmapCmd(flags *globalFlags) *cobra.Command {
	var weeks int
	cmd := &cobra.Command{
		Use:   "heatmap",
		Short: "Render answered prompts per day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if weeks < 1 {
				return fmt.Errorf("--weeks must be at least 1")
			}
			app, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.RecordCLI.Heatmap(cmd.Context(), time.Time{}, weeks)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), heatmapview.Render(out, false))
			return nil
		},
	}
	cmd.Flags().IntVar(&weeks, "weeks", 26, "number of weeks to show")
	return cmd
}

func newHistoryCmd(flags *globalFlags) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent picks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			picks, err := app.DrawCLI.History(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(picks) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no picks yet")
				return nil
			}
			for _, p := range picks {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %-12s %s\n",
					p.PickedAt.Local().Format("2006-01-02 15:04"), p.DateKey, p.Label)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "number of picks to show")
	return cmd
}

func newConfigCmd(flags *globalFlags) *cobra.Command {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration"}
	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			payload, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			_, _ = cmd.OutOrStdout().Write(payload)
			return nil
		},
	})
	return cfgCmd
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			return bootstrap.RunTUI(cmd.Context(), app)
		},
	}
}
