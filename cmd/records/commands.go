package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper-engine/internal/app"
	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/records"
)

type openFunc func(cmd *cobra.Command) (records.Store, error)

func newRootCmd(logger *slog.Logger) *cobra.Command {
	var driver, path string

	open := func(cmd *cobra.Command) (records.Store, error) {
		cfg, err := config.NewRecords()
		if err != nil {
			return nil, err
		}
		if cmd.Flags().Changed("driver") {
			cfg.Driver = config.RecordsDriver(driver)
		}
		if cmd.Flags().Changed("path") {
			cfg.SQLitePath = path
		}
		return app.OpenStore(cmd.Context(), logger, cfg)
	}

	root := &cobra.Command{
		Use:           "records",
		Short:         "Inspect and manage best completion times",
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&driver, "driver", "", "record store driver (sqlite, postgres, memory)")
	root.PersistentFlags().StringVar(&path, "path", "", "sqlite database file")

	root.AddCommand(
		newListCmd(open),
		newBestCmd(open),
		newResetCmd(open),
		newLevelsCmd(),
	)
	return root
}

func newListCmd(open openFunc) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the record for every level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.All(cmd.Context())
			if err != nil {
				return fmt.Errorf("list records: %w", err)
			}
			if jsonOutput {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(entries)
			}
			return printEntries(cmd.OutOrStdout(), entries)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output records in JSON format")

	return cmd
}

func newBestCmd(open openFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "best <level>",
		Short: "Show the record for one level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			best, ok, err := store.Best(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("read record: %w", err)
			}
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "no record for %s\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %ds\n", args[0], best)
			return nil
		},
	}
}

func newResetCmd(open openFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "reset <level>...",
		Short: "Forget the record for the given levels",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			for _, level := range args {
				if err := store.Delete(cmd.Context(), level); err != nil {
					return fmt.Errorf("reset %s: %w", level, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "reset %s\n", level)
			}
			return nil
		},
	}
}

func newLevelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "List the level presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "LEVEL\tSIZE\tMINES")
			for _, p := range mines.Levels() {
				fmt.Fprintf(tw, "%s\t%dx%d\t%d\n", p.Level, p.Width, p.Height, p.MineCount)
			}
			return tw.Flush()
		},
	}
}

func printEntries(w io.Writer, entries []records.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "no records yet")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LEVEL\tBEST")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%ds\n", e.Level, e.BestSeconds)
	}
	return tw.Flush()
}
