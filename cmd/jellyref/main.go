// Package main provides the jellyref command line tool, which lists and
// resolves <st:include page="..."> references in Jelly pages.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/0muji4/jellyref/internal/config"
	"github.com/0muji4/jellyref/internal/lsp"
	"github.com/0muji4/jellyref/internal/navigator"
	"github.com/0muji4/jellyref/internal/server"
	"github.com/0muji4/jellyref/internal/workspace"
)

func main() {
	if err := rootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	root       string
	logLevel   string
}

func rootCmd(out io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "jellyref",
		Short:         "Navigate Stapler include references in Jelly pages",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", os.Getenv("JELLYREF_CONFIG"), "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&opts.root, "root", ".", "Project root the page paths are relative to")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(&cobra.Command{
		Use:   "links FILE",
		Short: "List include references in a page and where they point",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nav, err := opts.newNavigator()
			if err != nil {
				return err
			}
			links, err := nav.Links(args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), links)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "definition FILE LINE COLUMN",
		Short: "Print the page an include at LINE:COLUMN (1-based) points to",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := strconv.Atoi(args[1])
			if err != nil || line < 1 {
				return fmt.Errorf("invalid line %q", args[1])
			}
			col, err := strconv.Atoi(args[2])
			if err != nil || col < 1 {
				return fmt.Errorf("invalid column %q", args[2])
			}

			nav, err := opts.newNavigator()
			if err != nil {
				return err
			}
			loc, err := nav.Definition(args[0], lsp.Position{Line: line - 1, Character: col - 1})
			if err != nil {
				return err
			}
			if loc == nil {
				return fmt.Errorf("no definition found at %s:%d:%d", args[0], line, col)
			}
			return writeJSON(cmd.OutOrStdout(), loc)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", server.Name, server.Version)
		},
	})

	return cmd
}

func (o options) newNavigator() (*navigator.Navigator, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		if _, err := config.ParseLevel(o.logLevel); err != nil {
			return nil, err
		}
		cfg.LogLevel = o.logLevel
	}
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	root, err := filepath.Abs(o.root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	return navigator.New(workspace.NewFS(root, cfg.Match()), cfg.Classifier(), logger), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
