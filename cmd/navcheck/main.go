// Command navcheck validates a documentation site's sidebars and answers
// navigation queries against them from the command line.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dgallion1/docnav/internal/config"
	"github.com/dgallion1/docnav/internal/nav"
	"github.com/dgallion1/docnav/internal/pipeline"
	"github.com/dgallion1/docnav/internal/render"
	"github.com/spf13/cobra"
)

// Version describes the version of the current build.
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	siteDir      string
	siteConfig   string
	docsDir      string
	sidebarsPath string
	onBrokenRefs string
	drafts       bool
	verbose      bool
}

func newRootCmd() *cobra.Command {
	cfg := config.Load()
	opts := &options{
		siteDir:      cfg.SiteDir,
		siteConfig:   cfg.SiteConfig,
		docsDir:      cfg.DocsDir,
		sidebarsPath: cfg.SidebarsPath,
		onBrokenRefs: cfg.OnBrokenRefs,
		drafts:       cfg.IncludeDrafts,
	}

	root := &cobra.Command{
		Use:          "navcheck",
		Short:        "Validate documentation sidebars and query the resolved navigation",
		Version:      Version,
		SilenceUsage: true,
	}
	f := root.PersistentFlags()
	f.StringVarP(&opts.siteDir, "site-dir", "d", opts.siteDir, "Site root; relative paths are resolved against it")
	f.StringVarP(&opts.siteConfig, "config", "c", opts.siteConfig, "Site config file")
	f.StringVar(&opts.docsDir, "docs", opts.docsDir, "Content directory")
	f.StringVarP(&opts.sidebarsPath, "sidebars", "s", opts.sidebarsPath, "Sidebars file (defaults to docs.sidebarPath of the site config)")
	f.StringVar(&opts.onBrokenRefs, "on-broken-refs", opts.onBrokenRefs, "Override onBrokenLinks: throw, warn or ignore")
	f.BoolVar(&opts.drafts, "drafts", opts.drafts, "Include documents marked draft")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Log build progress to stderr")

	root.AddCommand(
		validateCmd(opts),
		lookupCmd(opts),
		pagerCmd(opts),
		renderCmd(opts),
	)
	return root
}

// build resolves the site described by opts.
func (o *options) build(ctx context.Context, stderr io.Writer) (*pipeline.Snapshot, pipeline.BuildSnapshot, error) {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelInfo
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg := config.Config{
		SiteDir:              o.siteDir,
		SiteConfig:           o.siteConfig,
		DocsDir:              o.docsDir,
		SidebarsPath:         o.sidebarsPath,
		OnBrokenRefs:         o.onBrokenRefs,
		IncludeDrafts:        o.drafts,
		ParseConcurrency:     8,
		TOCMaxLevel:          3,
		PDFFallbackPdftotext: true,
	}
	orch := pipeline.NewOrchestrator(cfg, log)
	build, err := orch.Rebuild(ctx, "cli")
	return orch.Current(), build, err
}

func validateCmd(opts *options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Resolve every sidebar and report all problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, build, err := opts.build(cmd.Context(), cmd.ErrOrStderr())
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if encErr := enc.Encode(build); encErr != nil {
					return encErr
				}
				if err != nil {
					return errors.New("validation failed")
				}
				return nil
			}
			if err != nil {
				var verr *nav.ValidationError
				if errors.As(err, &verr) {
					for _, e := range verr.Errs {
						fmt.Fprintf(out, "error: %v\n", e)
					}
					return fmt.Errorf("%d problem(s) found", len(verr.Errs))
				}
				return err
			}
			for _, t := range snap.Nav.Trees() {
				fmt.Fprintf(out, "%s: %d docs, %d pages\n", t.Name(), len(t.DocIDs()), len(t.Pages()))
			}
			fmt.Fprintf(out, "ok: %d documents indexed\n", snap.Content.Len())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the build record as JSON")
	return cmd
}

func lookupCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <doc-id>",
		Short: "Print the breadcrumb of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, _, err := opts.build(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			crumb, ok := snap.Nav.Lookup(args[0])
			if !ok {
				return fmt.Errorf("document %q is not in any sidebar", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), crumb)
			return nil
		},
	}
}

func pagerCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "pager <doc-id>",
		Short: "Print the previous and next pages of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, _, err := opts.build(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			p, ok := snap.Nav.Pager(args[0])
			if !ok {
				return fmt.Errorf("document %q is not in any sidebar", args[0])
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "previous: %s\n", pageString(p.Previous))
			fmt.Fprintf(out, "next: %s\n", pageString(p.Next))
			return nil
		},
	}
}

func pageString(p *nav.Page) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%s (%s)", p.Label, p.Href)
}

func renderCmd(opts *options) *cobra.Command {
	var active string
	cmd := &cobra.Command{
		Use:   "render <sidebar>",
		Short: "Render a sidebar as an HTML menu",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, _, err := opts.build(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			tree, ok := snap.Nav.Tree(args[0])
			if !ok {
				return fmt.Errorf("unknown sidebar %q (have %v)", args[0], snap.Nav.Names())
			}
			if err := render.Sidebar(cmd.OutOrStdout(), tree, active); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
	cmd.Flags().StringVar(&active, "active", "", "Mark this document id as the current page")
	return cmd
}
