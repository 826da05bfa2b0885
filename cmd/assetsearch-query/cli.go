package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"assetsearch/internal/core/version"
	"assetsearch/internal/modkit"
	"assetsearch/internal/modkit/module"
	"assetsearch/internal/platform/config"
	"assetsearch/internal/platform/logger"
	"assetsearch/internal/platform/net/http/bind"
	"assetsearch/internal/platform/store"
	"assetsearch/internal/services/api/search/domain"
	searchmod "assetsearch/internal/services/api/search/module"
	logdom "assetsearch/internal/services/api/searchlog/domain"
	logmod "assetsearch/internal/services/api/searchlog/module"

	"github.com/spf13/cobra"
)

// app carries the flags and seams shared by the commands
type app struct {
	out  io.Writer
	open func(context.Context) (*store.Store, error)

	page   int
	asJSON bool
	hours  int
	limit  int
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "assetsearch-query <term>",
		Short: "Search the avatar libraries from the shell",
		Long: `Runs one search against the store configured by SERVICE_DB_* and prints
the requested page. Searches made here are not written to the event log.

A term that collides with a subcommand name goes after --, for example
  assetsearch-query --page 2 -- top`,
		Args:          cobra.MinimumNArgs(1),
		Version:       version.Info("assetsearch-query").String(),
		SilenceUsage:  true,
		RunE:          a.runSearch,
	}
	root.SetOut(a.out)
	root.Flags().IntVarP(&a.page, "page", "p", 1, "page number, values below 1 mean 1")
	root.Flags().BoolVar(&a.asJSON, "json", false, "print the API payload instead of text")

	top := &cobra.Command{
		Use:   "top",
		Short: "Print the most searched terms from the event log",
		Args:  cobra.NoArgs,
		RunE:  a.runTop,
	}
	top.Flags().IntVar(&a.hours, "hours", 24, "look back this many hours (1-720)")
	top.Flags().IntVar(&a.limit, "limit", 10, "number of terms (1-100)")
	top.Flags().BoolVar(&a.asJSON, "json", false, "print JSON instead of text")
	root.AddCommand(top)

	return root
}

// withDeps opens the store, hands module deps to fn and closes the store after
func (a *app) withDeps(ctx context.Context, fn func(modkit.Deps) error) error {
	st, err := a.open(ctx)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			logger.Get().Warn().Err(err).Msg("closing store")
		}
	}()
	return fn(modkit.DepsFrom(config.New(), *logger.Get(), st))
}

func (a *app) runSearch(cmd *cobra.Command, args []string) error {
	q := domain.SearchQuery{Term: strings.Join(args, " "), Page: a.page}
	return a.withDeps(cmd.Context(), func(deps modkit.Deps) error {
		searcher := module.MustPortsOf[searchmod.Exposed](searchmod.New(deps)).Searcher
		res, err := searcher.Search(cmd.Context(), q)
		if err != nil {
			return err
		}
		if a.asJSON {
			return writeJSON(a.out, domain.Response(res))
		}
		writeResult(a.out, res)
		return nil
	})
}

func (a *app) runTop(cmd *cobra.Command, _ []string) error {
	in := logdom.TopInput{Hours: a.hours, Limit: a.limit}
	if err := bind.Get().Validator.Struct(in); err != nil {
		_, msg := bind.ValidationFieldAndMessage(err)
		return fmt.Errorf("invalid flags: %s", msg)
	}
	return a.withDeps(cmd.Context(), func(deps modkit.Deps) error {
		terms, err := module.MustPortsOf[logmod.Ports](logmod.New(deps)).Log.Top(cmd.Context(), in)
		if err != nil {
			return err
		}
		if a.asJSON {
			return writeJSON(a.out, terms)
		}
		for i, t := range terms {
			fmt.Fprintf(a.out, "%2d. %-24s %6d  %s\n", i+1, t.Term, t.Searches, t.LastSeen.UTC().Format("2006-01-02 15:04"))
		}
		if len(terms) == 0 {
			fmt.Fprintln(a.out, "no searches recorded")
		}
		return nil
	})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func writeResult(w io.Writer, res domain.Result) {
	switch res.Outcome {
	case domain.OutcomeEmpty:
		fmt.Fprintln(w, "empty search term")
		return
	case domain.OutcomeAdvisory:
		fmt.Fprintln(w, res.Advisory)
		return
	case domain.OutcomeNoMatches:
		fmt.Fprintf(w, "no results for %q\n", res.Term)
		return
	}
	fmt.Fprintf(w, "%q: %d results, page %d of %d\n", res.Term, res.TotalCount(), res.CurrentPage(), res.TotalPages())
	for _, r := range res.Records {
		fmt.Fprintf(w, "\n[%s] %s\n  guid:   %s\n  author: %s\n", r.Label, r.Name, r.GUID, r.Author)
		if r.Description != "" {
			fmt.Fprintf(w, "  desc:   %s\n", r.Description)
		}
	}
}
