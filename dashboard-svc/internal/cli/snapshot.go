package cli

import (
	"fmt"
	"io"

	"foodie-dashboard/dashboard-svc/internal/domain"
	"foodie-dashboard/dashboard-svc/internal/events"
	"foodie-dashboard/dashboard-svc/internal/page"

	"github.com/spf13/cobra"
)

func newSnapshotCmd() *cobra.Command {
	var (
		pageName string
		query    string
		mode     string
		asHTML   bool
	)

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Load one page against the API and print it",
		Long: `Loads a page the way a browser visit would, optionally submits a search on
the home page, and prints the visible text (or the HTML with --html).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig(cmd.Context())
			logger := newLogger(cfg.LogLevel)

			kind := page.Kind(pageName)
			if !kind.Valid() {
				return fmt.Errorf("%w: %q", page.ErrUnknownPage, pageName)
			}

			p, err := page.New("snapshot", kind, pageDeps(cfg, events.NewRecorder(logger), logger))
			if err != nil {
				return err
			}
			p.Load(cmd.Context())

			if query != "" {
				if _, err := p.Search(cmd.Context(), query, domain.SearchMode(mode)); err != nil {
					return err
				}
			}
			return writeSnapshot(cmd.OutOrStdout(), p, asHTML)
		},
	}

	cmd.Flags().StringVar(&pageName, "page", string(page.KindHome), "home|restaurants|foodie-areas|restaurant-types")
	cmd.Flags().StringVarP(&query, "query", "q", "", "search query (home page only)")
	cmd.Flags().StringVar(&mode, "mode", string(domain.ModeName), "search mode: name|type|area")
	cmd.Flags().BoolVar(&asHTML, "html", false, "print HTML instead of text")
	return cmd
}

func writeSnapshot(w io.Writer, p *page.Page, asHTML bool) error {
	if asHTML {
		return p.WriteHTML(w)
	}
	_, err := fmt.Fprintln(w, p.Text())
	return err
}
