package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"contactsearch/internal/domain"
	"contactsearch/internal/grid"
	"contactsearch/internal/ui/views"
)

// runSeed loads a seed file into the configured store
func runSeed(cmd *cobra.Command, args []string) error {
	if cfg.Database.Memory {
		return fmt.Errorf("seeding an in-memory store has no effect; use --seed with the TUI instead")
	}

	st, err := openStore(nil)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := applySeed(cmd.Context(), st, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %s into %s\n", args[0], cfg.Database.Path)
	return nil
}

// runSearch prints the contacts matching the keyword as a table
func runSearch(cmd *cobra.Command, args []string) error {
	st, err := openStore(nil)
	if err != nil {
		return err
	}
	defer st.Close()

	keyword := args[0]
	logger.Info("searching contacts", zap.String("keyword", keyword))
	rows, err := st.SearchContacts(cmd.Context(), keyword)
	if err != nil {
		return fmt.Errorf("contact search failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(rows) == 0 {
		fmt.Fprintln(out, "No contacts found.")
		return nil
	}
	fmt.Fprintln(out, renderContacts(grid.DefaultLayout(), rows))
	return nil
}

// renderContacts renders rows with the layout's columns
func renderContacts(layout grid.Layout, rows []domain.ContactRow) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	cols := layout.Columns()
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Label
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("241"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)

	for _, r := range views.NewGridRenderer(layout).Rows(rows) {
		t.Row(r...)
	}
	return t.Render()
}
