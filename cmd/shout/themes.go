package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/shout/internal/theme"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available banner themes",
	Long: `List the bundled themes and the CSS files in the themes directory
(~/.config/shout/themes). A file with the same name as a bundled theme
overrides it.`,
	RunE: runThemes,
}

func init() {
	rootCmd.AddCommand(themesCmd)
}

func runThemes(cmd *cobra.Command, args []string) error {
	themes, err := theme.List(theme.ThemesDir())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), themeTable(themes, cfg.Theme.Name))
	return err
}

// themeTable renders the theme list, marking current with an asterisk.
func themeTable(themes []theme.Info, current string) string {
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("", "NAME", "SOURCE")
	for _, th := range themes {
		marker := ""
		if th.Name == current {
			marker = "*"
		}
		source := "bundled"
		if !th.Bundled {
			source = th.Path
		}
		t.Row(marker, th.Name, source)
	}
	return t.String()
}
