package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/youruser/crdeck/internal/cards"
	"github.com/youruser/crdeck/internal/deck"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#D83BD2"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Width(10)
	valueStyle  = lipgloss.NewStyle().Bold(true)
	adviceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0A03E"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#7BC96F"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

var roleLabels = map[cards.Role]string{
	cards.RoleWincon:   "Wincons",
	cards.RoleAir:      "Air Def",
	cards.RoleSplash:   "Splash",
	cards.RoleSpell:    "Spells",
	cards.RoleBuilding: "Building",
	cards.RoleCycle:    "Cycle",
}

type reportOutput struct {
	Deck    []string `json:"deck" yaml:"deck"`
	Catalog string   `json:"catalog" yaml:"catalog"`
	deck.Report `yaml:",inline"`
}

func writeReport(w io.Writer, format string, d deck.Deck, source string, rep deck.Report) error {
	out := reportOutput{Deck: d, Catalog: source, Report: rep}
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "yaml":
		return yaml.NewEncoder(w).Encode(out)
	case "text", "":
		_, err := io.WriteString(w, renderReport(d, source, rep))
		return err
	}
	return fmt.Errorf("unknown output format %q", format)
}

func renderReport(d deck.Deck, source string, rep deck.Report) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Deck Breakdown") + " " + mutedStyle.Render("("+source+" catalog)") + "\n")
	b.WriteString(strings.Join(d, " · ") + "\n\n")
	b.WriteString(labelStyle.Render("Avg. Elixir") + " " + valueStyle.Render(fmt.Sprintf("%.2f", rep.AverageElixirCost)) + "\n")
	for _, r := range []cards.Role{cards.RoleWincon, cards.RoleAir, cards.RoleSplash, cards.RoleSpell, cards.RoleBuilding, cards.RoleCycle} {
		b.WriteString(labelStyle.Render(roleLabels[r]) + " " + valueStyle.Render(fmt.Sprint(rep.RoleCounts[r])) + "\n")
	}
	if len(rep.Unresolved) > 0 {
		b.WriteString(mutedStyle.Render("Unknown cards: "+strings.Join(rep.Unresolved, ", ")) + "\n")
	}
	b.WriteString("\n" + titleStyle.Render("Suggestions") + "\n")
	style := adviceStyle
	if len(rep.Advisories) == 1 && strings.HasPrefix(rep.Advisories[0], "Your deck looks balanced") {
		style = okStyle
	}
	for _, a := range rep.Advisories {
		b.WriteString("  • " + style.Render(a) + "\n")
	}
	return b.String()
}

func writeCards(w io.Writer, format string, cs []cards.Card) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"cards": cs})
	case "yaml":
		return yaml.NewEncoder(w).Encode(map[string]any{"cards": cs})
	case "text", "":
		for _, c := range cs {
			roles := make([]string, 0, len(c.Roles))
			for _, r := range c.Roles {
				roles = append(roles, string(r))
			}
			line := fmt.Sprintf("%-20s %d  %s", c.Name, c.ElixirCost, strings.Join(roles, ","))
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown output format %q", format)
}
