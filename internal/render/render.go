// Package render formats analysis results for the terminal.
package render

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/handequity/poker"
	"github.com/lox/handequity/sdk/analysis"
)

var (
	// Style definitions
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	categoryStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	tieStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	lossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	redCardStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))

	blackCardStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))
)

// DisableColor renders every style as plain text.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// Card renders a single card with its suit symbol, red for hearts and diamonds.
func Card(c poker.Card) string {
	if c.Red() {
		return redCardStyle.Render(c.Pretty())
	}
	return blackCardStyle.Render(c.Pretty())
}

// Cards renders cards separated by spaces, or "-" when there are none.
func Cards(cards []poker.Card) string {
	if len(cards) == 0 {
		return labelStyle.Render("-")
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = Card(c)
	}
	return strings.Join(parts, " ")
}

// Classification renders a hand category.
func Classification(c poker.Classification) string {
	return categoryStyle.Render(c.String())
}

// Aggression renders the aggression index or "Unknown".
func Aggression(value float64, ok bool) string {
	if !ok {
		return "Unknown"
	}
	return fmt.Sprintf("%.2f", value)
}

// Report renders a full analysis.
func Report(r analysis.Report) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)

	row := func(label, value string) {
		fmt.Fprintf(w, "%s\t%s\n", labelStyle.Render(label), value)
	}

	row("hole", Cards(r.Selection.Hole))
	row("board", Cards(r.Selection.Board))
	row("category", Classification(r.Classification))
	row("preflop", string(r.StartingTier))
	row("outs", fmt.Sprintf("%d", len(r.Outs)))
	row("aggression", Aggression(r.Aggression, r.HasAggression))
	row("win", winStyle.Render(fmt.Sprintf("%.2f%%", r.Equity.WinPct)))
	row("tie", tieStyle.Render(fmt.Sprintf("%.2f%%", r.Equity.TiePct)))
	row("ev", evValue(r.EV))
	row("pot odds", fmt.Sprintf("%.2f:1", r.PotOdds))
	row("required", fmt.Sprintf("%.2f%%", r.RequiredEquity))
	w.Flush()

	if len(r.OutsByCategory) > 0 {
		b.WriteString("\n")
		b.WriteString(OutsByCategory(r.OutsByCategory))
	}

	b.WriteString("\n")
	b.WriteString(Beaters(r.Beaters))

	fmt.Fprintf(&b, "\n%d trials against %d players in %v\n",
		r.Equity.Trials, r.Selection.Players, r.Elapsed.Truncate(time.Millisecond))
	return b.String()
}

// Equity renders a simulation result as a win/tie/loss table.
func Equity(hole, board []poker.Card, res analysis.EquityResult, elapsed time.Duration) string {
	var b strings.Builder
	if len(board) > 0 {
		fmt.Fprintf(&b, "%s\n%s\n\n", headerStyle.Render("board"), Cards(board))
	}

	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		headerStyle.Render("hand"),
		headerStyle.Render("win"),
		headerStyle.Render("tie"),
		headerStyle.Render("lose"))
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		Cards(hole),
		winStyle.Render(fmt.Sprintf("%.2f%%", res.WinPct)),
		tieStyle.Render(fmt.Sprintf("%.2f%%", res.TiePct)),
		lossStyle.Render(fmt.Sprintf("%.2f%%", res.LossPct())))
	w.Flush()

	lower, upper := res.ConfidenceInterval()
	fmt.Fprintf(&b, "\nequity %.2f%% (95%% CI %.2f%% - %.2f%%)\n", res.Equity()*100, lower*100, upper*100)
	fmt.Fprintf(&b, "%d trials in %v\n", res.Trials, elapsed.Truncate(time.Millisecond))
	return b.String()
}

// OutsByCategory renders outs grouped by the hand they make.
func OutsByCategory(groups []analysis.CategoryOuts) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\n",
		headerStyle.Render("makes"),
		headerStyle.Render("outs"),
		headerStyle.Render("cards"))
	for _, g := range groups {
		fmt.Fprintf(w, "%s\t%d\t%s\n", categoryStyle.Render(g.Category.String()), len(g.Cards), Cards(g.Cards))
	}
	w.Flush()
	return b.String()
}

// Beaters renders the likely beating hands.
func Beaters(beaters []analysis.Beater) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("likely hands that beat you"))
	b.WriteString("\n")
	if len(beaters) == 0 {
		b.WriteString(labelStyle.Render("none found"))
		b.WriteString("\n")
		return b.String()
	}
	for _, beater := range beaters {
		fmt.Fprintf(&b, "%s: %s\n", categoryStyle.Render(beater.Category.String()), Cards(beater.Hole[:]))
	}
	return b.String()
}

// EV renders the expected value of a call together with its pot odds.
func EV(pot, call, ev float64) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%.2f\n", labelStyle.Render("pot"), pot)
	fmt.Fprintf(w, "%s\t%.2f\n", labelStyle.Render("call"), call)
	fmt.Fprintf(w, "%s\t%s\n", labelStyle.Render("ev"), evValue(ev))
	fmt.Fprintf(w, "%s\t%.2f:1\n", labelStyle.Render("pot odds"), analysis.PotOdds(pot, call))
	fmt.Fprintf(w, "%s\t%.2f%%\n", labelStyle.Render("required"), analysis.RequiredEquity(pot, call))
	w.Flush()
	return b.String()
}

func evValue(ev float64) string {
	s := fmt.Sprintf("%+.2f", ev)
	if ev < 0 {
		return lossStyle.Render(s)
	}
	return winStyle.Render(s)
}
