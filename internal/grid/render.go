package grid

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nickingravallo/TurboFire/poker"
)

const rankChars = "23456789TJQKA"

// Cell colors follow the aggression level: green for bet-heavy cells,
// yellow for mixed, blue for passive.
var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA"))
	betStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#96CEB4"))
	mixedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFEAA7"))
	checkStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6BA4FF"))
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
)

func cellStyle(aggressive float64) lipgloss.Style {
	switch {
	case aggressive >= 0.65:
		return betStyle
	case aggressive >= 0.35:
		return mixedStyle
	default:
		return checkStyle
	}
}

// Render draws the 13x13 grid: pairs on the diagonal, suited hands in the
// upper triangle, offsuit in the lower. Each cell shows the aggregate
// bet/raise percentage for that class.
func Render(a *Aggregator, numBetSizes int) string {
	var sb strings.Builder

	sb.WriteString("      ")
	for col := 12; col >= 0; col-- {
		sb.WriteString(headerStyle.Render(fmt.Sprintf("%3c  ", rankChars[col])))
	}
	sb.WriteByte('\n')

	for row := 12; row >= 0; row-- {
		sb.WriteString(headerStyle.Render(fmt.Sprintf("%3c   ", rankChars[row])))
		for col := 12; col >= 0; col-- {
			class := classAt(row, col)
			strat, _, ok := a.Average(class)
			if !ok {
				sb.WriteString(emptyStyle.Render("  --  "))
				continue
			}
			_, aggressive, _ := ActionShares(strat, numBetSizes)
			cell := fmt.Sprintf("%4.0f%% ", aggressive*100)
			sb.WriteString(cellStyle(aggressive).Render(cell))
		}
		sb.WriteByte('\n')
	}

	sb.WriteString("\nLegend: cells show bet/raise percentage.\n")
	sb.WriteString("        Pairs on diagonal | upper triangle suited | lower triangle offsuit\n")
	return sb.String()
}

// classAt maps a grid position to its class: diagonal pairs, row > col
// suited, row < col offsuit.
func classAt(row, col int) poker.Class {
	switch {
	case row == col:
		return poker.Class{High: uint8(row), Low: uint8(col)}
	case row > col:
		return poker.Class{High: uint8(row), Low: uint8(col), Suited: true}
	default:
		return poker.Class{High: uint8(col), Low: uint8(row)}
	}
}

// RenderDetail prints the per-class breakdown table under the grid.
func RenderDetail(a *Aggregator, numBetSizes int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-8s %12s %12s %12s %8s\n", "Hand", "Check/Call", "Bet/Raise", "Fold", "Tests")
	fmt.Fprintf(&sb, "%-8s %12s %12s %12s %8s\n", "----", "----------", "---------", "----", "-----")
	for _, class := range a.Classes() {
		strat, count, ok := a.Average(class)
		if !ok {
			continue
		}
		passive, aggressive, fold := ActionShares(strat, numBetSizes)
		fmt.Fprintf(&sb, "%-8s %11.1f%% %11.1f%% %11.1f%% %8d\n",
			class, passive*100, aggressive*100, fold*100, count)
	}
	return sb.String()
}
