package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/highcard/internal/card"
	"github.com/lox/highcard/internal/game"
)

const (
	cardInnerWidth = 7
	historyLines   = 8
	defaultWidth   = 80
	defaultHeight  = 24
)

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	// Don't render until we have valid dimensions
	if (m.width == 0 || m.height == 0) && !m.testMode {
		return "Loading..."
	}

	snap := m.engine.Snapshot()

	var body string
	switch m.screen() {
	case screenSetup:
		body = m.renderSetup()
	case screenModal:
		body = m.renderModal(snap)
	default:
		body = m.renderTable(snap)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(snap),
		"",
		body,
		"",
		m.help.View(m.keys),
	)

	width, height := m.width, m.height
	if width == 0 || height == 0 {
		width, height = defaultWidth, defaultHeight
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, content)
}

// renderHeader renders the title bar and scoreboard
func (m *Model) renderHeader(snap game.Snapshot) string {
	title := HeaderStyle.Render("♠ ♥ High Card ♦ ♣")
	if snap.Phase == game.PhaseSetup {
		return title
	}

	score := lipgloss.JoinHorizontal(lipgloss.Center,
		LabelStyle.Render("Computer "),
		ScoreStyle.Render(fmt.Sprintf("%d", snap.Match.ComputerScore)),
		TargetStyle.Render(fmt.Sprintf("   first to %d   ", snap.Match.TargetWins)),
		ScoreStyle.Render(fmt.Sprintf("%d", snap.Match.PlayerScore)),
		LabelStyle.Render(" You"),
	)
	return lipgloss.JoinHorizontal(lipgloss.Center, title, "   ", score)
}

// renderSetup renders the target selection screen
func (m *Model) renderSetup() string {
	var options []string
	for i, target := range m.targets {
		label := fmt.Sprintf("%d wins", target)
		if i == m.selected {
			options = append(options, SelectedStyle.Render(label))
		} else {
			options = append(options, OptionStyle.Render(label))
		}
	}

	rules := InfoStyle.Render(strings.Join([]string{
		"Rules:",
		"1. Flip your card",
		"2. Both cards are shown together",
		"3. Higher rank scores (A lowest, K highest)",
	}, "\n"))

	return PanelStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
		PromptStyle.Render("Ready?"),
		"Choose how many wins it takes",
		"",
		strings.Join(options, "  "),
		"",
		rules,
	))
}

// renderTable renders both cards, the round flash and the history pane
func (m *Model) renderTable(snap game.Snapshot) string {
	faceUp := snap.Round.Revealed && !m.flipping

	computer := m.renderSeat("Computer", snap.Round.ComputerCard, faceUp,
		faceUp && snap.Round.Outcome == game.RoundLose)
	player := m.renderSeat("You", snap.Round.PlayerCard, faceUp,
		faceUp && snap.Round.Outcome == game.RoundWin)

	table := lipgloss.JoinVertical(lipgloss.Center,
		computer,
		"",
		m.renderPrompt(snap),
		"",
		player,
	)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		renderDeckPile(),
		"   ",
		table,
		"   ",
		m.renderHistory(),
	)
}

// renderSeat renders one side's label, card and the "+1" flash
func (m *Model) renderSeat(label string, c card.Card, faceUp, scored bool) string {
	marker := "    "
	if scored {
		marker = SuccessStyle.Render(" +1 ")
	}
	cardView := lipgloss.JoinHorizontal(lipgloss.Center, "    ", renderCard(c, faceUp), marker)
	return lipgloss.JoinVertical(lipgloss.Center, LabelStyle.Render(label), cardView)
}

// renderPrompt renders the instruction or round result between the cards
func (m *Model) renderPrompt(snap game.Snapshot) string {
	switch m.screen() {
	case screenReveal:
		return PromptStyle.Render("Press space to flip your card")
	case screenFlipping:
		return InfoStyle.Render("Dealing...")
	case screenResult, screenDeciding:
		result := roundBanner(snap.Round.Outcome)
		if m.screen() == screenDeciding {
			return result
		}
		return lipgloss.JoinVertical(lipgloss.Center, result, InfoStyle.Render("Press n for the next round"))
	}
	return ""
}

func roundBanner(outcome game.RoundOutcome) string {
	switch outcome {
	case game.RoundWin:
		return SuccessStyle.Render("You take the round!")
	case game.RoundLose:
		return ErrorStyle.Render("Computer takes the round")
	case game.RoundDraw:
		return InfoStyle.Render("Draw, nobody scores")
	}
	return ""
}

// renderHistory renders the most recent round history lines
func (m *Model) renderHistory() string {
	lines := m.history
	if len(lines) > historyLines {
		lines = lines[len(lines)-historyLines:]
	}
	if len(lines) == 0 {
		lines = []string{"No rounds yet"}
	}
	return PanelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		LabelStyle.Render("History"),
		InfoStyle.Render(strings.Join(lines, "\n")),
	))
}

// renderModal renders the match-end dialog
func (m *Model) renderModal(snap game.Snapshot) string {
	headline := ErrorStyle.Render("You lose")
	message := "Don't give up, how about another match?"
	if snap.Match.Outcome == game.MatchVictory {
		headline = SuccessStyle.Render("You win!")
		message = "Congratulations, luck is on your side."
	}

	return ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
		headline,
		"",
		fmt.Sprintf("Final score %d-%d in %d rounds", snap.Match.PlayerScore, snap.Match.ComputerScore, snap.Match.Rounds),
		InfoStyle.Render(message),
		"",
		SelectedStyle.Render("[m] Main menu"),
		OptionStyle.Render(fmt.Sprintf("[p] Play again (%d wins)", snap.Match.TargetWins)),
	))
}

// renderCard draws a card face or back as a small box
func renderCard(c card.Card, faceUp bool) string {
	border := strings.Repeat("─", cardInnerWidth)
	top := "╭" + border + "╮"
	bottom := "╰" + border + "╯"

	if !faceUp {
		back := "│" + strings.Repeat("░", cardInnerWidth) + "│"
		return CardBackStyle.Render(strings.Join([]string{top, back, back, back, back, back, bottom}, "\n"))
	}

	corner := c.Label() + c.Suit.String()
	blank := "│" + strings.Repeat(" ", cardInnerWidth) + "│"
	lines := []string{
		top,
		fmt.Sprintf("│%-*s│", cardInnerWidth, corner),
		blank,
		fmt.Sprintf("│%s│", centre(c.Suit.String(), cardInnerWidth)),
		blank,
		fmt.Sprintf("│%*s│", cardInnerWidth, corner),
		bottom,
	}

	style := BlackCardStyle
	if c.IsRed() {
		style = RedCardStyle
	}
	return style.Render(strings.Join(lines, "\n"))
}

// renderDeckPile draws the stacked deck beside the table
func renderDeckPile() string {
	return lipgloss.JoinVertical(lipgloss.Center,
		CardBackStyle.Render(strings.Join([]string{
			" ╭───────╮",
			"╭│░░░░░░░│",
			"││░░░░░░░│",
			"││░░░░░░░│",
			"││░░░░░░░│",
			"│╰───────╯",
			"╰───────╯ ",
		}, "\n")),
		InfoStyle.Render("Deck"),
	)
}

func centre(s string, width int) string {
	pad := width - utf8.RuneCountInString(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}
