package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
)

// keyMap holds every binding. Bindings that do not apply to the current
// screen are disabled so the help bar only lists what works.
type keyMap struct {
	Left     key.Binding
	Right    key.Binding
	Start    key.Binding
	Targets  []key.Binding
	Reveal   key.Binding
	Next     key.Binding
	Menu     key.Binding
	Again    key.Binding
	Reset    key.Binding
	Help     key.Binding
	Quit     key.Binding
	Continue key.Binding
}

func newKeyMap(targets []int) keyMap {
	km := keyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "fewer wins"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "more wins"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "start"),
		),
		Reveal: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "flip card"),
		),
		Next: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next round"),
		),
		Continue: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "continue"),
		),
		Menu: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "main menu"),
		),
		Again: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "play again"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}

	for i, target := range targets {
		if i >= 9 {
			break
		}
		digit := strconv.Itoa(i + 1)
		km.Targets = append(km.Targets, key.NewBinding(
			key.WithKeys(digit),
			key.WithHelp(digit, strconv.Itoa(target)+" wins"),
		))
	}
	return km
}

// ShortHelp returns bindings for the compact help bar
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Reveal, k.Next, k.Continue, k.Menu, k.Again, k.Reset, k.Help, k.Quit}
}

// FullHelp returns bindings for the expanded help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		append([]key.Binding{k.Left, k.Right, k.Start}, k.Targets...),
		{k.Reveal, k.Next, k.Continue},
		{k.Menu, k.Again},
		{k.Reset, k.Help, k.Quit},
	}
}

// setScreen enables the bindings that apply to s
func (k *keyMap) setScreen(s screen) {
	setup := s == screenSetup
	k.Left.SetEnabled(setup)
	k.Right.SetEnabled(setup)
	k.Start.SetEnabled(setup)
	for i := range k.Targets {
		k.Targets[i].SetEnabled(setup)
	}

	k.Reveal.SetEnabled(s == screenReveal)
	k.Next.SetEnabled(s == screenResult)
	k.Continue.SetEnabled(s == screenReveal || s == screenResult)

	k.Menu.SetEnabled(s == screenModal)
	k.Again.SetEnabled(s == screenModal)

	k.Reset.SetEnabled(s != screenSetup)
}
