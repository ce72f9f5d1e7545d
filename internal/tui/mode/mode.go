// Package mode defines the mutually exclusive UI modes and the single
// authoritative table of legal transitions between them.
package mode

import "fmt"

type Mode int

const (
	Summary Mode = iota
	Search
	Filter
	Picker
	Popup
	Help
	Quit
)

var names = map[Mode]string{
	Summary: "summary",
	Search:  "search",
	Filter:  "filter",
	Picker:  "picker",
	Popup:   "popup",
	Help:    "help",
	Quit:    "quit",
}

func (m Mode) String() string {
	if name, ok := names[m]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Parse maps a config-file mode name to a Mode.
func Parse(name string) (Mode, error) {
	for m, n := range names {
		if n == name {
			return m, nil
		}
	}
	return Summary, fmt.Errorf("unknown mode %q", name)
}

// All lists every mode in display order.
func All() []Mode {
	return []Mode{Summary, Search, Filter, Picker, Popup, Help, Quit}
}

// transitions is consulted for every SwitchMode; Quit is terminal and has
// no outgoing edges.
var transitions = map[Mode][]Mode{
	Summary: {Search, Filter, Picker, Popup, Help, Quit},
	Search:  {Picker, Summary, Popup, Help, Quit},
	Filter:  {Picker, Summary, Popup, Help, Quit},
	Picker:  {Search, Filter, Summary, Popup, Help, Quit},
	Popup:   {Summary, Search, Filter, Picker, Popup, Help, Quit},
	Help:    {Summary, Search, Filter, Picker, Popup, Quit},
	Quit:    {},
}

// CanTransition reports whether moving from one mode to another is legal.
// Staying in the current mode is always allowed, except for re-entering
// Quit.
func CanTransition(from, to Mode) bool {
	if from == to {
		return from != Quit
	}
	for _, m := range transitions[from] {
		if m == to {
			return true
		}
	}
	return false
}

// Editing reports whether the mode routes raw key input to the prompt.
func (m Mode) Editing() bool {
	return m == Search || m == Filter
}
