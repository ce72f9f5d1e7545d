// Package keybind resolves sequences of terminal key presses into Actions,
// supporting multi-key chords scoped by UI mode with a mode-independent
// fallback table.
package keybind

import (
	"fmt"
	"sort"
	"strings"

	"github.com/glabrego/crates-cli/internal/tui/action"
	"github.com/glabrego/crates-cli/internal/tui/mode"
)

// GlobalScope is the configuration key for the mode-independent table.
const GlobalScope = "global"

// Table maps a space-joined key sequence (bubbletea key names, e.g. "g g"
// or "ctrl+c") to a Command.
type Table map[string]action.Command

// Bindings is the full keybinding configuration, built once at startup and
// read-only thereafter.
type Bindings struct {
	PerMode map[mode.Mode]Table
	Global  Table
}

// Parse builds Bindings from raw configuration: scope name -> key sequence
// -> command spec. Invalid modes, sequences and command specs are load-time
// errors.
func Parse(raw map[string]map[string]string) (*Bindings, error) {
	b := &Bindings{
		PerMode: make(map[mode.Mode]Table),
		Global:  make(Table),
	}
	for scope, entries := range raw {
		table := make(Table, len(entries))
		for seq, spec := range entries {
			normalized, err := normalizeSequence(seq)
			if err != nil {
				return nil, fmt.Errorf("scope %q: %w", scope, err)
			}
			cmd, err := action.ParseCommand(spec)
			if err != nil {
				return nil, fmt.Errorf("scope %q, sequence %q: %w", scope, seq, err)
			}
			if _, dup := table[normalized]; dup {
				return nil, fmt.Errorf("scope %q: duplicate binding for %q", scope, normalized)
			}
			table[normalized] = cmd
		}
		if scope == GlobalScope {
			b.Global = table
			continue
		}
		m, err := mode.Parse(scope)
		if err != nil {
			return nil, fmt.Errorf("keybindings: %w", err)
		}
		b.PerMode[m] = table
	}
	return b, nil
}

func normalizeSequence(seq string) (string, error) {
	fields := strings.Fields(seq)
	if len(fields) == 0 {
		return "", fmt.Errorf("empty key sequence")
	}
	return strings.Join(fields, " "), nil
}

// Lookup finds the command bound to an exact sequence in the given mode,
// falling back to the global table.
func (b *Bindings) Lookup(m mode.Mode, seq string) (action.Command, bool) {
	if table, ok := b.PerMode[m]; ok {
		if cmd, ok := table[seq]; ok {
			return cmd, true
		}
	}
	cmd, ok := b.Global[seq]
	return cmd, ok
}

// ForMode returns the bindings visible in a mode (mode table plus global
// fallback) as sorted (sequence, command) pairs for the help view.
func (b *Bindings) ForMode(m mode.Mode) []Entry {
	merged := make(map[string]action.Command)
	for seq, cmd := range b.Global {
		merged[seq] = cmd
	}
	for seq, cmd := range b.PerMode[m] {
		merged[seq] = cmd
	}
	entries := make([]Entry, 0, len(merged))
	for seq, cmd := range merged {
		entries = append(entries, Entry{Sequence: seq, Command: cmd})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Sequence < entries[j].Sequence })
	return entries
}

type Entry struct {
	Sequence string
	Command  action.Command
}

// Resolver accumulates key presses and resolves them against Bindings.
// The buffer survives failed lookups so multi-key chords can complete
// later; it is cleared on a successful match or an explicit Clear (the
// KeyRefresh tick).
type Resolver struct {
	bindings *Bindings
	buffer   []string
}

func NewResolver(bindings *Bindings) *Resolver {
	return &Resolver{bindings: bindings}
}

// Push appends a key press and attempts resolution for the current mode:
// the whole buffer is tried first, then progressively shorter suffixes
// (stripping from the front), first against the mode table and then
// against the global table. On a match the buffer is cleared and the bound
// Action returned; otherwise the buffer is retained.
func (r *Resolver) Push(m mode.Mode, key string) (action.Action, bool) {
	r.buffer = append(r.buffer, key)

	if table, ok := r.bindings.PerMode[m]; ok {
		if cmd, ok := r.matchSuffix(table); ok {
			r.buffer = nil
			return cmd.Action(), true
		}
	}
	if cmd, ok := r.matchSuffix(r.bindings.Global); ok {
		r.buffer = nil
		return cmd.Action(), true
	}
	return nil, false
}

func (r *Resolver) matchSuffix(table Table) (action.Command, bool) {
	for i := range r.buffer {
		if cmd, ok := table[strings.Join(r.buffer[i:], " ")]; ok {
			return cmd, true
		}
	}
	return action.Command{}, false
}

// Clear drops any partially accumulated chord.
func (r *Resolver) Clear() {
	r.buffer = nil
}

// Pending returns the keys accumulated since the last match or Clear.
func (r *Resolver) Pending() []string {
	return append([]string(nil), r.buffer...)
}
