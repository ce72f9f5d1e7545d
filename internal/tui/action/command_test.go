package action

import (
	"testing"

	"github.com/glabrego/crates-cli/internal/tui/mode"
)

func TestParseCommand_Simple(t *testing.T) {
	cmd, err := ParseCommand("quit")
	if err != nil {
		t.Fatalf("ParseCommand returned error: %v", err)
	}
	if cmd.Kind != CmdQuit {
		t.Fatalf("unexpected command: %+v", cmd)
	}
	if _, ok := cmd.Action().(Quit); !ok {
		t.Fatalf("expected Quit action, got %T", cmd.Action())
	}
}

func TestParseCommand_SwitchMode(t *testing.T) {
	cmd, err := ParseCommand("switch_mode:search")
	if err != nil {
		t.Fatalf("ParseCommand returned error: %v", err)
	}
	a, ok := cmd.Action().(SwitchMode)
	if !ok || a.Mode != mode.Search {
		t.Fatalf("expected SwitchMode(search), got %#v", cmd.Action())
	}

	if _, err := ParseCommand("switch_mode"); err == nil {
		t.Fatal("expected error for missing mode argument")
	}
	if _, err := ParseCommand("switch_mode:bogus"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestParseCommand_ToggleSortBy(t *testing.T) {
	tests := []struct {
		spec    string
		reload  bool
		forward bool
	}{
		{"toggle_sort_by:reload:forward", true, true},
		{"toggle_sort_by:reload:backward", true, false},
		{"toggle_sort_by:no_reload:forward", false, true},
		{"toggle_sort_by", false, true},
	}
	for _, tc := range tests {
		cmd, err := ParseCommand(tc.spec)
		if err != nil {
			t.Fatalf("ParseCommand(%q) returned error: %v", tc.spec, err)
		}
		a, ok := cmd.Action().(ToggleSortBy)
		if !ok {
			t.Fatalf("expected ToggleSortBy for %q, got %T", tc.spec, cmd.Action())
		}
		if a.Reload != tc.reload || a.Forward != tc.forward {
			t.Fatalf("%q: got reload=%v forward=%v", tc.spec, a.Reload, a.Forward)
		}
	}

	if _, err := ParseCommand("toggle_sort_by:sideways"); err == nil {
		t.Fatal("expected error for unknown argument")
	}
}

func TestParseCommand_RejectsUnknownAndExtraArgs(t *testing.T) {
	if _, err := ParseCommand("frobnicate"); err == nil {
		t.Fatal("expected error for unknown command")
	}
	if _, err := ParseCommand("quit:now"); err == nil {
		t.Fatal("expected error for unexpected argument")
	}
}

func TestCommandAction_IsTotal(t *testing.T) {
	specs := []string{
		"ignore", "quit", "close_popup", "switch_mode:picker",
		"switch_to_last_mode", "increment_page", "decrement_page",
		"next_summary_mode", "previous_summary_mode",
		"toggle_sort_by:reload:forward", "scroll_up", "scroll_down",
		"scroll_top", "scroll_bottom", "submit_search", "reload_data",
		"reload_summary", "toggle_show_detail", "copy_install_command",
		"open_docs_in_browser", "open_cratesio_in_browser",
	}
	for _, spec := range specs {
		cmd, err := ParseCommand(spec)
		if err != nil {
			t.Fatalf("ParseCommand(%q) returned error: %v", spec, err)
		}
		if cmd.Action() == nil {
			t.Fatalf("command %q mapped to nil action", spec)
		}
		if cmd.Describe() == "" {
			t.Fatalf("command %q has no description", spec)
		}
	}
}

func TestName(t *testing.T) {
	if got := Name(SubmitSearch{}); got != "SubmitSearch" {
		t.Fatalf("unexpected name: %s", got)
	}
	if got := Name(ToggleSortBy{Reload: true}); got != "ToggleSortBy" {
		t.Fatalf("unexpected name: %s", got)
	}
}

func TestHighFrequency(t *testing.T) {
	for _, a := range []Action{Tick{}, Render{}, KeyRefresh{}} {
		if !HighFrequency(a) {
			t.Fatalf("%s must be high frequency", Name(a))
		}
	}
	if HighFrequency(Quit{}) || HighFrequency(SubmitSearch{}) {
		t.Fatal("quit and submit search are not high frequency")
	}
}
