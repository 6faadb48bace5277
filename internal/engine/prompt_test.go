package engine

import (
	"strings"
	"testing"

	"inferd/pkg/types"
)

func TestRenderPromptTagsRoles(t *testing.T) {
	got := renderPrompt([]types.Message{
		{Role: types.RoleSystem, Content: "You are terse."},
		{Role: types.RoleUser, Content: "Hi"},
		{Role: types.RoleAssistant, Content: "Hello."},
		{Role: types.RoleUser, Content: "Bye"},
	})
	want := "### System:\nYou are terse.\n\n" +
		"### User:\nHi\n\n" +
		"### Assistant:\nHello.\n\n" +
		"### User:\nBye\n\n" +
		"### Assistant:\n"
	if got != want {
		t.Fatalf("prompt mismatch:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestRenderPromptEndsWithAssistantCue(t *testing.T) {
	got := renderPrompt([]types.Message{{Role: types.RoleUser, Content: "x"}})
	if !strings.HasSuffix(got, assistantTag+"\n") {
		t.Fatalf("prompt does not end with assistant cue: %q", got)
	}
}

func TestPromptStopsAppendsUserTag(t *testing.T) {
	got := promptStops([]string{"\n\n", "END"})
	if len(got) != 3 || got[2] != userTag {
		t.Fatalf("stops=%v", got)
	}
}

func TestPromptStopsNoDuplicateUserTag(t *testing.T) {
	got := promptStops([]string{userTag})
	if len(got) != 1 {
		t.Fatalf("stops=%v", got)
	}
}

func TestPromptStopsDoesNotMutateInput(t *testing.T) {
	in := []string{"a"}
	_ = promptStops(in)
	if len(in) != 1 || in[0] != "a" {
		t.Fatalf("input mutated: %v", in)
	}
}
