package engine

import (
	"strings"

	"inferd/pkg/types"
)

// Role tags of the fixed chat template. The message sequence is rendered as
// role-tagged blocks followed by an assistant cue the engine completes.
const (
	systemTag    = "### System:"
	userTag      = "### User:"
	assistantTag = "### Assistant:"
)

// renderPrompt concatenates the validated message sequence into the single
// prompt format the engine expects.
func renderPrompt(messages []types.Message) string {
	var b strings.Builder
	for _, m := range messages {
		switch m.Role {
		case types.RoleSystem:
			b.WriteString(systemTag)
		case types.RoleUser:
			b.WriteString(userTag)
		case types.RoleAssistant:
			b.WriteString(assistantTag)
		}
		b.WriteString("\n")
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}
	b.WriteString(assistantTag)
	b.WriteString("\n")
	return b.String()
}

// promptStops returns the request stop sequences extended with the user tag
// so generation cannot bleed into a fabricated next turn.
func promptStops(stop []string) []string {
	out := make([]string, 0, len(stop)+1)
	out = append(out, stop...)
	for _, s := range out {
		if s == userTag {
			return out
		}
	}
	return append(out, userTag)
}
