package moderation

import "fmt"

type Action string

const (
	ActionWarn   Action = "warn"
	ActionMute   Action = "mute"
	ActionKick   Action = "kick"
	ActionBan    Action = "ban"
	ActionUnmute Action = "unmute"
)

var validActions = map[Action]bool{
	ActionWarn:   true,
	ActionMute:   true,
	ActionKick:   true,
	ActionBan:    true,
	ActionUnmute: true,
}

func (a Action) String() string {
	return string(a)
}

func (a Action) IsValid() bool {
	return validActions[a]
}

func NewAction(s string) (Action, error) {
	a := Action(s)
	if !a.IsValid() {
		return "", fmt.Errorf("invalid moderation action: %s", s)
	}
	return a, nil
}
