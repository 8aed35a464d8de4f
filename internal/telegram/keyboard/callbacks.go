package keyboard

import (
	"fmt"
	"strconv"
	"strings"
)

// Callback actions.
const (
	ActionMenu      = "action"
	ActionResources = "res"
	ActionStuck     = "stuck"
	ActionDownload  = "dl"
)

// Menu values carried by ActionMenu.
const (
	MenuRoadmap = "roadmap"
	MenuEndChat = "end_chat"
	MenuRestart = "restart"
)

// CallbackData is a parsed "action:value" button payload.
type CallbackData struct {
	Action string
	Value  string
}

func ParseCallback(data string) (*CallbackData, error) {
	parts := strings.SplitN(data, ":", 2)
	if len(parts) != 2 || parts[0] == "" {
		return nil, fmt.Errorf("invalid callback format: %s", data)
	}

	return &CallbackData{
		Action: parts[0],
		Value:  parts[1],
	}, nil
}

func EncodeCallback(action, value string) string {
	return fmt.Sprintf("%s:%s", action, value)
}

// EncodePosition packs a milestone position as "phase.index".
func EncodePosition(phase, index int) string {
	return fmt.Sprintf("%d.%d", phase, index)
}

func ParsePosition(value string) (phase, index int, err error) {
	p, i, ok := strings.Cut(value, ".")
	if !ok {
		return 0, 0, fmt.Errorf("invalid milestone position: %s", value)
	}
	if phase, err = strconv.Atoi(p); err != nil {
		return 0, 0, fmt.Errorf("invalid phase in %s: %w", value, err)
	}
	if index, err = strconv.Atoi(i); err != nil {
		return 0, 0, fmt.Errorf("invalid milestone in %s: %w", value, err)
	}
	return phase, index, nil
}
