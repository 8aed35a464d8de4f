package entity

import "github.com/google/uuid"

type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

func (r ChatRole) Valid() bool {
	return r == ChatRoleUser || r == ChatRoleModel
}

type ChatTurn struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

type ChatSessionState string

const (
	ChatSessionStateCreated ChatSessionState = "created"
	ChatSessionStateActive  ChatSessionState = "active"
)

// ChatSession is a caller-owned coaching transcript for one milestone.
// Turns are append-only and kept in chronological order.
type ChatSession struct {
	ID        string     `json:"id"`
	Milestone string     `json:"milestone"`
	Turns     []ChatTurn `json:"turns"`
}

// NewChatSession opens a session with no turns.
func NewChatSession(milestone string) *ChatSession {
	return &ChatSession{
		ID:        uuid.New().String(),
		Milestone: milestone,
		Turns:     []ChatTurn{},
	}
}

// RestoreChatSession rebuilds a session from a persisted transcript.
// An empty id gets a fresh one.
func RestoreChatSession(id, milestone string, turns []ChatTurn) *ChatSession {
	if id == "" {
		id = uuid.New().String()
	}
	restored := make([]ChatTurn, len(turns))
	copy(restored, turns)
	return &ChatSession{
		ID:        id,
		Milestone: milestone,
		Turns:     restored,
	}
}

func (s *ChatSession) State() ChatSessionState {
	if len(s.Turns) == 0 {
		return ChatSessionStateCreated
	}
	return ChatSessionStateActive
}

// History returns a copy of the turns so far.
func (s *ChatSession) History() []ChatTurn {
	history := make([]ChatTurn, len(s.Turns))
	copy(history, s.Turns)
	return history
}

func (s *ChatSession) Append(turn ChatTurn) {
	s.Turns = append(s.Turns, turn)
}

type TroubleshootInput struct {
	Milestone string
	History   []ChatTurn
	Question  string
}

type TroubleshootOutput struct {
	Response string `json:"response"`
}
