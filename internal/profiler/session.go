package profiler

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Turn roles in the elicitation conversation.
const (
	RoleUser  = "user"
	RoleAgent = "agent"
)

// Turn is one utterance of the elicitation conversation.
type Turn struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

// Session holds the short-term conversational memory of one profiling run.
// Its lifecycle is bounded to a single pipeline execution; it is passed by
// reference into the stage and never shared across runs.
type Session struct {
	ID        uuid.UUID
	StartedAt time.Time
	turns     []Turn
}

// NewSession creates an empty profiling session.
func NewSession() *Session {
	return &Session{
		ID:        uuid.New(),
		StartedAt: time.Now(),
	}
}

// AddUserTurn appends a user utterance to the session.
func (s *Session) AddUserTurn(content string) {
	s.addTurn(RoleUser, content)
}

// AddAgentTurn appends an agent utterance to the session.
func (s *Session) AddAgentTurn(content string) {
	s.addTurn(RoleAgent, content)
}

func (s *Session) addTurn(role, content string) {
	content = strings.TrimSpace(content)
	if content == "" {
		return
	}
	s.turns = append(s.turns, Turn{Role: role, Content: content, At: time.Now()})
}

// Len returns the number of recorded turns.
func (s *Session) Len() int {
	return len(s.turns)
}

// SeedInputs are the structured answers collected outside a free-form
// conversation, from CLI flags or an API request body.
type SeedInputs struct {
	Skills         []string
	TargetRole     string
	Years          int
	TimeBudget     string
	LearningBudget string
	Notes          string
}

// SeedSession builds a canonical elicitation session from structured inputs
// so the profiling stage sees the same transcript shape either way.
func SeedSession(in SeedInputs) *Session {
	s := NewSession()
	s.AddAgentTurn("Tell me about your current skills, your target role, and any constraints.")

	var sb strings.Builder
	if len(in.Skills) > 0 {
		fmt.Fprintf(&sb, "My current skills are: %s. ", strings.Join(in.Skills, ", "))
	}
	if in.TargetRole != "" {
		fmt.Fprintf(&sb, "I want to become a %s. ", in.TargetRole)
	}
	fmt.Fprintf(&sb, "I have %d years of professional experience. ", in.Years)
	if in.TimeBudget != "" {
		fmt.Fprintf(&sb, "My time budget is %s. ", in.TimeBudget)
	}
	if in.LearningBudget != "" {
		fmt.Fprintf(&sb, "My learning budget is %s. ", in.LearningBudget)
	}
	if in.Notes != "" {
		fmt.Fprintf(&sb, "%s", in.Notes)
	}
	s.AddUserTurn(sb.String())
	return s
}

// Transcript renders the conversation for the structuring prompt.
func (s *Session) Transcript() string {
	var sb strings.Builder
	for _, turn := range s.turns {
		sb.WriteString(fmt.Sprintf("%s: %s\n", turn.Role, turn.Content))
	}
	return sb.String()
}
