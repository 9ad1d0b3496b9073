package conversation

import (
	"errors"

	"github.com/m2tx/workspace-assistant/internal/model"
)

var (
	ErrEmptyHistory          = errors.New("no chat history received")
	ErrUnrecognizedTurnShape = errors.New("last turn is neither text nor a function response")
	ErrMissingText           = errors.New("last turn has no text and no function response")
)

// TurnKind classifies what is sent to the model as the new message.
type TurnKind int

const (
	UserText TurnKind = iota + 1
	ToolResult
)

func (k TurnKind) String() string {
	switch k {
	case UserText:
		return "user_text"
	case ToolResult:
		return "tool_result"
	default:
		return "unknown"
	}
}

// CurrentTurn is the final client turn, removed from the transcript.
// Text is set for UserText, Parts for ToolResult.
type CurrentTurn struct {
	Kind  TurnKind
	Text  string
	Parts []model.Part
}

// IsClientError reports whether err is a transcript shape problem the
// client has to fix.
func IsClientError(err error) bool {
	return errors.Is(err, ErrEmptyHistory) ||
		errors.Is(err, ErrUnrecognizedTurnShape) ||
		errors.Is(err, ErrMissingText)
}

// SelectTurn splits a normalized transcript into the prior context and the
// turn to send. The input slice is not modified.
func SelectTurn(transcript []model.Content) ([]model.Content, CurrentTurn, error) {
	if len(transcript) == 0 {
		return nil, CurrentTurn{}, ErrEmptyHistory
	}

	last := transcript[len(transcript)-1]
	prior := transcript[:len(transcript)-1:len(transcript)-1]

	// Normalize never emits empty turns, but callers may build transcripts by hand.
	if len(last.Parts) == 0 {
		return nil, CurrentTurn{}, ErrUnrecognizedTurnShape
	}

	first := last.Parts[0]
	switch {
	case first.FunctionCall == nil && first.FunctionResponse == nil && first.Error == "":
		if first.Text == "" {
			return nil, CurrentTurn{}, ErrMissingText
		}
		return prior, CurrentTurn{Kind: UserText, Text: first.Text}, nil
	case first.FunctionResponse != nil:
		parts := make([]model.Part, len(last.Parts))
		copy(parts, last.Parts)
		return prior, CurrentTurn{Kind: ToolResult, Parts: parts}, nil
	default:
		return nil, CurrentTurn{}, ErrUnrecognizedTurnShape
	}
}
