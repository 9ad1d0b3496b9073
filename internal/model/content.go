package model

import (
	"encoding/json"
	"time"
)

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// FunctionCall represents a function invocation requested by the model.
type FunctionCall struct {
	ID   string         `json:"id,omitempty" bson:"id,omitempty"`
	Name string         `json:"name" bson:"name"`
	Args map[string]any `json:"args" bson:"args,omitempty"`
}

// FunctionResponse represents the result of a function invocation.
type FunctionResponse struct {
	ID       string         `json:"id,omitempty" bson:"id,omitempty"`
	Name     string         `json:"name" bson:"name"`
	Response map[string]any `json:"response" bson:"response,omitempty"`
}

// Part is a single piece of a conversation turn. Exactly one payload is
// meaningful: FunctionCall, FunctionResponse, Error, or else Text.
type Part struct {
	Text             string            `bson:"text,omitempty"`
	FunctionCall     *FunctionCall     `bson:"function_call,omitempty"`
	FunctionResponse *FunctionResponse `bson:"function_response,omitempty"`
	// Error is only produced when a provider part could not be decoded.
	Error string `bson:"error,omitempty"`
}

func TextPart(text string) Part {
	return Part{Text: text}
}

func ErrorPart(msg string) Part {
	return Part{Error: msg}
}

// MarshalJSON writes the single populated payload using the camelCase keys
// the chat client expects. A part with no other payload is written as text,
// so an empty reply still renders as {"text": ""}.
func (p Part) MarshalJSON() ([]byte, error) {
	switch {
	case p.FunctionCall != nil:
		fc := *p.FunctionCall
		if fc.Args == nil {
			fc.Args = map[string]any{}
		}
		return json.Marshal(map[string]any{"functionCall": fc})
	case p.FunctionResponse != nil:
		fr := *p.FunctionResponse
		if fr.Response == nil {
			fr.Response = map[string]any{}
		}
		return json.Marshal(map[string]any{"functionResponse": fr})
	case p.Error != "":
		return json.Marshal(map[string]string{"error": p.Error})
	default:
		return json.Marshal(map[string]string{"text": p.Text})
	}
}

// UnmarshalJSON reads the shape written by MarshalJSON. Loosely-typed client
// input goes through conversation.Normalize instead.
func (p *Part) UnmarshalJSON(data []byte) error {
	var raw struct {
		Text             *string           `json:"text"`
		FunctionCall     *FunctionCall     `json:"functionCall"`
		FunctionResponse *FunctionResponse `json:"functionResponse"`
		Error            string            `json:"error"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = Part{}
	switch {
	case raw.Text != nil:
		p.Text = *raw.Text
	case raw.FunctionCall != nil:
		p.FunctionCall = raw.FunctionCall
	case raw.FunctionResponse != nil:
		p.FunctionResponse = raw.FunctionResponse
	default:
		p.Error = raw.Error
	}
	return nil
}

// Content is a single conversation turn, composed of one or more parts.
type Content struct {
	Role  string `json:"role" bson:"role"`
	Parts []Part `json:"parts" bson:"parts"`
}

// ExchangeRecord is the audit trail of one /api/chat request.
type ExchangeRecord struct {
	RequestID    string    `json:"request_id" bson:"_id"`
	Timezone     string    `json:"timezone" bson:"timezone"`
	TurnKind     string    `json:"turn_kind,omitempty" bson:"turn_kind,omitempty"`
	PriorTurns   int       `json:"prior_turns" bson:"prior_turns"`
	ResponsePart *Part     `json:"response_part,omitempty" bson:"response_part,omitempty"`
	Error        string    `json:"error,omitempty" bson:"error,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}
