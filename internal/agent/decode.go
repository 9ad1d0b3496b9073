package agent

import (
	"errors"
	"fmt"

	"github.com/m2tx/workspace-assistant/internal/conversation"
	"github.com/m2tx/workspace-assistant/internal/model"
	"google.golang.org/genai"
)

var ErrBlocked = errors.New("model blocked the response.")

// IsClientError reports whether err should be answered with a 400.
func IsClientError(err error) bool {
	return errors.Is(err, ErrBlocked) || conversation.IsClientError(err)
}

// DecodeReply extracts the reply part from a provider response. The reply
// shape is not guaranteed, so every field is checked; the only error is
// ErrBlocked when there are no candidates at all.
func DecodeReply(resp *genai.GenerateContentResponse) (model.Part, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return model.Part{}, ErrBlocked
	}

	first := resp.Candidates[0]
	if first == nil || first.Content == nil || len(first.Content.Parts) == 0 {
		return model.TextPart(fallbackText(resp.Candidates)), nil
	}

	return decodePart(first.Content.Parts[0]), nil
}

// fallbackText returns the first non-empty text in any candidate, or "".
func fallbackText(candidates []*genai.Candidate) string {
	for _, c := range candidates {
		if c == nil || c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if p != nil && p.Text != "" {
				return p.Text
			}
		}
	}
	return ""
}

// SerializeHistory converts provider history back into transport turns.
// Parts that cannot be decoded become error parts. Parts with no payload the
// client can use (thought signatures, executable code) are dropped, and so
// are turns left empty: an empty text part sent back as context makes the
// provider discard that exchange.
func SerializeHistory(history []*genai.Content) []model.Content {
	out := make([]model.Content, 0, len(history))
	for _, c := range history {
		if c == nil {
			continue
		}
		parts := make([]model.Part, 0, len(c.Parts))
		for _, p := range c.Parts {
			part := decodePart(p)
			if isBlank(part) {
				continue
			}
			parts = append(parts, part)
		}
		if len(parts) == 0 {
			continue
		}
		out = append(out, model.Content{Role: c.Role, Parts: parts})
	}
	return out
}

func isBlank(p model.Part) bool {
	return p.Text == "" && p.FunctionCall == nil && p.FunctionResponse == nil && p.Error == ""
}

func decodePart(p *genai.Part) (part model.Part) {
	defer func() {
		if r := recover(); r != nil {
			part = model.ErrorPart(fmt.Sprintf("decode part: %v", r))
		}
	}()

	switch {
	case p == nil:
		return model.ErrorPart("decode part: nil part")
	case p.Text != "":
		return model.TextPart(p.Text)
	case p.FunctionCall != nil:
		return model.Part{
			FunctionCall: &model.FunctionCall{
				ID:   p.FunctionCall.ID,
				Name: p.FunctionCall.Name,
				Args: copyMap(p.FunctionCall.Args),
			},
		}
	case p.FunctionResponse != nil:
		return model.Part{
			FunctionResponse: &model.FunctionResponse{
				ID:       p.FunctionResponse.ID,
				Name:     p.FunctionResponse.Name,
				Response: copyMap(p.FunctionResponse.Response),
			},
		}
	default:
		return model.TextPart("")
	}
}

func copyMap(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
