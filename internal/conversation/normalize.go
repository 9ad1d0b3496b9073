// Package conversation turns the loosely-typed transcript sent by the chat
// client into model.Content and picks the turn to send next.
package conversation

import (
	"fmt"
	"strings"

	"github.com/m2tx/workspace-assistant/internal/model"
)

// Part keys accepted from the client. Both casings are produced in the wild:
// camelCase by our own serializer, snake_case by older clients.
const (
	keyRole                  = "role"
	keyParts                 = "parts"
	keyText                  = "text"
	keyFunctionCall          = "functionCall"
	keyFunctionCallSnake     = "function_call"
	keyFunctionResponse      = "functionResponse"
	keyFunctionResponseSnake = "function_response"
)

// Normalize converts raw JSON-decoded turns into a transcript. It never
// fails: entries that are not objects, parts without a recognized key and
// turns left with no parts are dropped. Order is preserved.
func Normalize(raw []any) []model.Content {
	transcript := make([]model.Content, 0, len(raw))
	for _, item := range raw {
		turn, ok := item.(map[string]any)
		if !ok {
			continue
		}

		role, _ := turn[keyRole].(string)

		rawParts, _ := turn[keyParts].([]any)
		parts := make([]model.Part, 0, len(rawParts))
		for _, rp := range rawParts {
			if p, ok := normalizePart(rp); ok {
				parts = append(parts, p)
			}
		}

		if len(parts) == 0 {
			continue
		}
		transcript = append(transcript, model.Content{Role: normalizeRole(role), Parts: parts})
	}
	return transcript
}

// normalizePart keeps at most one payload, in the order text, function call,
// function response.
func normalizePart(raw any) (model.Part, bool) {
	fields, ok := raw.(map[string]any)
	if !ok {
		return model.Part{}, false
	}

	if v, ok := fields[keyText]; ok {
		return model.TextPart(textValue(v)), true
	}

	if v, ok := lookup(fields, keyFunctionCall, keyFunctionCallSnake); ok {
		obj, _ := v.(map[string]any)
		name, _ := obj["name"].(string)
		id, _ := obj["id"].(string)
		args, _ := obj["args"].(map[string]any)
		return model.Part{FunctionCall: &model.FunctionCall{ID: id, Name: name, Args: args}}, true
	}

	if v, ok := lookup(fields, keyFunctionResponse, keyFunctionResponseSnake); ok {
		obj, _ := v.(map[string]any)
		name, _ := obj["name"].(string)
		id, _ := obj["id"].(string)
		resp, _ := obj["response"].(map[string]any)
		return model.Part{FunctionResponse: &model.FunctionResponse{ID: id, Name: name, Response: resp}}, true
	}

	return model.Part{}, false
}

// normalizeRole maps a client role onto the two roles the provider accepts.
// Anything that is not the model's own voice is treated as the user.
func normalizeRole(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case model.RoleModel, "assistant":
		return model.RoleModel
	default:
		return model.RoleUser
	}
}

func lookup(fields map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := fields[k]; ok {
			return v, true
		}
	}
	return nil, false
}

func textValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
