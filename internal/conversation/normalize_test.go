package conversation

import (
	"encoding/json"
	"testing"

	"github.com/m2tx/workspace-assistant/internal/model"
)

func decodeHistory(t *testing.T, s string) []any {
	t.Helper()
	var raw []any
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return raw
}

func TestNormalize_TextWinsOverFunctionCall(t *testing.T) {
	raw := decodeHistory(t, `[{"role":"user","parts":[{"text":"hi","functionCall":{"name":"x","args":{}}}]}]`)

	got := Normalize(raw)
	if len(got) != 1 || len(got[0].Parts) != 1 {
		t.Fatalf("unexpected transcript: %+v", got)
	}
	p := got[0].Parts[0]
	if p.Text != "hi" || p.FunctionCall != nil || p.FunctionResponse != nil {
		t.Errorf("expected text-only part, got %+v", p)
	}
}

func TestNormalize_FunctionCallWinsOverResponse(t *testing.T) {
	raw := decodeHistory(t, `[{"role":"model","parts":[{"function_response":{"name":"a","response":{}},"function_call":{"name":"b","args":{"k":1}}}]}]`)

	got := Normalize(raw)
	p := got[0].Parts[0]
	if p.FunctionCall == nil || p.FunctionCall.Name != "b" {
		t.Fatalf("expected function call b, got %+v", p)
	}
	if p.FunctionResponse != nil {
		t.Error("function response should have been discarded")
	}
}

func TestNormalize_UnrecognizedPartDropsTurn(t *testing.T) {
	raw := decodeHistory(t, `[
		{"role":"user","parts":[{"text":"first"}]},
		{"role":"model","parts":[{"inlineData":{"mimeType":"image/png"}}]},
		{"role":"user","parts":[{"text":"second"}]}
	]`)

	got := Normalize(raw)
	if len(got) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(got))
	}
	if got[0].Parts[0].Text != "first" || got[1].Parts[0].Text != "second" {
		t.Errorf("order not preserved: %+v", got)
	}
}

func TestNormalize_KeyVariants(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		wantCall string
		wantResp string
	}{
		{
			name:     "camelCase call",
			json:     `[{"role":"model","parts":[{"functionCall":{"name":"tool_search_gmail","args":{"query":"q"}}}]}]`,
			wantCall: "tool_search_gmail",
		},
		{
			name:     "snake_case call",
			json:     `[{"role":"model","parts":[{"function_call":{"name":"tool_search_gmail","args":{"query":"q"}}}]}]`,
			wantCall: "tool_search_gmail",
		},
		{
			name:     "camelCase response",
			json:     `[{"role":"user","parts":[{"functionResponse":{"name":"tool_search_gmail","response":{"n":1}}}]}]`,
			wantResp: "tool_search_gmail",
		},
		{
			name:     "snake_case response",
			json:     `[{"role":"user","parts":[{"function_response":{"name":"tool_search_gmail","response":{"n":1}}}]}]`,
			wantResp: "tool_search_gmail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(decodeHistory(t, tt.json))
			if len(got) != 1 {
				t.Fatalf("expected 1 turn, got %d", len(got))
			}
			p := got[0].Parts[0]
			if tt.wantCall != "" {
				if p.FunctionCall == nil || p.FunctionCall.Name != tt.wantCall {
					t.Errorf("call = %+v, want %s", p.FunctionCall, tt.wantCall)
				}
				if p.FunctionCall != nil && p.FunctionCall.Args["query"] != "q" {
					t.Errorf("args = %v", p.FunctionCall.Args)
				}
			}
			if tt.wantResp != "" {
				if p.FunctionResponse == nil || p.FunctionResponse.Name != tt.wantResp {
					t.Errorf("response = %+v, want %s", p.FunctionResponse, tt.wantResp)
				}
			}
		})
	}
}

func TestNormalize_Tolerance(t *testing.T) {
	raw := decodeHistory(t, `[
		"not a turn",
		42,
		{"parts":[{"text":"no role"}], "extra":true},
		{"role":"model"},
		{"role":"model","parts":"nope"},
		{"role":7,"parts":[{"text":3.5}]},
		{"role":"user","parts":[{"text":null}, "junk", {}]}
	]`)

	got := Normalize(raw)
	if len(got) != 3 {
		t.Fatalf("expected 3 turns, got %d: %+v", len(got), got)
	}
	if got[0].Role != model.RoleUser || got[0].Parts[0].Text != "no role" {
		t.Errorf("turn 0 = %+v", got[0])
	}
	if got[1].Role != model.RoleUser || got[1].Parts[0].Text != "3.5" {
		t.Errorf("turn 1 = %+v", got[1])
	}
	if len(got[2].Parts) != 1 || got[2].Parts[0].Text != "" {
		t.Errorf("turn 2 = %+v", got[2])
	}
}

func TestNormalize_Empty(t *testing.T) {
	if got := Normalize(nil); len(got) != 0 {
		t.Errorf("expected empty transcript, got %+v", got)
	}
}

func TestNormalize_Roles(t *testing.T) {
	tests := []struct {
		role string
		want string
	}{
		{`"user"`, model.RoleUser},
		{`"model"`, model.RoleModel},
		{`"USER"`, model.RoleUser},
		{`" Model "`, model.RoleModel},
		{`"assistant"`, model.RoleModel},
		{`"function"`, model.RoleUser},
		{`"system"`, model.RoleUser},
		{`""`, model.RoleUser},
		{`null`, model.RoleUser},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			raw := decodeHistory(t, `[{"role":`+tt.role+`,"parts":[{"text":"hi"}]}]`)

			got := Normalize(raw)
			if len(got) != 1 {
				t.Fatalf("expected 1 turn, got %d", len(got))
			}
			if got[0].Role != tt.want {
				t.Errorf("role = %q, want %q", got[0].Role, tt.want)
			}
		})
	}
}
