package agent

import (
	"context"

	"google.golang.org/genai"
)

// fakeChat mimics *genai.Chat: it records what was sent and appends the
// exchange to its history.
type fakeChat struct {
	history []*genai.Content
	sent    []genai.Part
	resp    *genai.GenerateContentResponse
	err     error
}

func (f *fakeChat) SendMessage(_ context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	f.sent = append(f.sent, parts...)
	if f.err != nil {
		return nil, f.err
	}

	input := &genai.Content{Role: genai.RoleUser}
	for i := range parts {
		input.Parts = append(input.Parts, &parts[i])
	}
	f.history = append(f.history, input)
	if f.resp != nil && len(f.resp.Candidates) > 0 && f.resp.Candidates[0] != nil && f.resp.Candidates[0].Content != nil {
		f.history = append(f.history, f.resp.Candidates[0].Content)
	}
	return f.resp, nil
}

func (f *fakeChat) History(bool) []*genai.Content {
	return f.history
}

type fakeStarter struct {
	chat     *fakeChat
	err      error
	calls    int
	model    string
	config   *genai.GenerateContentConfig
	seedSize int
}

func (s *fakeStarter) Start(_ context.Context, model string, config *genai.GenerateContentConfig, history []*genai.Content) (ChatSession, error) {
	s.calls++
	s.model = model
	s.config = config
	s.seedSize = len(history)
	if s.err != nil {
		return nil, s.err
	}
	s.chat.history = append([]*genai.Content{}, history...)
	return s.chat, nil
}

func textReply(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Role:  genai.RoleModel,
				Parts: []*genai.Part{{Text: text}},
			},
		}},
	}
}

func callReply(name string, args map[string]any) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Role:  genai.RoleModel,
				Parts: []*genai.Part{{FunctionCall: &genai.FunctionCall{Name: name, Args: args}}},
			},
		}},
	}
}
