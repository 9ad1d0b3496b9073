package functions

import "google.golang.org/genai"

// Tools returns the declarations sent with every request, grouped in a
// single tool the way the Gemini API expects.
func Tools() []*genai.Tool {
	return []*genai.Tool{
		{
			FunctionDeclarations: []*genai.FunctionDeclaration{
				CreateCalendarEventDeclaration(),
				SearchGmailDeclaration(),
			},
		},
	}
}
