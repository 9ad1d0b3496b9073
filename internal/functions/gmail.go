package functions

import "google.golang.org/genai"

const SearchGmailName = "tool_search_gmail"

func SearchGmailDeclaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        SearchGmailName,
		Description: "Searches the user's Gmail inbox for messages.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"query": {
					Type:        genai.TypeString,
					Description: "Gmail search query, e.g. 'from:billing invoice'",
				},
			},
			Required: []string{"query"},
		},
	}
}
