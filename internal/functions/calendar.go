package functions

import "google.golang.org/genai"

const CreateCalendarEventName = "tool_create_calendar_event"

// CreateCalendarEventDeclaration describes the calendar tool. The model only
// emits the call; the chat client executes it and returns the result as a
// function response on the next request.
func CreateCalendarEventDeclaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        CreateCalendarEventName,
		Description: "Creates a new event on the user's primary Google Calendar.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"summary": {
					Type: genai.TypeString,
				},
				"start_time": {
					Type:        genai.TypeString,
					Description: "ISO 8601 format (YYYY-MM-DDTHH:MM:SS)",
				},
				"end_time": {
					Type:        genai.TypeString,
					Description: "ISO 8601 format (YYYY-MM-DDTHH:MM:SS)",
				},
				"time_zone": {
					Type:        genai.TypeString,
					Description: "The IANA timezone string (e.g. 'Asia/Kolkata', 'America/New_York')",
				},
			},
			Required: []string{"summary", "start_time", "end_time"},
		},
	}
}
