// Package prompt renders the timezone-aware system instruction.
package prompt

import (
	"fmt"
	"strings"
	"time"
)

const DefaultTimezone = "UTC"

// Context is the per-request date/time context embedded in the instruction.
type Context struct {
	// Timezone is the identifier exactly as the caller sent it.
	Timezone string
	// Fallback is true when Timezone could not be loaded and the server's
	// local zone was used instead.
	Fallback bool
	Now      time.Time
}

func (c Context) Date() string    { return c.Now.Format("2006-01-02") }
func (c Context) Clock() string   { return c.Now.Format("15:04:05") }
func (c Context) Weekday() string { return c.Now.Weekday().String() }

// Resolve converts now into the caller's zone. An unknown zone falls back to
// time.Local without returning an error.
func Resolve(timezone string, now time.Time) Context {
	if strings.TrimSpace(timezone) == "" {
		timezone = DefaultTimezone
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return Context{Timezone: timezone, Fallback: true, Now: now.In(time.Local)}
	}
	return Context{Timezone: timezone, Now: now.In(loc)}
}

// Build resolves timezone at now and renders the system instruction.
func Build(timezone string, now time.Time) (string, Context) {
	ctx := Resolve(timezone, now)
	return Render(ctx), ctx
}

// Render returns the instruction text for ctx. The output depends only on
// ctx, so tests can pin the clock.
func Render(ctx Context) string {
	return fmt.Sprintf(`You are a helpful assistant connected to Google Workspace.

CRITICAL CONTEXT:
- User's Timezone: %[1]s
- Current Date: %[2]s (%[3]s)
- Current Time: %[4]s

INSTRUCTIONS:
1. When the user asks to create an event (e.g., "tomorrow at 2pm", "next Monday"), resolve the relative expression into an absolute ISO 8601 date/time (YYYY-MM-DDTHH:MM:SS) using the Current Date and Current Time above.
2. Always include '%[1]s' in the 'time_zone' parameter when calling the 'tool_create_calendar_event' tool.
`, ctx.Timezone, ctx.Date(), ctx.Weekday(), ctx.Clock())
}
