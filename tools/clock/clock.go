// Package clock provides the get_current_time tool.
package clock

import (
	"context"
	"fmt"
	"time"

	groto "github.com/Ritam-910/groto"
)

// Name is the registered tool name.
const Name = "get_current_time"

// Description is the tool description shown to the model.
const Description = "Get the current date and time with timezone"

// Now returns the local date and time with day of week and UTC offset,
// e.g. "Saturday, 2026-08-30 14:05:09 (UTC+07:00)".
func Now() string {
	return format(time.Now())
}

func format(now time.Time) string {
	_, offset := now.Zone()
	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}
	hours := offset / 3600
	minutes := (offset % 3600) / 60
	tz := fmt.Sprintf("UTC%s%02d:%02d", sign, hours, minutes)

	return fmt.Sprintf("%s, %s (%s)", now.Weekday(), now.Format("2006-01-02 15:04:05"), tz)
}

// Register adds the tool to a registry. The tool takes no parameters.
func Register(r *groto.ToolRegistry) {
	r.Register(Name, Description, func(_ context.Context, _ map[string]any) groto.ToolResult {
		return groto.ToolResult{Content: Now()}
	})
}
