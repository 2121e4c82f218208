// Package weather provides the get_weather tool. This is a documented
// stub that returns a simulated report; swap in a real weather API
// integration to replace it.
package weather

import (
	"context"
	"fmt"

	groto "github.com/Ritam-910/groto"
)

// Name is the registered tool name.
const Name = "get_weather"

// Description is the tool description shown to the model.
const Description = "Get weather information (simulated)"

// Report returns a simulated weather report for a location.
func Report(location string) string {
	return fmt.Sprintf("[Simulated weather for %s]\nTemperature: 22°C, Condition: Partly Cloudy\nNote: Integrate with a weather API for real data.", location)
}

// Register adds the tool to a registry. Parameters: location (string).
func Register(r *groto.ToolRegistry) {
	r.Register(Name, Description, func(_ context.Context, params map[string]any) groto.ToolResult {
		location, _ := params["location"].(string)
		return groto.ToolResult{Content: Report(location)}
	})
}
