package pageagent

import (
	"github.com/ggoodman/devtools-bridge/cdp"
	"github.com/ggoodman/devtools-bridge/inspector"
)

// Result returns a handler that replies to every request with result.
func Result(result any) HandlerFunc {
	return func(ch inspector.FrontendChannel, _ inspector.SessionMetadata, req cdp.PreparsedRequest) error {
		return ch.SendResult(req.ID, result)
	}
}

// LogEnable answers Log.enable and announces the session with a
// Log.entryAdded event naming the integration.
func LogEnable() HandlerFunc {
	return func(ch inspector.FrontendChannel, meta inspector.SessionMetadata, req cdp.PreparsedRequest) error {
		if err := ch.SendResult(req.ID, nil); err != nil {
			return err
		}
		name := meta.IntegrationName
		if name == "" {
			name = "unknown integration"
		}
		return ch.SendEvent("Log.entryAdded", map[string]any{
			"entry": map[string]any{
				"source": "other",
				"level":  "info",
				"text":   "Debugger attached via " + name,
			},
		})
	}
}
