package navigator

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/waypost/navtree/controller"
	"github.com/waypost/navtree/mutate"
	"github.com/waypost/navtree/transition"
)

// Pane back-navigation policy names accepted in configuration.
const (
	PaneBackLatest      = "latest"
	PaneBackScaffold    = "scaffold"
	PaneBackDestination = "destination"
	PaneBackContent     = "content"
)

// Config holds initialization parameters for all navigation subsystems.
// Each subsystem section delegates to that subsystem's config-driven
// constructor.
type Config struct {
	Controller controller.Config `json:"controller"`
	Transition transition.Config `json:"transition"`
	// PaneBack selects the fallback policy applied when back navigation
	// reaches the bottom of the focused pane's stack: "latest" (fail),
	// "scaffold" (refocus Primary), "destination" (refocus another role),
	// or "content" (pop from any role with history).
	PaneBack string `json:"pane_back,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults for all subsystems.
func DefaultConfig() Config {
	return Config{
		Controller: controller.DefaultConfig(),
		Transition: transition.DefaultConfig(),
		PaneBack:   PaneBackLatest,
	}
}

// Merge applies non-zero values from source into c, delegating to each
// subsystem's Merge method.
func (c *Config) Merge(source *Config) {
	c.Controller.Merge(&source.Controller)
	c.Transition.Merge(&source.Transition)

	if source.PaneBack != "" {
		c.PaneBack = source.PaneBack
	}
}

// LoadConfig reads a JSON config file, merges it with defaults, and returns
// the resulting Config.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}

func paneBackBehavior(name string) (mutate.PaneBackBehavior, error) {
	switch name {
	case "", PaneBackLatest:
		return mutate.PopLatest, nil
	case PaneBackScaffold:
		return mutate.PopUntilScaffoldValueChange, nil
	case PaneBackDestination:
		return mutate.PopUntilCurrentDestinationChange, nil
	case PaneBackContent:
		return mutate.PopUntilContentChange, nil
	default:
		return mutate.PopLatest, fmt.Errorf("unknown pane back policy: %q", name)
	}
}
