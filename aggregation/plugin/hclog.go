package plugin

import (
	"os"

	"github.com/hashicorp/go-hclog"
)

// newHCLogAdapter returns the logger go-plugin requires for its own
// subprocess lifecycle diagnostics (distinct from the Coordinator's own
// common/logging logger, which go-plugin's client API cannot consume
// directly since it is hard-wired to hclog.Logger).
func newHCLogAdapter() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   "aggregator-plugin",
		Level:  hclog.Warn,
		Output: os.Stderr,
	})
}
