package smoketest

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/segmentio/encoding/json"
)

// ConfigureLogs sets up JSON-encoded structured logging for smoke test
// runs.
func ConfigureLogs(level string, indent bool) {
	logs.SetLevel(logs.ParseLevel(level))

	logs.Encoder = json.Marshal
	if indent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}

	errors.Encoder = json.Marshal
}
