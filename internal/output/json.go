package output

import (
	"github.com/goccy/go-json"
)

// JSONFormatter renders the report as indented JSON.
type JSONFormatter struct{}

func (jf *JSONFormatter) Name() string { return "json" }

func (jf *JSONFormatter) Format(report *Report) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
