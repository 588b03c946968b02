package compare

import (
	"github.com/goccy/go-json"
)

// JSONFormatter formats comparison results as indented JSON.
type JSONFormatter struct{}

// Format generates JSON output for comparison results.
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	data, err := json.MarshalIndent(compSet, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
