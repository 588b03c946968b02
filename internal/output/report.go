package output

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/planwise/retirement-planner/internal/domain"
)

// Report bundles everything one run produced for the formatters.
// Either section may be nil when the command only ran half the engine.
type Report struct {
	GeneratedAt time.Time                `json:"generatedAt"`
	Projection  *domain.ProjectionResult `json:"projection,omitempty"`
	Health      *domain.HealthReport     `json:"health,omitempty"`
}

// Formatter renders a report in one output format.
type Formatter interface {
	Name() string
	Format(report *Report) ([]byte, error)
}

// GetFormatterByName returns the formatter for a format string, or nil
// for an unknown format.
func GetFormatterByName(name string) Formatter {
	switch name {
	case "console", "":
		return &ConsoleFormatter{}
	case "json":
		return &JSONFormatter{}
	case "csv":
		return &CSVFormatter{}
	default:
		return nil
	}
}

// FormatCurrency renders a decimal as a grouped currency amount.
func FormatCurrency(amount decimal.Decimal) string {
	str := amount.StringFixed(0)
	negative := strings.HasPrefix(str, "-")
	if negative {
		str = str[1:]
	}

	var sb strings.Builder
	for i := 0; i < len(str); i++ {
		if i > 0 && (len(str)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte(str[i])
	}
	if negative {
		return "-" + sb.String()
	}
	return sb.String()
}
