package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
)

// CSVFormatter renders the report as flat metric,value rows, the shape
// spreadsheet users expect to paste.
type CSVFormatter struct{}

func (cf *CSVFormatter) Name() string { return "csv" }

func (cf *CSVFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"metric", "value"}); err != nil {
		return nil, err
	}

	if proj := report.Projection; proj != nil {
		rows := [][]string{
			{"total_pension_savings", proj.TotalPensionSavings.StringFixed(2)},
			{"training_fund_value", proj.TrainingFundValue.StringFixed(2)},
			{"personal_portfolio_value", proj.PersonalPortfolioValue.StringFixed(2)},
			{"crypto_value", proj.CryptoValue.StringFixed(2)},
			{"real_estate_value", proj.RealEstateValue.StringFixed(2)},
			{"monthly_rental_income", proj.MonthlyRentalIncome.StringFixed(2)},
			{"combined_total_savings", proj.CombinedTotalSavings.StringFixed(2)},
			{"monthly_income", proj.MonthlyIncome.StringFixed(2)},
		}
		for _, row := range rows {
			if err := writer.Write(row); err != nil {
				return nil, err
			}
		}
	}

	if health := report.Health; health != nil {
		if err := writer.Write([]string{"health_score", fmt.Sprintf("%.0f", health.Score)}); err != nil {
			return nil, err
		}
		names := make([]string, 0, len(health.Factors))
		for name := range health.Factors {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if err := writer.Write([]string{"factor_" + name, fmt.Sprintf("%.0f", health.Factors[name].Score)}); err != nil {
				return nil, err
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
