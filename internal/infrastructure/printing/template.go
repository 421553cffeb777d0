// Package printing renders income statements to PDF through headless
// Chrome. The statement is laid out with an HTML template and printed via
// the DevTools protocol.
package printing

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/shopspring/decimal"

	statementapp "github.com/proforma/backend/internal/application/statement"
)

var statementTemplate = template.Must(template.New("statement").Funcs(template.FuncMap{
	"money":  formatMoney,
	"indent": indentPx,
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.PropertyName}} Income Statement</title>
<style>
  body { font-family: Helvetica, Arial, sans-serif; font-size: 11px; color: #1a1a1a; margin: 0; }
  h1 { font-size: 18px; margin-bottom: 2px; }
  .address { color: #666; margin-bottom: 4px; }
  .generated { color: #999; font-size: 9px; margin-bottom: 16px; }
  table { width: 100%; border-collapse: collapse; margin-bottom: 18px; }
  th { text-align: right; border-bottom: 1px solid #1a1a1a; padding: 4px 6px; font-size: 10px; }
  th.label, td.label { text-align: left; }
  td { text-align: right; padding: 3px 6px; }
  tr.subtotal td { font-weight: bold; border-top: 1px solid #999; }
  tr.grand td { font-weight: bold; border-top: 2px solid #1a1a1a; }
  .section-title { font-size: 13px; font-weight: bold; margin: 12px 0 4px; }
</style>
</head>
<body>
<h1>{{.PropertyName}}</h1>
{{if .PropertyAddress}}<div class="address">{{.PropertyAddress}}</div>{{end}}
<div class="generated">Generated {{.GeneratedAt.Format "January 2, 2006"}}</div>
{{range .Sections}}
<div class="section-title">{{.Title}}</div>
<table>
  <tr>
    <th class="label">Item</th>
    <th>Monthly</th>
    <th>Annual</th>
    <th>$/SF</th>
    <th>$/Unit</th>
  </tr>
  {{range .Rows}}
  <tr{{if .IsSubtotal}} class="subtotal"{{end}}>
    <td class="label" style="padding-left: {{indent .Depth}}px">{{.Label}}</td>
    <td>{{money .Amounts.GrossMonthly}}</td>
    <td>{{money .Amounts.GrossAnnual}}</td>
    <td>{{money .Amounts.PSFAnnual}}</td>
    <td>{{money .Amounts.PUnitAnnual}}</td>
  </tr>
  {{end}}
</table>
{{end}}
<table>
  <tr class="grand">
    <td class="label">Net Operating Income</td>
    <td>{{money .NetOperatingIncome.GrossMonthly}}</td>
    <td>{{money .NetOperatingIncome.GrossAnnual}}</td>
    <td>{{money .NetOperatingIncome.PSFAnnual}}</td>
    <td>{{money .NetOperatingIncome.PUnitAnnual}}</td>
  </tr>
  <tr class="grand">
    <td class="label">Cash Flow</td>
    <td>{{money .CashFlow.GrossMonthly}}</td>
    <td>{{money .CashFlow.GrossAnnual}}</td>
    <td>{{money .CashFlow.PSFAnnual}}</td>
    <td>{{money .CashFlow.PUnitAnnual}}</td>
  </tr>
</table>
</body>
</html>`))

func formatMoney(d decimal.Decimal) string {
	if d.IsZero() {
		return "–"
	}
	return "$" + d.StringFixed(2)
}

func indentPx(depth int) int {
	return 6 + depth*14
}

// renderHTML lays the export document out as a printable HTML page
func renderHTML(doc *statementapp.ExportDocument) (string, error) {
	var buf bytes.Buffer
	if err := statementTemplate.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("failed to render statement template: %w", err)
	}
	return buf.String(), nil
}
