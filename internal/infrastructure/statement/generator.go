package statement

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tokenestate/backend/internal/domain/shared/valueobject"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// RedemptionStatement is the data printed on a redemption statement
type RedemptionStatement struct {
	Number           string
	InvestorName     string
	InvestorEmail    string
	PropertyName     string
	PropertyLocation string
	Tokens           int64
	HoldingMonths    int
	Tier             string
	FeePercent       decimal.Decimal
	TokenValue       valueobject.Money
	GrossValue       valueobject.Money
	FeeAmount        valueobject.Money
	NetPayout        valueobject.Money
	RequestedAt      time.Time
	PaidAt           *time.Time
	PaymentReference string
}

const redemptionTemplate = `<!DOCTYPE html>
<html><head><meta charset="UTF-8"><title>Redemption statement {{.Number}}</title>
<style>
body{font-family:Helvetica,Arial,sans-serif;color:#1f2933;font-size:12px}
h1{font-size:20px;margin-bottom:4px}
table{width:100%;border-collapse:collapse;margin-top:16px}
td{padding:6px 4px;border-bottom:1px solid #e4e7eb}
td.v{text-align:right}
tr.total td{font-weight:bold;border-top:2px solid #1f2933}
.muted{color:#7b8794}
</style></head>
<body>
<h1>Redemption statement</h1>
<div class="muted">{{.Number}} &middot; requested {{date .RequestedAt}}{{if .PaidAt}} &middot; paid {{date .PaidAt}}{{end}}</div>
<p>{{if .InvestorName}}{{.InvestorName}}{{end}}{{if .InvestorEmail}} &lt;{{.InvestorEmail}}&gt;{{end}}</p>
<p><strong>{{.PropertyName}}</strong>{{if .PropertyLocation}}, {{.PropertyLocation}}{{end}}</p>
<table>
<tr><td>Tokens redeemed</td><td class="v">{{count .Tokens}}</td></tr>
<tr><td>Token value</td><td class="v">{{money .TokenValue}}</td></tr>
<tr><td>Holding period</td><td class="v">{{.HoldingMonths}} months</td></tr>
<tr><td>Fee tier</td><td class="v">{{.Tier}}</td></tr>
<tr><td>Gross value</td><td class="v">{{money .GrossValue}}</td></tr>
<tr><td>Early redemption fee ({{percent .FeePercent}})</td><td class="v">-{{money .FeeAmount}}</td></tr>
<tr class="total"><td>Net payout</td><td class="v">{{money .NetPayout}}</td></tr>
</table>
{{if .PaymentReference}}<p class="muted">Payment reference: {{.PaymentReference}}</p>{{end}}
</body></html>`

// Generator fills statement templates and hands them to a PDFRenderer
type Generator struct {
	renderer   PDFRenderer
	tag        language.Tag
	redemption *template.Template
}

// NewGenerator creates a generator formatting numbers for tag
func NewGenerator(renderer PDFRenderer, tag language.Tag) *Generator {
	printer := message.NewPrinter(tag)
	funcs := template.FuncMap{
		"money": func(m valueobject.Money) string {
			f, _ := m.Amount().Round(valueobject.CentsPlaces).Float64()
			prefix := string(m.Currency()) + " "
			if m.Currency() == valueobject.USD {
				prefix = "$"
			}
			return prefix + printer.Sprintf("%.2f", f)
		},
		"count":   func(n int64) string { return printer.Sprintf("%d", n) },
		"percent": func(d decimal.Decimal) string { return d.String() + "%" },
		"date": func(v interface{}) string {
			switch t := v.(type) {
			case time.Time:
				return t.Format("Jan 2, 2006")
			case *time.Time:
				if t == nil {
					return ""
				}
				return t.Format("Jan 2, 2006")
			}
			return ""
		},
	}
	return &Generator{
		renderer:   renderer,
		tag:        tag,
		redemption: template.Must(template.New("redemption").Funcs(funcs).Parse(redemptionTemplate)),
	}
}

// RedemptionHTML renders the statement as an HTML document
func (g *Generator) RedemptionHTML(s *RedemptionStatement) (string, error) {
	var buf bytes.Buffer
	if err := g.redemption.Execute(&buf, s); err != nil {
		return "", fmt.Errorf("execute redemption template: %w", err)
	}
	return buf.String(), nil
}

// RenderRedemption renders the statement as a PDF
func (g *Generator) RenderRedemption(ctx context.Context, s *RedemptionStatement) ([]byte, error) {
	html, err := g.RedemptionHTML(s)
	if err != nil {
		return nil, err
	}
	return g.renderer.Render(ctx, &RenderRequest{HTML: html, Title: "Redemption statement " + s.Number})
}
