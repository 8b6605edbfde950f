package statement

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokenestate/backend/internal/domain/shared/valueobject"
	"golang.org/x/text/language"
)

type fakeRenderer struct {
	req *RenderRequest
	err error
}

func (f *fakeRenderer) Render(_ context.Context, req *RenderRequest) ([]byte, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF"), nil
}

func (f *fakeRenderer) Close() error { return nil }

func usd(v string) valueobject.Money {
	return valueobject.USDAmount(decimal.RequireFromString(v))
}

func sampleStatement() *RedemptionStatement {
	paid := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	return &RedemptionStatement{
		Number:           "RDM-20250715-0001",
		InvestorName:     "Ana Souza",
		InvestorEmail:    "ana@example.com",
		PropertyName:     "Harbor Lofts",
		PropertyLocation: "Lisbon",
		Tokens:           1200,
		HoldingMonths:    18,
		Tier:             "12-24m 7%",
		FeePercent:       decimal.NewFromInt(7),
		TokenValue:       usd("50"),
		GrossValue:       usd("60000"),
		FeeAmount:        usd("4200"),
		NetPayout:        usd("55800"),
		RequestedAt:      time.Date(2025, 7, 15, 9, 0, 0, 0, time.UTC),
		PaidAt:           &paid,
		PaymentReference: "WIRE-8841",
	}
}

func TestGenerator_RedemptionHTML(t *testing.T) {
	g := NewGenerator(&fakeRenderer{}, language.AmericanEnglish)

	html, err := g.RedemptionHTML(sampleStatement())
	require.NoError(t, err)

	assert.Contains(t, html, "RDM-20250715-0001")
	assert.Contains(t, html, "Harbor Lofts")
	assert.Contains(t, html, "1,200")
	assert.Contains(t, html, "60,000.00")
	assert.Contains(t, html, "55,800.00")
	assert.Contains(t, html, "(7%)")
	assert.Contains(t, html, "paid Aug 1, 2025")
	assert.Contains(t, html, "WIRE-8841")
}

func TestGenerator_EscapesInput(t *testing.T) {
	g := NewGenerator(&fakeRenderer{}, language.AmericanEnglish)
	s := sampleStatement()
	s.PropertyName = "<script>alert(1)</script>"

	html, err := g.RedemptionHTML(s)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>alert(1)</script>")
}

func TestGenerator_RenderRedemption(t *testing.T) {
	r := &fakeRenderer{}
	g := NewGenerator(r, language.AmericanEnglish)

	pdf, err := g.RenderRedemption(context.Background(), sampleStatement())
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), pdf)
	assert.Equal(t, "Redemption statement RDM-20250715-0001", r.req.Title)

	r.err = NewRenderError(ErrCodeRenderFailed, "boom", errors.New("chrome gone"))
	_, err = g.RenderRedemption(context.Background(), sampleStatement())
	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, ErrCodeRenderFailed, renderErr.Code)
}

func TestChromedpRenderer_RejectsEmptyHTML(t *testing.T) {
	r := &ChromedpRenderer{timeout: time.Second}
	_, err := r.Render(context.Background(), &RenderRequest{HTML: "  "})
	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, ErrCodeInvalidHTML, renderErr.Code)
}
