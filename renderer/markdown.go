package renderer

import (
	"bytes"
	"strconv"
	"time"

	"github.com/etnz/pnlreport"
	md "github.com/nao1215/markdown"
)

// Markdown renders the report as a markdown document, for terminals and
// chat tools.
func Markdown(rc *pnlreport.ReportContext, opts Options) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(opts.title())
	if !opts.Generated.IsZero() {
		doc.PlainText("最后更新：" + opts.Generated.Format(time.DateTime))
	}

	var cards [][]string
	for _, c := range summaryCards(rc.Base) {
		cards = append(cards, []string{c.Title, c.Value})
	}
	doc.Table(md.TableSet{Header: []string{"指标", "数值"}, Rows: cards})

	doc.H2("投资点评")
	doc.PlainText(rc.Narrative)

	doc.H2("多空持仓汇总")
	doc.Table(md.TableSet{
		Header: []string{"方向", "持仓数", "市值", "成本", "盈亏", "盈亏%"},
		Rows: [][]string{
			bucketRow(pnlreport.Long.String(), rc.Longs),
			bucketRow(pnlreport.Short.String(), rc.Shorts),
		},
	})

	if len(rc.Positions) > 0 {
		doc.H2("持仓明细")
		rows := make([][]string, 0, len(rc.Positions))
		for _, p := range rc.Positions {
			rows = append(rows, []string{
				p.Symbol, p.Side.String(), p.Quantity.String(),
				p.UnitCost.String(), p.UnitPrice.String(),
				p.MarketValue.String(), p.CostBasis.String(),
				p.PnL.SignedString(), p.PnLPct.SignedString(),
			})
		}
		doc.Table(md.TableSet{
			Header: []string{"标的", "方向", "数量", "成本价", "现价", "市值", "成本金额", "盈亏", "盈亏%"},
			Rows:   rows,
		})
	}

	if len(rc.Scenarios) > 0 {
		doc.H2("情景分析")
		rows := make([][]string, 0, len(rc.Scenarios))
		for _, s := range rc.Scenarios {
			rows = append(rows, []string{
				s.Label, s.Totals.PnL.SignedString(), s.Totals.PnLPct.SignedString(),
				s.PnLDelta.SignedString(), s.PnLPctDelta.SignedString(),
			})
		}
		doc.Table(md.TableSet{
			Header: []string{"情景", "盈亏", "盈亏%", "较基准盈亏", "较基准盈亏%"},
			Rows:   rows,
		})
	}

	switch {
	case rc.QualitySource == pnlreport.External:
		doc.H2("数据质量")
		doc.PlainText(rc.Quality)
	case len(rc.Findings) > 0:
		doc.H2("数据质量")
		doc.BulletList(rc.Findings...)
	}

	return doc.String()
}

func bucketRow(label string, t pnlreport.Totals) []string {
	return []string{
		label, strconv.Itoa(t.Positions()),
		t.MarketValue.String(), t.CostBasis.String(),
		t.PnL.SignedString(), t.PnLPct.SignedString(),
	}
}
