package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/etnz/pnlreport"
	"google.golang.org/genai"
)

// NewTools returns the functions giving the model access to a report: its
// totals, its data-quality findings and on demand price shock scenarios.
func NewTools(positions []pnlreport.Position, rc *pnlreport.ReportContext) []Function {
	return []Function{
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "portfolio_totals",
				Description: "Returns the baseline totals of the portfolio, its long and short buckets and the per position metrics, as JSON.",
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "A JSON object with base_totals, longs, shorts and positions.",
				},
			},
			Func: func(_ context.Context, id string, _ map[string]any) *genai.FunctionResponse {
				out, err := toJSON(map[string]any{
					"base_totals": rc.Base,
					"longs":       rc.Longs,
					"shorts":      rc.Shorts,
					"positions":   rc.Positions,
				})
				if err != nil {
					return errorResponse(id, "portfolio_totals", err)
				}
				return outputResponse(id, "portfolio_totals", out)
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "analyze_portfolio_quality",
				Description: "Returns the data-quality findings of the portfolio: excluded records, duplicate symbols, stale prices, zero cost basis.",
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "One finding per line, empty when the data is clean.",
				},
			},
			Func: func(_ context.Context, id string, _ map[string]any) *genai.FunctionResponse {
				return outputResponse(id, "analyze_portfolio_quality", rc.Quality)
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name: "simulate_scenarios",
				Description: `Reprices every position with uniform price adjustments and compares the result with the baseline.
				"-5%" lowers every price by 5 percent, "2" adds 2 to every unit price.`,
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"adjustments": {
							Type:        genai.TypeArray,
							Items:       &genai.Schema{Type: genai.TypeString},
							Description: `Price adjustments, e.g. ["-5%", "+5%", "2"].`,
						},
					},
					Required: []string{"adjustments"},
				},
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "A JSON array of scenarios with their totals and their deltas against the baseline.",
				},
			},
			Func: func(_ context.Context, id string, args map[string]any) *genai.FunctionResponse {
				scenarios, err := simulate(positions, rc.Base, args["adjustments"])
				if err != nil {
					return errorResponse(id, "simulate_scenarios", err)
				}
				out, err := toJSON(scenarios)
				if err != nil {
					return errorResponse(id, "simulate_scenarios", err)
				}
				return outputResponse(id, "simulate_scenarios", out)
			},
		},
	}
}

func simulate(positions []pnlreport.Position, base pnlreport.Totals, arg any) ([]pnlreport.Scenario, error) {
	list, ok := arg.([]any)
	if !ok {
		return nil, fmt.Errorf("argument 'adjustments' is not a list as expected but %T", arg)
	}
	shocks := make([]pnlreport.Shock, 0, len(list))
	for _, v := range list {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("adjustment %v is not a string but %T", v, v)
		}
		shock, err := pnlreport.ParseShock(s)
		if err != nil {
			return nil, err
		}
		shocks = append(shocks, shock)
	}
	scenarios, _ := pnlreport.EvaluateScenarios(base, pnlreport.ShockScenarios(positions, shocks))
	return scenarios, nil
}

func toJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return buf.String(), nil
}
