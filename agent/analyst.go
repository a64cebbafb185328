package agent

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/etnz/pnlreport"
	"github.com/etnz/pnlreport/docs"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// DefaultQuestion is asked when the user has no specific question.
const DefaultQuestion = "我正在复盘当前组合的持仓表现，请你自主决定需要读取的内容、校验方式与建议要点。"

const instruction = `你是一名投研分析助手。
每次沟通都要：
1) 主动调用 analyze_portfolio_quality 等工具，确认数据质量；
2) 如果用户提供情景参数，则调用 simulate_scenarios 生成对应情景结果；
3) 对比不同情景的风险收益拐点，并用简洁的中文给出投资建议。
回答使用 Markdown，不要输出工具调用的原始内容。`

// NewAnalyst creates the expert writing the commentary of a report.
func NewAnalyst(model string, tools []Function) *Expert {
	if model == "" {
		model = DefaultModel
	}
	return &Expert{
		Name:      "Analyst",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(tools)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{
				{Text: instruction},
				{Text: manual},
			}},
		},
		Library: NewLibrary(tools),
	}
}

// manual explains the findings and the shocks the tools talk about.
var manual = must(docs.GetTopics("findings", "shocks"))

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Prompt builds the first message sent to the analyst: the question, the
// requested price adjustments if any, and the computed commentary as a
// starting point.
func Prompt(rc *pnlreport.ReportContext, question string, adjustments []string) string {
	var b strings.Builder
	if question = strings.TrimSpace(question); question == "" {
		question = DefaultQuestion
	}
	b.WriteString(question)
	if len(adjustments) > 0 {
		fmt.Fprintf(&b, "\n\n情景参数：%s。请在调用 simulate_scenarios 工具时将这些调整注入 adjustments 字段，"+
			"百分比代表基于当前价格的涨跌，纯数字代表绝对价格调整。", strings.Join(adjustments, ", "))
	}
	fmt.Fprintf(&b, "\n\n系统自动生成的点评如下，可作为参考：\n%s", rc.Narrative)
	return b.String()
}

var (
	toolBlock = regexp.MustCompile(`(?s)<｜tool.*?begin｜>.*?<｜tool.*?end｜>`)
	toolTag   = regexp.MustCompile(`<｜tool.*?｜>`)
)

// CleanText removes the tool call markup some models leak in their answers.
func CleanText(s string) string {
	s = toolBlock.ReplaceAllString(s, "")
	s = toolTag.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "▁", " ")
	return strings.TrimSpace(s)
}

// Comment asks the analyst for a commentary. The answer is cleaned and may
// be empty, in which case the generated narrative should be kept.
func Comment(ctx context.Context, client *genai.Client, analyst *Expert, prompt string) (string, error) {
	if err := analyst.Start(ctx, client); err != nil {
		return "", err
	}
	answer, err := analyst.Ask(ctx, &genai.Part{Text: prompt})
	if err != nil {
		return "", fmt.Errorf("analyst failed: %w", err)
	}
	return CleanText(answer), nil
}
