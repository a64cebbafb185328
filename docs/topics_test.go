package docs

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/etnz/pnlreport"
	"github.com/etnz/pnlreport/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

func TestTopics(t *testing.T) {
	// Every topic listed in the index must exist, and every topic file must be
	// listed in the index.
	file, err := os.Open(Index + ".md")
	require.NoError(t, err)
	defer file.Close()

	var listed []string
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if m := topicRegex.FindStringSubmatch(scanner.Text()); len(m) > 1 {
			listed = append(listed, strings.TrimSpace(m[1]))
		}
	}
	require.NoError(t, scanner.Err())

	for _, topic := range listed {
		_, err := GetTopic(topic)
		assert.NoError(t, err, "topic %q", topic)
	}

	files, err := filepath.Glob("*.md")
	require.NoError(t, err)
	for _, f := range files {
		name := strings.TrimSuffix(filepath.Base(f), ".md")
		if name != Index {
			assert.Contains(t, listed, name, "%s.md is not listed in %s.md", name, Index)
		}
	}

	all, err := GetAllTopics()
	require.NoError(t, err)
	assert.ElementsMatch(t, listed, all)
}

func TestGetTopics(t *testing.T) {
	got, err := GetTopics("shocks", "findings")
	require.NoError(t, err)
	assert.Contains(t, got, "# Price shocks")
	assert.Contains(t, got, "# Data-quality findings")

	_, err = GetTopics("nope")
	assert.Error(t, err)

	all, err := GetTopics("*")
	require.NoError(t, err)
	assert.NotContains(t, all, "# pnlr user manual")
	assert.Contains(t, all, "# Configuration")
}

// codeBlock is a fenced code block of a topic.
type codeBlock struct {
	topic, lang, content string
}

// codeBlocks extracts the fenced code blocks of every topic.
func codeBlocks(t *testing.T) []codeBlock {
	t.Helper()
	topics, err := GetAllTopics()
	require.NoError(t, err)

	var blocks []codeBlock
	for _, topic := range topics {
		source, err := docs.ReadFile(topic + ".md")
		require.NoError(t, err)
		doc := goldmark.New().Parser().Parse(text.NewReader(source))
		ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
			fcb, ok := n.(*ast.FencedCodeBlock)
			if !entering || !ok {
				return ast.WalkContinue, nil
			}
			var b bytes.Buffer
			lines := fcb.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				b.Write(seg.Value(source))
			}
			blocks = append(blocks, codeBlock{topic, string(fcb.Language(source)), b.String()})
			return ast.WalkSkipChildren, nil
		})
	}
	return blocks
}

func TestCodeBlocks(t *testing.T) {
	// The examples of the manual must be accepted as they are written.
	blocks := codeBlocks(t)
	require.NotEmpty(t, blocks)

	for _, b := range blocks {
		switch b.lang {
		case "json":
			query := "$"
			if strings.Contains(b.content, `"result"`) {
				query = "$.result"
			}
			src, err := pnlreport.DecodeScenarioSource(strings.NewReader(b.content), query)
			if assert.NoError(t, err, "%s: %s", b.topic, b.content) {
				assert.NotEmpty(t, src.Scenarios, "%s: %s", b.topic, b.content)
			}
		case "csv":
			records, err := pnlreport.DecodeCSV(strings.NewReader(b.content))
			if assert.NoError(t, err, b.topic) {
				_, findings := pnlreport.Normalize(records)
				assert.Empty(t, findings, b.topic)
			}
		case "yaml":
			cfg := config.Default()
			require.NoError(t, yaml.Unmarshal([]byte(b.content), &cfg), b.topic)
			assert.NoError(t, cfg.Validate(), b.topic)
		}
	}
}
