package docs

import (
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// TestTopicLinks ensures every cross-topic link inside the embedded docs
// points at a topic that actually exists.
func TestTopicLinks(t *testing.T) {
	topics, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() error = %v", err)
	}
	known := make(map[string]bool, len(topics))
	for _, topic := range topics {
		known[topic+".md"] = true
	}

	mdParser := goldmark.DefaultParser()
	for _, topic := range topics {
		t.Run(topic, func(t *testing.T) {
			content, err := GetTopic(topic)
			if err != nil {
				t.Fatalf("GetTopic(%q) error = %v", topic, err)
			}
			source := []byte(content)
			root := mdParser.Parse(text.NewReader(source))

			ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
				if !entering {
					return ast.WalkContinue, nil
				}
				link, ok := n.(*ast.Link)
				if !ok {
					return ast.WalkContinue, nil
				}
				dest := string(link.Destination)
				if strings.HasSuffix(dest, ".md") && !strings.Contains(dest, "/") && !known[dest] {
					t.Errorf("topic %q links to unknown topic file %q", topic, dest)
				}
				return ast.WalkContinue, nil
			})
		})
	}
}

func TestGetTopics(t *testing.T) {
	all, err := GetTopics("*")
	if err != nil {
		t.Fatalf("GetTopics(*) error = %v", err)
	}
	for _, want := range []string{"# qpf", "# FIFO cost basis", "# XIRR"} {
		if !strings.Contains(all, want) {
			t.Errorf("GetTopics(*) missing %q", want)
		}
	}
	if _, err := GetTopic("no-such-topic"); err == nil {
		t.Error("GetTopic(no-such-topic) should fail")
	}
}
