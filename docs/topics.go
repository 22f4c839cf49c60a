// Package docs embeds the user documentation of qb, one markdown file per topic.
package docs

import (
	"bufio"
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

//go:embed *.md
var docs embed.FS

// index is the topic listing the others. It is not part of GetAllTopics.
const index = "readme"

// GetTopic returns the content of a documentation topic, or of all of them for "*".
func GetTopic(topic string) (string, error) {
	if topic == "*" {
		topics, err := GetAllTopics()
		if err != nil {
			return "", err
		}
		return GetTopics(topics...)
	}
	content, err := docs.ReadFile(topic + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", topic, err)
	}
	return string(content), nil
}

// GetTopics returns the content of several topics, one after the other.
func GetTopics(topics ...string) (string, error) {
	var b bytes.Buffer
	for _, topic := range topics {
		content, err := GetTopic(topic)
		if err != nil {
			return "", err
		}
		b.WriteString(content)
		if topic != "*" {
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// GetAllTopics returns the sorted names of every topic but the index.
func GetAllTopics() ([]string, error) {
	entries, err := fs.Glob(docs, "*.md")
	if err != nil {
		return nil, err
	}
	var topics []string
	for _, e := range entries {
		name := strings.TrimSuffix(path.Base(e), ".md")
		if name != index {
			topics = append(topics, name)
		}
	}
	slices.Sort(topics)
	return topics, nil
}

// Title returns the first heading of a topic, or its name when it has none.
func Title(topic string) string {
	content, err := docs.ReadFile(topic + ".md")
	if err != nil {
		return topic
	}
	s := bufio.NewScanner(bytes.NewReader(content))
	for s.Scan() {
		if title, ok := strings.CutPrefix(s.Text(), "# "); ok {
			return strings.TrimSpace(title)
		}
	}
	return topic
}
