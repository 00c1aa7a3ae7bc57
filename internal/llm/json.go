package llm

import (
	"encoding/json"
	"strings"
)

// Generated is the normalized result of parsing a model completion.
type Generated struct {
	Content  string
	Hashtags []string
}

// ParseGenerated parses a completion expected to be a JSON object with
// "content" and "hashtags" keys. It never fails: if the text does not parse
// as JSON, the raw text becomes the content and hashtags stay empty.
func ParseGenerated(raw string) Generated {
	var parsed struct {
		Content  string          `json:"content"`
		Hashtags json.RawMessage `json:"hashtags"`
	}

	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &parsed); err != nil {
		return Generated{Content: raw, Hashtags: []string{}}
	}

	return Generated{
		Content:  parsed.Content,
		Hashtags: NormalizeHashtags(parsed.Hashtags),
	}
}

// NormalizeHashtags converts whatever shape the model produced for hashtags
// into a canonical string list. Arrays keep their non-empty string entries;
// a single string is split on whitespace and commas; every other shape
// (missing, null, number, object) becomes an empty list.
func NormalizeHashtags(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{}
	}

	var list []any
	if err := json.Unmarshal(raw, &list); err == nil {
		tags := []string{}
		for _, item := range list {
			if s, ok := item.(string); ok && s != "" {
				tags = append(tags, s)
			}
		}
		return tags
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return splitTags(single)
	}

	return []string{}
}

// splitTags splits a delimited hashtag string on whitespace and commas.
func splitTags(s string) []string {
	tags := []string{}
	for _, tag := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	}) {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// stripCodeFence removes a surrounding markdown code fence, if present.
// Models occasionally wrap JSON in ```json blocks despite instructions.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	lines := strings.Split(text, "\n")
	endIdx := len(lines) - 1
	for i := len(lines) - 1; i > 0; i-- {
		if strings.TrimSpace(lines[i]) == "```" {
			endIdx = i
			break
		}
	}
	return strings.Join(lines[1:endIdx], "\n")
}
