package services

import (
	"regexp"

	"stylistapi/models"
)

// Reference tokens look like [[c1]]: double brackets around a bare item id,
// non-greedy, no nesting. Ids are case-sensitive.
var referenceTokenRule = regexp.MustCompile(`\[\[([^\[\]]*?)\]\]`)

type SegmentKind string

const (
	SegmentText SegmentKind = "text"
	SegmentItem SegmentKind = "item"
)

type MessageSegment struct {
	Kind SegmentKind          `json:"type"`
	Text string               `json:"text,omitempty"`
	Item *models.ClothingItem `json:"item,omitempty"`
}

// ResolveReferences splits assistant output into plain text and resolved item
// segments, preserving order. Tokens naming an unknown id render nothing: the
// token is dropped and the surrounding text is kept as-is. Resolution runs
// against the full catalog, custom uploads included.
func ResolveReferences(text string, catalog []models.ClothingItem) []MessageSegment {
	matches := referenceTokenRule.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return []MessageSegment{{Kind: SegmentText, Text: text}}
	}

	byID := make(map[string]*models.ClothingItem, len(catalog))
	for i := range catalog {
		byID[catalog[i].ItemID] = &catalog[i]
	}

	var segments []MessageSegment
	cursor := 0
	for _, m := range matches {
		if m[0] > cursor {
			segments = append(segments, MessageSegment{Kind: SegmentText, Text: text[cursor:m[0]]})
		}
		cursor = m[1]

		id := text[m[2]:m[3]]
		if item, ok := byID[id]; ok {
			segments = append(segments, MessageSegment{Kind: SegmentItem, Item: item})
		}
		// unknown id: drop the token silently
	}
	if cursor < len(text) {
		segments = append(segments, MessageSegment{Kind: SegmentText, Text: text[cursor:]})
	}
	return segments
}
