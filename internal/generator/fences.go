package generator

import (
	"strings"
	"unicode"
)

const fenceMarker = "```"

// tags accepted for the component block, compared case-insensitively
var componentTags = []string{"jsx", "js", "javascript"}

// tags accepted for the stylesheet block, compared case-insensitively
var stylesheetTags = []string{"css"}

type fencedBlock struct {
	tag  string
	body string
}

// splits text into its fenced blocks in order of appearance; an unclosed fence ends the scan
func scanFences(text string) []fencedBlock {
	var blocks []fencedBlock
	rest := text

	for {
		start := strings.Index(rest, fenceMarker)
		if start == -1 {
			return blocks
		}
		rest = rest[start+len(fenceMarker):]

		end := strings.Index(rest, fenceMarker)
		if end == -1 {
			return blocks
		}

		inner := rest[:end]
		rest = rest[end+len(fenceMarker):]

		tagEnd := strings.IndexFunc(inner, unicode.IsSpace)
		if tagEnd == -1 {
			tagEnd = len(inner)
		}

		blocks = append(blocks, fencedBlock{
			tag:  strings.ToLower(inner[:tagEnd]),
			body: strings.TrimSpace(inner[tagEnd:]),
		})
	}
}

// returns the trimmed body of the first block whose tag is in tags, or "" when none matches
func firstBlock(blocks []fencedBlock, tags []string) string {
	for _, block := range blocks {
		for _, tag := range tags {
			if block.tag == tag {
				return block.body
			}
		}
	}

	return ""
}

// extracts the component and stylesheet sources from a model reply
func extractCode(text string) (jsx, css string) {
	blocks := scanFences(text)
	return firstBlock(blocks, componentTags), firstBlock(blocks, stylesheetTags)
}
