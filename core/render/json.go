// Package render — JSON renderer.
// Builds a structured outline of the rendered gallery: the mapping entries
// that fed it plus the headings, links and images found in the Markdown.
package render

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/gallerygen/core"
)

// Heading is a single Markdown heading.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Link is a Markdown or HTML hyperlink.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// Image is a Markdown or HTML image reference.
type Image struct {
	Alt string `json:"alt"`
	Src string `json:"src"`
}

// Outline is the complete JSON output for a gallery.
type Outline struct {
	Title    string       `json:"title,omitempty"`
	Template string       `json:"template,omitempty"`
	Entries  []core.Entry `json:"entries"`
	Headings []Heading    `json:"headings"`
	Links    []Link       `json:"links"`
	Images   []Image      `json:"images"`
	Anchors  []string     `json:"anchors"`
	Text     string       `json:"text"`
}

// JSONRenderer produces a structured JSON outline of the gallery.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render converts the document into its JSON outline.
func (r *JSONRenderer) Render(doc core.Document) ([]byte, error) {
	images := extractImages(doc.Markdown)
	links := extractLinks(doc.Markdown)
	anchors, htmlImages := scanInlineHTML(doc.Markdown)

	entries := doc.Entries
	if entries == nil {
		entries = []core.Entry{}
	}

	outline := Outline{
		Title:    doc.Title,
		Template: doc.Template,
		Entries:  entries,
		Headings: extractHeadings(doc.Markdown),
		Links:    links,
		Images:   append(images, htmlImages...),
		Anchors:  anchors,
		Text:     stripMarkdown(doc.Markdown),
	}

	data, err := json.MarshalIndent(outline, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// --- Markdown parsing helpers ---

var headingRegex = regexp.MustCompile(`(?m)^(#{1,6})\s+(.+)$`)

func extractHeadings(md string) []Heading {
	matches := headingRegex.FindAllStringSubmatch(md, -1)
	headings := make([]Heading, 0, len(matches))
	for _, m := range matches {
		headings = append(headings, Heading{
			Level: len(m[1]),
			Text:  strings.TrimSpace(m[2]),
		})
	}
	return headings
}

// linkRegex matches Markdown links [text](url), including the image form.
var linkRegex = regexp.MustCompile(`(!?)\[([^\]]*)\]\(([^)]+)\)`)

func extractLinks(md string) []Link {
	matches := linkRegex.FindAllStringSubmatch(md, -1)
	links := make([]Link, 0, len(matches))
	for _, m := range matches {
		if m[1] == "!" {
			continue
		}
		links = append(links, Link{Text: m[2], Href: m[3]})
	}
	return links
}

func extractImages(md string) []Image {
	matches := linkRegex.FindAllStringSubmatch(md, -1)
	images := make([]Image, 0, len(matches))
	for _, m := range matches {
		if m[1] != "!" {
			continue
		}
		images = append(images, Image{Alt: m[2], Src: m[3]})
	}
	return images
}

// scanInlineHTML collects named anchors and <img> tags embedded in the Markdown.
func scanInlineHTML(md string) ([]string, []Image) {
	anchors := []string{}
	var images []Image

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(md))
	if err != nil {
		return anchors, images
	}

	doc.Find("a[name]").Each(func(_ int, s *goquery.Selection) {
		if name, ok := s.Attr("name"); ok && name != "" {
			anchors = append(anchors, name)
		}
	})
	doc.Find("img[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		alt, _ := s.Attr("alt")
		images = append(images, Image{Alt: alt, Src: src})
	})
	return anchors, images
}

// stripMarkdown removes common Markdown formatting to produce plain text.
func stripMarkdown(md string) string {
	text := md
	text = headingRegex.ReplaceAllString(text, "$2")
	text = regexp.MustCompile(`\*{1,3}([^*]+)\*{1,3}`).ReplaceAllString(text, "$1")
	text = linkRegex.ReplaceAllString(text, "$2")
	text = strings.ReplaceAll(text, "```", "")
	text = regexp.MustCompile("`([^`]+)`").ReplaceAllString(text, "$1")
	text = regexp.MustCompile(`\n{3,}`).ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
