package wikitext

import (
	"strconv"
	"strings"

	"github.com/dot-org-ai/wikipedia.org.ai-sub000/pkg/document"
)

var validAligns = map[string]document.ImageAlign{
	"left": document.AlignLeft, "right": document.AlignRight,
	"center": document.AlignCenter, "none": document.AlignNone,
}

var valignKeywords = map[string]bool{
	"baseline": true, "middle": true, "sub": true, "super": true,
	"text-top": true, "text-bottom": true, "top": true, "bottom": true,
}

// parseImage parses a FileLink marker's Inner text (the namespace
// prefix plus filename plus pipe-separated parameters) into a
// document.Image, per spec.md §4.1.4.
func parseImage(inner string) document.Image {
	segments := splitTopLevel(inner, '|')
	if len(segments) == 0 {
		return document.Image{}
	}

	// The namespace prefix (File:/Image:/i18n variant) is retained in
	// img.File — only the trailing filename is normalised and it is
	// stripped back off at URL-generation time (document.Image.URL).
	prefix, name := "", strings.TrimSpace(segments[0])
	if ci := strings.IndexByte(name, ':'); ci >= 0 {
		prefix, name = name[:ci+1], name[ci+1:]
	}
	img := document.Image{File: prefix + canonicaliseFileName(name)}

	var captionSeg string
	haveCaption := false

	for _, seg := range segments[1:] {
		trimmed := strings.TrimSpace(seg)
		lower := strings.ToLower(trimmed)

		switch {
		case lower == "thumb" || lower == "thumbnail":
			img.Type = document.ImageThumb
		case lower == "frame" || lower == "framed":
			img.Type = document.ImageFrame
		case lower == "frameless":
			img.Type = document.ImageFrameless
		case validAligns[lower] != "":
			img.Align = validAligns[lower]
		case valignKeywords[lower]:
			// valign is accepted but not modelled as a distinct field;
			// recognising it here keeps it from being misread as a caption.
		case lower == "border":
			img.Border = true
		case lower == "upright":
			img.Upright = 0.75
		case strings.HasPrefix(lower, "upright="):
			if f, err := strconv.ParseFloat(strings.TrimPrefix(lower, "upright="), 64); err == nil {
				img.Upright = f
			}
		case isImageSize(lower):
			w, h := parseImageSize(lower)
			img.Width, img.Height = w, h
		case strings.HasPrefix(lower, "alt="):
			img.Alt = strings.TrimSpace(seg[strings.IndexByte(seg, '=')+1:])
		case strings.HasPrefix(lower, "link="):
			img.Link = strings.TrimSpace(seg[strings.IndexByte(seg, '=')+1:])
		case strings.HasPrefix(lower, "class="):
			img.Class = strings.TrimSpace(seg[strings.IndexByte(seg, '=')+1:])
		case strings.HasPrefix(lower, "lang="):
			img.Lang = strings.TrimSpace(seg[strings.IndexByte(seg, '=')+1:])
		case strings.HasPrefix(lower, "page="):
			img.Page = strings.TrimSpace(seg[strings.IndexByte(seg, '=')+1:])
		default:
			captionSeg = trimmed
			haveCaption = true
		}
	}

	if haveCaption {
		plain := renderPlainText(captionSeg, 1)
		plain, bold, italic := extractBoldItalic(plain)
		img.Caption = &document.Sentence{Text: plain, Bold: bold, Italic: italic}
	}

	return img
}

func canonicaliseFileName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "_", " ")
	return titleCaseFirst(name)
}

func isImageSize(s string) bool {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	if s == "" {
		return false
	}
	if xi := strings.IndexByte(s, 'x'); xi >= 0 {
		return isAllDigits(strings.TrimSpace(s[:xi])) && isAllDigits(strings.TrimSpace(s[xi+1:]))
	}
	return isAllDigits(s)
}

func parseImageSize(s string) (width, height int) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	if xi := strings.IndexByte(s, 'x'); xi >= 0 {
		width, _ = strconv.Atoi(strings.TrimSpace(s[:xi]))
		height, _ = strconv.Atoi(strings.TrimSpace(s[xi+1:]))
		return width, height
	}
	width, _ = strconv.Atoi(s)
	return width, 0
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
