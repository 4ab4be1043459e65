package wikitext

import (
	"strconv"
	"strings"

	"github.com/dot-org-ai/wikipedia.org.ai-sub000/pkg/document"
)

// linkTokenStart and imageTokenStart, each followed by a decimal index
// and tokenEnd, are control-byte sentinels spliced into the running
// section text: a link's sentinel is written just before its display
// text, an image's sentinel stands in for the image, so that paragraph and
// sentence splitting (which only sees plain bytes) can later recover
// which paragraph and sentence a structured Link or Image belongs to,
// without threading byte offsets through the table/list extraction
// passes that remove text out from under them.
const (
	linkTokenStart  = 0x00
	imageTokenStart = 0x02
	tokenEnd        = 0x01
)

type pendingLink struct{ link document.Link }
type pendingImage struct{ image document.Image }

// sectionBuild accumulates one Section's worth of state while the
// top-level marker walk is in progress.
type sectionBuild struct {
	section document.Section
	text    strings.Builder
	links   []pendingLink
	images  []pendingImage
}

// buildDocument walks the marker stream produced by Scan(cleaned) and
// assembles a Document, implementing spec.md §4.1.3.
func buildDocument(cleaned string, markers []Marker, titleOverride string) *document.Document {
	var categories []string
	sawDisambiguation := false
	var sections []document.Section

	cur := &sectionBuild{section: document.Section{Index: 0}}

	finalize := func() {
		body := cur.text.String()
		body, tables := extractTables(body, cur.links, cur.images)
		body, lists := extractLists(body, cur.links, cur.images)
		cur.section.Tables = tables
		cur.section.Lists = lists
		cur.section.Paragraphs = buildParagraphs(body, cur.links, cur.images)
		sections = append(sections, cur.section)
	}

	pos := 0
	for _, m := range markers {
		cur.text.WriteString(cleaned[pos:m.Start])
		newPos := m.End

		switch m.Kind {
		case MarkerComment:
			// dropped

		case MarkerHeading:
			finalize()
			cur = &sectionBuild{section: document.Section{
				Title: strings.TrimSpace(renderPlainText(m.HeadingTitle, 1)),
				Depth: m.HeadingDepth,
				Index: len(sections),
			}}

		case MarkerTemplate:
			name := topTemplateName(m.Inner)
			if isInfoboxTemplate(name) {
				cur.section.Infoboxes = append(cur.section.Infoboxes, buildInfobox(m, 1))
			} else {
				res := evaluateTemplateMarker(m, 1)
				cur.text.WriteString(res.Output)
				if res.Record != nil {
					cur.section.Templates = append(cur.section.Templates, *res.Record)
				}
				if res.Coord != nil {
					cur.section.Coords = append(cur.section.Coords, *res.Coord)
				}
				if res.IsDisambiguation {
					sawDisambiguation = true
				}
			}

		case MarkerLink:
			suffix, end := consumeSuffix(cleaned, m.End)
			l := renderInternalOrInterwiki(m.Inner, suffix)
			newPos = end
			writeLinkToken(&cur.text, cur, l)

		case MarkerExternalLink:
			l := renderExternal(m.Inner)
			writeLinkToken(&cur.text, cur, l)

		case MarkerFileLink:
			img := parseImage(m.Inner)
			cur.section.Images = append(cur.section.Images, img)
			writeImageToken(&cur.text, cur, img)

		case MarkerCategoryLink:
			categories = append(categories, categoryPageName(m.Inner))

		case MarkerRefInline, MarkerRefNamed, MarkerRefSelfClosing:
			cur.section.References = append(cur.section.References, buildReference(m))
		}

		pos = newPos
	}
	cur.text.WriteString(cleaned[pos:])
	finalize()

	title := titleOverride
	if title == "" {
		title = inferTitle(sections)
	}

	doc := &document.Document{
		Title:      title,
		Sections:   sections,
		Categories: categories,
	}
	doc.IsDisambiguation = sawDisambiguation || titleLooksDisambiguated(title) || firstSentenceIsDisambiguation(sections)
	return doc
}

func writeLinkToken(b *strings.Builder, s *sectionBuild, l document.Link) {
	idx := len(s.links)
	s.links = append(s.links, pendingLink{link: l})
	b.WriteByte(linkTokenStart)
	b.WriteString(strconv.Itoa(idx))
	b.WriteByte(tokenEnd)
	b.WriteString(collapseLinkDisplay(l))
}

func writeImageToken(b *strings.Builder, s *sectionBuild, img document.Image) {
	idx := len(s.images)
	s.images = append(s.images, pendingImage{image: img})
	b.WriteByte(imageTokenStart)
	b.WriteString(strconv.Itoa(idx))
	b.WriteByte(tokenEnd)
}

func topTemplateName(inner string) string {
	idx := strings.IndexByte(inner, '|')
	head := inner
	if idx >= 0 {
		head = inner[:idx]
	}
	return normaliseTemplateName(head)
}

func categoryPageName(inner string) string {
	parts := splitTopLevel(inner, '|')
	target := parts[0]
	if ci := strings.IndexByte(target, ':'); ci >= 0 {
		target = target[ci+1:]
	}
	return canonicalisePageTarget(target)
}

var citeTemplatePrefixes = map[string]document.ReferenceType{
	"cite web": document.RefTypeWeb, "cite news": document.RefTypeNews,
	"cite book": document.RefTypeBook, "cite journal": document.RefTypeJournal,
	"cite magazine": document.RefTypeMagazine, "cite encyclopedia": document.RefTypeEncyclopedia,
	"cite av media": document.RefTypeAVMedia, "cite avmedia": document.RefTypeAVMedia,
}

// buildReference classifies a <ref> marker's derived type by looking
// for a {{cite ...}} template inside its content, per spec.md §3's
// "derived type" attribute.
func buildReference(m Marker) document.Reference {
	ref := document.Reference{Name: m.RefName}
	switch m.Kind {
	case MarkerRefInline:
		ref.Kind = document.RefInline
	case MarkerRefNamed:
		ref.Kind = document.RefNamed
	case MarkerRefSelfClosing:
		ref.Kind = document.RefSelfClosing
		ref.Type = document.RefTypeInline
		return ref
	}

	ref.Content = m.RefContent
	ref.Type = document.RefTypeInline

	for _, c := range Scan(m.RefContent) {
		if c.Kind != MarkerTemplate {
			continue
		}
		name := topTemplateName(c.Inner)
		if t, ok := citeTemplatePrefixes[name]; ok {
			pt := parseTemplateInner(resolveChildren(c.Inner, c.Children, 1))
			ref.URL = pt.Named["url"]
			ref.Title = pt.Named["title"]
			ref.Type = t
			return ref
		}
		if strings.HasPrefix(name, "cite") {
			pt := parseTemplateInner(resolveChildren(c.Inner, c.Children, 1))
			ref.URL = pt.Named["url"]
			ref.Title = pt.Named["title"]
			ref.Type = document.RefTypeCitation
			return ref
		}
	}
	return ref
}

// buildParagraphs splits a section's resolved body text on blank
// lines into Paragraphs, each split into Sentences, resolving the
// link/image tokens spliced in by the marker walk back into their
// structured form.
func buildParagraphs(body string, links []pendingLink, images []pendingImage) []document.Paragraph {
	var paragraphs []document.Paragraph
	for _, ptext := range splitParagraphLines(body) {
		var para document.Paragraph
		for _, stext := range splitSentences(ptext) {
			plain, bold, italic := extractBoldItalic(stext)
			plainStripped, sLinks, sImages := stripTokens(plain, links, images)
			sentence := document.Sentence{
				Text:   strings.TrimSpace(plainStripped),
				Bold:   bold,
				Italic: italic,
				Links:  sLinks,
			}
			if sentence.Text == "" && len(sLinks) == 0 && len(sImages) == 0 && bold == "" && italic == "" {
				continue
			}
			para.Sentences = append(para.Sentences, sentence)
			para.Links = append(para.Links, sLinks...)
			para.Images = append(para.Images, sImages...)
		}
		if len(para.Sentences) > 0 {
			paragraphs = append(paragraphs, para)
		}
	}
	return paragraphs
}

func splitParagraphLines(body string) []string {
	lines := strings.Split(body, "\n")
	var paras []string
	var cur []string
	flush := func() {
		if len(cur) == 0 {
			return
		}
		joined := strings.TrimSpace(strings.Join(cur, " "))
		if joined != "" {
			paras = append(paras, joined)
		}
		cur = nil
	}
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			flush()
			continue
		}
		cur = append(cur, strings.TrimSpace(l))
	}
	flush()
	return paras
}

// stripTokens removes the link/image sentinel tokens written by
// writeLinkToken/writeImageToken from s, resolving each to its
// structured value.
func stripTokens(s string, links []pendingLink, images []pendingImage) (plain string, foundLinks []document.Link, foundImages []document.Image) {
	var b strings.Builder
	n := len(s)
	i := 0
	for i < n {
		if s[i] == linkTokenStart || s[i] == imageTokenStart {
			kind := s[i]
			j := i + 1
			for j < n && s[j] != tokenEnd {
				j++
			}
			if j < n {
				if idx, err := strconv.Atoi(s[i+1 : j]); err == nil {
					if kind == linkTokenStart && idx >= 0 && idx < len(links) {
						foundLinks = append(foundLinks, links[idx].link)
					} else if kind == imageTokenStart && idx >= 0 && idx < len(images) {
						foundImages = append(foundImages, images[idx].image)
					}
				}
				i = j + 1
				continue
			}
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String(), foundLinks, foundImages
}

func inferTitle(sections []document.Section) string {
	if len(sections) == 0 {
		return ""
	}
	if len(sections[0].Paragraphs) == 0 {
		return ""
	}
	if len(sections[0].Paragraphs[0].Sentences) == 0 {
		return ""
	}
	return sections[0].Paragraphs[0].Sentences[0].Bold
}

func titleLooksDisambiguated(title string) bool {
	for _, suffix := range disambiguationTitleSuffixes {
		if strings.HasSuffix(title, suffix) {
			return true
		}
	}
	return false
}

func firstSentenceIsDisambiguation(sections []document.Section) bool {
	if len(sections) == 0 || len(sections[0].Paragraphs) == 0 || len(sections[0].Paragraphs[0].Sentences) == 0 {
		return false
	}
	text := strings.ToLower(sections[0].Paragraphs[0].Sentences[0].Text)
	return strings.HasSuffix(strings.TrimSpace(text), "may refer to:")
}
