// Package wikitext converts raw MediaWiki markup into a
// github.com/dot-org-ai/wikipedia.org.ai-sub000/pkg/document.Document tree: a
// single-pass scanner locates templates, links, refs and headings; a
// dispatch-table template evaluator resolves the enumerated semantic
// templates; a document builder assembles sections, paragraphs,
// sentences, tables, lists, infoboxes and images from what's left.
package wikitext

import (
	"github.com/dot-org-ai/wikipedia.org.ai-sub000/pkg/document"
	"github.com/dot-org-ai/wikipedia.org.ai-sub000/pkg/logging"
)

// Options configures a single Parse call.
type Options struct {
	// Title overrides the inferred title when non-empty.
	Title string
}

// Parse converts wikitext into a Document. It is total: structural
// defects (unbalanced brackets, unknown templates, truncated input)
// degrade gracefully to plain text rather than failing.
func Parse(wikitext string, options Options) *document.Document {
	log := logging.GetParserLogger(options.Title)

	if link, ok := detectRedirect(wikitext); ok {
		log.Debug().Msg("input is a redirect")
		return &document.Document{
			IsRedirect:     true,
			RedirectTarget: link,
			Title:          options.Title,
		}
	}

	cleaned := preprocess(wikitext)
	markers := Scan(cleaned)
	log.Debug().Int("markers", len(markers)).Msg("scanned markers")

	doc := buildDocument(cleaned, markers, options.Title)
	log.Debug().Int("sections", len(doc.Sections)).Msg("built document")
	return doc
}
