package wikitext

import (
	"strings"

	"github.com/dot-org-ai/wikipedia.org.ai-sub000/pkg/document"
)

// infoboxSkipKeys are normalised-key parameters that describe the
// infobox's own image rather than a data field.
var infoboxSkipKeys = map[string]bool{
	"image": true, "image_caption": true, "caption": true,
	"alt": true, "image_size": true, "image_upright": true,
}

// isInfoboxTemplate reports whether a normalised template name names
// an infobox ("infobox" alone, or "infobox " followed by a type word).
func isInfoboxTemplate(name string) bool {
	return name == "infobox" || strings.HasPrefix(name, "infobox ")
}

// buildInfobox converts an Infobox template marker into a
// document.Infobox, per spec.md §4.1.4. Nested templates in parameter
// values are resolved (and links collapsed to display text) before
// the parameters are split, so field values never carry raw markup.
func buildInfobox(m Marker, depth int) document.Infobox {
	resolved := resolveChildren(m.Inner, m.Children, depth)
	pt := parseTemplateInner(resolved)

	typ := strings.TrimSpace(strings.TrimPrefix(pt.Name, "infobox"))

	ib := document.Infobox{Type: typ, Data: make(map[string]string)}
	for _, key := range pt.NamedOrder {
		nk := document.NormaliseInfoboxKey(key)
		if infoboxSkipKeys[nk] {
			continue
		}
		if _, seen := ib.Data[nk]; seen {
			continue
		}
		ib.Keys = append(ib.Keys, nk)
		ib.Data[nk] = pt.Named[key]
	}
	ib.Links = collectLinks(m.Children)
	return ib
}

// collectLinks walks a marker tree collecting every Link/ExternalLink
// it finds (recursing into Template children, since an infobox's
// links often sit inside a nested {{plainlist}}/{{hlist}}).
func collectLinks(children []Marker) []document.Link {
	var out []document.Link
	for _, c := range children {
		switch c.Kind {
		case MarkerLink:
			out = append(out, renderInternalOrInterwiki(c.Inner, ""))
		case MarkerExternalLink:
			out = append(out, renderExternal(c.Inner))
		case MarkerTemplate:
			out = append(out, collectLinks(c.Children)...)
		}
	}
	return out
}
