// Package document defines the parsed-article data model produced by
// pkg/wikitext and consumed by pkg/search.
//
// The tree is a nesting of value slices: a Document owns its Sections,
// each Section owns its Paragraphs, Lists, Tables, Infoboxes,
// References, Images, template records and coordinates, and each
// Paragraph owns its Sentences. No node points back at its parent, so
// the tree has no cycles and is safe to share read-only across
// goroutines. There is no flat arena and no integer index between
// nodes: a node is reached by walking down from the Document.
package document

import (
	"strconv"
	"strings"
)

// LinkKind distinguishes the variants a Link can take.
type LinkKind int

const (
	LinkInternal LinkKind = iota
	LinkExternal
	LinkAnchor
	LinkInterwiki
)

// Link is a tagged union over the wikitext link forms.
type Link struct {
	Kind LinkKind

	// Internal / Interwiki
	Page   string `json:"page,omitempty"`
	Anchor string `json:"anchor,omitempty"`
	Suffix string `json:"suffix,omitempty"`
	Prefix string `json:"prefix,omitempty"` // interwiki prefix, e.g. "wikt"

	// External
	URL string `json:"url,omitempty"`

	// Display text, common to every variant.
	Text string `json:"text"`
}

// ReferenceKind enumerates how a <ref> tag was written.
type ReferenceKind int

const (
	RefInline ReferenceKind = iota
	RefNamed
	RefSelfClosing
)

// ReferenceType is the derived citation template family.
type ReferenceType string

const (
	RefTypeInline        ReferenceType = "inline"
	RefTypeWeb           ReferenceType = "web"
	RefTypeNews          ReferenceType = "news"
	RefTypeBook          ReferenceType = "book"
	RefTypeJournal       ReferenceType = "journal"
	RefTypeMagazine      ReferenceType = "magazine"
	RefTypeEncyclopedia  ReferenceType = "encyclopedia"
	RefTypeAVMedia       ReferenceType = "av-media"
	RefTypeCitation      ReferenceType = "citation"
)

// Reference is a <ref>...</ref> or <ref .../> citation.
type Reference struct {
	Kind    ReferenceKind
	Content string
	Name    string `json:"name,omitempty"`
	Type    ReferenceType
	URL     string `json:"url,omitempty"`
	Title   string `json:"title,omitempty"`
}

// ImageAlign enumerates the recognised alignment keywords.
type ImageAlign string

const (
	AlignLeft   ImageAlign = "left"
	AlignRight  ImageAlign = "right"
	AlignCenter ImageAlign = "center"
	AlignNone   ImageAlign = "none"
)

// ImageType enumerates the recognised image-frame keywords.
type ImageType string

const (
	ImageThumb     ImageType = "thumb"
	ImageFrame     ImageType = "frame"
	ImageFrameless ImageType = "frameless"
)

// Image is a parsed [[File:...]] / [[Image:...]] construct.
type Image struct {
	File    string
	Caption *Sentence
	Alt     string
	Width   int
	Height  int
	Type    ImageType
	Align   ImageAlign
	Upright float64
	Border  bool
	Link    string
	Lang    string
	Page    string
	Class   string
	Domain  string
}

// URL returns the canonical file URL, defaulting Domain to wikipedia.org.
func (img *Image) URL() string {
	domain := img.Domain
	if domain == "" {
		domain = "wikipedia.org"
	}
	name := img.File
	if ci := strings.IndexByte(name, ':'); ci >= 0 {
		name = name[ci+1:]
	}
	return "https://" + domain + "/wiki/Special:Redirect/file/" + encodeFileTitle(name)
}

// Thumbnail returns the URL with a width query parameter appended,
// defaulting size to 300 when zero.
func (img *Image) Thumbnail(size int) string {
	if size <= 0 {
		size = 300
	}
	return img.URL() + "?width=" + strconv.Itoa(size)
}

// Coordinate is a decimal-degree geographic point, possibly derived
// from a DMS {{coord}} invocation.
type Coordinate struct {
	Lat     float64
	Lon     float64
	LatDir  string `json:"latDir,omitempty"`
	LonDir  string `json:"lonDir,omitempty"`
}

// TemplateRecord is the structured record a template evaluation
// appends to its Section's Templates alongside its spliced-in output
// string. A {{coord}} evaluation also appends a Coordinate to the
// Section's Coords.
type TemplateRecord struct {
	Template string
	Params   map[string]string
	Year     string `json:"year,omitempty"`
	Month    string `json:"month,omitempty"`
	Day      string `json:"day,omitempty"`
}

// ListMarker enumerates the recognised wiki-list line prefixes.
type ListMarker string

const (
	MarkerBullet         ListMarker = "bullet"
	MarkerNumbered       ListMarker = "numbered"
	MarkerDefinitionTerm ListMarker = "definition-term"
	MarkerDefinitionDef  ListMarker = "definition-def"
)

// ListLine is a single line of a List.
type ListLine struct {
	Marker ListMarker
	Text   string
	Links  []Link
	Depth  int
}

// List is an ordered sequence of wiki list lines.
type List struct {
	Lines []ListLine
}

// TableCell is one cell of a Table row.
type TableCell struct {
	Text  string
	Links []Link
	Attrs string `json:"attrs,omitempty"`
}

// TableRow is an ordered column-label -> cell mapping. Columns is kept
// alongside Cells to preserve insertion order for JSON/iteration.
type TableRow struct {
	Columns []string
	Cells   map[string]TableCell
}

// Table is a parsed {| ... |} block. Caption is retained for JSON but
// ignored by scoring.
type Table struct {
	Caption string `json:"caption,omitempty"`
	Rows    []TableRow
}

// Infobox is a parsed {{Infobox ...}} template.
type Infobox struct {
	Type  string
	Keys  []string // insertion order of normalised keys
	Data  map[string]string
	Links []Link
}

// Get looks up a field by its raw (un-normalised) key.
func (ib *Infobox) Get(key string) (string, bool) {
	v, ok := ib.Data[normaliseInfoboxKey(key)]
	return v, ok
}

// Sentence is a markup-stripped span of prose.
type Sentence struct {
	Text   string
	Links  []Link
	Bold   string `json:"bold,omitempty"`
	Italic string `json:"italic,omitempty"`
}

// Paragraph is an ordered run of sentences plus the links and images
// that occur within it.
type Paragraph struct {
	Sentences []Sentence
	Links     []Link
	Images    []Image
}

// Section is one heading-delimited region of the article. Section 0 is
// always the intro (empty title, depth 0).
type Section struct {
	Title      string
	Depth      int
	Index      int
	Paragraphs []Paragraph
	Lists      []List
	Tables     []Table
	Infoboxes  []Infobox
	References []Reference
	Images     []Image
	Templates  []TemplateRecord
	Coords     []Coordinate
}

// Document is the root of a parsed article.
type Document struct {
	Title            string
	IsRedirect       bool
	RedirectTarget   *Link
	IsDisambiguation bool
	Sections         []Section
	Categories       []string
}

// Text concatenates every sentence's text in document order. Redirect
// documents always return "".
func (d *Document) Text() string {
	if d.IsRedirect {
		return ""
	}
	var b strings.Builder
	for si, sec := range d.Sections {
		if si > 0 {
			b.WriteString("\n\n")
		}
		for pi, p := range sec.Paragraphs {
			if pi > 0 {
				b.WriteString("\n")
			}
			for sj, s := range p.Sentences {
				if sj > 0 {
					b.WriteString(" ")
				}
				b.WriteString(s.Text)
			}
		}
	}
	return b.String()
}

// Sentences flattens every sentence in document order.
func (d *Document) Sentences() []Sentence {
	var out []Sentence
	for _, sec := range d.Sections {
		for _, p := range sec.Paragraphs {
			out = append(out, p.Sentences...)
		}
	}
	return out
}

// Links flattens the links of every paragraph and infobox in the
// document, in document order. Links held by table cells and list
// lines are not included. Category links never appear here (they only
// ever feed Categories).
func (d *Document) Links() []Link {
	var out []Link
	for _, sec := range d.Sections {
		for _, p := range sec.Paragraphs {
			out = append(out, p.Links...)
		}
		for _, ib := range sec.Infoboxes {
			out = append(out, ib.Links...)
		}
	}
	return out
}
