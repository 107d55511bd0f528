package htmlcodec

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/ZaguanLabs/golingo/payload"
)

// StructuralCodec addresses every localizable string by its positional
// path in the parsed DOM, e.g. "body/0/1" for a text node or
// "head/2#content" for an attribute. Paths are computed from head and body
// downwards and count only significant nodes: elements and text nodes with
// non-whitespace content.
type StructuralCodec struct {
	attributes map[string][]string
	skipped    map[string]bool
}

// NewStructuralCodec creates a codec using the default attribute table and
// unlocalizable tags.
func NewStructuralCodec() *StructuralCodec {
	return &StructuralCodec{
		attributes: LocalizableAttributes,
		skipped:    UnlocalizableTags,
	}
}

// NewStructuralCodecWithSkippedTags creates a codec that additionally
// leaves the given tags untouched.
func NewStructuralCodecWithSkippedTags(tags []string) *StructuralCodec {
	skipped := make(map[string]bool, len(UnlocalizableTags)+len(tags))
	for tag := range UnlocalizableTags {
		skipped[tag] = true
	}
	for _, tag := range tags {
		skipped[strings.ToLower(tag)] = true
	}
	return &StructuralCodec{
		attributes: LocalizableAttributes,
		skipped:    skipped,
	}
}

// Name returns "structural".
func (c *StructuralCodec) Name() string {
	return "structural"
}

// visitor receives each significant node together with its path.
type visitor func(n *html.Node, path string)

// Extract parses markup and returns the localizable strings keyed by path,
// in document order.
func (c *StructuralCodec) Extract(markup string) (any, *payload.Payload, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, nil, &CodecError{
			Message: "failed to parse HTML",
			Cause:   err,
			Codec:   c.Name(),
		}
	}

	out := payload.New(0)
	c.walk(doc, func(n *html.Node, path string) {
		switch n.Type {
		case html.TextNode:
			out.Set(path, strings.TrimSpace(n.Data))
		case html.ElementNode:
			for _, name := range c.attributes[strings.ToLower(n.Data)] {
				if v, ok := attr(n, name); ok && strings.TrimSpace(v) != "" {
					out.Set(path+"#"+name, v)
				}
			}
		}
	})

	return doc, out, nil
}

// Apply writes translated values back at their paths, sets the lang
// attribute of the root element and renders the document.
func (c *StructuralCodec) Apply(parsed any, translated *payload.Payload, lang string) (string, error) {
	doc, ok := parsed.(*goquery.Document)
	if !ok {
		return "", &CodecError{
			Message: "invalid parsed content type",
			Codec:   c.Name(),
		}
	}

	if lang != "" {
		doc.Find("html").First().SetAttr("lang", lang)
	}

	attrsByPath := make(map[string][]string)
	translated.Each(func(key, _ string) {
		if nodePath, name, found := strings.Cut(key, "#"); found {
			attrsByPath[nodePath] = append(attrsByPath[nodePath], name)
		}
	})

	c.walk(doc, func(n *html.Node, path string) {
		switch n.Type {
		case html.TextNode:
			if v, ok := translated.Get(path); ok {
				n.Data = preserveWhitespace(n.Data, v)
			}
		case html.ElementNode:
			for _, name := range attrsByPath[path] {
				v, _ := translated.Get(path + "#" + name)
				setAttr(n, name, v)
			}
			if v, ok := translated.Get(path); ok {
				replaceChildren(n, v)
			}
		}
	})

	out, err := doc.Html()
	if err != nil {
		return "", &CodecError{
			Message: "failed to serialize HTML",
			Cause:   err,
			Codec:   c.Name(),
		}
	}
	return out, nil
}

// walk visits the head and body subtrees in document order. Extraction and
// injection both go through here so their paths always agree.
func (c *StructuralCodec) walk(doc *goquery.Document, visit visitor) {
	for _, root := range []string{"head", "body"} {
		sel := doc.Find("html > " + root).First()
		if sel.Length() == 0 {
			continue
		}
		c.descend(sel.Get(0), root, visit)
	}
}

func (c *StructuralCodec) descend(n *html.Node, path string, visit visitor) {
	if c.skipped[strings.ToLower(n.Data)] {
		return
	}

	visit(n, path)

	for i, child := range significantChildren(n) {
		childPath := path + "/" + strconv.Itoa(i)
		if child.Type == html.TextNode {
			visit(child, childPath)
			continue
		}
		c.descend(child, childPath, visit)
	}
}

// significantChildren returns the element children and non-blank text
// children of n.
func significantChildren(n *html.Node) []*html.Node {
	var out []*html.Node
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		switch ch.Type {
		case html.ElementNode:
			out = append(out, ch)
		case html.TextNode:
			if strings.TrimSpace(ch.Data) != "" {
				out = append(out, ch)
			}
		}
	}
	return out
}

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, name, value string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == name {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}

func replaceChildren(n *html.Node, text string) {
	for ch := n.FirstChild; ch != nil; {
		next := ch.NextSibling
		n.RemoveChild(ch)
		ch = next
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// preserveWhitespace keeps the original leading/trailing whitespace.
func preserveWhitespace(original, translated string) string {
	leadingLen := len(original) - len(strings.TrimLeftFunc(original, unicode.IsSpace))
	trailingLen := len(original) - len(strings.TrimRightFunc(original, unicode.IsSpace))
	if leadingLen == len(original) {
		return translated
	}
	return original[:leadingLen] + translated + original[len(original)-trailingLen:]
}

var _ Codec = (*StructuralCodec)(nil)
