package htmlcodec

import (
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/ZaguanLabs/golingo/payload"
)

var (
	looseTextPattern = regexp.MustCompile(`>([^<]+)<`)
	looseAttrPattern = regexp.MustCompile(`\b(title|alt|placeholder|content)="([^"]*)"`)
	looseHTMLTag     = regexp.MustCompile(`(?i)<html\b[^>]*>`)
	looseLangAttr    = regexp.MustCompile(`(?i)\slang="[^"]*"`)
)

// LooseCodec is the regex fallback used when markup cannot be parsed into
// a DOM. It extracts inter-tag text and the title, alt, placeholder and
// content attributes, and applies translations by replacing every literal
// occurrence of the original string in the raw markup. A string that
// appears in several places is replaced everywhere.
type LooseCodec struct{}

// NewLooseCodec creates a regex based codec.
func NewLooseCodec() *LooseCodec {
	return &LooseCodec{}
}

// Name returns "loose".
func (c *LooseCodec) Name() string {
	return "loose"
}

type looseDocument struct {
	markup string
	source *payload.Payload
}

// Extract returns inter-tag text under text_<n> keys and attribute values
// under attr_<n> keys.
func (c *LooseCodec) Extract(markup string) (any, *payload.Payload, error) {
	out := payload.New(0)

	for i, m := range looseTextPattern.FindAllStringSubmatch(markup, -1) {
		if text := strings.TrimSpace(m[1]); text != "" {
			out.Set("text_"+strconv.Itoa(i), text)
		}
	}
	for i, m := range looseAttrPattern.FindAllStringSubmatch(markup, -1) {
		if strings.TrimSpace(m[2]) != "" {
			out.Set("attr_"+strconv.Itoa(i), m[2])
		}
	}

	return &looseDocument{markup: markup, source: out.Clone()}, out, nil
}

// Apply substitutes each translated value for its original and sets the
// lang attribute on the <html> tag when there is one.
func (c *LooseCodec) Apply(parsed any, translated *payload.Payload, lang string) (string, error) {
	doc, ok := parsed.(*looseDocument)
	if !ok {
		return "", &CodecError{
			Message: "invalid parsed content type",
			Codec:   c.Name(),
		}
	}

	result := doc.markup
	translated.Each(func(key, value string) {
		original, ok := doc.source.Get(key)
		if !ok || original == "" || original == value {
			return
		}
		result = strings.ReplaceAll(result, original, value)
	})

	if lang != "" {
		result = setLooseLang(result, lang)
	}
	return result, nil
}

func setLooseLang(markup, lang string) string {
	loc := looseHTMLTag.FindStringIndex(markup)
	if loc == nil {
		return markup
	}

	tag := markup[loc[0]:loc[1]]
	attr := ` lang="` + html.EscapeString(lang) + `"`
	if looseLangAttr.MatchString(tag) {
		tag = looseLangAttr.ReplaceAllLiteralString(tag, attr)
	} else {
		tag = tag[:len("<html")] + attr + tag[len("<html"):]
	}
	return markup[:loc[0]] + tag + markup[loc[1]:]
}

var _ Codec = (*LooseCodec)(nil)
