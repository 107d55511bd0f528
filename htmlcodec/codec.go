// Package htmlcodec turns HTML documents into flat payloads of localizable
// strings and writes translated payloads back into the same document.
package htmlcodec

import (
	"fmt"

	"github.com/ZaguanLabs/golingo/payload"
)

// Codec extracts localizable strings from markup and applies translations.
// The value returned by Extract is opaque and must be passed back to Apply.
type Codec interface {
	Extract(markup string) (any, *payload.Payload, error)
	Apply(parsed any, translated *payload.Payload, lang string) (string, error)
	Name() string
}

// LocalizableAttributes lists, per tag, the attributes whose values are
// sent for translation.
var LocalizableAttributes = map[string][]string{
	"a":     {"title"},
	"img":   {"alt"},
	"input": {"placeholder"},
	"meta":  {"content"},
}

// UnlocalizableTags contains tags whose content and attributes are never
// extracted or altered.
var UnlocalizableTags = map[string]bool{
	"script": true,
	"style":  true,
}

// CodecError indicates markup that could not be parsed or rendered.
type CodecError struct {
	Message string
	Cause   error
	Codec   string
}

func (e *CodecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("html codec error (%s): %s: %v", e.Codec, e.Message, e.Cause)
	}
	return fmt.Sprintf("html codec error (%s): %s", e.Codec, e.Message)
}

func (e *CodecError) Unwrap() error {
	return e.Cause
}
