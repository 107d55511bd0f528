package golingo

import (
	"context"
	"sort"
	"strconv"

	"github.com/ZaguanLabs/golingo/htmlcodec"
	"github.com/ZaguanLabs/golingo/payload"
)

// shape converts one kind of input to a flat payload and rebuilds the
// typed output from the localized payload.
type shape[In, Out any] struct {
	flatten func(in In) *payload.Payload
	restore func(in In, localized *payload.Payload) Out
}

func localizeShape[In, Out any](ctx context.Context, e *Engine, s shape[In, Out], in In, params LocalizationParams, progress ProgressFunc) (Out, error) {
	localized, err := e.runLocalization(ctx, s.flatten(in), params, progress)
	if err != nil {
		var zero Out
		return zero, err
	}
	return s.restore(in, localized), nil
}

var textShape = shape[string, string]{
	flatten: func(text string) *payload.Payload {
		return payload.FromPairs("text", text)
	},
	restore: func(_ string, localized *payload.Payload) string {
		v, _ := localized.Get("text")
		return v
	},
}

// LocalizeText localizes a single string. A response without a translation
// yields the empty string.
func (e *Engine) LocalizeText(ctx context.Context, text string, params LocalizationParams, progress SimpleProgressFunc) (string, error) {
	return localizeShape(ctx, e, textShape, text, params, progress.full())
}

var objectShape = shape[map[string]any, map[string]any]{
	flatten: func(obj map[string]any) *payload.Payload {
		keys := make([]string, 0, len(obj))
		for k, v := range obj {
			if _, ok := v.(string); ok {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)

		p := payload.New(len(keys))
		for _, k := range keys {
			p.Set(k, obj[k].(string))
		}
		return p
	},
	restore: func(obj map[string]any, localized *payload.Payload) map[string]any {
		out := make(map[string]any, len(obj))
		for k, v := range obj {
			out[k] = v
		}
		localized.Each(func(k, v string) {
			if _, ok := obj[k]; ok {
				out[k] = v
			}
		})
		return out
	},
}

// LocalizeObject localizes the top-level string values of obj. Nested maps,
// slices and non-string values are returned unchanged. Keys are sent in
// lexicographic order; use LocalizePayload to control the order.
func (e *Engine) LocalizeObject(ctx context.Context, obj map[string]any, params LocalizationParams, progress ProgressFunc) (map[string]any, error) {
	return localizeShape(ctx, e, objectShape, obj, params, progress)
}

var payloadShape = shape[*payload.Payload, *payload.Payload]{
	flatten: func(p *payload.Payload) *payload.Payload {
		return p
	},
	restore: func(p *payload.Payload, localized *payload.Payload) *payload.Payload {
		out := p.Clone()
		localized.Each(func(k, v string) {
			if p.Has(k) {
				out.Set(k, v)
			}
		})
		return out
	},
}

// LocalizePayload localizes an ordered flat payload. The result keeps the
// input's keys and order.
func (e *Engine) LocalizePayload(ctx context.Context, p *payload.Payload, params LocalizationParams, progress ProgressFunc) (*payload.Payload, error) {
	return localizeShape(ctx, e, payloadShape, p, params, progress)
}

var stringArrayShape = shape[[]string, []string]{
	flatten: func(items []string) *payload.Payload {
		p := payload.New(len(items))
		for i, s := range items {
			p.Set("item_"+strconv.Itoa(i), s)
		}
		return p
	},
	// Values are taken in the order the server returned them.
	restore: func(_ []string, localized *payload.Payload) []string {
		out := localized.Values()
		if out == nil {
			out = []string{}
		}
		return out
	},
}

// LocalizeStringArray localizes each string of items. An empty slice makes
// no requests.
func (e *Engine) LocalizeStringArray(ctx context.Context, items []string, params LocalizationParams) ([]string, error) {
	return localizeShape(ctx, e, stringArrayShape, items, params, nil)
}

var chatShape = shape[[]ChatMessage, []ChatMessage]{
	flatten: func(chat []ChatMessage) *payload.Payload {
		p := payload.New(len(chat))
		for i, msg := range chat {
			p.Set("chat_"+strconv.Itoa(i), msg.Text)
		}
		return p
	},
	restore: func(chat []ChatMessage, localized *payload.Payload) []ChatMessage {
		out := make([]ChatMessage, len(chat))
		for i, msg := range chat {
			out[i] = msg
			if text, ok := localized.Get("chat_" + strconv.Itoa(i)); ok {
				out[i].Text = text
			}
		}
		return out
	},
}

// LocalizeChat localizes the text of each message, keeping speaker names.
func (e *Engine) LocalizeChat(ctx context.Context, chat []ChatMessage, params LocalizationParams, progress SimpleProgressFunc) ([]ChatMessage, error) {
	return localizeShape(ctx, e, chatShape, chat, params, progress.full())
}

// LocalizeHTML localizes the text and localizable attributes of an HTML
// document and sets its lang attribute to the target locale. When the
// configured codec cannot parse the markup the loose regex codec is used.
func (e *Engine) LocalizeHTML(ctx context.Context, markup string, params LocalizationParams, progress SimpleProgressFunc) (string, error) {
	if err := params.validate(); err != nil {
		return "", err
	}

	codec := e.codec
	parsed, extracted, err := codec.Extract(markup)
	if err != nil {
		e.logger.WarnContext(ctx, "falling back to loose HTML codec", errAttr(err))
		codec = htmlcodec.NewLooseCodec()
		if parsed, extracted, err = codec.Extract(markup); err != nil {
			return "", err
		}
	}

	localized, err := e.runLocalization(ctx, extracted, params, progress.full())
	if err != nil {
		return "", err
	}

	return codec.Apply(parsed, localized, string(params.TargetLocale))
}
