package golingo

import "context"

// RecognizeLocale asks the API which locale text is written in.
func (e *Engine) RecognizeLocale(ctx context.Context, text string) (LocaleCode, error) {
	return e.client.recognize(ctx, text)
}

// WhoAmI returns the account behind the API key, or nil when the key is not
// authenticated. Only server errors and cancellation are returned as errors.
func (e *Engine) WhoAmI(ctx context.Context) (*Identity, error) {
	return e.client.whoami(ctx)
}
