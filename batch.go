package golingo

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// BatchLocalizeText localizes text into every target locale concurrently.
// Results follow the order of params.TargetLocales. The first failure fails
// the whole batch; calls already in flight are not cancelled.
func (e *Engine) BatchLocalizeText(ctx context.Context, text string, params BatchLocalizeTextParams) ([]string, error) {
	results := make([]string, len(params.TargetLocales))

	var g errgroup.Group
	for i, target := range params.TargetLocales {
		g.Go(func() error {
			out, err := e.LocalizeText(ctx, text, LocalizationParams{
				SourceLocale: params.SourceLocale,
				TargetLocale: target,
				Fast:         params.Fast,
			}, nil)
			if err != nil {
				return fmt.Errorf("localizing to %q: %w", target, err)
			}
			results[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
