package golingo

import "log/slog"

// errAttr records err under the key "error". A nil error yields an empty Attr.
func errAttr(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}
