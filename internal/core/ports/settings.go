package ports

import "context"

// SettingsRepository reads persisted key/value configuration records.
type SettingsRepository interface {
	// Get returns the stored value for key, or domain.ErrSettingNotFound.
	Get(ctx context.Context, key string) (string, error)
}

// SettingSource is one strategy in the layered settings fallback chain.
// A source either returns a value or declines (ok=false); errors are treated
// as a decline by the resolver so a broken source never fails a lookup.
type SettingSource interface {
	Lookup(ctx context.Context, key string) (value string, ok bool, err error)
}
