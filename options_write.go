package taglib

// SaveOption configures behavior when saving staged mutations.
//
// Example:
//
//	err := file.Save(taglib.WithReplaceAll())
type SaveOption func(*saveOptions)

// saveOptions holds configuration for saving.
type saveOptions struct {
	replaceAll bool // Clear existing property values before merging
}

// defaultSaveOptions returns the default configuration for saving.
func defaultSaveOptions() *saveOptions {
	return &saveOptions{
		replaceAll: false,
	}
}

// WithReplaceAll clears the existing string and complex property values
// before the staged mutations are merged, instead of merging over them.
//
// Tag fields are never replaced wholesale; only the staged fields are
// sent either way. The known complex key list is not pruned by a
// replace-all, so keys cleared this way still appear in
// ComplexPropertyKeys until the store is reopened.
//
// Example:
//
//	file.Set("GENRE", "Jazz")
//	err := file.Save(taglib.WithReplaceAll())
//	// Every property except GENRE is now gone
func WithReplaceAll() SaveOption {
	return func(o *saveOptions) {
		o.replaceAll = true
	}
}
