package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAbsolute prints paths as recorded.
	PathModeAbsolute PathMode = iota
	// PathModeRelative prints paths relative to PrettyOpts.BaseDir.
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures pretty-printing of records.
type PrettyOpts struct {
	Color    bool
	PathMode PathMode
	BaseDir  string
	// Width truncates excerpt lines to this many columns; 0 means no limit.
	Width int
	// Summary appends a styled "Found N errors" line.
	Summary bool
}

// SourceLookup returns the text of a file for excerpts.
type SourceLookup func(path string) (string, bool)
