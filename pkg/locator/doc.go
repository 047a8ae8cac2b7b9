// Package locator expands retention path patterns into concrete paths.
//
// Patterns follow the native single-directory matcher semantics: only the
// final path segment may contain wildcards ('*', '?', '[...]'), and every
// entry of the parent directory whose name matches is returned, files and
// directories alike. Relative patterns resolve against the working directory.
//
//	loc := locator.NewDirLocator()
//	paths, err := loc.Expand("logs/*.log")
//
// A pattern that matches nothing, including one whose parent directory does
// not exist, yields an empty result rather than an error.
package locator
