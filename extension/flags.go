// flags.go defines constants for all CLI flag names.
//
// Using constants instead of string literals prevents typos and enables
// compile-time checking when flag names are used in both Flags().Type()
// definitions and GetType() calls.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "ignore-case" -> FlagIgnoreCase).

package extension

// Flag name constants for CLI commands.
const (
	// Boolean flags

	FlagAudit      = "audit"       // Show the audit log instead of search history
	FlagDiff       = "diff"        // Show diff output
	FlagDirTags    = "dir-tags"    // Tag imported books with their directory names
	FlagDryRun     = "dry-run"     // Preview without making changes
	FlagHidden     = "hidden"      // Include hidden files
	FlagIgnoreCase = "ignore-case" // Case-insensitive matching
	FlagSmartCase  = "smart-case"  // Case-insensitive unless the pattern has uppercase
	FlagLocal      = "local"       // Use local scope
	FlagLong       = "long"        // Long format output
	FlagPretty     = "pretty"      // Render markdown output
	FlagRaw        = "raw"         // Raw output without formatting

	// String flags

	FlagAddr        = "addr"         // Listen address
	FlagExclude     = "exclude"      // Tags to exclude (comma separated)
	FlagExcludeMode = "exclude-mode" // any or all
	FlagInclude     = "include"      // Tags to include (comma separated)
	FlagIncludeMode = "include-mode" // any or all
	FlagTags        = "tags"         // Tags for upload (comma separated)
	FlagTitle       = "title"        // Book title

	// Integer flags

	FlagAfter   = "after"   // Context lines after a match
	FlagBefore  = "before"  // Context lines before a match
	FlagContext = "context" // Context lines on both sides
	FlagLimit   = "limit"   // Limit number of results
)
