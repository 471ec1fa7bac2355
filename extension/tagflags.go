// tagflags.go defines the tag filter flags shared by ls and search.

package extension

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/bookrab/internal/tag"
)

// AddTagFlags registers --include/--exclude and their mode flags on c.
func AddTagFlags(c *cobra.Command) {
	c.Flags().String(FlagInclude, "", "Only books with these tags (comma separated)")
	c.Flags().String(FlagIncludeMode, "any", "Include mode: any or all")
	c.Flags().String(FlagExclude, "", "Skip books with these tags (comma separated)")
	c.Flags().String(FlagExcludeMode, "any", "Exclude mode: any or all")
}

// TagFlags reads the flags registered by AddTagFlags.
func TagFlags(c *cobra.Command) (include, exclude tag.Query, err error) {
	inc, _ := c.Flags().GetString(FlagInclude)
	incMode, _ := c.Flags().GetString(FlagIncludeMode)
	exc, _ := c.Flags().GetString(FlagExclude)
	excMode, _ := c.Flags().GetString(FlagExcludeMode)

	if include.Mode, err = tag.ParseMode(incMode); err != nil {
		return include, exclude, fmt.Errorf("--%s: %w", FlagIncludeMode, err)
	}
	if exclude.Mode, err = tag.ParseMode(excMode); err != nil {
		return include, exclude, fmt.Errorf("--%s: %w", FlagExcludeMode, err)
	}
	include.Tags = tag.Parse(inc)
	exclude.Tags = tag.Parse(exc)
	return include, exclude, nil
}
