package ui

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// ImportPreview renders a colored line diff between the current export
// of a bindset and the export that an import would produce. Unchanged
// lines are dimmed so additions and removals stand out.
func ImportPreview(current, proposed string) string {
	dmp := diffmatchpatch.New()

	// Line-mode diff: map lines to runes, diff, then map back.
	c1, c2, lines := dmp.DiffLinesToChars(current, proposed)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(c1, c2, false), lines)

	var b strings.Builder
	for _, d := range diffs {
		for _, line := range splitDiffLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				b.WriteString(DiffInsertStyle.Render("+ " + line))
			case diffmatchpatch.DiffDelete:
				b.WriteString(DiffDeleteStyle.Render("- " + line))
			default:
				b.WriteString(MutedStyle.Render("  " + line))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// HasChanges reports whether an import would change the bindset at all.
func HasChanges(current, proposed string) bool {
	dmp := diffmatchpatch.New()
	for _, d := range dmp.DiffMain(current, proposed, false) {
		if d.Type != diffmatchpatch.DiffEqual {
			return true
		}
	}
	return false
}

func splitDiffLines(text string) []string {
	trimmed := strings.TrimSuffix(text, "\n")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}
