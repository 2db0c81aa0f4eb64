package install

import (
	"fmt"
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"github.com/conn-castle/stack-installer/internal/messages"
)

// DefaultDiffMaxLines is the default maximum number of diff lines shown per file.
const DefaultDiffMaxLines = 40

// TokenPreview is the pending token substitution for one token file.
type TokenPreview struct {
	Path        string
	UnifiedDiff string
	Truncated   bool
	// Unresolved lists tokens in the file that have no answer and will be left in place.
	Unresolved []string
}

func normalizeDiffMaxLines(value int) int {
	if value <= 0 {
		return DefaultDiffMaxLines
	}
	return value
}

// PreviewTokens renders what the replace-tokens step would change in each
// token file without writing anything. Files with nothing to substitute are
// omitted. maxLines caps each diff; zero selects DefaultDiffMaxLines.
func (i *Installer) PreviewTokens(app AppContext, maxLines int) ([]TokenPreview, error) {
	var previews []TokenPreview
	for _, file := range i.cfg.TokenFiles() {
		path := app.ReplaceTokensInString(file)
		data, err := i.sys.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf(messages.InstallReplaceTokensFailedFmt, path, err)
		}
		from := string(data)
		to := app.ReplaceTokensInString(from)
		unresolved := app.UnresolvedTokens(from)
		if from == to && len(unresolved) == 0 {
			continue
		}
		rendered, truncated := renderTruncatedUnifiedDiff(path+" (current)", path+" (substituted)", from, to, maxLines)
		previews = append(previews, TokenPreview{
			Path:        path,
			UnifiedDiff: rendered,
			Truncated:   truncated,
			Unresolved:  unresolved,
		})
	}
	return previews, nil
}

func renderTruncatedUnifiedDiff(fromName string, toName string, fromContent string, toContent string, maxLines int) (string, bool) {
	limit := normalizeDiffMaxLines(maxLines)
	diff := udiff.Unified(fromName, toName, fromContent, toContent)
	lines := splitDiffLines(diff)
	if len(lines) <= limit {
		return ensureTrailingNewline(strings.Join(lines, "\n")), false
	}
	truncated := lines[:limit]
	truncated = append(truncated, fmt.Sprintf(messages.InstallDiffTruncatedFmt, limit))
	return ensureTrailingNewline(strings.Join(truncated, "\n")), true
}

func splitDiffLines(content string) []string {
	trimmed := strings.TrimRight(content, "\n")
	if trimmed == "" {
		return []string{}
	}
	return strings.Split(trimmed, "\n")
}

func ensureTrailingNewline(content string) string {
	if content == "" {
		return ""
	}
	if strings.HasSuffix(content, "\n") {
		return content
	}
	return content + "\n"
}
