package appconfig

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/conn-castle/stack-installer/internal/fsutil"
	"github.com/conn-castle/stack-installer/internal/messages"
)

// Tokens are written @KEY@.
var tokenPattern = regexp.MustCompile(`@([A-Za-z_][A-Za-z0-9_]*)@`)

// Token returns the placeholder form of key.
func Token(key string) string {
	return "@" + key + "@"
}

// newTokenReplacer maps @KEY@ to value(answer) for every answer, in key order.
func newTokenReplacer(values map[string]string, value func(string) string) *strings.Replacer {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	oldnew := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		oldnew = append(oldnew, Token(k), value(values[k]))
	}
	return strings.NewReplacer(oldnew...)
}

func quoteWord(value string) string {
	return shellquote.Join(value)
}

// ReplaceTokensInString substitutes every known token in s.
// Unknown tokens are left in place.
func (a *AppConfig) ReplaceTokensInString(s string) string {
	return a.tokens.Replace(s)
}

// ExpandCommand substitutes known tokens in a command template with
// shell-quoted answers, so each answer reaches the command as a single word.
// Templates must not quote tokens themselves.
func (a *AppConfig) ExpandCommand(template string) string {
	return a.commandTokens.Replace(template)
}

// ReplaceTokensInFile substitutes tokens inside the file at path, in place.
// The file keeps its permissions and is replaced atomically.
func (a *AppConfig) ReplaceTokensInFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf(messages.AnswersReplaceFileFmt, path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf(messages.AnswersReplaceFileFmt, path, err)
	}
	replaced := a.ReplaceTokensInString(string(data))
	if replaced == string(data) {
		return nil
	}
	if err := fsutil.WriteFileAtomic(path, []byte(replaced), info.Mode().Perm()); err != nil {
		return fmt.Errorf(messages.AnswersReplaceFileFmt, path, err)
	}
	return nil
}

// UnresolvedTokens returns the tokens in s that have no answer, in order of appearance.
func (a *AppConfig) UnresolvedTokens(s string) []string {
	var out []string
	seen := map[string]bool{}
	for _, m := range tokenPattern.FindAllStringSubmatch(s, -1) {
		if _, ok := a.values[m[1]]; ok || seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		out = append(out, m[0])
	}
	return out
}
