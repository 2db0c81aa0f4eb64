package appconfig

import (
	"bufio"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/conn-castle/stack-installer/internal/messages"
)

var validKey = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// parseAnswers reads KEY=VALUE answers content into a map.
// Blank lines and # comments are skipped; an optional "export " prefix is accepted.
// Later duplicates override earlier ones.
func parseAnswers(content string) (map[string]string, error) {
	values := make(map[string]string)
	scanner := bufio.NewScanner(strings.NewReader(content))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		key, value, ok, err := parseAnswerLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf(messages.AnswersLineErrorFmt, lineNo, err)
		}
		if ok {
			values[key] = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf(messages.AnswersReadFailedFmt, err)
	}
	return values, nil
}

func parseAnswerLine(line string) (string, string, bool, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", "", false, nil
	}
	trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, "export "))
	key, value, found := strings.Cut(trimmed, "=")
	if !found {
		return "", "", false, fmt.Errorf(messages.AnswersExpectedPair)
	}
	key = strings.TrimSpace(key)
	if !validKey.MatchString(key) {
		return "", "", false, fmt.Errorf(messages.AnswersInvalidKeyFmt, key)
	}
	value, err := parseAnswerValue(strings.TrimSpace(value))
	if err != nil {
		return "", "", false, err
	}
	return key, value, true, nil
}

// parseAnswerValue unquotes single- or double-quoted values.
// Double-quoted values understand \\, \", \n and \r escapes.
func parseAnswerValue(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	quote := value[0]
	if quote != '"' && quote != '\'' {
		return value, nil
	}

	var b strings.Builder
	escaped := false
	for i := 1; i < len(value); i++ {
		c := value[i]
		switch {
		case escaped:
			escaped = false
			switch c {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case '\\', '"':
				b.WriteByte(c)
			default:
				b.WriteByte('\\')
				b.WriteByte(c)
			}
		case c == '\\' && quote == '"':
			escaped = true
		case c == quote:
			rest := strings.TrimSpace(value[i+1:])
			if rest != "" && !strings.HasPrefix(rest, "#") {
				return "", fmt.Errorf(messages.AnswersInvalidSuffix)
			}
			return b.String(), nil
		default:
			b.WriteByte(c)
		}
	}
	return "", fmt.Errorf(messages.AnswersUnterminated)
}

// formatAnswers renders values as sorted KEY=VALUE lines that parseAnswers reads back.
func formatAnswers(values map[string]string) string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(encodeAnswerValue(values[key]))
		b.WriteByte('\n')
	}
	return b.String()
}

func encodeAnswerValue(value string) string {
	if !strings.ContainsAny(value, " \t#\n\r\"'\\") {
		return value
	}
	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, `"`, `\"`)
	value = strings.ReplaceAll(value, "\n", `\n`)
	value = strings.ReplaceAll(value, "\r", `\r`)
	return `"` + value + `"`
}
