package appconfig

import (
	"sort"
	"strings"
)

// RedactedValue replaces secret answers in logs and error text.
const RedactedValue = "********"

// IsSecretKey reports whether the answer under key is a credential.
func IsSecretKey(key string) bool {
	upper := strings.ToUpper(key)
	return strings.HasSuffix(upper, "_PASS") || strings.HasSuffix(upper, "_PASSWORD")
}

// newRedactor masks secret answers both as written and in their shell-quoted
// form. The quoted form comes first so it wins where both match.
func newRedactor(values map[string]string) *strings.Replacer {
	var secrets []string
	for k, v := range values {
		if v != "" && IsSecretKey(k) {
			secrets = append(secrets, v)
		}
	}
	// Longer secrets first so one password cannot hide part of another.
	sort.Slice(secrets, func(i, j int) bool {
		if len(secrets[i]) != len(secrets[j]) {
			return len(secrets[i]) > len(secrets[j])
		}
		return secrets[i] < secrets[j]
	})
	var oldnew []string
	for _, s := range secrets {
		if quoted := quoteWord(s); quoted != s {
			oldnew = append(oldnew, quoted, RedactedValue)
		}
		oldnew = append(oldnew, s, RedactedValue)
	}
	return strings.NewReplacer(oldnew...)
}

// Redact masks every secret answer in s.
func (a *AppConfig) Redact(s string) string {
	return a.redactor.Replace(s)
}

// RedactError masks secret answers in the message of err. The result still
// unwraps to err. A nil err stays nil.
func (a *AppConfig) RedactError(err error) error {
	if err == nil {
		return nil
	}
	msg := a.Redact(err.Error())
	if msg == err.Error() {
		return err
	}
	return &redactedError{msg: msg, err: err}
}

type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string {
	return e.msg
}

func (e *redactedError) Unwrap() error {
	return e.err
}
