package i18n

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

const DefaultLanguage = "en"

// maxAcceptLanguageLength caps the parsed preference list.
const maxAcceptLanguageLength = 4096

type weightedLang struct {
	tag string
	q   float64
}

// preferences splits "de-CH, de;q=0.9, en;q=0.5" into tags ordered by weight.
// Entries with an invalid weight keep the default weight of 1.
func preferences(header string) []weightedLang {
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	var out []weightedLang
	for entry := range strings.SplitSeq(header, ",") {
		tag, params, _ := strings.Cut(entry, ";")
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}

		q := 1.0
		if v, ok := strings.CutPrefix(strings.TrimSpace(params), "q="); ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
				q = parsed
			}
		}
		out = append(out, weightedLang{tag: tag, q: q})
	}

	slices.SortStableFunc(out, func(a, b weightedLang) int {
		return cmp.Compare(b.q, a.q)
	})
	return out
}

// ParseAcceptLanguage picks a language from supported for an Accept-Language
// style header. Exact tags are preferred over base languages (de-CH -> de).
// Also accepts a plain tag such as "de", which is how CHECKKIT_LANG is given.
func ParseAcceptLanguage(header string, supported []string, defaultLang string) string {
	prefs := preferences(header)
	if len(prefs) == 0 || len(supported) == 0 {
		return defaultLang
	}

	index := make(map[string]string, len(supported))
	for _, lang := range supported {
		index[strings.ToLower(lang)] = lang
	}

	for _, p := range prefs {
		if lang, ok := index[p.tag]; ok {
			return lang
		}
	}
	for _, p := range prefs {
		if base, _, ok := strings.Cut(p.tag, "-"); ok {
			if lang, ok := index[base]; ok {
				return lang
			}
		}
	}

	return defaultLang
}
