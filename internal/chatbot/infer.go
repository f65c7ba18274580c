package chatbot

import (
	"regexp"
	"strconv"
	"strings"
)

const defaultPrice = 500000

// typeVocabulary maps catalog type slugs to the phrasings customers use.
// Order matters: the first matching entry wins.
var typeVocabulary = []struct {
	slug    string
	pattern *regexp.Regexp
}{
	{"bluetooth", regexp.MustCompile(`\b(bluetooth|bt|wireless)\b`)},
	{"gaming", regexp.MustCompile(`\b(gaming|game|chơi game)\b`)},
	{"wired", regexp.MustCompile(`\b(wired|có dây)\b`)},
	{"over-ear", regexp.MustCompile(`\b(over.ear|overear)\b`)},
}

var brandVocabulary = regexp.MustCompile(`\b(samsung|sony|apple|asus|jbl|bose|beats|sennheiser)\b`)

// InferHeadphoneFields fills gaps in a headphone payload from the original
// user message: a missing type or brand reference is keyword-matched against
// the fixed vocabularies, and a missing or unparseable price falls back to
// the default. Both the single and bulk create paths run through here.
func InferHeadphoneFields(message string, payload map[string]any) {
	lower := strings.ToLower(message)

	if stringField(payload, "type_slug") == "" {
		for _, entry := range typeVocabulary {
			if entry.pattern.MatchString(lower) {
				payload["type_slug"] = entry.slug
				break
			}
		}
	}

	if stringField(payload, "brand_slug") == "" {
		if m := brandVocabulary.FindStringSubmatch(lower); m != nil {
			payload["brand_slug"] = m[1]
		}
	}

	payload["price"] = coercePrice(payload["price"])
}

// matchTypeSlug returns the first vocabulary type mentioned in the message,
// or empty when none matches.
func matchTypeSlug(message string) string {
	lower := strings.ToLower(message)
	for _, entry := range typeVocabulary {
		if entry.pattern.MatchString(lower) {
			return entry.slug
		}
	}
	return ""
}

// matchBrand returns the vocabulary brand mentioned in the message, or
// empty when none matches.
func matchBrand(message string) string {
	if m := brandVocabulary.FindStringSubmatch(strings.ToLower(message)); m != nil {
		return m[1]
	}
	return ""
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}

// coercePrice normalizes the price field the model produced: JSON numbers,
// numeric strings and nothing at all are each seen in practice.
func coercePrice(v any) int {
	switch p := v.(type) {
	case float64:
		return int(p)
	case int:
		return p
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(p)); err == nil {
			return n
		}
		return defaultPrice
	default:
		return defaultPrice
	}
}
