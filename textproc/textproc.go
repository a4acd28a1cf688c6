// Package textproc holds the cheap text normalization steps applied to thread
// text before any model sees it: URL/punctuation stripping, internet-slang
// expansion and a keyword spam filter.
package textproc

import (
	"regexp"
	"strings"
)

var (
	urlPattern        = regexp.MustCompile(`http\S+`)
	nonLetterPattern  = regexp.MustCompile(`[^A-Za-z\s]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Clean strips URLs, punctuation, digits and extra whitespace and lowercases
// the text.
func Clean(text string) string {
	text = urlPattern.ReplaceAllString(text, "")
	text = nonLetterPattern.ReplaceAllString(text, "")
	text = strings.ToLower(text)
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// slangMapping expands internet abbreviations to their standard forms so the
// downstream classifiers see plain English.
var slangMapping = map[string]string{
	"u":      "you",
	"ur":     "your",
	"r":      "are",
	"lol":    "laughing out loud",
	"idk":    "I do not know",
	"imho":   "in my humble opinion",
	"btw":    "by the way",
	"tbh":    "to be honest",
	"omg":    "oh my god",
	"thx":    "thanks",
	"pls":    "please",
	"plz":    "please",
	"gr8":    "great",
	"b4":     "before",
	"lmao":   "laughing my ass off",
	"rofl":   "rolling on the floor laughing",
	"brb":    "be right back",
	"afk":    "away from keyboard",
	"smh":    "shaking my head",
	"nvm":    "never mind",
	"ttyl":   "talk to you later",
	"fyi":    "for your information",
	"jk":     "just kidding",
	"wtf":    "what the fuck",
	"bff":    "best friends forever",
	"ftw":    "for the win",
	"tmi":    "too much information",
	"sry":    "sorry",
	"omw":    "on my way",
	"bae":    "before anyone else",
	"goat":   "greatest of all time",
	"lit":    "exciting",
	"salty":  "bitter",
	"savage": "fierce",
	"stan":   "an extremely devoted fan",
}

// ExpandSlang replaces whole-word slang tokens with their expansions.
func ExpandSlang(text string) string {
	for abbr, full := range slangMapping {
		pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(abbr) + `\b`)
		text = pattern.ReplaceAllString(text, full)
	}
	return text
}

var spamIndicators = []string{
	"free", "trial", "buy", "offer", "discount",
	"promo", "sale", "best", "cheap", "guarantee",
}

// IsSpam flags promotional posts by keyword so they never reach the pipeline.
func IsSpam(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range spamIndicators {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
