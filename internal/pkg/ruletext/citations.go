package ruletext

import (
	"regexp"
	"strings"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/lookup"
	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
	"github.com/KirkDiggler/rpg-ruletext/internal/reference"
)

var (
	sourceMarker  = regexp.MustCompile(`(?is)\bsource:`)
	citationEntry = regexp.MustCompile(`^(.+?)\s*(?:\((\d{4})\))?\s*(?:,?\s*p(?:age)?s?\.\s*(.+))?$`)
)

// StripCitations removes everything from a "Source:" marker to the end of
// text and trims what is left
func StripCitations(text string) string {
	loc := sourceMarker.FindStringIndex(text)
	if loc == nil {
		return strings.TrimSpace(text)
	}
	return strings.TrimSpace(text[:loc[0]])
}

// ParseCitations reads the book list after a "Source:" marker:
//
//	Source: Player's Handbook (2014) p. 70, Xanathar's Guide to Everything p. 12, 14
//
// Page numbers following a comma continue the previous book. Book codes are
// resolved through the source table; unknown books keep an empty code.
func ParseCitations(text string, resolver reference.Resolver) []rules.SourceCitation {
	loc := sourceMarker.FindStringIndex(text)
	if loc == nil {
		return nil
	}

	body := strings.Join(strings.Fields(text[loc[1]:]), " ")
	var citations []rules.SourceCitation
	for _, part := range strings.Split(body, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if isDigit(part[0]) && len(citations) > 0 {
			last := &citations[len(citations)-1]
			if last.Pages == "" {
				last.Pages = part
			} else {
				last.Pages += ", " + part
			}
			continue
		}

		m := citationEntry.FindStringSubmatch(part)
		if m == nil {
			continue
		}
		citation := rules.SourceCitation{
			Name:  strings.TrimSpace(m[1]),
			Pages: strings.TrimSpace(m[3]),
		}
		if resolver != nil {
			if entry, ok := resolver.Resolve(lookup.KindSource, citation.Name); ok {
				citation.Code = entry.Code
				citation.Name = entry.Name
			}
		}
		citations = append(citations, citation)
	}

	return citations
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// MergeCitations parses the citations of every text and keeps the first
// citation of each book. The result is never nil.
func MergeCitations(resolver reference.Resolver, texts ...string) []rules.SourceCitation {
	out := []rules.SourceCitation{}
	seen := map[string]bool{}
	for _, text := range texts {
		for _, c := range ParseCitations(text, resolver) {
			key := c.Code + "|" + c.Name
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, c)
		}
	}
	return out
}
