// Package htmlrules evaluates domain.FieldRule data against an HTML document.
package htmlrules

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"golang.org/x/net/html"

	"bizharvest/internal/core/domain"
)

// Evaluate parses page and applies rules to it.
func Evaluate(page string, rules []domain.FieldRule) (domain.Extracted, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, eris.Wrap(err, "failed to parse page")
	}
	return Apply(doc, rules), nil
}

// Apply evaluates rules against doc. Fields with no non-empty value are absent.
func Apply(doc *goquery.Document, rules []domain.FieldRule) domain.Extracted {
	out := make(domain.Extracted, len(rules))
	for _, rule := range rules {
		if rule.Selector == "" {
			continue
		}
		matches := matching(doc.Selection, rule)
		if len(matches) == 0 {
			continue
		}

		if rule.All {
			for _, m := range matches {
				if v := read(m, rule); v != "" {
					out[rule.Field] = append(out[rule.Field], v)
				}
			}
			continue
		}

		idx := rule.Nth
		if idx < 0 {
			idx = len(matches) + idx
		}
		if idx < 0 || idx >= len(matches) {
			continue
		}
		if v := read(matches[idx], rule); v != "" {
			out[rule.Field] = append(out[rule.Field], v)
		}
	}
	return out
}

func matching(root *goquery.Selection, rule domain.FieldRule) []*goquery.Selection {
	var matches []*goquery.Selection
	root.Find(rule.Selector).Each(func(_ int, s *goquery.Selection) {
		if rule.Contains != "" && !strings.Contains(s.Text(), rule.Contains) {
			return
		}
		if rule.Within != "" {
			s = s.Find(rule.Within).First()
			if s.Length() == 0 {
				return
			}
		}
		matches = append(matches, s)
	})
	return matches
}

func read(s *goquery.Selection, rule domain.FieldRule) string {
	var v string
	switch {
	case rule.Attr != "":
		v, _ = s.Attr(rule.Attr)
	case rule.OwnText:
		v = ownText(s)
	default:
		v = s.Text()
	}
	if rule.Strip != "" {
		v = strings.ReplaceAll(v, rule.Strip, "")
	}
	return collapse(v)
}

// ownText concatenates the direct text-node children of the first node in s.
func ownText(s *goquery.Selection) string {
	if s.Length() == 0 {
		return ""
	}
	var b strings.Builder
	for c := s.Nodes[0].FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

func collapse(v string) string {
	return strings.Join(strings.Fields(v), " ")
}
