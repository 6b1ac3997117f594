package domain

import (
	"net/url"
	"strconv"
	"strings"
)

// FieldRule locates one named value on a rendered page. Rules are data so that
// site-specific selectors can be swapped without touching control flow.
type FieldRule struct {
	Field    string `json:"field"`
	Selector string `json:"selector"`
	// Attr reads an attribute instead of the element text.
	Attr string `json:"attr,omitempty"`
	// Contains keeps only elements whose text contains this string.
	Contains string `json:"contains,omitempty"`
	// Strip is removed from each value before whitespace trimming.
	Strip string `json:"strip,omitempty"`
	// Within narrows to a child selector of each match (e.g. a <dd> inside a row).
	Within string `json:"within,omitempty"`
	// Nth picks the n-th match (0-based) when All is false. Negative counts from the end.
	Nth int `json:"nth,omitempty"`
	// OwnText reads only the element's direct text nodes.
	OwnText bool `json:"own_text,omitempty"`
	// All collects every match in document order.
	All bool `json:"all,omitempty"`
}

// Extracted maps rule field names to the values found, in document order.
type Extracted map[string][]string

// First returns the first value for field, or "".
func (e Extracted) First(field string) string {
	if vals := e[field]; len(vals) > 0 {
		return vals[0]
	}
	return ""
}

// SiteProfile describes how to search a business directory and read its pages.
type SiteProfile struct {
	Name          string
	BaseURL       string
	SearchPath    string
	TermParam     string
	LocationParam string
	PageParam     string

	// ListingReady is awaited before listing links are read.
	ListingReady string
	ListingLinks FieldRule
	PageNumbers  FieldRule

	// Years is the cheap qualifying rule; Detail holds the full extraction.
	Years  FieldRule
	Detail []FieldRule

	// SkipPatterns are substrings of urls that never lead to content.
	SkipPatterns []string
}

// ListingURL builds the listing page url for task and page.
func (p SiteProfile) ListingURL(task SearchTask, page int) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(p.BaseURL, "/"))
	b.WriteString(p.SearchPath)
	b.WriteString("?")
	b.WriteString(p.TermParam + "=" + url.QueryEscape(task.Term))
	b.WriteString("&" + p.LocationParam + "=" + url.QueryEscape(task.Location))
	b.WriteString("&" + p.PageParam + "=" + strconv.Itoa(page))
	return b.String()
}

// IsNonContent reports whether target matches one of the skip patterns.
func (p SiteProfile) IsNonContent(target string) bool {
	for _, pat := range p.SkipPatterns {
		if pat != "" && strings.Contains(target, pat) {
			return true
		}
	}
	return false
}
