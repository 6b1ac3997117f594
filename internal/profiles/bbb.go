// Package profiles holds built-in directory profiles.
package profiles

import (
	"strings"

	"github.com/rotisserie/eris"

	"bizharvest/internal/core/domain"
)

// DefaultBBBBaseURL is the public root of the Better Business Bureau directory.
const DefaultBBBBaseURL = "https://www.bbb.org"

const yearsLabel = "Years in Business:"

// BBB returns the profile for the Better Business Bureau directory rooted at baseURL.
func BBB(baseURL string) domain.SiteProfile {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBBBBaseURL
	}
	return domain.SiteProfile{
		Name:          "bbb",
		BaseURL:       strings.TrimRight(baseURL, "/"),
		SearchPath:    "/search",
		TermParam:     "find_text",
		LocationParam: "find_loc",
		PageParam:     "page",

		ListingReady: "div.card.result-card",
		ListingLinks: domain.FieldRule{
			Field:    "links",
			Selector: "div.card.result-card h3.result-business-name a",
			Attr:     "href",
			All:      true,
		},
		PageNumbers: domain.FieldRule{
			Field:    "pages",
			Selector: "ul li a",
			OwnText:  true,
			All:      true,
		},

		Years: domain.FieldRule{
			Field:    domain.FieldYears,
			Selector: "p.bds-body",
			Contains: yearsLabel,
			Strip:    yearsLabel,
		},
		Detail: []domain.FieldRule{
			{Field: domain.FieldName, Selector: "span.bpr-header-business-name#businessName"},
			{Field: domain.FieldPhone, Selector: `a[href^="tel:"]`},
			{Field: domain.FieldAddress, Selector: "div.bpr-overview-address p.bds-body", Nth: 1},
			{Field: domain.FieldYears, Selector: "p.bds-body", Contains: yearsLabel, Strip: yearsLabel, Nth: -1},
			{
				Field:    domain.FieldOwner,
				Selector: `div.bpr-details-dl-data[data-type="on-separate-lines"]`,
				Contains: "Business Management:",
				Within:   "dd",
				Nth:      -1,
			},
			{
				Field:    domain.FieldWebsite,
				Selector: "div.bpr-header-contact a",
				Contains: "Visit Website",
				Attr:     "href",
				Nth:      -1,
			},
		},

		SkipPatterns: []string{"doubleclick.net", "adclick", "google.com"},
	}
}

// Lookup returns the named profile.
func Lookup(name, baseURL string) (domain.SiteProfile, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "bbb":
		return BBB(baseURL), nil
	}
	return domain.SiteProfile{}, eris.Errorf("unknown site profile %q", name)
}
