package service

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"bizharvest/internal/core/domain"
	"bizharvest/internal/core/ports"
)

// ListingFetcher collects the detail urls of one listing page.
type ListingFetcher struct {
	nav         *Navigator
	profile     domain.SiteProfile
	waitTimeout time.Duration
	log         logrus.FieldLogger
}

// NewListingFetcher creates a new ListingFetcher.
func NewListingFetcher(nav *Navigator, profile domain.SiteProfile, waitTimeout time.Duration, log logrus.FieldLogger) *ListingFetcher {
	return &ListingFetcher{nav: nav, profile: profile, waitTimeout: waitTimeout, log: log}
}

// FetchPage loads page of task and returns the absolute detail urls on it that
// are not in visited, in listing order. Any failure yields an empty result.
func (f *ListingFetcher) FetchPage(ctx context.Context, session ports.PageSession, task domain.SearchTask, page int, visited *domain.VisitedSet) []string {
	listURL := f.profile.ListingURL(task, page)
	log := f.log.WithFields(logrus.Fields{"page": page, "url": listURL})

	if !f.nav.Load(ctx, session, listURL) {
		log.Warn("listing page unavailable")
		return nil
	}
	if err := session.WaitFor(ctx, f.profile.ListingReady, f.waitTimeout); err != nil {
		log.WithError(err).Warn("listing never rendered")
		return nil
	}

	got, err := session.ExtractAll(ctx, []domain.FieldRule{f.profile.ListingLinks})
	if err != nil {
		log.WithError(err).Warn("failed to read listing links")
		return nil
	}

	base, err := url.Parse(listURL)
	if err != nil {
		log.WithError(err).Warn("bad listing url")
		return nil
	}

	var (
		links []string
		seen  = make(map[string]struct{})
		known int
	)
	for _, href := range got[f.profile.ListingLinks.Field] {
		abs, ok := absolute(base, href)
		if !ok {
			continue
		}
		if _, dup := seen[abs]; dup {
			continue
		}
		seen[abs] = struct{}{}
		if visited.Has(abs) {
			known++
			continue
		}
		links = append(links, abs)
	}

	log.WithFields(logrus.Fields{"new": len(links), "visited": known}).Info("listing page read")
	return links
}

// absolute resolves href against base, keeping only http(s) targets.
func absolute(base *url.URL, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return "", false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	u := base.ResolveReference(ref)
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	u.Fragment = ""
	return u.String(), true
}
