package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"bizharvest/internal/core/domain"
	"bizharvest/internal/core/ports"
)

// PageCount reads the pagination controls of the listing page currently loaded
// in session and returns the highest page number found, clamped to [1, maxPages].
// Missing or unreadable controls mean a single page.
func PageCount(ctx context.Context, session ports.PageSession, rule domain.FieldRule, maxPages int, log logrus.FieldLogger) int {
	if maxPages < 1 {
		maxPages = DefaultMaxPages
	}

	got, err := session.ExtractAll(ctx, []domain.FieldRule{rule})
	if err != nil {
		log.WithError(err).Debug("pagination unreadable, assuming one page")
		return 1
	}

	highest := 0
	for _, v := range got[rule.Field] {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}

	switch {
	case highest < 1:
		return 1
	case highest > maxPages:
		log.WithFields(logrus.Fields{"reported": highest, "cap": maxPages}).Debug("capping page count")
		return maxPages
	}
	return highest
}
