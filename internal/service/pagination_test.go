package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"

	"bizharvest/internal/core/domain"
	"bizharvest/internal/core/ports/mocks"
)

func pagerSession(values []string, err error) *mocks.PageSessionMock {
	return &mocks.PageSessionMock{
		ExtractAllFunc: func(ctx context.Context, rules []domain.FieldRule) (domain.Extracted, error) {
			if err != nil {
				return nil, err
			}
			return domain.Extracted{rules[0].Field: values}, nil
		},
		OpenFunc: func(ctx context.Context, url string, timeout time.Duration) error {
			panic("PageCount must not navigate")
		},
	}
}

func TestPageCount(t *testing.T) {
	logger, _ := test.NewNullLogger()
	rule := testProfile().PageNumbers

	tests := []struct {
		name     string
		values   []string
		err      error
		maxPages int
		want     int
	}{
		{name: "highest numeral", values: []string{"1", "2", "3", "Next"}, maxPages: 25, want: 3},
		{name: "out of order", values: []string{"7", "1", "4"}, maxPages: 25, want: 7},
		{name: "capped", values: []string{"1", "2", "1000", "Next"}, maxPages: 25, want: 25},
		{name: "exactly the cap", values: []string{"25"}, maxPages: 25, want: 25},
		{name: "no controls", values: nil, maxPages: 25, want: 1},
		{name: "no numerals", values: []string{"Next", "Previous"}, maxPages: 25, want: 1},
		{name: "nonsense numerals", values: []string{"0", "-4"}, maxPages: 25, want: 1},
		{name: "padded", values: []string{" 2 ", "\n3"}, maxPages: 25, want: 3},
		{name: "extraction error", err: errors.New("detached"), maxPages: 25, want: 1},
		{name: "unset cap uses default", values: []string{"40"}, maxPages: 0, want: DefaultMaxPages},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PageCount(context.Background(), pagerSession(tt.values, tt.err), rule, tt.maxPages, logger)
			assert.Equal(t, tt.want, got)
		})
	}
}
