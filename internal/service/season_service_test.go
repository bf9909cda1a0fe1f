package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bruinrecruit/recruitment-service/internal/domain"
	"github.com/bruinrecruit/recruitment-service/internal/events"
	"github.com/bruinrecruit/recruitment-service/internal/repository/memory"
)

func datePtr(t time.Time) *time.Time { return &t }

func TestSeasonCreateValidation(t *testing.T) {
	svc := NewSeasonService(memory.NewSeasonRepository(), events.NewInMemoryDispatcher(nil), nil)
	ctx := context.Background()
	start := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 2, 0)

	tests := []struct {
		name   string
		input  SeasonInput
		status int
	}{
		{"missing dates", SeasonInput{Name: "Winter"}, http.StatusBadRequest},
		{"missing end", SeasonInput{Name: "Winter", StartDate: &start}, http.StatusBadRequest},
		{"reversed", SeasonInput{Name: "Winter", StartDate: &end, EndDate: &start}, http.StatusBadRequest},
		{"empty range", SeasonInput{Name: "Winter", StartDate: &start, EndDate: &start}, http.StatusBadRequest},
		{"missing name", SeasonInput{Name: "  ", StartDate: &start, EndDate: &end}, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, adminUser, tt.input)
			assert.Equal(t, tt.status, httpStatus(t, err))
		})
	}
}

func TestSeasonOverlapIsRejected(t *testing.T) {
	svc := NewSeasonService(memory.NewSeasonRepository(), nil, nil)
	ctx := context.Background()
	s1 := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	e1 := s1.AddDate(0, 1, 0)

	first, err := svc.Create(ctx, adminUser, SeasonInput{Name: "Winter", StartDate: &s1, EndDate: &e1})
	require.NoError(t, err)

	cases := []struct {
		name     string
		start    time.Time
		end      time.Time
		overlaps bool
	}{
		{"inside", s1.AddDate(0, 0, 5), s1.AddDate(0, 0, 10), true},
		{"straddles start", s1.AddDate(0, 0, -5), s1.AddDate(0, 0, 5), true},
		{"covers", s1.AddDate(0, 0, -5), e1.AddDate(0, 0, 5), true},
		{"before", s1.AddDate(0, -2, 0), s1.AddDate(0, -1, 0), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			created, err := svc.Create(ctx, adminUser, SeasonInput{Name: c.name, StartDate: datePtr(c.start), EndDate: datePtr(c.end)})
			if c.overlaps {
				assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
				assert.Contains(t, err.Error(), "overlaps")
				return
			}
			require.NoError(t, err)
			_, err = svc.Delete(ctx, adminUser, created.ID)
			require.NoError(t, err)
		})
	}

	got, err := svc.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Winter", got.Name)
}

func TestSeasonDeleteAndGet(t *testing.T) {
	repo := memory.NewSeasonRepository()
	svc := NewSeasonService(repo, nil, nil)
	ctx := context.Background()
	start := time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC)
	season := &domain.Season{Name: "Summer", StartDate: start, EndDate: start.AddDate(0, 1, 0)}
	require.NoError(t, repo.Create(ctx, season))

	_, err := svc.Delete(ctx, adminUser, "")
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))

	n, err := svc.Delete(ctx, adminUser, season.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = svc.Get(ctx, season.ID)
	assert.Equal(t, http.StatusNotFound, httpStatus(t, err))
}
