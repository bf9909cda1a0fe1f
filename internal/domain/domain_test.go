package domain

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bruinrecruit/recruitment-service/pkg/errorutil"
)

func TestSeasonOverlaps(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	season := Season{StartDate: base, EndDate: base.AddDate(0, 1, 0)}

	cases := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"inside", base.AddDate(0, 0, 3), base.AddDate(0, 0, 5), true},
		{"covers", base.AddDate(0, 0, -1), base.AddDate(0, 2, 0), true},
		{"straddles start", base.AddDate(0, 0, -5), base.AddDate(0, 0, 1), true},
		{"before", base.AddDate(0, 0, -5), base.AddDate(0, 0, -1), false},
		{"touching end", base.AddDate(0, 1, 0), base.AddDate(0, 2, 0), false},
		{"touching start", base.AddDate(0, 0, -5), base, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, season.Overlaps(tc.start, tc.end))
		})
	}
}

func TestSeasonIsOpenAt(t *testing.T) {
	now := time.Now()
	season := Season{StartDate: now.Add(-24 * time.Hour), EndDate: now.Add(30 * 24 * time.Hour)}
	assert.True(t, season.IsOpenAt(now))
	assert.False(t, season.IsOpenAt(now.Add(-48*time.Hour)))
	assert.False(t, season.IsOpenAt(season.EndDate))
}

func TestActorRole(t *testing.T) {
	admin := (&User{ID: "a", AccessType: AccessTypeAdmin}).Actor()
	user := (&User{ID: "u", AccessType: AccessTypeStandard}).Actor()
	assert.True(t, admin.IsAdmin())
	assert.False(t, user.IsAdmin())
	assert.True(t, user.Owns(&Application{UserID: "u"}))
	assert.False(t, admin.Owns(&Application{UserID: "u"}))
}

func TestDeltaAppendsGraderReviews(t *testing.T) {
	app := &Application{Status: StatusSubmitted}
	first := GraderReview{ID: "1", Grader: "ana"}
	second := GraderReview{ID: "2", Grader: "bo"}

	ApplicationDelta{AppendGraderReview: &first}.ApplyTo(app)
	ApplicationDelta{AppendGraderReview: &second}.ApplyTo(app)

	require.Len(t, app.GraderReviews, 2)
	assert.Equal(t, "1", app.GraderReviews[0].ID)
	assert.Equal(t, "2", app.GraderReviews[1].ID)
	assert.Equal(t, StatusSubmitted, app.Status)
}

func TestCloneDoesNotAlias(t *testing.T) {
	notes := "n"
	app := &Application{Profile: Profile{"year": 2}, Notes: &notes, Availability: []time.Time{time.Now()}}
	cp := app.Clone()
	cp.Profile["year"] = 3
	*cp.Notes = "changed"
	cp.Availability[0] = time.Time{}

	assert.Equal(t, 2, app.Profile["year"])
	assert.Equal(t, "n", *app.Notes)
	assert.False(t, app.Availability[0].IsZero())
}

func TestValidateUser(t *testing.T) {
	err := Validate(&User{ID: "x", Email: "not-an-email", PasswordHash: "h", AccessType: AccessTypeStandard, State: UserStateActive})
	require.Error(t, err)

	var domainErr *errorutil.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, http.StatusUnprocessableEntity, domainErr.HTTPStatus)
	assert.Contains(t, domainErr.Message, "The email you entered is not valid")

	ok := Validate(&User{ID: "x", Email: "a@b.co", PasswordHash: "h", AccessType: AccessTypeStandard, State: UserStateActive})
	assert.NoError(t, ok)
}

func TestValidateSeasonRequiresName(t *testing.T) {
	now := time.Now()
	err := Validate(&Season{StartDate: now, EndDate: now.Add(time.Hour)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")
}
