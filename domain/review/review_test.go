package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validReview() *Review {
	return &Review{
		ID:        "r1",
		ProductID: "p1",
		UserID:    "u1",
		Rating:    4,
		Title:     "Solid",
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validReview().Validate())

	cases := []struct {
		name   string
		mutate func(*Review)
	}{
		{"missing product", func(r *Review) { r.ProductID = "" }},
		{"missing user", func(r *Review) { r.UserID = "" }},
		{"rating too low", func(r *Review) { r.Rating = 0 }},
		{"rating too high", func(r *Review) { r.Rating = 6 }},
		{"missing title", func(r *Review) { r.Title = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := validReview()
			tc.mutate(r)
			assert.Error(t, r.Validate())
		})
	}
}

func TestVotesAreExclusive(t *testing.T) {
	r := validReview()

	r.VoteHelpful("voter")
	assert.Equal(t, 1, r.HelpfulCount())
	assert.Equal(t, 0, r.NotHelpfulCount())

	// Changing sides moves the vote, it does not add one.
	r.VoteNotHelpful("voter")
	assert.Equal(t, 0, r.HelpfulCount())
	assert.Equal(t, 1, r.NotHelpfulCount())

	r.VoteNotHelpful("voter")
	assert.Equal(t, 1, r.NotHelpfulCount())

	r.VoteHelpful("other")
	assert.Equal(t, 1, r.HelpfulCount())
	assert.Equal(t, 1, r.NotHelpfulCount())
}

func TestReport(t *testing.T) {
	r := validReview()
	r.Report("spam")

	assert.True(t, r.Reported)
	assert.Equal(t, "spam", r.ReportReason)
}

func TestComputeAggregate(t *testing.T) {
	assert.Equal(t, Aggregate{}, ComputeAggregate(nil))

	agg := ComputeAggregate([]*Review{
		{Rating: 5}, {Rating: 4}, {Rating: 3},
	})
	assert.InDelta(t, 4.0, agg.Rating, 0.001)
	assert.Equal(t, 3, agg.Count)
}
