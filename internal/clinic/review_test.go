package clinic

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReviewValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Review)
		wantErr bool
	}{
		{"valid", func(r *Review) {}, false},
		{"rating too low", func(r *Review) { r.Rating = 0 }, true},
		{"rating too high", func(r *Review) { r.Rating = 6 }, true},
		{"blank comment", func(r *Review) { r.Comment = "   " }, true},
		{"short comment", func(r *Review) { r.Comment = "meh" }, true},
		{"long comment", func(r *Review) { r.Comment = strings.Repeat("a", 1001) }, true},
		{"missing doctor", func(r *Review) { r.DoctorName = "" }, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewReview("Alice Brown", "John Smith", 4, "Very gentle and thorough.", false)
			tc.mutate(&r)
			err := r.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReviewerAnonymous(t *testing.T) {
	r := NewReview("Alice Brown", "John Smith", 5, "Great experience overall.", true)
	assert.Equal(t, "Anonymous", r.Reviewer())

	r.IsAnonymous = false
	assert.Equal(t, "Alice Brown", r.Reviewer())
}

func TestMarkHelpful(t *testing.T) {
	r := NewReview("Alice Brown", "John Smith", 5, "Great experience overall.", false)
	assert.Equal(t, 1, r.MarkHelpful())
	assert.Equal(t, 2, r.MarkHelpful())
	assert.Equal(t, 2, r.HelpfulCount)
}
