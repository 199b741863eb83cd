package storage

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestDoctorFilterIsSubstringAndQuoted(t *testing.T) {
	filter := doctorFilter("cardio", "san fran")

	spec, ok := filter["specialty"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "cardio", spec["$regex"], "specialty must stay unanchored")
	assert.Equal(t, "i", spec["$options"])

	loc, ok := filter["location"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "san fran", loc["$regex"])

	// regex metacharacters in user input must be quoted, not interpreted
	filter = doctorFilter("cardio.*", "")
	spec = filter["specialty"].(bson.M)
	assert.Equal(t, regexp.QuoteMeta("cardio.*"), spec["$regex"])

	assert.Empty(t, doctorFilter("", ""))
}

// The Mongo filter and the in-memory matcher must select the same doctors,
// or a failover would change search results mid-session.
func TestDoctorFilterMatchesMemStoreSelection(t *testing.T) {
	s := NewMemStore(testEncryptor(t))
	ctx := context.Background()

	all, err := s.GetDoctors(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, all)

	for _, tc := range []struct{ specialty, location string }{
		{"cardio", ""},
		{"Cardiology", ""},
		{"", "oakland"},
		{"sleep", "CA"},
		{"neuro", ""},
	} {
		fromMem, err := s.FindDoctors(ctx, tc.specialty, tc.location)
		require.NoError(t, err)

		want := 0
		specRe := regexp.MustCompile("(?i)" + regexp.QuoteMeta(tc.specialty))
		locRe := regexp.MustCompile("(?i)" + regexp.QuoteMeta(tc.location))
		for _, d := range all {
			if tc.specialty != "" && !specRe.MatchString(d.Specialty) {
				continue
			}
			if tc.location != "" && !locRe.MatchString(d.Location) {
				continue
			}
			want++
		}
		assert.Len(t, fromMem, want, "specialty=%q location=%q", tc.specialty, tc.location)
	}
}
