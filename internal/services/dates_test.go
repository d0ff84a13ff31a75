package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/hsmgmt/schoolsys-gobackend/internal/models"
)

func TestParseISODate(t *testing.T) {
	valid := []string{
		"2030-01-01T00:00:00Z",
		"2030-01-01T00:00:00+05:30",
		"2030-01-01T00:00:00.123456Z",
		"2030-01-01T00:00:00",
		"2030-01-01T00:00:00.123456",
		"2030-01-01T15:04",
		"2030-01-01",
	}
	for _, s := range valid {
		_, err := parseISODate(s)
		assert.NoError(t, err, "expected %q to parse", s)
	}

	invalid := []string{
		"",
		"bad",
		"01/02/2030",
		"2030-13-01",
		"2030-01-01T25:00:00Z",
	}
	for _, s := range invalid {
		_, err := parseISODate(s)
		assert.Error(t, err, "expected %q to be rejected", s)
	}
}

func TestParseISODate_TrailingZMeansUTC(t *testing.T) {
	withZ, err := parseISODate("2030-01-01T12:00:00Z")
	require.NoError(t, err)
	withOffset, err := parseISODate("2030-01-01T12:00:00+00:00")
	require.NoError(t, err)
	assert.True(t, withZ.Equal(withOffset))
}

func TestValidateWindow(t *testing.T) {
	assert.NoError(t, validateWindow("2020-01-01T00:00:00Z", "2030-01-01T00:00:00Z"))

	// strict ordering: equal timestamps are rejected
	assert.ErrorIs(t, validateWindow("2030-01-01T00:00:00Z", "2030-01-01T00:00:00Z"), ErrInvalidDateOrder)
	assert.ErrorIs(t, validateWindow("2030-01-01T00:00:00Z", "2020-01-01T00:00:00Z"), ErrInvalidDateOrder)

	assert.ErrorIs(t, validateWindow("bad", "2030-01-01T00:00:00Z"), ErrInvalidDate)
	assert.ErrorIs(t, validateWindow("2020-01-01T00:00:00Z", "bad"), ErrInvalidDate)
}

func TestValidateEffectiveWindow(t *testing.T) {
	stored := models.Announcement{
		StartDate:      "2030-06-01T00:00:00Z",
		ExpirationDate: "2030-12-01T00:00:00Z",
	}

	t.Run("supplied values win over the snapshot", func(t *testing.T) {
		update := bson.M{
			"start_date":      "2031-01-01T00:00:00Z",
			"expiration_date": "2031-06-01T00:00:00Z",
		}
		assert.NoError(t, validateEffectiveWindow(stored, update))

		update = bson.M{
			"start_date":      "2031-06-01T00:00:00Z",
			"expiration_date": "2031-01-01T00:00:00Z",
		}
		assert.ErrorIs(t, validateEffectiveWindow(stored, update), ErrInvalidDateOrder)
	})

	t.Run("missing update value falls back to the stored snapshot", func(t *testing.T) {
		// new expiration lands before the stored start date
		update := bson.M{"expiration_date": "2030-01-01T00:00:00Z"}
		assert.ErrorIs(t, validateEffectiveWindow(stored, update), ErrInvalidDateOrder)

		update = bson.M{"expiration_date": "2031-01-01T00:00:00Z"}
		assert.NoError(t, validateEffectiveWindow(stored, update))
	})

	t.Run("snapshot start still participates after a removal", func(t *testing.T) {
		// The removal sentinel unsets start_date without adding it to the
		// update document, so the pre-unset snapshot value is what gets
		// re-checked against a simultaneously shortened expiration.
		update := bson.M{"expiration_date": "2030-01-01T00:00:00Z"}
		assert.ErrorIs(t, validateEffectiveWindow(stored, update), ErrInvalidDateOrder)
	})

	t.Run("equal timestamps are rejected", func(t *testing.T) {
		update := bson.M{"expiration_date": "2030-06-01T00:00:00Z"}
		assert.ErrorIs(t, validateEffectiveWindow(stored, update), ErrInvalidDateOrder)
	})

	t.Run("no effective start date skips the check", func(t *testing.T) {
		noStart := models.Announcement{ExpirationDate: "2030-12-01T00:00:00Z"}
		assert.NoError(t, validateEffectiveWindow(noStart, bson.M{}))
		assert.NoError(t, validateEffectiveWindow(noStart, bson.M{"message": "updated"}))
	})

	t.Run("stored garbage fails with InvalidDate even with no dates supplied", func(t *testing.T) {
		garbage := models.Announcement{
			StartDate:      "sometime soon",
			ExpirationDate: "2030-12-01T00:00:00Z",
		}
		assert.ErrorIs(t, validateEffectiveWindow(garbage, bson.M{"message": "updated"}), ErrInvalidDate)

		garbage = models.Announcement{
			StartDate:      "2030-06-01T00:00:00Z",
			ExpirationDate: "eventually",
		}
		assert.ErrorIs(t, validateEffectiveWindow(garbage, bson.M{}), ErrInvalidDate)
	})
}

func TestActiveFilter(t *testing.T) {
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	filter := activeFilter(now)

	clauses, ok := filter["$and"].([]bson.M)
	require.True(t, ok)
	require.Len(t, clauses, 2)

	startClauses, ok := clauses[0]["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, startClauses, 2)
	assert.Equal(t, bson.M{"start_date": bson.M{"$exists": false}}, startClauses[0])
	assert.Equal(t, bson.M{"start_date": bson.M{"$lte": "2026-08-26T12:00:00Z"}}, startClauses[1])

	assert.Equal(t, bson.M{"expiration_date": bson.M{"$gte": "2026-08-26T12:00:00Z"}}, clauses[1])
}
