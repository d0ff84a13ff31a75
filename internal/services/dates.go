package services

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/hsmgmt/schoolsys-gobackend/internal/models"
)

// isoLayouts are the accepted ISO 8601 shapes, tried in order. time.RFC3339
// covers a trailing Z or numeric offset plus optional fractional seconds;
// the rest cover naive datetimes and date-only values.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseISODate parses a permissive ISO 8601 date-time string. Values are
// validated by parse-attempt only; the original string is what gets stored.
func parseISODate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range isoLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// validateWindow parses both date strings and enforces strict ordering:
// start must be before expiration.
func validateWindow(startDate, expirationDate string) error {
	start, err := parseISODate(startDate)
	if err != nil {
		return ErrInvalidDate
	}
	expiration, err := parseISODate(expirationDate)
	if err != nil {
		return ErrInvalidDate
	}
	if !start.Before(expiration) {
		return ErrInvalidDateOrder
	}
	return nil
}

// validateEffectiveWindow re-checks ordering on the start/expiration pair an
// update leaves in place: a value in updateFields wins, otherwise the stored
// snapshot value stands. The snapshot predates the start_date-removal unset,
// so a just-removed start_date still participates. The check is skipped
// unless both effective values are non-empty; a stored value that no longer
// parses fails here even when the caller supplied no date fields.
func validateEffectiveWindow(existing models.Announcement, updateFields bson.M) error {
	start := existing.StartDate
	if v, ok := updateFields["start_date"]; ok {
		start = v.(string)
	}
	expiration := existing.ExpirationDate
	if v, ok := updateFields["expiration_date"]; ok {
		expiration = v.(string)
	}
	if start == "" || expiration == "" {
		return nil
	}
	return validateWindow(start, expiration)
}

// activeFilter builds the Mongo filter for currently-active announcements:
// start_date absent or already reached, and expiration_date not yet passed.
// Dates are stored as ISO strings, so now is compared in its RFC 3339 UTC
// string form.
func activeFilter(now time.Time) bson.M {
	nowStr := now.UTC().Format(time.RFC3339)
	return bson.M{
		"$and": []bson.M{
			{"$or": []bson.M{
				{"start_date": bson.M{"$exists": false}},
				{"start_date": bson.M{"$lte": nowStr}},
			}},
			{"expiration_date": bson.M{"$gte": nowStr}},
		},
	}
}
