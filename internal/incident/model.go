package incident

import "time"

// Location sentinels recorded when enrichment was attempted but produced
// nothing usable. A nil ExtractedLocation means enrichment has not
// completed yet; it is never left nil once the pipeline finishes.
const (
	// LocationUnknown means extraction ran and the text named no place.
	LocationUnknown = "Unknown Location"

	// LocationUnavailable means the extraction dependency failed, timed
	// out, or returned something unusable.
	LocationUnavailable = "Location Unavailable"
)

// Incident is one persisted report plus its enrichment result.
type Incident struct {
	ID          string `json:"id"`
	Description string `json:"description"`

	// ExtractedLocation is set at most once, by the enrichment step.
	ExtractedLocation *string `json:"extractedLocation"`

	// CreatedAt is assigned by the store and is the sole ordering key
	// for listing.
	CreatedAt time.Time `json:"createdAt"`
}

// Clone returns a deep copy so callers can hand records across
// goroutine boundaries without sharing the location pointer.
func (i *Incident) Clone() *Incident {
	cp := *i
	if i.ExtractedLocation != nil {
		v := *i.ExtractedLocation
		cp.ExtractedLocation = &v
	}
	return &cp
}
