package domain

import "time"

// Configuration section keys. The set is fixed; sections are seeded on first
// run and only their items change afterwards.
const (
	SectionVehicleTypes    = "vehicle-types"
	SectionTrailerTypes    = "trailer-types"
	SectionProductTypes    = "product-types"
	SectionNoInterest      = "no-interest-reasons"
	SectionRestrictions    = "restriction-reasons"
	SectionOfferRejections = "offer-rejection-reasons"
	SectionClients         = "clients"
)

// SectionKeys lists every configuration section in display order.
var SectionKeys = []string{
	SectionVehicleTypes,
	SectionTrailerTypes,
	SectionProductTypes,
	SectionNoInterest,
	SectionRestrictions,
	SectionOfferRejections,
	SectionClients,
}

// ConfigItem is one entry of a configurable lookup list. Items are never
// deleted, only toggled inactive.
type ConfigItem struct {
	ID          string    `json:"id" bson:"id"`
	Description string    `json:"description" bson:"description"`
	Active      bool      `json:"active" bson:"active"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	CreatedBy   string    `json:"created_by,omitempty" bson:"created_by,omitempty"`
}

// ConfigSection is a titled lookup list keyed by one of the fixed section keys.
type ConfigSection struct {
	Key   string       `json:"key" bson:"_id"`
	Title string       `json:"title" bson:"title"`
	Items []ConfigItem `json:"items" bson:"items"`
}

// ActiveItems returns the items currently selectable in forms.
func (s *ConfigSection) ActiveItems() []ConfigItem {
	out := make([]ConfigItem, 0, len(s.Items))
	for _, it := range s.Items {
		if it.Active {
			out = append(out, it)
		}
	}
	return out
}

// Resolve maps an item id to its description, or "N/A" when unknown.
func (s *ConfigSection) Resolve(id string) string {
	for _, it := range s.Items {
		if it.ID == id {
			return it.Description
		}
	}
	return "N/A"
}
