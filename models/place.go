package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is stored as a JSON-encoded text column
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return fmt.Errorf("cannot scan %T into StringList", value)
}

// Place is the canonical record for a physical location. PlaceID is the
// external (Google) identifier and is unique; records are never updated
// after creation.
type Place struct {
	ID           uint64 `gorm:"primaryKey"`
	CreatedAt    int64
	PlaceID      string      `gorm:"type:varchar(300);index:uniq_place_id,unique;not null"`
	Name         string      `gorm:"type:varchar(300)"`
	Rating       float64     `gorm:"not null;default:0"`
	PriceLevel   int         `gorm:"not null;default:0"` // 0 (free) .. 4 (very expensive)
	OpeningHours StringList  `gorm:"type:text"`
	Latitude     float64     `gorm:"type:double"`
	Longitude    float64     `gorm:"type:double"`
	Timezone     string      `gorm:"type:varchar(64)"`
	PlaceTypes   []PlaceType `gorm:"many2many:place_place_types;"`
	Photos       []Photo     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (p *Place) TypeTags() []string {
	tags := make([]string, 0, len(p.PlaceTypes))
	for _, t := range p.PlaceTypes {
		tags = append(tags, t.Tag)
	}
	return tags
}

func (p *Place) PhotoIDs() []string {
	ids := make([]string, 0, len(p.Photos))
	for _, photo := range p.Photos {
		ids = append(ids, photo.PhotoID)
	}
	return ids
}
