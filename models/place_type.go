package models

// PlaceType is a deduplicated category tag (e.g. "cafe") shared across places.
type PlaceType struct {
	ID  uint64 `gorm:"primaryKey"`
	Tag string `gorm:"type:varchar(100);index:uniq_place_type,unique;not null"`
}
