package models

import "strconv"

// Photo belongs to exactly one Place. PhotoID is the public identifier
// (a UUID assigned at creation); the binary payload lives in a storage
// bucket under GetPath().
type Photo struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	PhotoID   string `gorm:"type:varchar(40);index:uniq_photo_id,unique;not null"`
	PlaceID   uint64 `gorm:"index;not null"`
	Size      int64
	MimeType  string `gorm:"type:varchar(50)"`
	Width     uint16
	Height    uint16
}

// GetPath returns the storage key for the payload, e.g. "place/12/3f0a....jpg"
func (p *Photo) GetPath() string {
	return "place/" + strconv.FormatUint(p.PlaceID, 10) + "/" + p.PhotoID + ".jpg"
}
