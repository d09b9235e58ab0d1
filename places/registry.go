package places

import (
	"errors"
	"sync"

	"travelog/models"

	cmap "github.com/orcaman/concurrent-map/v2"
	"gorm.io/gorm"
)

// TypeRegistry deduplicates place-category tags. A tag is created on first
// use and shared by reference afterwards; concurrent FindOrCreate calls for
// the same tag are serialized per tag, with the unique index on the tag
// column as the cross-process backstop.
type TypeRegistry struct {
	db    *gorm.DB
	locks cmap.ConcurrentMap[string, *sync.Mutex]
}

func NewTypeRegistry(db *gorm.DB) *TypeRegistry {
	return &TypeRegistry{
		db:    db,
		locks: cmap.New[*sync.Mutex](),
	}
}

// lockFor keeps one mutex per tag for the lifetime of the registry. The
// upstream API draws tags from a fixed table of category identifiers, so the
// map stays bounded by that vocabulary.
func (r *TypeRegistry) lockFor(tag string) *sync.Mutex {
	r.locks.SetIfAbsent(tag, &sync.Mutex{})
	mutex, _ := r.locks.Get(tag)
	return mutex
}

func (r *TypeRegistry) FindOrCreate(tag string) (models.PlaceType, error) {
	mutex := r.lockFor(tag)
	mutex.Lock()
	defer mutex.Unlock()

	var placeType models.PlaceType
	err := r.db.First(&placeType, "tag = ?", tag).Error
	if err == nil {
		return placeType, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return placeType, err
	}
	placeType = models.PlaceType{Tag: tag}
	if err = r.db.Create(&placeType).Error; err != nil {
		// Lost a race against another process; the winner's row must exist now
		if retryErr := r.db.First(&placeType, "tag = ?", tag).Error; retryErr == nil {
			return placeType, nil
		}
		return placeType, err
	}
	return placeType, nil
}
