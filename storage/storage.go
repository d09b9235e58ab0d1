package storage

import (
	"fmt"
	"io"
	"log"

	"travelog/config"
	"travelog/db"
)

// StorageAPI is the contract photo payloads are written and read through.
// Paths are bucket-relative keys, e.g. "place/ChIJ.../3f0a...jpg".
type StorageAPI interface {
	Save(path string, reader io.Reader) (int64, error)
	Load(path string, writer io.Writer) (int64, error)
	Delete(path string) error
	GetBucket() *Bucket
}

var cachedStorage []StorageAPI

func Init() {
	if err := db.Instance.AutoMigrate(&Bucket{}); err != nil {
		panic(err)
	}
	var buckets []Bucket
	if err := db.Instance.Find(&buckets).Error; err != nil {
		panic(err)
	}
	if len(buckets) == 0 && config.PHOTO_DIR != "" {
		bucket := Bucket{
			Name:        "photos",
			StorageType: StorageTypeFile,
			Path:        config.PHOTO_DIR,
		}
		if err := bucket.Create(); err != nil {
			panic(err)
		}
		buckets = append(buckets, bucket)
	}
	log.Printf("Storage buckets found: %d\n", len(buckets))

	cachedStorage = []StorageAPI{}
	for i := range buckets {
		cachedStorage = append(cachedStorage, newStorage(&buckets[i]))
	}
}

func newStorage(bucket *Bucket) StorageAPI {
	switch bucket.StorageType {
	case StorageTypeFile:
		return NewDiskStorage(bucket)
	case StorageTypeS3:
		return NewS3Storage(bucket)
	}
	panic(fmt.Sprintf("Storage type unavailable for bucket %d", bucket.ID))
}

func StorageFrom(bucket *Bucket) StorageAPI {
	for _, s := range cachedStorage {
		if s.GetBucket().ID == bucket.ID {
			return s
		}
	}
	return nil
}

// GetDefaultStorage prefers a local disk bucket over remote ones
func GetDefaultStorage() StorageAPI {
	if len(cachedStorage) == 0 {
		panic("no storage available")
	}
	for _, s := range cachedStorage {
		if s.GetBucket().StorageType == StorageTypeFile {
			return s
		}
	}
	return cachedStorage[0]
}
