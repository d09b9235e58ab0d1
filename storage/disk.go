package storage

import (
	"io"
	"os"
	"path/filepath"
	"sync"
)

type DiskStorage struct {
	Bucket Bucket
	// BasePath is a directory that is writable by the current process
	BasePath  string
	dirs      map[string]bool
	dirsMutex sync.Mutex
}

func NewDiskStorage(bucket *Bucket) StorageAPI {
	return &DiskStorage{
		Bucket:   *bucket,
		BasePath: bucket.Path,
		dirs:     make(map[string]bool, 10),
	}
}

func (s *DiskStorage) createDir(dir string) error {
	s.dirsMutex.Lock()
	defer s.dirsMutex.Unlock()

	if ok := s.dirs[dir]; ok {
		return nil
	}
	s.dirs[dir] = true
	return os.MkdirAll(dir, 0777)
}

func (s *DiskStorage) getFullPath(path string) string {
	return s.BasePath + "/" + path
}

func (s *DiskStorage) Save(path string, reader io.Reader) (int64, error) {
	fileName := s.getFullPath(path)
	if err := s.createDir(filepath.Dir(fileName)); err != nil {
		return 0, err
	}
	file, err := os.Create(fileName)
	if err != nil {
		return 0, err
	}
	result, err := io.Copy(file, reader)
	file.Close()
	return result, err
}

func (s *DiskStorage) Load(path string, writer io.Writer) (int64, error) {
	file, err := os.Open(s.getFullPath(path))
	if err != nil {
		return 0, err
	}
	result, err := io.Copy(writer, file)
	file.Close()
	return result, err
}

func (s *DiskStorage) Delete(path string) error {
	return os.Remove(s.getFullPath(path))
}

func (s *DiskStorage) GetBucket() *Bucket {
	return &s.Bucket
}
