package storage

import (
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

type S3Storage struct {
	Bucket   Bucket
	s3Client *s3.S3
}

func NewS3Storage(bucket *Bucket) StorageAPI {
	return &S3Storage{
		Bucket:   *bucket,
		s3Client: bucket.CreateSVC(),
	}
}

func (s *S3Storage) Save(path string, reader io.Reader) (int64, error) {
	uploader := s3manager.NewUploaderWithClient(s.s3Client)
	_, err := uploader.Upload(&s3manager.UploadInput{
		Bucket: &s.Bucket.Name,
		Key:    aws.String(s.Bucket.GetRemotePath(path)),
		Body:   reader,
	})
	if err != nil {
		return 0, err
	}
	// The uploader does not report the size; ask for it
	head, err := s.s3Client.HeadObject(&s3.HeadObjectInput{
		Bucket: &s.Bucket.Name,
		Key:    aws.String(s.Bucket.GetRemotePath(path)),
	})
	if err != nil || head.ContentLength == nil {
		return 0, err
	}
	return *head.ContentLength, nil
}

func (s *S3Storage) Load(path string, writer io.Writer) (int64, error) {
	resp, err := s.s3Client.GetObject(&s3.GetObjectInput{
		Bucket: &s.Bucket.Name,
		Key:    aws.String(s.Bucket.GetRemotePath(path)),
	})
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return io.Copy(writer, resp.Body)
}

func (s *S3Storage) Delete(path string) error {
	_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: &s.Bucket.Name,
		Key:    aws.String(s.Bucket.GetRemotePath(path)),
	})
	return err
}

func (s *S3Storage) GetBucket() *Bucket {
	return &s.Bucket
}
