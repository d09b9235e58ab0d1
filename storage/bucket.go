package storage

import (
	"os"

	"travelog/db"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type StorageType uint8

const (
	StorageTypeFile StorageType = 0
	StorageTypeS3   StorageType = 1
)

type Bucket struct {
	ID          uint64 `gorm:"primaryKey"`
	CreatedAt   int
	UpdatedAt   int
	Name        string `gorm:"type:varchar(200)"`
	StorageType StorageType
	Path        string // Directory on a drive or a key prefix in a S3 bucket
	S3Key       string `gorm:"type:varchar(200)"`
	S3Secret    string `gorm:"type:varchar(200)"`
	Region      string `gorm:"type:varchar(50)"`
	Endpoint    string `gorm:"type:varchar(300)"` // Optional, for S3-compatible services
}

func (b *Bucket) Create() error {
	if err := db.Instance.Create(b).Error; err != nil {
		return err
	}
	if b.StorageType == StorageTypeFile {
		return os.MkdirAll(b.Path, 0777)
	}
	return nil
}

func (b *Bucket) GetRemotePath(path string) string {
	if b.Path == "" {
		return path
	}
	return b.Path + "/" + path
}

func (b *Bucket) CreateSVC() *s3.S3 {
	awsConfig := aws.Config{
		Region:      aws.String(b.Region),
		Credentials: credentials.NewStaticCredentials(b.S3Key, b.S3Secret, ""),
	}
	if b.Endpoint != "" {
		awsConfig.Endpoint = aws.String(b.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}
	return s3.New(session.Must(session.NewSession(&awsConfig)))
}
