package filestorage

import (
	"context"
	"io"

	"github.com/minio/minio-go/v7"

	"shop-tasks-backend/config"
)

type Provider interface {
	UploadReport(ctx context.Context, objectName string, fileReader io.Reader, fileSize int64) error
	GetReport(ctx context.Context, objectName string) ([]byte, error)
}

var Instance Provider

func NewInstance(s3client *minio.Client) {
	Instance = &impl{
		s3client: s3client,
	}
}

type impl struct {
	s3client *minio.Client
}

func (i impl) UploadReport(ctx context.Context, objectName string, fileReader io.Reader, fileSize int64) error {
	_, err := i.s3client.PutObject(ctx, config.Conf.S3.BucketName, objectName, fileReader, fileSize,
		minio.PutObjectOptions{ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"})
	if err != nil {
		return err
	}
	return nil
}

func (i impl) GetReport(ctx context.Context, objectName string) ([]byte, error) {
	object, err := i.s3client.GetObject(ctx, config.Conf.S3.BucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer object.Close()
	return io.ReadAll(object)
}
