package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"erm-backend/config"
	"erm-backend/db"
	"erm-backend/lib/apperr"
	filesstore "erm-backend/lib/file-storage/store"
	dbmodels "erm-backend/models/db"
)

type Provider interface {
	UploadRiskFile(ctx context.Context, riskID, fileName, contentType string, fileSize int64, fileReader io.Reader) (id string, err error)
	GetRiskFile(ctx context.Context, fileID string) (rec *dbmodels.FileStorage, body []byte, err error)
	ListRiskFiles(riskID string) (list []dbmodels.FileStorage, err error)
}

var Instance Provider

func NewHandler(s3client *minio.Client) {
	Instance = &impl{
		s3client: s3client,
		store:    filesstore.NewInstance(db.DB),
	}
}

type impl struct {
	s3client *minio.Client
	store    filesstore.Provider
}

func (i impl) UploadRiskFile(ctx context.Context, riskID, fileName, contentType string, fileSize int64, fileReader io.Reader) (string, error) {
	objectKey := fmt.Sprintf("risk/%s/%s", riskID, uuid.NewString())
	_, err := i.s3client.PutObject(ctx, config.Conf.S3.BucketName, objectKey, fileReader, fileSize,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", apperr.Wrap(apperr.KindDependency, err, "не удалось сохранить файл в хранилище")
	}
	id, err := i.store.SaveFile(dbmodels.FileStorage{
		RiskID:      riskID,
		Name:        fileName,
		ContentType: contentType,
		ObjectKey:   objectKey,
		Size:        fileSize,
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (i impl) GetRiskFile(ctx context.Context, fileID string) (*dbmodels.FileStorage, []byte, error) {
	rec, err := i.store.GetByID(fileID)
	if err != nil {
		return nil, nil, err
	}
	if rec == nil {
		return nil, nil, apperr.New(apperr.KindNotFound, "файл не найден")
	}
	obj, err := i.s3client.GetObject(ctx, config.Conf.S3.BucketName, rec.ObjectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, apperr.Wrap(apperr.KindDependency, err, "не удалось получить файл из хранилища")
	}
	defer obj.Close()
	buf := bytes.Buffer{}
	if _, err := io.Copy(&buf, obj); err != nil {
		return nil, nil, apperr.Wrap(apperr.KindDependency, err, "не удалось прочитать файл из хранилища")
	}
	return rec, buf.Bytes(), nil
}

func (i impl) ListRiskFiles(riskID string) ([]dbmodels.FileStorage, error) {
	return i.store.ListByRisk(riskID)
}
