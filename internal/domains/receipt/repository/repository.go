package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"conference/config"
	"conference/infras/otel"
	infraS3 "conference/infras/s3"
	"conference/internal/domains/receipt/model"
	"conference/shared/constant"
	"conference/shared/timezone"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	dirPerm  os.FileMode = 0o750
	filePerm os.FileMode = 0o640

	sniffLength = 3072
)

// Receipt persists uploaded payment receipts under booking_{id}/ paths.
type Receipt interface {
	Save(ctx context.Context, bookingID, filename string, data []byte) (string, error)
	Open(ctx context.Context, objectPath string) (*model.File, error)
	Delete(ctx context.Context, objectPath string) error
}

// New picks the store for the configured driver.
func New(cfg *config.Config, s3Client infraS3.S3, otel otel.Otel) Receipt {
	if cfg.Storage.Driver == constant.StorageDriverS3 {
		log.Info().Str("bucket", cfg.External.S3.BucketName).Msg("Storing receipts in S3")

		return NewS3(s3Client, otel)
	}

	root := cfg.Storage.Disk.Root
	if err := os.MkdirAll(root, dirPerm); err != nil {
		log.Error().Err(err).Str("root", root).Msg("Failed to create receipt directory")
	}

	log.Info().Str("root", root).Msg("Storing receipts on disk")

	return NewDisk(afero.NewBasePathFs(afero.NewOsFs(), root), otel)
}

type s3Store struct {
	client infraS3.S3
	otel   otel.Otel
}

func NewS3(client infraS3.S3, otel otel.Otel) Receipt {
	return &s3Store{client: client, otel: otel}
}

func (s *s3Store) Save(ctx context.Context, bookingID, filename string, data []byte) (objectPath string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".s3.Save")
	defer scope.End()
	defer scope.TraceIfError(err)

	objectPath, err = model.ObjectName(bookingID, filename, timezone.Now())
	if err != nil {
		return constant.Empty, err
	}

	if err = s.client.PutObject(ctx, objectPath, model.DetectContentType(filename, data), data); err != nil {
		return constant.Empty, fmt.Errorf("failed to store receipt: %w", err)
	}

	return objectPath, nil
}

func (s *s3Store) Open(ctx context.Context, objectPath string) (file *model.File, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".s3.Open")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = model.ValidatePath(objectPath); err != nil {
		return nil, err
	}

	object, err := s.client.GetObject(ctx, objectPath)
	if errors.Is(err, infraS3.ErrObjectNotFound) {
		return nil, model.ErrReceiptNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to open receipt: %w", err)
	}

	contentType := object.ContentType
	if contentType == constant.Empty {
		contentType = model.DetectContentType(objectPath, nil)
	}

	return &model.File{
		Name:        path.Base(objectPath),
		Body:        object.Body,
		ContentType: contentType,
		Size:        object.Size,
	}, nil
}

func (s *s3Store) Delete(ctx context.Context, objectPath string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".s3.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = model.ValidatePath(objectPath); err != nil {
		return err
	}

	if err = s.client.DeleteObject(ctx, objectPath); err != nil {
		return fmt.Errorf("failed to delete receipt: %w", err)
	}

	return nil
}

type diskStore struct {
	fs   afero.Fs
	otel otel.Otel
}

// NewDisk stores receipts on fs, normally a BasePathFs rooted at the upload directory.
func NewDisk(fs afero.Fs, otel otel.Otel) Receipt {
	return &diskStore{fs: fs, otel: otel}
}

func (d *diskStore) Save(ctx context.Context, bookingID, filename string, data []byte) (objectPath string, err error) {
	_, scope := d.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".disk.Save")
	defer scope.End()
	defer scope.TraceIfError(err)

	objectPath, err = model.ObjectName(bookingID, filename, timezone.Now())
	if err != nil {
		return constant.Empty, err
	}

	if err = d.fs.MkdirAll(path.Dir(objectPath), dirPerm); err != nil {
		return constant.Empty, fmt.Errorf("failed to create receipt directory: %w", err)
	}

	if err = afero.WriteFile(d.fs, objectPath, data, filePerm); err != nil {
		return constant.Empty, fmt.Errorf("failed to write receipt: %w", err)
	}

	return objectPath, nil
}

func (d *diskStore) Open(ctx context.Context, objectPath string) (file *model.File, err error) {
	_, scope := d.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".disk.Open")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = model.ValidatePath(objectPath); err != nil {
		return nil, err
	}

	handle, err := d.fs.Open(objectPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, model.ErrReceiptNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to open receipt: %w", err)
	}

	info, err := handle.Stat()
	if err != nil {
		_ = handle.Close()

		return nil, fmt.Errorf("failed to stat receipt: %w", err)
	}

	head := make([]byte, sniffLength)

	n, err := io.ReadFull(handle, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		_ = handle.Close()

		return nil, fmt.Errorf("failed to read receipt: %w", err)
	}

	if _, err = handle.Seek(0, io.SeekStart); err != nil {
		_ = handle.Close()

		return nil, fmt.Errorf("failed to rewind receipt: %w", err)
	}

	return &model.File{
		Name:        path.Base(objectPath),
		Body:        handle,
		ContentType: model.DetectContentType(objectPath, head[:n]),
		Size:        info.Size(),
	}, nil
}

// Delete removes the file. A file that is already gone is not an error.
func (d *diskStore) Delete(ctx context.Context, objectPath string) (err error) {
	_, scope := d.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".disk.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = model.ValidatePath(objectPath); err != nil {
		return err
	}

	if err = d.fs.Remove(objectPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete receipt: %w", err)
	}

	return nil
}
