package services

import (
	"bytes"
	"context"
	"fmt"
	"image/jpeg"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	fig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/localfixhq/localfix/config"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

// MaxImageFileSize caps report photo uploads.
const MaxImageFileSize = 10 * 1024 * 1024 // 10 MB

// MediaService stores report photos and returns the URLs a draft carries.
type MediaService interface {
	UploadReportImage(ctx context.Context, fileHeader *multipart.FileHeader) (imageURL, thumbnailURL string, err error)
}

type mediaService struct {
	Config *config.Config
}

func NewMediaService(conf *config.Config) MediaService {
	return &mediaService{Config: conf}
}

func CheckImageFileSize(fileHeader *multipart.FileHeader) error {
	if fileHeader.Size > MaxImageFileSize {
		return errors.New("file size exceeds the maximum allowed size")
	}
	return nil
}

func CheckSupportedImage(filename string) (bool, string) {
	supportedFileTypes := map[string]bool{
		".png":  true,
		".jpeg": true,
		".jpg":  true,
	}

	fileExtension := strings.ToLower(filepath.Ext(filename))
	return supportedFileTypes[fileExtension], fileExtension
}

// UploadReportImage normalizes the photo to a feed-sized JPEG plus a small
// thumbnail and stores both in the media bucket.
func (m *mediaService) UploadReportImage(ctx context.Context, fileHeader *multipart.FileHeader) (string, string, error) {
	if err := CheckImageFileSize(fileHeader); err != nil {
		return "", "", err
	}
	if ok, ext := CheckSupportedImage(fileHeader.Filename); !ok {
		return "", "", errors.Errorf("unsupported file type %q", ext)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", "", errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		return "", "", errors.Wrap(err, "failed to decode image")
	}

	feedImg := imaging.Fit(img, 1080, 1080, imaging.Lanczos)
	thumbnailImg := resize.Resize(200, 0, img, resize.Lanczos3)

	var feedBuf, thumbBuf bytes.Buffer
	if err := jpeg.Encode(&feedBuf, feedImg, &jpeg.Options{Quality: 85}); err != nil {
		return "", "", errors.Wrap(err, "failed to encode image")
	}
	if err := jpeg.Encode(&thumbBuf, thumbnailImg, &jpeg.Options{Quality: 80}); err != nil {
		return "", "", errors.Wrap(err, "failed to encode thumbnail")
	}

	client, err := m.s3Client(ctx)
	if err != nil {
		return "", "", err
	}

	id := uuid.New().String()
	imageKey := fmt.Sprintf("reports/%s.jpg", id)
	thumbnailKey := fmt.Sprintf("reports/%s_thumb.jpg", id)

	if err := m.putObject(ctx, client, imageKey, feedBuf.Bytes()); err != nil {
		return "", "", err
	}
	if err := m.putObject(ctx, client, thumbnailKey, thumbBuf.Bytes()); err != nil {
		return "", "", err
	}

	return m.objectURL(imageKey), m.objectURL(thumbnailKey), nil
}

func (m *mediaService) s3Client(ctx context.Context) (*s3.Client, error) {
	if m.Config.MediaBucketName == "" {
		return nil, errors.New("media bucket is not configured")
	}
	cfg, err := fig.LoadDefaultConfig(ctx,
		fig.WithRegion(m.Config.AWSRegion),
		fig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(m.Config.AWSAccessKey, m.Config.AWSSecretKey, ""),
		),
	)
	if err != nil {
		return nil, errors.Wrap(err, "unable to load AWS config")
	}
	return s3.NewFromConfig(cfg), nil
}

func (m *mediaService) putObject(ctx context.Context, client *s3.Client, key string, body []byte) error {
	_, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(m.Config.MediaBucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ACL:         "public-read",
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		return errors.Wrap(err, "failed to upload file to S3")
	}
	return nil
}

func (m *mediaService) objectURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", m.Config.MediaBucketName, m.Config.AWSRegion, key)
}
