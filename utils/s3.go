package utils

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"mime"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Uploader stores profile images in S3. Without a configured bucket it stays
// disabled and uploads return an error the caller can surface.
type Uploader struct {
	client *s3.Client
	bucket string
}

func NewUploader(region, bucket string) (*Uploader, error) {
	u := &Uploader{bucket: bucket}
	if bucket == "" {
		log.Println("uploader: S3_BUCKET not set, image uploads disabled")
		return u, nil
	}
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("uploader: load aws config: %w", err)
	}
	u.client = s3.NewFromConfig(cfg)
	return u, nil
}

func (u *Uploader) Enabled() bool { return u.client != nil }

// UploadBase64Image accepts a "data:<mime>;base64,<data>" payload, stores it
// under profile-pictures/ and returns the object key.
func (u *Uploader) UploadBase64Image(ctx context.Context, base64Data, filenamePrefix string) (string, error) {
	if !u.Enabled() {
		return "", fmt.Errorf("image uploads are not configured")
	}

	parts := strings.Split(base64Data, ",")
	if len(parts) != 2 || !strings.HasPrefix(parts[0], "data:") {
		return "", fmt.Errorf("invalid base64 image")
	}
	contentType := strings.SplitN(strings.TrimPrefix(parts[0], "data:"), ";", 2)[0]

	ext := ".jpg"
	switch contentType {
	case "image/jpeg", "image/jpg":
	default:
		if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
			ext = exts[0]
		} else if sub := strings.SplitN(contentType, "/", 2); len(sub) == 2 {
			ext = "." + sub[1]
		}
	}

	imageData, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	key := fmt.Sprintf("profile-pictures/%s-%d%s", filenamePrefix, time.Now().UnixNano(), ext)
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(imageData),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return key, nil
}
