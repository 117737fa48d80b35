package services

import (
	"context"
	"log"
	"os"
	"time"

	"unmei_server/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Room card images, keyed by whether the room still has space
const (
	roomAvailableImageKey = "img/room-available.jpg"
	roomDisableImageKey   = "img/room-disable.jpg"
)

var s3Client *s3.Client

func init() {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		log.Printf("S3 client unavailable, falling back to static image paths: %v", err)
		return
	}
	s3Client = s3.NewFromConfig(cfg)
}

// RoomImageURL returns the card image for a room with the given occupancy: a
// presigned S3 read URL when a bucket is configured, the static asset path
// otherwise.
func RoomImageURL(userCount int) string {
	key := roomAvailableImageKey
	if userCount >= models.RoomCapacity {
		key = roomDisableImageKey
	}

	bucket := os.Getenv("S3_BUCKET_NAME")
	if bucket == "" || s3Client == nil {
		return "/" + key
	}

	params := &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}
	presigner := s3.NewPresignClient(s3Client)
	presignedURL, err := presigner.PresignGetObject(context.TODO(), params, s3.WithPresignExpires(5*time.Minute))
	if err != nil {
		log.Printf("Failed to presign room image '%s': %v", key, err)
		return "/" + key
	}
	return presignedURL.URL
}
