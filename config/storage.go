package config

import (
	"os"
)

// S3Config describes the S3-compatible bucket post media is uploaded to.
// Endpoint stays empty for plain AWS S3; set it for R2-style providers.
type S3Config struct {
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicURL       string
	Region          string
	Endpoint        string
}

func GetS3Config() *S3Config {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-1"
	}
	return &S3Config{
		AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		BucketName:      os.Getenv("AWS_BUCKET_NAME"),
		PublicURL:       os.Getenv("AWS_PUBLIC_URL"),
		Region:          region,
		Endpoint:        os.Getenv("AWS_ENDPOINT"),
	}
}
