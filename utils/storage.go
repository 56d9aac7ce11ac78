package utils

import (
	"bytes"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

func storageEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

// getS3Client builds a client for the S3-compatible object storage. The
// credentials come from the environment so they never land in the repo.
func getS3Client() *s3.S3 {
	sess := session.Must(session.NewSession(&aws.Config{
		Region:   aws.String(storageEnv("S3_REGION", "us-east-1")),
		Endpoint: aws.String(storageEnv("S3_ENDPOINT", "https://object.pscloud.io")),
		Credentials: credentials.NewStaticCredentials(
			os.Getenv("S3_ACCESS_KEY"), os.Getenv("S3_SECRET_KEY"), "",
		),
	}))
	return s3.New(sess)
}

// UploadFileToS3 stores the file under folder/fileName and returns a public
// URL for it.
func UploadFileToS3(file []byte, fileName string, folder string) (string, error) {
	filePath := fmt.Sprintf("%s/%s", folder, fileName)

	contentType := mime.TypeByExtension(filepath.Ext(fileName))
	if contentType == "" {
		contentType = "image/jpeg"
	}

	bucket := storageEnv("S3_BUCKET", "paw-mobile")
	_, err := getS3Client().PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(filePath),
		Body:          bytes.NewReader(file),
		ContentLength: aws.Int64(int64(len(file))),
		ContentType:   aws.String(contentType),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("unable to upload file to S3: %v", err)
	}

	return fmt.Sprintf("https://%s.object.pscloud.io/%s", bucket, filePath), nil
}
