package services

import (
	"context"
	"fmt"
)

// ResolvePersonImage materializes the session photo as a data URI, whichever
// way it was uploaded: inline data URIs pass through, R2 keys are fetched
// through a presigned read.
func ResolvePersonImage(ctx context.Context, awsService AWSServiceProvider, bucketName string, photoDataURI *string, photoKey *string) (string, error) {
	if photoDataURI != nil && *photoDataURI != "" {
		return *photoDataURI, nil
	}
	if photoKey == nil || *photoKey == "" {
		return "", fmt.Errorf("no photo uploaded")
	}
	url, err := awsService.GetPresignedR2FileReadURL(ctx, bucketName, *photoKey)
	if err != nil {
		return "", fmt.Errorf("error presigning photo read url: %v", err)
	}
	raw, err := ReadFileFromUrl(url)
	if err != nil {
		return "", fmt.Errorf("error downloading photo %s: %v", *photoKey, err)
	}
	return EncodeJPEGDataURI(raw), nil
}
