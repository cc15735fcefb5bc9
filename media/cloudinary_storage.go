// Package media talks to the services that host course images and lesson
// videos.
package media

import (
	"context"
	"fmt"

	"github.com/anjiri1684/course_market/models"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/pkg/errors"
)

const resourceTypeVideo = "video"

// CloudinaryStorage stores lesson videos.
type CloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStorage(cloudinaryURL, folder string) (*CloudinaryStorage, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Cloudinary")
	}
	return &CloudinaryStorage{cld: cld, folder: folder}, nil
}

// UploadVideo streams file to Cloudinary and waits for the stored reference.
func (s *CloudinaryStorage) UploadVideo(ctx context.Context, file interface{}) (*models.Video, error) {
	resp, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		ResourceType: resourceTypeVideo,
		Folder:       s.folder,
	})
	if err != nil {
		return nil, errors.Wrap(err, "upload video")
	}
	if resp.Error.Message != "" {
		return nil, fmt.Errorf("upload video: %s", resp.Error.Message)
	}
	return &models.Video{PublicID: resp.PublicID, SecureURL: resp.SecureURL}, nil
}

func (s *CloudinaryStorage) DeleteVideo(ctx context.Context, publicID string) error {
	resp, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceTypeVideo,
	})
	if err != nil {
		return errors.Wrap(err, "delete video")
	}
	if resp.Error.Message != "" {
		return fmt.Errorf("delete video: %s", resp.Error.Message)
	}
	return nil
}

// ErrVideoStorageDisabled is returned by DisabledVideoStorage.
var ErrVideoStorageDisabled = errors.New("video storage is not configured")

// DisabledVideoStorage stands in when no Cloudinary account is configured.
// Every call fails, so only the video routes are affected.
type DisabledVideoStorage struct{}

func (DisabledVideoStorage) UploadVideo(context.Context, interface{}) (*models.Video, error) {
	return nil, ErrVideoStorageDisabled
}

func (DisabledVideoStorage) DeleteVideo(context.Context, string) error {
	return ErrVideoStorageDisabled
}
