// services/media.go
package services

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/signa-learn/signa_api/dto"
	"github.com/signa-learn/signa_api/shared"
)

// MediaService stores sign videos and thumbnails for dictionary words in
// object storage and records the resulting URLs on the word row.
type MediaService struct {
	appContext.DefaultService
	sqlSvc   *PostgresService
	minioSvc *MinIOService
	baseURL  string
}

const MEDIA_SVC = "media_svc"

func (svc MediaService) Id() string {
	return MEDIA_SVC
}

func (svc *MediaService) Configure(ctx *appContext.Context) error {
	svc.baseURL = os.Getenv("BASE_URL")
	if svc.baseURL == "" {
		svc.baseURL = "http://localhost:8000"
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *MediaService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.minioSvc = svc.Service(MINIO_SVC).(*MinIOService)
	return nil
}

// UploadWordVideo stores the sign video for a word. Max 50MB, MP4/MOV/WEBM.
func (svc *MediaService) UploadWordVideo(wordID string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error) {
	if !svc.isValidVideoFile(file.Filename) {
		return nil, shared.NewBadRequestError(nil, "Invalid video file format. Supported: MP4, MOV, WEBM")
	}

	if file.Size > 50*1024*1024 {
		return nil, shared.NewBadRequestError(nil, "Video file too large. Maximum size: 50MB")
	}

	resp, err := svc.uploadFile(file, "video", wordID)
	if err != nil {
		return nil, err
	}

	word, err := svc.sqlSvc.GetWord(wordID)
	if err != nil {
		return nil, err
	}
	word.VideoURL = resp.URL
	if err := svc.sqlSvc.UpdateWord(word); err != nil {
		return nil, err
	}

	return resp, nil
}

// UploadWordThumbnail stores the still image shown in the dictionary list.
func (svc *MediaService) UploadWordThumbnail(wordID string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error) {
	if !svc.isValidImageFile(file.Filename) {
		return nil, shared.NewBadRequestError(nil, "Invalid image file format. Supported: PNG, JPG, WEBP")
	}

	if file.Size > 5*1024*1024 {
		return nil, shared.NewBadRequestError(nil, "Image file too large. Maximum size: 5MB")
	}

	resp, err := svc.uploadFile(file, "thumbnail", wordID)
	if err != nil {
		return nil, err
	}

	word, err := svc.sqlSvc.GetWord(wordID)
	if err != nil {
		return nil, err
	}
	word.ThumbnailURL = resp.URL
	if err := svc.sqlSvc.UpdateWord(word); err != nil {
		return nil, err
	}

	return resp, nil
}

func (svc *MediaService) uploadFile(file *multipart.FileHeader, mediaType, wordID string) (*dto.MediaUploadResponse, error) {
	src, err := file.Open()
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to open uploaded file")
	}
	defer src.Close()

	id, _ := uuid.NewV7()
	ext := strings.ToLower(filepath.Ext(file.Filename))
	objectName := fmt.Sprintf("words/%s/%s_%s%s", wordID, mediaType, id.String(), ext)

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if _, err := svc.minioSvc.UploadFile(objectName, src, file.Size, contentType); err != nil {
		return nil, shared.NewInternalError(err, "Failed to store media file")
	}

	url, err := svc.minioSvc.GetFileURL(objectName, 7*24*time.Hour)
	if err != nil {
		log.WithError(err).WithField("object", objectName).Error("Failed to presign media URL")
		url = fmt.Sprintf("%s/media/%s", svc.baseURL, objectName)
	}

	return &dto.MediaUploadResponse{
		URL:         url,
		ObjectName:  objectName,
		ContentType: contentType,
		Size:        file.Size,
	}, nil
}

func (svc *MediaService) isValidVideoFile(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mp4", ".mov", ".webm":
		return true
	}
	return false
}

func (svc *MediaService) isValidImageFile(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".jpg", ".jpeg", ".webp":
		return true
	}
	return false
}
