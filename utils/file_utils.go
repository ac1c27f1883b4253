// utils/file_utils.go
package utils

import (
	"fmt"
	"image/jpeg"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

const (
	// Base directory for storing uploaded files
	uploadBaseDir = "uploads"
	// Base URL for serving files
	baseURL = "/uploads"
	// Maximum file size (10MB)
	maxFileSize = 10 * 1024 * 1024
	// Thumbnail bounding box
	thumbnailWidth = 320
)

var (
	// Allowed image extensions
	allowedImageExts = map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".gif":  true,
		".webp": true,
	}
	// Allowed video extensions
	allowedVideoExts = map[string]bool{
		".mp4":  true,
		".mov":  true,
		".avi":  true,
		".webm": true,
	}
	// Allowed document extensions for generic file uploads
	allowedDocExts = map[string]bool{
		".pdf":  true,
		".doc":  true,
		".docx": true,
		".ppt":  true,
		".pptx": true,
		".txt":  true,
	}

	filenameReg = regexp.MustCompile(`[^a-zA-Z0-9.-]`)
)

// cleanFilename removes any potentially dangerous characters from the filename
func cleanFilename(filename string) string {
	filename = filepath.Base(filename)
	return filenameReg.ReplaceAllString(filename, "")
}

// UniqueFilename prefixes a cleaned filename with a uuid so concurrent
// uploads never collide.
func UniqueFilename(original string) string {
	return uuid.New().String() + "-" + cleanFilename(original)
}

// InitializeStorage creates necessary directories for file storage
func InitializeStorage() error {
	dirs := []string{
		uploadBaseDir,
		filepath.Join(uploadBaseDir, "images"),
		filepath.Join(uploadBaseDir, "videos"),
		filepath.Join(uploadBaseDir, "files"),
		filepath.Join(uploadBaseDir, "thumbnails"),
		filepath.Join(uploadBaseDir, "avatars"),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}
	}

	return nil
}

// SaveLocalFile writes file data under uploads/<subdir> and returns the
// public URL path.
func SaveLocalFile(data []byte, subdir, filename string) (string, error) {
	if len(data) > maxFileSize {
		return "", fmt.Errorf("file too large. Maximum size is %d bytes", maxFileSize)
	}

	if err := InitializeStorage(); err != nil {
		return "", err
	}

	fullPath := filepath.Join(uploadBaseDir, subdir, filename)
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save file: %v", err)
	}

	return strings.Join([]string{baseURL, subdir, filename}, "/"), nil
}

// GenerateImageThumbnail resizes a stored image into uploads/thumbnails and
// returns the thumbnail URL.
func GenerateImageThumbnail(imagePath string) (string, error) {
	src, err := imaging.Open(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %v", err)
	}

	thumb := imaging.Resize(src, thumbnailWidth, 0, imaging.Lanczos)

	name := "thumb-" + filepath.Base(imagePath)
	ext := strings.ToLower(filepath.Ext(name))
	if ext != ".jpg" && ext != ".jpeg" {
		name = strings.TrimSuffix(name, ext) + ".jpg"
	}
	thumbPath := filepath.Join(uploadBaseDir, "thumbnails", name)

	out, err := os.Create(thumbPath)
	if err != nil {
		return "", fmt.Errorf("failed to create thumbnail: %v", err)
	}
	defer out.Close()

	if err := jpeg.Encode(out, thumb, &jpeg.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("failed to encode thumbnail: %v", err)
	}

	return strings.Join([]string{baseURL, "thumbnails", name}, "/"), nil
}

// GenerateVideoThumbnail extracts the first frame of a stored video into
// uploads/thumbnails and returns the thumbnail URL.
func GenerateVideoThumbnail(videoPath string) (string, error) {
	name := "thumb-" + strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath)) + ".jpg"
	thumbPath := filepath.Join(uploadBaseDir, "thumbnails", name)

	err := ffmpeg.Input(videoPath, ffmpeg.KwArgs{"ss": "00:00:01"}).
		Output(thumbPath, ffmpeg.KwArgs{"vframes": 1, "format": "image2", "vcodec": "mjpeg"}).
		OverWriteOutput().
		Run()
	if err != nil {
		return "", fmt.Errorf("failed to extract video frame: %v", err)
	}

	return strings.Join([]string{baseURL, "thumbnails", name}, "/"), nil
}
