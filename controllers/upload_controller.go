// controllers/upload_controller.go
package controllers

import (
	"context"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/labstack/echo/v4"

	"github.com/oausconnect/backend/models"
	"github.com/oausconnect/backend/utils"
)

// UploadController handles media uploads. Files go to Cloudinary when a
// client is configured, otherwise to local disk under uploads/.
type UploadController struct {
	cld *cloudinary.Cloudinary
}

// NewUploadController creates a new upload controller
func NewUploadController(cld *cloudinary.Cloudinary) *UploadController {
	return &UploadController{cld: cld}
}

// UploadResult is returned for every successful upload
type UploadResult struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	MediaType    string `json:"mediaType"`
	Filename     string `json:"filename"`
	Size         int64  `json:"size"`
}

// UploadImage handles image uploads with thumbnail generation
func (up *UploadController) UploadImage(c echo.Context) error {
	return up.handleUpload(c, "image", "images")
}

// UploadVideo handles video uploads with a first-frame thumbnail
func (up *UploadController) UploadVideo(c echo.Context) error {
	return up.handleUpload(c, "video", "videos")
}

// UploadFile handles generic document uploads
func (up *UploadController) UploadFile(c echo.Context) error {
	return up.handleUpload(c, "file", "files")
}

func (up *UploadController) handleUpload(c echo.Context, mediaType, subdir string) error {
	if _, err := utils.GetUserIDFromToken(c); err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "No file provided. Use multipart field 'file'",
		})
	}

	if err := utils.ValidateFile(fileHeader.Filename, fileHeader.Size, mediaType); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to read uploaded file",
		})
	}
	defer src.Close()

	filename := utils.UniqueFilename(fileHeader.Filename)

	var result UploadResult
	if up.cld != nil {
		result, err = up.uploadToCloudinary(src, filename, mediaType)
	} else {
		result, err = up.uploadToDisk(src, filename, mediaType, subdir)
	}
	if err != nil {
		log.Printf("Upload failed for %s: %v", fileHeader.Filename, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to store file",
		})
	}
	result.Filename = filename
	result.Size = fileHeader.Size
	result.MediaType = mediaType

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "File uploaded successfully",
		Data:    result,
	})
}

func (up *UploadController) uploadToCloudinary(src io.Reader, filename, mediaType string) (UploadResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	resourceType := "auto"
	if mediaType == "video" {
		resourceType = "video"
	}

	resp, err := up.cld.Upload.Upload(ctx, src, uploader.UploadParams{
		PublicID:     strings.TrimSuffix(filename, "."+strings.ToLower(filenameExt(filename))),
		Folder:       "oausconnect/" + mediaType + "s",
		ResourceType: resourceType,
	})
	if err != nil {
		return UploadResult{}, err
	}

	result := UploadResult{URL: resp.SecureURL}
	// Cloudinary derives thumbnails on the fly from the delivery URL
	if mediaType == "image" || mediaType == "video" {
		result.ThumbnailURL = strings.Replace(resp.SecureURL, "/upload/", "/upload/c_fill,w_320/", 1)
	}
	return result, nil
}

func (up *UploadController) uploadToDisk(src io.Reader, filename, mediaType, subdir string) (UploadResult, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return UploadResult{}, err
	}

	url, err := utils.SaveLocalFile(data, subdir, filename)
	if err != nil {
		return UploadResult{}, err
	}

	result := UploadResult{URL: url}
	localPath := strings.TrimPrefix(url, "/")

	switch mediaType {
	case "image":
		if thumb, err := utils.GenerateImageThumbnail(localPath); err == nil {
			result.ThumbnailURL = thumb
		} else {
			log.Printf("Thumbnail generation failed for %s: %v", filename, err)
		}
	case "video":
		if thumb, err := utils.GenerateVideoThumbnail(localPath); err == nil {
			result.ThumbnailURL = thumb
		} else {
			log.Printf("Video thumbnail failed for %s: %v", filename, err)
		}
	}
	return result, nil
}

func filenameExt(filename string) string {
	if i := strings.LastIndex(filename, "."); i >= 0 {
		return filename[i+1:]
	}
	return ""
}
