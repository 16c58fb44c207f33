package handler

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/maeartistry/internal/format"
	"github.com/maeartistry/internal/imageformat"
)

const (
	maxUploadBytes = 10 << 20
	uploadMaxWidth = 1920
)

// UploadImage 处理图片上传请求。表单字段 folder 决定存储前缀，
// webp=1 时先转换为 WebP 再上传。
func (a *API) UploadImage(c *gin.Context) {
	if a.bucket == nil {
		respondError(c, http.StatusServiceUnavailable, "no storage bucket configured")
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "image file is required")
		return
	}
	if file.Size > maxUploadBytes {
		respondError(c, http.StatusRequestEntityTooLarge, "image must be 10MB or smaller")
		return
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		respondError(c, http.StatusBadRequest, "only image files can be uploaded")
		return
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "could not read upload")
		return
	}
	defer src.Close()

	folder := format.Slugify(c.DefaultPostForm("folder", "uploads"))
	if folder == "" {
		folder = "uploads"
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))

	var body io.Reader = src
	if c.PostForm("webp") == "1" && contentType != imageformat.WebP.MIMEType() {
		var buf bytes.Buffer
		if _, err := imageformat.Convert(src, &buf, imageformat.ConvertOptions{
			Target:   imageformat.WebP,
			MaxWidth: uploadMaxWidth,
		}); err != nil {
			slog.Warn("webp conversion failed", "file", file.Filename, "error", err)
			respondError(c, http.StatusBadRequest, "image could not be converted")
			return
		}
		body = &buf
		ext = imageformat.WebP.Extension()
		contentType = imageformat.WebP.MIMEType()
	}

	name := fmt.Sprintf("%s-%s%s", time.Now().Format("20060102"), uuid.New().String(), ext)
	objectPath := path.Join(folder, name)

	url, err := a.bucket.Upload(c.Request.Context(), objectPath, body, contentType)
	if err != nil {
		slog.Error("upload failed", "path", objectPath, "error", err)
		respondError(c, http.StatusBadGateway, "failed to store image")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "uploaded",
		"data": gin.H{
			"filePath": objectPath,
			"url":      url,
		},
	})
}
