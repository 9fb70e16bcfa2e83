package adminapi

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/random"
	"go.uber.org/zap"

	"github.com/beacondyn/beaconstore/internal/webserver"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.]`)

func registerUploadRoutes() {
	webserver.ApiPOST("/upload/image", uploadImage)
}

// uploadImage stores one product image under the workdir and returns the
// public URL the gallery can reference.
func uploadImage(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Missing image file", err.Error())
	}

	src, err := file.Open()
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to read image file", err.Error())
	}
	defer src.Close()

	safeName := unsafeFilenameChars.ReplaceAllString(file.Filename, "_")
	filename := fmt.Sprintf("%d_%s_%s", time.Now().UnixMilli(), random.String(6), safeName)

	imageDir := GetApp(c).Config().GetImageDir()
	dstPath := path.Join(imageDir, filename)
	dst, err := os.Create(dstPath)
	if err != nil {
		if os.IsPermission(err) {
			return fail(c, http.StatusForbidden, "PERMISSION_DENIED",
				"Permission error: you are not allowed to upload images. Check the storage policies.", err.Error())
		}
		return fail(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to store image", err.Error())
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(dstPath)
		return fail(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to store image", err.Error())
	}

	publicURL := "/storage/images/" + filename
	zap.L().Info("image uploaded",
		zap.String("file", filename),
		zap.Int64("size", file.Size))

	return ok(c, map[string]interface{}{
		"url":  publicURL,
		"name": strings.TrimSpace(file.Filename),
		"size": file.Size,
	})
}
