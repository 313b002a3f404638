package routes

import (
	"net/http"
	"path/filepath"
	"strings"

	"locallytrip-server/storage"
	"locallytrip-server/utils"

	"github.com/kataras/iris/v12"
)

const maxImageSize = 5 << 20 // 5MB

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// UploadImage accepts a multipart image up to 5MB, stores it under the
// upload directory and returns the generated filename. Only the filename is
// meant to be persisted on records.
func UploadImage(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	ctx.SetMaxRequestBodySize(maxImageSize + 1<<20)

	file, header, err := ctx.FormFile("image")
	if err != nil {
		ctx.StopWithJSON(http.StatusBadRequest, iris.Map{"error": "image file required"})
		return
	}
	defer file.Close()

	if header.Size > maxImageSize {
		ctx.StopWithJSON(http.StatusBadRequest, iris.Map{"error": "image exceeds 5MB limit"})
		return
	}

	// Sniff the real content type, never trust the filename
	head := make([]byte, 512)
	n, _ := file.Read(head)
	contentType := http.DetectContentType(head[:n])
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		ctx.StopWithJSON(http.StatusBadRequest, iris.Map{"error": "only image uploads are allowed"})
		return
	}
	if _, err := file.Seek(0, 0); err != nil {
		utils.LogInternalError(ctx, err)
		return
	}

	// keep an original extension when it matches the detected type
	if orig := strings.ToLower(filepath.Ext(header.Filename)); orig == ".jpeg" && ext == ".jpg" {
		ext = ".jpg"
	}

	name, saveErr := storage.SaveImage(file, ext, userID)
	if saveErr != nil {
		utils.LogInternalError(ctx, saveErr)
		return
	}

	ctx.JSON(iris.Map{"success": true, "filename": name})
}

// DeleteImage removes a previously uploaded file, e.g. when the client
// abandons a draft after uploading its cover. Only the uploader may delete;
// the owner id is read back from the filename prefix.
func DeleteImage(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	name := ctx.Params().Get("name")
	if name == "" || name != filepath.Base(name) {
		ctx.StopWithJSON(http.StatusBadRequest, iris.Map{"error": "invalid filename"})
		return
	}

	owner, ok := storage.ImageOwner(name)
	if !ok || owner != userID {
		utils.CreateForbidden(ctx)
		return
	}

	storage.RemoveImage(name)
	ctx.JSON(iris.Map{"success": true})
}
