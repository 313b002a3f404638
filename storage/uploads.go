package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Cover images live on local disk under public/images; only the generated
// filename is persisted on the record.

var uploadDir string

func InitializeUploads() {
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = filepath.Join("public", "images")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", dir).Msg("could not create upload directory")
	}
	uploadDir = dir
	log.Info().Str("dir", dir).Msg("upload directory ready")
}

// SaveImage streams src into the upload directory and returns the stored
// filename. The owner's id is encoded in the name so deletion can be scoped
// to the uploader without a lookup table.
func SaveImage(src io.Reader, ext string, ownerID uint) (string, error) {
	name := fmt.Sprintf("u%d-%s%s", ownerID, uuid.NewString(), ext)
	dst, err := os.Create(filepath.Join(uploadDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	return name, nil
}

// ImageOwner extracts the uploader id encoded in a stored filename.
func ImageOwner(name string) (uint, bool) {
	if !strings.HasPrefix(name, "u") {
		return 0, false
	}
	sep := strings.IndexByte(name, '-')
	if sep < 2 {
		return 0, false
	}
	id, err := strconv.ParseUint(name[1:sep], 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// RemoveImage deletes a stored file; used to compensate when the DB write
// after an upload fails.
func RemoveImage(name string) {
	if name == "" {
		return
	}
	if err := os.Remove(filepath.Join(uploadDir, name)); err != nil && !os.IsNotExist(err) {
		log.Error().Err(err).Str("file", name).Msg("could not remove uploaded image")
	}
}
