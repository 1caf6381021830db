package handlers

import (
	"io"
	"mime/multipart"
	"strings"

	"github.com/trektide/trektide/internal/httperr"
)

// Uploaded images are held in memory for processing; anything bigger than
// this is refused outright.
const maxUploadBytes = 10 << 20

func readUpload(header *multipart.FileHeader) ([]byte, error) {
	if header.Size > maxUploadBytes {
		return nil, httperr.BadRequest("Image too large, the limit is 10MB")
	}
	if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
		return nil, httperr.BadRequest("Not an image. Please upload only images")
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}
