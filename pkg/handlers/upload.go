package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"
)

// Upload errors returned by ReadFormFile.
var (
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")
	ErrInvalidFile  = errors.New("invalid file")
)

// FormFile is an uploaded file extracted from a multipart form.
type FormFile struct {
	Data        []byte
	Filename    string
	ContentType string
}

// ReadFormFile parses a multipart form request and reads the named file
// field, rejecting bodies over maxUploadSize. The content type reported
// by the client is kept unless it is missing or generic, in which case it
// is sniffed from the data.
func ReadFormFile(r *http.Request, field string, maxUploadSize int64) (*FormFile, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, ErrFileTooLarge
		}
		return nil, ErrInvalidFile
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, ErrInvalidFile
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, ErrInvalidFile
	}

	return &FormFile{
		Data:        data,
		Filename:    header.Filename,
		ContentType: detectContentType(header.Header.Get("Content-Type"), data),
	}, nil
}

func detectContentType(header string, data []byte) string {
	header = strings.TrimSpace(header)
	if header != "" && header != "application/octet-stream" {
		return header
	}
	return http.DetectContentType(data)
}
