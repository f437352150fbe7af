package v1

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"
)

const uploadFormField = "file"

var (
	errEmptyBody        = errors.New("empty request body")
	errFilePartRequired = errors.New("file part is required")
	errInvalidMultipart = errors.New("invalid multipart body")
)

type upload struct {
	filename string
	body     io.Reader
	close    func()
}

// extractUpload returns the uploaded table: the "file" part of a multipart
// form, or the whole body for any other content type.
func extractUpload(r *http.Request) (*upload, error) {
	if r.MultipartForm != nil {
		return parsedMultipartFile(r)
	}

	contentType := r.Header.Get("Content-Type")
	if contentType != "" {
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err == nil && strings.EqualFold(mediaType, "multipart/form-data") {
			return extractMultipartFile(r)
		}
	}

	if r.Body == nil || r.Body == http.NoBody {
		return nil, errEmptyBody
	}

	return &upload{
		filename: r.URL.Query().Get("filename"),
		body:     r.Body,
		close:    func() {},
	}, nil
}

func extractMultipartFile(r *http.Request) (*upload, error) {
	reader, err := r.MultipartReader()
	if err != nil {
		return nil, errInvalidMultipart
	}

	for {
		part, err := reader.NextPart()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, errFilePartRequired
			}

			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				return nil, err
			}

			return nil, errInvalidMultipart
		}

		if part.FormName() == uploadFormField {
			return &upload{
				filename: part.FileName(),
				body:     part,
				close:    func() { _ = part.Close() },
			}, nil
		}
		_ = part.Close()
	}
}

// parsedMultipartFile serves a form that middleware already parsed.
func parsedMultipartFile(r *http.Request) (*upload, error) {
	file, header, err := r.FormFile(uploadFormField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, errFilePartRequired
		}
		return nil, errInvalidMultipart
	}

	return &upload{
		filename: header.Filename,
		body:     file,
		close: func() {
			_ = file.Close()
			_ = r.MultipartForm.RemoveAll()
		},
	}, nil
}
