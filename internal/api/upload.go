package api

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"

	"github.com/vietddude/godad/internal/rest"
)

// UploadService wraps the file-upload endpoint.
type UploadService struct {
	client *rest.Client
}

func NewUploadService(client *rest.Client) *UploadService {
	return &UploadService{client: client}
}

// UploadResult is the stored-file descriptor returned by the backend.
type UploadResult struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

// Image uploads one image as a multipart form. The multipart writer owns
// the Content-Type so the boundary survives intact.
func (s *UploadService) Image(ctx context.Context, filename string, r io.Reader) (*UploadResult, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	env, err := s.client.Do(ctx, &rest.Request{
		Method: "POST",
		Path:   "/upload/image",
		Body:   rest.RawBody{ContentType: w.FormDataContentType(), Data: buf.Bytes()},
	})
	if err != nil {
		return nil, err
	}
	var res UploadResult
	if err := env.Decode(&res); err != nil {
		return nil, err
	}
	return &res, nil
}
