package backend

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/target/boxoffice/internal/domain/model"
	"github.com/target/boxoffice/internal/ports"
)

var _ ports.UploadAPI = (*UploadClient)(nil)

// UploadFieldName is the multipart field the backend reads the image from.
const UploadFieldName = "image"

// UploadClient calls /api/upload/image.
type UploadClient struct{ c *Client }

// UploadImage sends r as a multipart form file and returns the stored image URL.
func (u *UploadClient) UploadImage(
	ctx context.Context,
	token, filename string,
	r io.Reader,
) model.Result[*model.UploadedImage] {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(UploadFieldName, filename)
	if err != nil {
		return model.Fail[*model.UploadedImage](err.Error())
	}
	if _, err := io.Copy(part, r); err != nil {
		return model.Fail[*model.UploadedImage](err.Error())
	}
	if err := mw.Close(); err != nil {
		return model.Fail[*model.UploadedImage](err.Error())
	}

	res := call[*model.UploadedImage](ctx, u.c, request{
		method:      http.MethodPost,
		path:        "/api/upload/image",
		token:       token,
		body:        &buf,
		contentType: mw.FormDataContentType(),
		keys:        []string{"image"},
	})
	if res.Success && (res.Data == nil || res.Data.URL == "") {
		out := model.Fail[*model.UploadedImage]("upload response did not include an image URL")
		out.Status = res.Status
		return out
	}
	return res
}
