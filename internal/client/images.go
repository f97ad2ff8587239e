// ABOUTME: Image upload endpoint of the AtlanticPhoto API
// ABOUTME: Streams a file as multipart form field "file" to POST /api/images

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// UploadedImage is the response of POST /api/images. Older servers
// report the location as "image" rather than "url".
type UploadedImage struct {
	ID          int    `json:"id,omitempty"`
	URL         string `json:"url,omitempty"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
}

// Location returns the image URL whichever field the server used
func (u *UploadedImage) Location() string {
	if u.URL != "" {
		return u.URL
	}
	return u.Image
}

// ImageUpload describes one file to upload
type ImageUpload struct {
	Filename    string
	Content     io.Reader
	Description string
	AccessToken string
}

// UploadImage calls POST /api/images with a multipart body
func (c *Client) UploadImage(ctx context.Context, in *ImageUpload) (*UploadedImage, error) {
	const op = "upload"

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeImageForm(mw, in))
	}()

	req, err := c.newRequest(ctx, http.MethodPost, "/api/images", pr)
	if err != nil {
		pr.Close()
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if in.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+in.AccessToken)
	}

	resp, err := c.do(ctx, op, req)
	if err != nil {
		pr.Close()
		return nil, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, &APIError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Detail:     "Failed to upload image",
		}
	}

	var img UploadedImage
	if err := json.NewDecoder(resp.Body).Decode(&img); err != nil {
		return nil, fmt.Errorf("invalid response from backend: %w", err)
	}
	return &img, nil
}

func writeImageForm(mw *multipart.Writer, in *ImageUpload) error {
	if in.Description != "" {
		if err := mw.WriteField("description", in.Description); err != nil {
			return err
		}
	}
	part, err := mw.CreateFormFile("file", in.Filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, in.Content); err != nil {
		return err
	}
	return mw.Close()
}
