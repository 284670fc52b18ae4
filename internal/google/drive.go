package google

import (
	"context"
	"fmt"
	"io"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Drive uploads files into the signed-in user's Google Drive.
type Drive struct {
	src     ClientSource
	appName string
	opts    []option.ClientOption
}

// NewDrive returns a Drive client. Extra opts are appended to every service
// construction, which lets tests point it at a fake endpoint.
func NewDrive(src ClientSource, appName string, opts ...option.ClientOption) *Drive {
	return &Drive{src: src, appName: appName, opts: opts}
}

// Upload creates a Drive file named name with the content of r and returns its id.
func (d *Drive) Upload(ctx context.Context, name, mimeType string, r io.Reader) (string, error) {
	hc, err := d.src.Client(ctx)
	if err != nil {
		return "", err
	}

	opts := append([]option.ClientOption{option.WithHTTPClient(hc), option.WithUserAgent(d.appName)}, d.opts...)
	srv, err := drive.NewService(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("drive client: %w", err)
	}

	var media []googleapi.MediaOption
	if mimeType != "" {
		media = append(media, googleapi.ContentType(mimeType))
	}
	f, err := srv.Files.Create(&drive.File{Name: name, MimeType: mimeType}).
		Media(r, media...).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("drive upload: %w", err)
	}
	return f.Id, nil
}
