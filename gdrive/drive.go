package gdrive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
)

const XLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Drive is a single Google Drive file, identified by name when it is created.
type Drive struct {
	service *drive.Service
	name    string
	fileID  string
}

// Find looks up the (non-trashed) file with the given name. If there is more than one
// the first one returned by Drive is used.
func Find(ctx context.Context, service *drive.Service, name string) (*Drive, error) {
	q := fmt.Sprintf("name='%s' and trashed=false", escape(name))

	list, err := service.Files.List().
		Q(q).
		Fields("files(id, name)").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to search Google Drive for '%s' (%w)", name, err)
	}

	if len(list.Files) == 0 {
		return nil, fmt.Errorf("file '%s' not found in Google Drive", name)
	}

	return &Drive{
		service: service,
		name:    name,
		fileID:  list.Files[0].Id,
	}, nil
}

func (d *Drive) Name() string {
	return d.name
}

func (d *Drive) FileID() string {
	return d.fileID
}

// Download copies the file content to a temporary file alongside path and then renames
// it, so a failed download never leaves a truncated workbook behind.
func (d *Drive) Download(ctx context.Context, path string) error {
	rs, err := d.service.Files.Get(d.fileID).Context(ctx).Download()
	if err != nil {
		return fmt.Errorf("unable to download '%s' (%w)", d.name, err)
	}

	defer rs.Body.Close()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0770); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".workbook-*")
	if err != nil {
		return err
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if _, err := io.Copy(tmp, rs.Body); err != nil {
		return fmt.Errorf("error downloading '%s' (%w)", d.name, err)
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

func (d *Drive) Upload(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}

	defer f.Close()

	if _, err := d.service.Files.Update(d.fileID, &drive.File{}).
		Media(f, googleapi.ContentType(XLSX)).
		Context(ctx).
		Do(); err != nil {
		return fmt.Errorf("unable to upload '%s' (%w)", d.name, err)
	}

	return nil
}

func escape(v string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(v)
}
