package gdrive

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/drive/v3"
)

type Revision struct {
	ID       string
	Modified time.Time
}

// Revision returns the most recently modified revision of the file.
func (d *Drive) Revision(ctx context.Context) (*Revision, error) {
	page := ""
	latest := Revision{}

	for {
		call := drive.NewRevisionsService(d.service).
			List(d.fileID).
			Fields("nextPageToken, revisions(id, modifiedTime)").
			Context(ctx)

		if page != "" {
			call.PageToken(page)
		}

		revisions, err := call.Do()
		if err != nil {
			return nil, err
		}

		for _, revision := range revisions.Revisions {
			modified, err := time.Parse(time.RFC3339, revision.ModifiedTime)
			if err != nil {
				return nil, err
			}

			if latest.Modified.Before(modified) {
				latest.ID = revision.Id
				latest.Modified = modified
			}
		}

		if page = revisions.NextPageToken; page == "" {
			break
		}
	}

	if latest.Modified.IsZero() {
		return nil, fmt.Errorf("unable to identify latest revision for file ID %s", d.fileID)
	}

	return &latest, nil
}
