// write.go implements book upload.
//
// Separated from read.go to isolate the mutating operation. The event is
// fired only after both files are on disk.

package document

import (
	"context"

	"github.com/jpl-au/bookrab/extension"
	"github.com/jpl-au/bookrab/internal/fault"
	"github.com/jpl-au/bookrab/internal/validate"
)

// Upload stores text and tags under title.
func (s *Service) Upload(ctx context.Context, title, text string, tags []string) error {
	if err := validate.Content(text, s.maxUpload); err != nil {
		return fault.Input(fault.CodeBadInput, "upload", title, err)
	}
	replaced := s.books.Exists(title)

	if err := s.books.Upload(ctx, title, text, tags); err != nil {
		return err
	}

	s.fireEvent(extension.BookUploadEvent{
		Title:    title,
		Tags:     tags,
		Bytes:    len(text),
		Replaced: replaced,
	})
	return nil
}
