package service

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/swecha/intern-portal/config"
	"github.com/swecha/intern-portal/util/common"
)

// safeEmailReplacer maps an email to a filesystem-safe key. The tokens are
// fixed: existing uploads were stored under them.
var safeEmailReplacer = strings.NewReplacer("@", "_at_", ".", "_dot_")

// SafeEmailKey derives the upload key for an email.
func SafeEmailKey(email string) string {
	return safeEmailReplacer.Replace(email)
}

// OfferLetterService stores one offer-letter PDF per user, keyed by email
// and overwritten on re-upload.
type OfferLetterService struct {
	folder string
}

func NewOfferLetterService() *OfferLetterService {
	return &OfferLetterService{folder: config.GetUploadFolder()}
}

// PathFor is the stored location for an email's offer letter, recorded in
// the users table's offer_letter column.
func (s *OfferLetterService) PathFor(email string) string {
	return filepath.Join(s.folder, SafeEmailKey(email)+".pdf")
}

// Save writes the blob and returns the stored path, which is what the users
// table records in its offer_letter column.
func (s *OfferLetterService) Save(email string, blob []byte) (string, error) {
	if strings.TrimSpace(email) == "" {
		return "", common.NewError("offer letter needs a registered email")
	}
	if err := os.MkdirAll(s.folder, 0o750); err != nil {
		return "", err
	}
	path := s.PathFor(email)
	if err := os.WriteFile(path, blob, 0o640); err != nil {
		return "", err
	}
	return path, nil
}

// Read returns the stored blob for an email.
func (s *OfferLetterService) Read(email string) ([]byte, error) {
	blob, err := os.ReadFile(s.PathFor(email))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, common.NewErrorf("no offer letter stored for %s", email)
	}
	return blob, err
}
