package storage

import (
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

var ErrFileNotFound = errors.New("resume file not found")

// ResumeStore keeps uploaded resumes on disk under a single directory,
// addressable by generated filename.
type ResumeStore struct {
	dir string
}

func NewResumeStore(dir string) (*ResumeStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	return &ResumeStore{dir: dir}, nil
}

func (s *ResumeStore) Dir() string {
	return s.dir
}

// Save writes the uploaded file under a timestamp-prefixed name derived from
// the original filename. Collisions need the same name within the same
// millisecond, which is accepted as good enough here.
func (s *ResumeStore) Save(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()

	if err != nil {
		return "", err
	}

	defer src.Close()

	name := strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + sanitizeName(file.Filename)

	dst, err := os.Create(filepath.Join(s.dir, name))

	if err != nil {
		return "", err
	}

	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return name, nil
}

// Resolve maps a client-supplied filename to a path inside the store,
// rejecting anything that would escape the uploads directory.
func (s *ResumeStore) Resolve(filename string) (string, error) {
	name := filepath.Base(filename)

	if name == "." || name == ".." || name == "" || name != filename {
		return "", ErrFileNotFound
	}

	path := filepath.Join(s.dir, name)

	if _, err := os.Stat(path); err != nil {
		return "", ErrFileNotFound
	}

	return path, nil
}

// Open returns a reader over a stored resume, for inline streaming.
func (s *ResumeStore) Open(filename string) (io.ReadCloser, error) {
	path, err := s.Resolve(filename)

	if err != nil {
		return nil, err
	}

	return os.Open(path)
}

func sanitizeName(original string) string {
	name := filepath.Base(original)
	name = strings.ReplaceAll(name, " ", "_")

	if name == "." || name == ".." || name == "" {
		name = "resume"
	}

	return name
}
