// Package upload stores multipart media under the uploads directory and
// returns the public path of each stored file.
package upload

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"hotel-management/pkg/apperror"
	"hotel-management/pkg/utils"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

type Kind string

const (
	KindImage Kind = "images"
	KindVideo Kind = "videos"
)

// PublicPrefix is the URL prefix the stored files are served under.
const PublicPrefix = "/uploads"

type Manager struct {
	dir    string
	limits map[Kind]int64
	log    *zap.Logger
}

func NewManager(cfg utils.UploadConfig, log *zap.Logger) (*Manager, error) {
	m := &Manager{
		dir: cfg.Dir,
		limits: map[Kind]int64{
			KindImage: cfg.MaxImageBytes,
			KindVideo: cfg.MaxVideoBytes,
		},
		log: log.With(zap.String("component", "upload")),
	}

	for kind := range m.limits {
		if err := os.MkdirAll(filepath.Join(m.dir, string(kind)), 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir %s: %w", kind, err)
		}
	}
	return m, nil
}

// Dir is the root directory served at PublicPrefix.
func (m *Manager) Dir() string {
	return m.dir
}

// Save checks the size cap, sniffs the content and writes the file. The
// returned path is relative to the server root, e.g.
// /uploads/images/thumbnail-1700000000000-42.png.
func (m *Manager) Save(field string, kind Kind, fh *multipart.FileHeader) (string, error) {
	limit := m.limits[kind]
	if limit > 0 && fh.Size > limit {
		return "", apperror.New(http.StatusBadRequest, apperror.TypeInvalidFile,
			fmt.Sprintf("%s exceeds the %d MB limit", fh.Filename, limit/(1<<20)), "field", field)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer src.Close()

	return m.store(field, kind, src)
}

func (m *Manager) store(field string, kind Kind, src io.Reader) (string, error) {
	head := make([]byte, 3072)
	n, err := io.ReadFull(src, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("read upload head: %w", err)
	}
	head = head[:n]

	mtype := mimetype.Detect(head)
	if !accepts(kind, mtype) {
		return "", apperror.New(http.StatusBadRequest, apperror.TypeInvalidFile,
			fmt.Sprintf("Unsupported file type %s", mtype.String()), "field", field)
	}

	name := utils.GenerateFileName(field, mtype.Extension())
	dst := filepath.Join(m.dir, string(kind), name)

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", dst, err)
	}

	reader := io.MultiReader(bytes.NewReader(head), src)
	if limit := m.limits[kind]; limit > 0 {
		reader = io.LimitReader(reader, limit+1)
	}

	written, err := io.Copy(out, reader)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("write %s: %w", dst, err)
	}
	if limit := m.limits[kind]; limit > 0 && written > limit {
		os.Remove(dst)
		return "", apperror.New(http.StatusBadRequest, apperror.TypeInvalidFile,
			fmt.Sprintf("File exceeds the %d MB limit", limit/(1<<20)), "field", field)
	}

	m.log.Debug("Stored upload",
		zap.String("field", field),
		zap.String("path", dst),
		zap.String("mime", mtype.String()),
		zap.Int64("bytes", written))

	return path.Join(PublicPrefix, string(kind), name), nil
}

// SaveAll stores every file of a multipart field in order.
func (m *Manager) SaveAll(field string, kind Kind, files []*multipart.FileHeader) ([]string, error) {
	paths := make([]string, 0, len(files))
	for _, fh := range files {
		p, err := m.Save(field, kind, fh)
		if err != nil {
			m.Remove(paths...)
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// Remove deletes previously stored files by public path. Unknown paths are
// ignored.
func (m *Manager) Remove(publicPaths ...string) {
	for _, p := range publicPaths {
		rel := strings.TrimPrefix(p, PublicPrefix+"/")
		if rel == p || strings.Contains(rel, "..") {
			continue
		}
		if err := os.Remove(filepath.Join(m.dir, filepath.FromSlash(rel))); err != nil && !os.IsNotExist(err) {
			m.log.Warn("Failed to remove upload", zap.String("path", p), zap.Error(err))
		}
	}
}

func accepts(kind Kind, mtype *mimetype.MIME) bool {
	for t := mtype; t != nil; t = t.Parent() {
		if strings.HasPrefix(t.String(), strings.TrimSuffix(string(kind), "s")+"/") {
			return true
		}
	}
	return false
}
