package inbound

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"strings"
)

const defaultIndex = "index.html"

// ErrIndexMissing is returned when the asset directory has no entry document.
var ErrIndexMissing = errors.New("static: entry document not found")

// Static serves files from an asset directory. Paths that do not name a
// regular file get the entry document, so client-side routes load the page.
type Static struct {
	fsys  fs.FS
	index string
}

// NewStatic serves dir with index as the entry document.
func NewStatic(dir, index string) (*Static, error) {
	if dir == "" {
		dir = "public"
	}
	if index == "" {
		index = defaultIndex
	}

	return newStaticFS(os.DirFS(dir), index)
}

func newStaticFS(fsys fs.FS, index string) (*Static, error) {
	if st, err := fs.Stat(fsys, index); err != nil || !st.Mode().IsRegular() {
		return nil, errors.Join(ErrIndexMissing, err)
	}

	return &Static{fsys: fsys, index: index}, nil
}

func (s *Static) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if name != "" && s.serveFile(w, r, name) {
		return
	}
	if !s.serveFile(w, r, s.index) {
		http.NotFound(w, r)
	}
}

// serveFile writes name if it is a regular file and reports whether it did.
// Dot files are never served.
func (s *Static) serveFile(w http.ResponseWriter, r *http.Request, name string) bool {
	if hasDotSegment(name) {
		return false
	}

	f, err := s.fsys.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil || !st.Mode().IsRegular() {
		return false
	}

	rs, ok := f.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(f)
		if err != nil {
			slog.ErrorContext(r.Context(), "failed to read static file", "name", name, "error", err)
			return false
		}
		rs = strings.NewReader(string(data))
	}

	if name == s.index {
		w.Header().Set("Cache-Control", "no-cache")
	}
	http.ServeContent(w, r, st.Name(), st.ModTime(), rs)
	return true
}

func hasDotSegment(name string) bool {
	for _, seg := range strings.Split(name, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}
