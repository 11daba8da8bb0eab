package httpd

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-git/go-billy/v5"
)

// Config holds the immutable serving parameters. Root is the absolute
// document root path, used for containment checks and diagnostics; reads
// go through the Filesystem handed to NewHandler.
type Config struct {
	Root         string
	Index        string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

const (
	defaultIndex   = "index.html"
	defaultTimeout = 30 * time.Second
)

// Handler serves files from a filesystem rooted at the document root.
// GET and HEAD only; everything else is 405.
type Handler struct {
	fs     billy.Filesystem
	root   string
	index  string
	logger *log.Logger
}

func NewHandler(fs billy.Filesystem, cfg Config, logger *log.Logger) *Handler {
	index := cfg.Index
	if index == "" {
		index = defaultIndex
	}
	return &Handler{fs: fs, root: cfg.Root, index: index, logger: logger}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
	default:
		w.Header().Set("Allow", "GET, HEAD")
		h.respondError(w, r, http.StatusMethodNotAllowed)
		return
	}

	name, err := Resolve(h.root, r.URL.Path)
	if err != nil {
		h.respondError(w, r, http.StatusForbidden)
		return
	}

	fi, err := h.fs.Stat(name)
	if err == nil && fi.IsDir() {
		name = h.fs.Join(name, h.index)
		fi, err = h.fs.Stat(name)
	}
	if err != nil {
		if os.IsNotExist(err) {
			h.respondError(w, r, http.StatusNotFound)
			return
		}
		if h.logger != nil {
			h.logger.Printf("stat %q: %v", name, err)
		}
		h.respondError(w, r, http.StatusInternalServerError)
		return
	}
	if fi.IsDir() {
		// No directory listings; a directory without a regular index
		// file is treated as absent.
		h.respondError(w, r, http.StatusNotFound)
		return
	}

	f, err := h.fs.Open(name)
	if err != nil {
		if h.logger != nil {
			h.logger.Printf("open %q: %v", name, err)
		}
		if os.IsNotExist(err) {
			h.respondError(w, r, http.StatusNotFound)
			return
		}
		h.respondError(w, r, http.StatusInternalServerError)
		return
	}
	defer f.Close()

	ctype := mime.TypeByExtension(filepath.Ext(name))
	if ctype == "" {
		ctype = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ctype)
	w.Header().Set("Content-Length", strconv.FormatInt(fi.Size(), 10))
	w.WriteHeader(http.StatusOK)

	var written int64
	if r.Method == http.MethodGet {
		written, err = io.Copy(w, f)
		if err != nil && h.logger != nil {
			// Client gone or socket timeout; this response is lost but
			// the listener keeps serving.
			h.logger.Printf("write %q aborted after %d bytes: %v", r.URL.Path, written, err)
		}
	}
	h.access(r, http.StatusOK, written)
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, status int) {
	body := fmt.Sprintf("%d %s: %s\n", status, http.StatusText(status), r.URL.Path)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	var written int64
	if r.Method != http.MethodHead {
		n, _ := io.WriteString(w, body)
		written = int64(n)
	}
	h.access(r, status, written)
}

func (h *Handler) access(r *http.Request, status int, bytes int64) {
	if h.logger != nil {
		h.logger.Printf("%s %s %d %d", r.Method, r.URL.Path, status, bytes)
	}
}

// Server owns the listening socket and its configuration for its entire
// lifetime.
type Server struct {
	srv *http.Server
	ln  net.Listener
}

// StartHTTPServer binds addr and serves files from fs on a goroutine.
// The bind happens synchronously so a taken port or privilege problem
// fails fast at startup.
func StartHTTPServer(addr string, fs billy.Filesystem, cfg Config, logger *log.Logger) (*Server, error) {
	if addr == "" {
		addr = ":8000"
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = defaultTimeout
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = defaultTimeout
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	srv := &http.Server{
		Handler:      NewHandler(fs, cfg, logger),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	go func() {
		if logger != nil {
			logger.Printf("listening on %s root=%q index=%q", ln.Addr(), cfg.Root, cfg.Index)
		}
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Printf("serve error: %v", err)
			}
		}
	}()
	return &Server{srv: srv, ln: ln}, nil
}

// Addr reports the effective bind address.
func (s *Server) Addr() net.Addr {
	return s.ln.Addr()
}

// Shutdown stops accepting connections and waits for in-flight responses
// until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
