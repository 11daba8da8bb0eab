package tftpd

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	tftp "github.com/pin/tftp/v3"

	"static-site-server/httpd"
)

// readHandler serves read requests from root. Requested names go through
// the same containment rule as HTTP paths; writes are not supported.
func readHandler(root string, logger *log.Logger) func(string, io.ReaderFrom) error {
	return func(filename string, rf io.ReaderFrom) error {
		name := strings.TrimSpace(filename)
		rel, err := httpd.Resolve(root, "/"+name)
		if err != nil {
			if logger != nil {
				logger.Printf("denied %q: %v", name, err)
			}
			return err
		}
		f, err := os.Open(filepath.Join(root, rel))
		if err != nil {
			if logger != nil {
				logger.Printf("open %q: %v", rel, err)
			}
			return err
		}
		defer f.Close()
		n, err := rf.ReadFrom(f)
		if logger != nil {
			logger.Printf("RRQ %q -> %d bytes", rel, n)
		}
		return err
	}
}

// StartTFTPServer runs a read-only TFTP endpoint over root.
func StartTFTPServer(addr, root string, logger *log.Logger) (*tftp.Server, error) {
	srv := tftp.NewServer(readHandler(root, logger), nil)
	srv.SetTimeout(5 * time.Second)

	go func() {
		if logger != nil {
			logger.Printf("listening on %s root=%q", addr, root)
		}
		if err := srv.ListenAndServe(addr); err != nil {
			if logger != nil {
				logger.Printf("server error: %v", err)
			}
		}
	}()
	return srv, nil
}
