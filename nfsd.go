package main

import (
	"log"
	"net"

	"github.com/go-git/go-billy/v5"
	nfs "github.com/willscott/go-nfs"
	nfshelper "github.com/willscott/go-nfs/helpers"
)

// StartNFSD exports the document root read-only over NFS. The export
// shares the same billy filesystem as the HTTP front end, so the root
// boundary is identical for both.
func StartNFSD(addr string, docFS billy.Filesystem, logger *log.Logger) (net.Listener, error) {
	if addr == "" {
		addr = ":2049"
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	handler := nfshelper.NewNullAuthHandler(nfshelper.NewROFS(docFS))
	cached := nfshelper.NewCachingHandler(handler, 1024)
	go func() {
		if logger != nil {
			logger.Printf("export listening on %s", ln.Addr())
		}
		if err := nfs.Serve(ln, cached); err != nil {
			if logger != nil {
				logger.Printf("serve error: %v", err)
			}
		}
	}()
	return ln, nil
}
