package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-git/go-billy/v5/osfs"

	"static-site-server/httpd"
	"static-site-server/tftpd"
	"static-site-server/utils"
)

func main() {
	configPath := flag.String("config", "", "optional TOML config file")
	host := flag.String("host", "", "address to bind (default all interfaces)")
	port := flag.Int("port", 8000, "TCP port to listen on")
	root := flag.String("root", ".", "document root directory")
	index := flag.String("index", "index.html", "file served for directory requests")
	drain := flag.Int("drain", 10, "shutdown drain timeout in seconds")
	tftpEnable := flag.Bool("tftp", false, "enable read-only TFTP endpoint")
	tftpAddr := flag.String("tftp-addr", ":69", "TFTP bind address")
	nfsEnable := flag.Bool("nfs", false, "enable read-only NFS export")
	nfsAddr := flag.String("nfs-addr", ":2049", "NFS bind address")
	flag.Parse()

	cfg := defaultConfig()
	if *configPath != "" {
		if err := loadConfigFile(*configPath, &cfg); err != nil {
			log.Fatalf("load config failure: %v", err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		log.Fatalf("bad environment: %v", err)
	}
	// Explicitly set flags win over file and environment.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "host":
			cfg.Host = *host
		case "port":
			cfg.Port = *port
		case "root":
			cfg.Root = *root
		case "index":
			cfg.Index = *index
		case "drain":
			cfg.DrainSeconds = *drain
		case "tftp":
			cfg.TFTP = *tftpEnable
		case "tftp-addr":
			cfg.TFTPAddr = *tftpAddr
		case "nfs":
			cfg.NFS = *nfsEnable
		case "nfs-addr":
			cfg.NFSAddr = *nfsAddr
		}
	})

	absRoot, err := filepath.Abs(cfg.Root)
	if err != nil {
		log.Fatalf("resolve root %q: %v", cfg.Root, err)
	}
	if fi, err := os.Stat(absRoot); err != nil || !fi.IsDir() {
		log.Fatalf("document root %q is not a directory", absRoot)
	}
	docFS := osfs.New(absRoot)

	loggerHTTP := log.New(os.Stdout, "httpd ", log.LstdFlags)
	srv, err := httpd.StartHTTPServer(
		utils.ListenAddr(cfg.Host, cfg.Port),
		docFS,
		httpd.Config{Root: absRoot, Index: cfg.Index},
		loggerHTTP,
	)
	if err != nil {
		log.Fatalf("start httpd failure: %v", err)
	}
	fmt.Printf("serving %s on http://%s/ (port %d)\n",
		absRoot, srv.Addr(), utils.MustPort(srv.Addr().String()))

	if cfg.TFTP {
		loggerTFTP := log.New(os.Stdout, "tftp ", log.LstdFlags)
		if _, err := tftpd.StartTFTPServer(cfg.TFTPAddr, absRoot, loggerTFTP); err != nil {
			log.Fatalf("start tftp failure: %v", err)
		}
	}

	if cfg.NFS {
		loggerNFS := log.New(os.Stdout, "nfs ", log.LstdFlags)
		if _, err := StartNFSD(cfg.NFSAddr, docFS, loggerNFS); err != nil {
			log.Fatalf("start nfs failure: %v", err)
		}
	}

	// Block until termination signal, then drain in-flight responses.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop
	log.Printf("received signal %s, draining", sig)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.DrainSeconds)*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("drain incomplete: %v", err)
	}
}
