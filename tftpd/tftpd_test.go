package tftpd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestReadHandler(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "boot.img"), []byte("IMAGE"), 0o644); err != nil {
		t.Fatal(err)
	}
	h := readHandler(root, nil)

	var buf bytes.Buffer
	if err := h("boot.img", &buf); err != nil {
		t.Fatalf("read boot.img: %v", err)
	}
	if buf.String() != "IMAGE" {
		t.Fatalf("read got=%q want=%q", buf.String(), "IMAGE")
	}

	if err := h("../etc/passwd", &bytes.Buffer{}); err == nil {
		t.Fatalf("expected traversal to be denied")
	}
	if err := h("missing.img", &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
