package httpd

import "testing"

func TestResolve(t *testing.T) {
	root := t.TempDir()
	cases := map[string]string{
		"/":           ".",
		"":            ".",
		"/index.html": "index.html",
		"/a/b.txt":    "a/b.txt",
		"//a///b":     "a/b",
		"/./a":        "a",
	}
	for in, want := range cases {
		got, err := Resolve(root, in)
		if err != nil {
			t.Fatalf("Resolve(%q) error: %v", in, err)
		}
		if got != want {
			t.Fatalf("Resolve(%q) got=%q want=%q", in, got, want)
		}
	}
}

func TestResolveTraversal(t *testing.T) {
	root := t.TempDir()
	// Any parent reference is rejected, including ones that would clean
	// back inside the root.
	denied := []string{
		"/..",
		"..",
		"/../etc/passwd",
		"/../../etc/passwd",
		"/a/../../etc/passwd",
		"/a/b/../../../x",
		"/a/../b",
	}
	for _, p := range denied {
		if _, err := Resolve(root, p); err == nil {
			t.Fatalf("Resolve(%q) expected error, got nil", p)
		}
	}
}
