package fileutil_test

// Notes:
// - The WriteString and Close error branches in WriteTempFile are not
//   tested because triggering disk write failures is platform-specific.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-md2img/internal/fileutil"
)

func TestValidateExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		extension string
		wantErr   error
	}{
		{
			name:      "valid extension html",
			extension: "html",
		},
		{
			name:      "valid extension jpg",
			extension: "jpg",
		},
		{
			name:      "empty extension",
			extension: "",
			wantErr:   fileutil.ErrExtensionEmpty,
		},
		{
			name:      "forward slash",
			extension: "a/b",
			wantErr:   fileutil.ErrExtensionPathTraversal,
		},
		{
			name:      "backslash",
			extension: `a\b`,
			wantErr:   fileutil.ErrExtensionPathTraversal,
		},
		{
			name:      "null byte",
			extension: "a\x00b",
			wantErr:   fileutil.ErrExtensionPathTraversal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := fileutil.ValidateExtension(tt.extension)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateExtension(%q) = %v, want nil", tt.extension, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateExtension(%q) = %v, want %v", tt.extension, err, tt.wantErr)
			}
		})
	}
}

func TestWriteTempFile(t *testing.T) {
	t.Parallel()

	content := "<html><body>hi</body></html>"
	path, cleanup, err := fileutil.WriteTempFile(content, "html")
	if err != nil {
		t.Fatalf("WriteTempFile: %v", err)
	}
	defer cleanup()

	if !strings.HasSuffix(path, ".html") {
		t.Errorf("path %q missing extension", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != content {
		t.Errorf("content = %q, want %q", data, content)
	}

	cleanup()
	if fileutil.FileExists(path) {
		t.Error("cleanup did not remove the file")
	}
}

func TestWriteTempFile_InvalidExtension(t *testing.T) {
	t.Parallel()

	_, _, err := fileutil.WriteTempFile("x", "")
	if !errors.Is(err, fileutil.ErrExtensionEmpty) {
		t.Errorf("WriteTempFile with empty extension = %v, want ErrExtensionEmpty", err)
	}
}

func TestWriteUniqueFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	data := []byte{0x01, 0x02, 0x03}

	first, err := fileutil.WriteUniqueFile(dir, "render-*.jpg", data)
	if err != nil {
		t.Fatalf("WriteUniqueFile: %v", err)
	}
	second, err := fileutil.WriteUniqueFile(dir, "render-*.jpg", data)
	if err != nil {
		t.Fatalf("WriteUniqueFile: %v", err)
	}

	if first == second {
		t.Errorf("paths not unique: %q", first)
	}
	for _, path := range []string{first, second} {
		if filepath.Dir(path) != dir {
			t.Errorf("file %q written outside %q", path, dir)
		}
		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile: %v", err)
		}
		if string(got) != string(data) {
			t.Errorf("content = %v, want %v", got, data)
		}
	}
}

func TestWriteUniqueFile_MissingDir(t *testing.T) {
	t.Parallel()

	_, err := fileutil.WriteUniqueFile(filepath.Join(t.TempDir(), "absent"), "x-*.jpg", []byte("d"))
	if err == nil {
		t.Error("WriteUniqueFile into missing dir succeeded")
	}
}

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if !fileutil.FileExists(path) {
		t.Error("FileExists(regular file) = false")
	}
	if fileutil.FileExists(dir) {
		t.Error("FileExists(directory) = true")
	}
	if fileutil.FileExists(filepath.Join(dir, "absent")) {
		t.Error("FileExists(missing) = true")
	}
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"default", false},
		{"./custom.yaml", true},
		{"../shared/conf.yaml", true},
		{"/absolute/path.yaml", true},
		{`C:\windows\conf.yaml`, true},
		{"my-config", false},
	}

	for _, tt := range tests {
		if got := fileutil.IsFilePath(tt.input); got != tt.want {
			t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
