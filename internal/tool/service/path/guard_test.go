package path

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyclone1070/mcp-server-git/internal/tool/errutil"
)

// newTree builds <tmp>/allowed/{sub/deep}, <tmp>/allowed-other and <tmp>/outside
// and returns the symlink-free tmp root.
func newTree(t *testing.T) string {
	t.Helper()
	tmp, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	for _, dir := range []string{"allowed/sub/deep", "allowed-other", "outside"} {
		require.NoError(t, os.MkdirAll(filepath.Join(tmp, dir), 0o755))
	}
	return tmp
}

func TestValidate_InsideRoot(t *testing.T) {
	tmp := newTree(t)
	root := filepath.Join(tmp, "allowed")
	guard := NewGuard(root)

	tests := []struct {
		name      string
		candidate string
		expected  string
	}{
		{"root itself", root, root},
		{"child", filepath.Join(root, "sub"), filepath.Join(root, "sub")},
		{"grandchild", filepath.Join(root, "sub", "deep"), filepath.Join(root, "sub", "deep")},
		{"dots collapse inside", filepath.Join(root, "sub", "..", "sub"), filepath.Join(root, "sub")},
		{"trailing separator", root + string(filepath.Separator), root},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := guard.Validate(tt.candidate)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestValidate_OutsideRoot(t *testing.T) {
	tmp := newTree(t)
	root := filepath.Join(tmp, "allowed")
	guard := NewGuard(root)

	tests := []struct {
		name      string
		candidate string
	}{
		{"sibling", filepath.Join(tmp, "outside")},
		{"string prefix but not child", filepath.Join(tmp, "allowed-other")},
		{"parent", tmp},
		{"escape via dots", filepath.Join(root, "..", "outside")},
		{"filesystem root", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := guard.Validate(tt.candidate)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errutil.ErrPathOutsideAllowedRoot), "got %v", err)
			var outside *OutsideRootError
			assert.True(t, errors.As(err, &outside))
		})
	}
}

func TestValidate_SymlinkEscape(t *testing.T) {
	tmp := newTree(t)
	root := filepath.Join(tmp, "allowed")
	link := filepath.Join(root, "escape")
	require.NoError(t, os.Symlink(filepath.Join(tmp, "outside"), link))

	_, err := NewGuard(root).Validate(link)

	assert.True(t, errors.Is(err, errutil.ErrPathOutsideAllowedRoot), "got %v", err)
}

func TestValidate_SymlinkedRoot(t *testing.T) {
	tmp := newTree(t)
	rootLink := filepath.Join(tmp, "root-link")
	require.NoError(t, os.Symlink(filepath.Join(tmp, "allowed"), rootLink))

	got, err := NewGuard(rootLink).Validate(filepath.Join(tmp, "allowed", "sub"))

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmp, "allowed", "sub"), got)
}

func TestValidate_UnresolvablePath(t *testing.T) {
	tmp := newTree(t)
	guard := NewGuard(filepath.Join(tmp, "allowed"))

	_, err := guard.Validate(filepath.Join(tmp, "allowed", "missing"))

	assert.True(t, errors.Is(err, errutil.ErrInvalidPath), "got %v", err)
	assert.False(t, errors.Is(err, errutil.ErrPathOutsideAllowedRoot))
}

func TestValidate_UnresolvableRoot(t *testing.T) {
	tmp := newTree(t)
	guard := NewGuard(filepath.Join(tmp, "gone"))

	_, err := guard.Validate(filepath.Join(tmp, "allowed"))

	assert.True(t, errors.Is(err, errutil.ErrInvalidPath), "got %v", err)
}

func TestValidate_NoRootConfigured(t *testing.T) {
	guard := NewGuard("")

	for _, candidate := range []string{"/etc", "/definitely/not/here", "/"} {
		got, err := guard.Validate(candidate)
		require.NoError(t, err, candidate)
		assert.Equal(t, filepath.Clean(candidate), got)
	}

	rel, err := guard.Validate("relative/dir")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(rel))
}

func TestWithin(t *testing.T) {
	assert.True(t, within("/", "/etc"))
	assert.True(t, within("/a", "/a"))
	assert.True(t, within("/a", "/a/b"))
	assert.False(t, within("/a", "/ab"))
	assert.False(t, within("/a/b", "/a"))
}

func TestCanonicaliseRoot(t *testing.T) {
	tmp := newTree(t)

	t.Run("valid directory", func(t *testing.T) {
		got, err := CanonicaliseRoot(filepath.Join(tmp, "allowed"))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(tmp, "allowed"), got)
	})

	t.Run("non-existent path", func(t *testing.T) {
		_, err := CanonicaliseRoot(filepath.Join(tmp, "non-existent"))
		assert.True(t, errors.Is(err, errutil.ErrInvalidPath))
	})

	t.Run("file instead of directory", func(t *testing.T) {
		file := filepath.Join(tmp, "file.txt")
		require.NoError(t, os.WriteFile(file, []byte("test"), 0o644))
		_, err := CanonicaliseRoot(file)
		var notDir *NotADirectoryError
		assert.True(t, errors.As(err, &notDir))
	})
}
