package utils

import (
	"path/filepath"
	"testing"
)

func TestBuildDirPath(t *testing.T) {
	sep := string(filepath.Separator)
	tests := []struct {
		dirs []string
		want string
	}{
		{[]string{".", ".git"}, "." + sep + ".git" + sep},
		{[]string{"project", ".git"}, "project" + sep + ".git" + sep},
		{[]string{".git"}, ".git" + sep},
	}
	for _, test := range tests {
		if got := BuildDirPath(test.dirs...); got != test.want {
			t.Errorf("BuildDirPath(%q) = %q, want %q", test.dirs, got, test.want)
		}
	}
}
