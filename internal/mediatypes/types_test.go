package mediatypes

import "testing"

func TestGetContentType(t *testing.T) {
	tests := []struct {
		ext      string
		expected string
	}{
		{".jpg", "image/jpeg"},
		{".jpeg", "image/jpeg"},
		{".png", "image/png"},
		{".webp", "image/webp"},
		{".mp4", "video/mp4"},
		{".webm", "application/octet-stream"},
		{".txt", "application/octet-stream"},
		{"", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			if got := GetContentType(tt.ext); got != tt.expected {
				t.Errorf("GetContentType(%q) = %q, want %q", tt.ext, got, tt.expected)
			}
		})
	}
}

func TestGetFileType(t *testing.T) {
	tests := []struct {
		ext      string
		expected FileType
	}{
		{".jpg", FileTypeImage},
		{".webp", FileTypeImage},
		{".mp4", FileTypeVideo},
		{".webm", FileTypeVideo},
		{".avi", FileTypeOther},
		{".mdx", FileTypeOther},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			if got := GetFileType(tt.ext); got != tt.expected {
				t.Errorf("GetFileType(%q) = %v, want %v", tt.ext, got, tt.expected)
			}
		})
	}
}

func TestSourceExtensionSets(t *testing.T) {
	if SourceImageExtensions[".webp"] {
		t.Error("derived webp files must not be treated as image source material")
	}
	if !MappedImageExtensions[".webp"] {
		t.Error("mapping stage must scan derived webp files")
	}
	if SourceVideoExtensions[".webm"] {
		t.Error("derived webm files must not be re-transcoded")
	}
}
