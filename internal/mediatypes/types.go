package mediatypes

// FileType represents the type of a media file.
type FileType string

const (
	// FileTypeImage represents an image file.
	FileTypeImage FileType = "image"
	// FileTypeVideo represents a video file.
	FileTypeVideo FileType = "video"
	// FileTypeOther represents an unknown or unsupported file type.
	FileTypeOther FileType = "other"
)

// SourceImageExtensions maps file extensions to whether the image
// pipeline accepts them as source material.
var SourceImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// MappedImageExtensions is the wider set the mapping stage scans: it
// includes already-derived webp files alongside camera originals.
var MappedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// SourceVideoExtensions maps file extensions to whether the video
// pipeline accepts them as source material.
var SourceVideoExtensions = map[string]bool{
	".mp4": true,
	".mov": true,
	".avi": true,
}

// MappedVideoExtensions is the set the mapping stage scans, which
// includes the webm renditions the transcoder produces.
var MappedVideoExtensions = map[string]bool{
	".mp4":  true,
	".webm": true,
	".mov":  true,
}

// contentTypes maps file extensions to the Content-Type assigned on
// upload. Anything not listed is published as a generic binary.
var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".mp4":  "video/mp4",
}

// GetContentType returns the upload Content-Type for a given file
// extension. The extension should be lowercase and include the leading
// dot (e.g., ".jpg"). Returns "application/octet-stream" if the
// extension is not recognized.
func GetContentType(ext string) string {
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}

// GetFileType returns the FileType for a given file extension based on
// the mapped extension sets.
func GetFileType(ext string) FileType {
	if MappedImageExtensions[ext] {
		return FileTypeImage
	}
	if MappedVideoExtensions[ext] {
		return FileTypeVideo
	}
	return FileTypeOther
}
