package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var photoExts = []string{"jpg", "jpeg", "png", "gif", "webp"}

// EnsureDir creates a directory if it doesn't exist
func EnsureDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}

// GetFileExtension returns the lower-cased file extension without the dot
func GetFileExtension(filename string) string {
	ext := filepath.Ext(filename)
	if len(ext) > 0 {
		return strings.ToLower(ext[1:])
	}
	return ""
}

// IsPhotoFile checks if a file name carries an extension the photo picker accepts
func IsPhotoFile(filename string) bool {
	ext := GetFileExtension(filename)
	for _, photoExt := range photoExts {
		if ext == photoExt {
			return true
		}
	}
	return false
}

// OutputPath builds the path of a composite derived from an input photo.
// An empty input yields the plain download name.
func OutputPath(inputFile, outputDir, base, ext string) string {
	name := base
	if inputFile != "" {
		stem := strings.TrimSuffix(filepath.Base(inputFile), filepath.Ext(inputFile))
		name = fmt.Sprintf("%s_%s", SanitizeFilename(stem), base)
	}
	return filepath.Join(outputDir, name+"."+ext)
}

// DirExists checks if a directory exists
func DirExists(dirname string) bool {
	info, err := os.Stat(dirname)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && info.IsDir()
}

// SanitizeFilename removes or replaces invalid characters in filenames
func SanitizeFilename(filename string) string {
	invalid := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|", " "}
	result := filename

	for _, char := range invalid {
		result = strings.ReplaceAll(result, char, "_")
	}

	result = strings.Trim(result, "_.")
	if result == "" {
		return "photo"
	}
	return result
}

// FormatFileSize formats file size in human-readable format
func FormatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	value := float64(size) / float64(div)
	if value == float64(int64(value)) {
		return fmt.Sprintf("%d %cB", int64(value), "KMGTPE"[exp])
	}
	return fmt.Sprintf("%.1f %cB", value, "KMGTPE"[exp])
}
