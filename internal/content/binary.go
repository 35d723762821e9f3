package content

import (
	"github.com/temirov/codedigest/internal/utils"
)

// BinaryExtensions lists lower-cased file extensions whose content is never read.
var BinaryExtensions = []string{
	// images
	".png", ".jpg", ".jpeg", ".gif", ".bmp", ".ico", ".webp", ".tif", ".tiff", ".psd", ".heic", ".avif",
	// archives
	".zip", ".tar", ".gz", ".tgz", ".bz2", ".xz", ".7z", ".rar", ".zst", ".jar", ".war",
	// executables and libraries
	".exe", ".dll", ".so", ".dylib", ".bin", ".msi", ".dmg", ".apk", ".deb", ".rpm",
	// audio and video
	".mp3", ".wav", ".flac", ".ogg", ".aac", ".m4a", ".mp4", ".mov", ".avi", ".mkv", ".webm", ".wmv",
	// fonts
	".ttf", ".otf", ".woff", ".woff2", ".eot",
	// compiled objects
	".o", ".obj", ".a", ".lib", ".class", ".pyc", ".pyo", ".wasm", ".node",
	// documents and databases
	".pdf", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx", ".sqlite", ".db",
}

var binaryExtensionSet = buildExtensionSet(BinaryExtensions)

func buildExtensionSet(extensions []string) map[string]struct{} {
	set := make(map[string]struct{}, len(extensions))
	for _, extension := range extensions {
		set[extension] = struct{}{}
	}
	return set
}

// IsBinaryPath reports whether the extension of slashPath is a known binary extension.
func IsBinaryPath(slashPath string) bool {
	_, binary := binaryExtensionSet[utils.Extension(slashPath)]
	return binary
}
