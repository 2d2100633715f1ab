package registry

import (
	"net/url"
	"path/filepath"
	"strings"
)

// imageExts are icon extensions that refer to an asset shipped next to the
// plugin manifest.
var imageExts = []string{".svg", ".png", ".jpg", ".jpeg"}

func isImageAsset(icon string) bool {
	ext := strings.ToLower(filepath.Ext(icon))
	for _, e := range imageExts {
		if ext == e {
			return true
		}
	}
	return false
}

// isURL reports whether icon carries a URL scheme such as https: or data:.
// Single-letter schemes are Windows drive letters, not URLs.
func isURL(icon string) bool {
	u, err := url.Parse(icon)
	return err == nil && len(u.Scheme) > 1
}

// resolveIcon rewrites a relative image icon to an absolute path in the
// directory of the manifest at filePath. Absolute paths, URLs and icons that
// are not image assets are returned unchanged, so resolving twice is a no-op.
func resolveIcon(icon, filePath string) string {
	if icon == "" || !isImageAsset(icon) || filepath.IsAbs(icon) || isURL(icon) {
		return icon
	}
	return filepath.Join(filepath.Dir(filePath), filepath.FromSlash(icon))
}
