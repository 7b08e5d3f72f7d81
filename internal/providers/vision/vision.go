package vision

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/sandevgo/askgate/internal/config"
	"github.com/sandevgo/askgate/internal/core"
)

// NewProvider selects the configured vision backend.
func NewProvider(appCfg *config.AppConfig, cfg *config.VisionConfig) core.VisionGenerator {
	if appCfg.IsLocalVisionSelected() {
		return NewLocal(cfg)
	}
	return NewRemote(cfg)
}

func supportedExtensions(allowWebP bool) map[string]struct{} {
	exts := map[string]struct{}{
		".jpg":  {},
		".jpeg": {},
		".png":  {},
	}
	if allowWebP {
		exts[".webp"] = struct{}{}
	}
	return exts
}

// validateExtension rejects unsupported image types before any network
// call or temp file is made. Returns the lowercased extension.
func validateExtension(filename string, allowed map[string]struct{}) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowed[ext]; !ok {
		names := make([]string, 0, len(allowed))
		for e := range allowed {
			names = append(names, e)
		}
		sort.Strings(names)
		return "", core.Validationf("unsupported image format: %s. Supported formats: %s", ext, strings.Join(names, ", "))
	}
	return ext, nil
}
