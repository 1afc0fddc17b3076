package deck

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	log "github.com/echocat/slf4g"
)

const (
	placeholderWidth  = 280
	placeholderHeight = 350
)

type Photo struct {
	Path   string
	Format string
	Width  int
	Height int

	// Placeholder is true if the configured image could not be loaded and a
	// generated one stands in for it.
	Placeholder bool
	Caption     []string
}

// LoadPhoto never fails: an image that is absent or cannot be decoded is
// replaced by a generated placeholder.
func LoadPhoto(path string) Photo {
	f, err := os.Open(path)
	if err != nil {
		log.With("path", path).
			WithError(err).
			Debug("Photo not available; using placeholder.")
		return PlaceholderPhoto(path)
	}
	defer func() {
		_ = f.Close()
	}()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		log.With("path", path).
			WithError(err).
			Debug("Photo cannot be decoded; using placeholder.")
		return PlaceholderPhoto(path)
	}

	return Photo{
		Path:   path,
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
	}
}

func PlaceholderPhoto(path string) Photo {
	return Photo{
		Path:        path,
		Format:      "placeholder",
		Width:       placeholderWidth,
		Height:      placeholderHeight,
		Placeholder: true,
		Caption:     []string{"📸", "Photo Add Karo!", path},
	}
}
