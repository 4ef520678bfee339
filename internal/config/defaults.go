package config

const (
	defaultContentDir       = "assets/img/photography"
	defaultLogDir           = "~/.local/share/curator/logs"
	defaultURLBase          = "/assets/img/photography"
	defaultMetadataFile     = "_meta.json"
	defaultManifestName     = "gallery.json"
	defaultSitemapName      = "sitemap.xml"
	defaultDebounceMS       = 300
	defaultThumbMaxWidth    = 640
	defaultThumbMaxHeight   = 640
	defaultThumbJPEGQuality = 80
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

func defaultExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".webp"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ContentDir: defaultContentDir,
			LogDir:     defaultLogDir,
		},
		Gallery: Gallery{
			URLBase:      defaultURLBase,
			MetadataFile: defaultMetadataFile,
			Extensions:   defaultExtensions(),
		},
		Watch: Watch{
			DebounceMS: defaultDebounceMS,
		},
		Thumbnails: Thumbnails{
			Enabled:   false,
			MaxWidth:  defaultThumbMaxWidth,
			MaxHeight: defaultThumbMaxHeight,
			Quality:   defaultThumbJPEGQuality,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
