package checks

import "time"

// Presets reproduce the standalone verification scripts this tool replaced.
func Presets() []Check {
	return []Check{MusicPage(), OGImage()}
}

func MusicPage() Check {
	return Check{
		Name:            "music",
		URL:             "http://localhost:5173/music",
		Heading:         "Music Hub",
		ReadyText:       "Download Grátis",
		ReadyTimeout:    10 * time.Second,
		SearchSelector:  `input[name="music-search"]`,
		SearchValue:     "Zouk",
		Settle:          time.Second,
		Screenshot:      "verification/music_page_refactor.png",
		ErrorScreenshot: "verification/error.png",
	}
}

// OGImage expects the .png asset; the .svg revision is reachable with a
// meta_expect override.
func OGImage() Check {
	return Check{
		Name:          "og-image",
		URL:           "http://localhost:5173",
		MetaSelector:  `meta[property="og:image"]`,
		MetaAttribute: "content",
		MetaExpect:    "zen-eyer-og-image.png",
		Screenshot:    "verification/og_verification.png",
		NavTimeout:    10 * time.Second,
	}
}
