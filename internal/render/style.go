package render

import (
	"os"
	"path/filepath"
)

// Style carries the visual identity of a CV template: colors as hex
// strings, footer text and logo candidates resolved against an assets
// directory.
type Style struct {
	Name string

	Primary string
	Dark    string
	LightBG string

	// CertAccent colors certification years, distinct from diplomas.
	CertAccent string
	TextDark   string
	TextGray   string

	FooterText string
	LogoFiles  []string
	LogoText   string

	SkillSeparator string
}

// StyleAdvanced is the navy DataMed identity, the default.
func StyleAdvanced() Style {
	return Style{
		Name:           "advanced",
		Primary:        "#1a365d",
		Dark:           "#0f2847",
		LightBG:        "#e6f2ff",
		CertAccent:     "#d97706",
		TextDark:       "#1f2937",
		TextGray:       "#6b7280",
		FooterText:     "www.consultingdatamed.com",
		LogoFiles:      []string{"datamed_consulting_logo.jfif", "datamed_consulting_logo.png"},
		LogoText:       "DATAMED consulting",
		SkillSeparator: " • ",
	}
}

// StyleFastorgie is the red FastorGie identity.
func StyleFastorgie() Style {
	return Style{
		Name:           "fastorgie",
		Primary:        "#c41e3a",
		Dark:           "#8b1a2e",
		LightBG:        "#ffe6ea",
		CertAccent:     "#d97706",
		TextDark:       "#1f2937",
		TextGray:       "#6b7280",
		FooterText:     "www.fastor.com",
		LogoFiles:      []string{"fastorgie.png", "fastor.png"},
		LogoText:       "FASTORGIE",
		SkillSeparator: " • ",
	}
}

// ResolveStyle maps a style name to its Style. Unknown names fall back
// to the advanced style, matching historic behavior where anything but
// "fastorgie" meant the default template.
func ResolveStyle(name string) Style {
	if name == "fastorgie" {
		return StyleFastorgie()
	}
	return StyleAdvanced()
}

// FindLogo returns the first existing logo candidate under assetsDir,
// or "" when none is found and the text fallback should be drawn.
func (s Style) FindLogo(assetsDir string) string {
	if assetsDir == "" {
		return ""
	}
	for _, name := range s.LogoFiles {
		path := filepath.Join(assetsDir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
