package render

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
)

// FontProvider resolves a named font into a renderable face. Resolution is
// best-effort: implementations fall back to a guaranteed default face when
// the named font cannot be found, so labeling never fails on missing fonts.
type FontProvider interface {
	Resolve(name string, size float64) font.Face
}

var (
	defaultFontOnce sync.Once
	defaultFont     *truetype.Font
)

// defaultTTF parses the embedded Go Bold face once. It is the end of every
// fallback chain.
func defaultTTF() *truetype.Font {
	defaultFontOnce.Do(func() {
		f, err := truetype.Parse(gobold.TTF)
		if err != nil {
			// gobold.TTF is a compiled-in asset; parse failure would be a
			// build defect, not a runtime condition.
			panic("render: parsing embedded font: " + err.Error())
		}
		defaultFont = f
	})
	return defaultFont
}

func newFace(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// SystemFonts looks up named fonts in the platform font directories and
// falls back to the embedded Go Bold face.
type SystemFonts struct{}

// DefaultFonts returns the standard provider.
func DefaultFonts() FontProvider {
	return SystemFonts{}
}

// fontDirs lists the directories searched for .ttf files, per platform.
func fontDirs() []string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "darwin":
		return []string{"/System/Library/Fonts", "/Library/Fonts", filepath.Join(home, "Library/Fonts")}
	case "windows":
		return []string{`C:\Windows\Fonts`}
	default:
		return []string{"/usr/share/fonts", "/usr/local/share/fonts", filepath.Join(home, ".fonts"), filepath.Join(home, ".local/share/fonts")}
	}
}

// Resolve searches for a TrueType file whose name contains the requested
// font name (case-insensitive). Any failure along the way degrades to the
// embedded default face instead of erroring.
func (SystemFonts) Resolve(name string, size float64) font.Face {
	if name == "" {
		return newFace(defaultTTF(), size)
	}

	want := strings.ToLower(name)
	for _, dir := range fontDirs() {
		var found string
		filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			base := strings.ToLower(d.Name())
			if strings.HasSuffix(base, ".ttf") && strings.Contains(base, want) {
				found = path
				return filepath.SkipAll
			}
			return nil
		})
		if found == "" {
			continue
		}

		data, err := os.ReadFile(found)
		if err != nil {
			continue
		}
		f, err := truetype.Parse(data)
		if err != nil {
			continue
		}
		return newFace(f, size)
	}

	return newFace(defaultTTF(), size)
}
