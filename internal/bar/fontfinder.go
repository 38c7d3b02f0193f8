package bar

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/adrg/sysfont"
	findfont "github.com/flopp/go-findfont"
	"github.com/jezek/xgbutil/xgraphics"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/font/opentype"
)

var fallbackFinder *sysfont.Finder

// findFont resolves a "name[:size]" or "name[:size=N]" font spec to a
// usable face, trying the
// system font path first and falling back to a fuzzy sysfont match, and
// finally to a builtin bitmap font if nothing on the system can be parsed.
func findFont(log *logrus.Logger, spec string) font.Face {
	i := strings.LastIndexByte(spec, ':')
	name, size := parseSize(log, spec, i)

	fontPath, err := findfont.Find(name)
	if err != nil {
		log.WithError(err).WithField("spec", spec).Debug("font not found, trying fallback finder")
		return findFontFallback(log, name, size)
	}
	fontFile, err := os.Open(fontPath)
	if err != nil {
		log.WithError(err).WithField("path", fontPath).Debug("could not open font, trying fallback finder")
		return findFontFallback(log, name, size)
	}
	defer fontFile.Close()
	face, err := parseFontFace(fontFile, size)
	if err != nil {
		log.WithError(err).WithField("path", fontPath).Debug("could not parse font, trying fallback finder")
		return findFontFallback(log, name, size)
	}
	return face
}

func findFontFallback(log *logrus.Logger, name string, size float64) font.Face {
	if fallbackFinder == nil {
		fallbackFinder = sysfont.NewFinder(nil)
	}
	fontDef := fallbackFinder.Match(name)
	if fontDef == nil {
		log.WithField("name", name).Warn("no system font matched, using builtin bitmap font")
		return inconsolata.Regular8x16
	}
	fontFile, err := os.Open(fontDef.Filename)
	if err != nil {
		log.WithError(err).Warn("could not open fallback font, using builtin bitmap font")
		return inconsolata.Regular8x16
	}
	defer fontFile.Close()
	face, err := parseFontFace(fontFile, size)
	if err != nil {
		log.WithError(err).Warn("could not parse fallback font, using builtin bitmap font")
		return inconsolata.Regular8x16
	}
	return face
}

func parseFontFace(file io.Reader, size float64) (font.Face, error) {
	otf, err := xgraphics.ParseFont(file)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(otf, &opentype.FaceOptions{Size: size, DPI: 72})
}

func parseSize(log *logrus.Logger, spec string, i int) (string, float64) {
	if i == -1 {
		return spec, 12
	}
	name, sizeStr := spec[:i], spec[i+1:]
	sizeStr = strings.TrimPrefix(sizeStr, "size=")
	size, err := strconv.ParseFloat(sizeStr, 64)
	if err != nil {
		log.WithField("size", sizeStr).Debug("invalid font size, using 12")
		size = 12
	}
	return name, size
}
