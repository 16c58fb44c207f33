// Package imageformat picks the best image encoding for a client and
// converts source images into it.
package imageformat

import (
	"bytes"
	"encoding/base64"
	"image"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"

	_ "golang.org/x/image/webp"
)

// Format is a served image encoding.
type Format string

const (
	AVIF Format = "avif"
	WebP Format = "webp"
	JPEG Format = "jpeg"
)

// preference 从优到劣，JPEG 兜底。
var preference = []Format{AVIF, WebP, JPEG}

var mimeTypes = map[Format]string{
	AVIF: "image/avif",
	WebP: "image/webp",
	JPEG: "image/jpeg",
}

// MIMEType returns the content type for f.
func (f Format) MIMEType() string {
	return mimeTypes[f]
}

// Extension returns the file extension for f, including the dot.
func (f Format) Extension() string {
	if f == JPEG {
		return ".jpg"
	}
	return "." + string(f)
}

// Negotiate returns the best format the Accept header allows among the
// available ones. JPEG is returned when nothing better is acceptable.
func Negotiate(accept string, available ...Format) Format {
	if len(available) == 0 {
		available = preference
	}
	weights := parseAccept(accept)

	for _, f := range preference {
		if f == JPEG || !contains(available, f) {
			continue
		}
		if q, ok := weights[f.MIMEType()]; ok && q > 0 {
			return f
		}
	}
	return JPEG
}

func parseAccept(accept string) map[string]float64 {
	weights := make(map[string]float64)
	for _, part := range strings.Split(accept, ",") {
		fields := strings.Split(strings.TrimSpace(part), ";")
		mediaType := strings.ToLower(strings.TrimSpace(fields[0]))
		if mediaType == "" {
			continue
		}
		q := 1.0
		for _, param := range fields[1:] {
			key, value, ok := strings.Cut(strings.TrimSpace(param), "=")
			if !ok || strings.TrimSpace(key) != "q" {
				continue
			}
			if parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
				q = parsed
			}
		}
		weights[mediaType] = q
	}
	return weights
}

func contains(formats []Format, f Format) bool {
	for _, candidate := range formats {
		if candidate == f {
			return true
		}
	}
	return false
}

// VariantPath swaps the extension of p for the one of f.
func VariantPath(p string, f Format) string {
	ext := path.Ext(p)
	return strings.TrimSuffix(p, ext) + f.Extension()
}

// 1x1 probe images; a format counts as supported when its probe decodes to 1x1.
var probes = map[Format]string{
	WebP: "UklGRiIAAABXRUJQVlA4IBYAAAAwAQCdASoBAAEADsD+JaQAA3AAAAAA",
	AVIF: "AAAAIGZ0eXBhdmlmAAAAAGF2aWZtaWYxbWlhZk1BMUIAAADybWV0YQAAAAAAAAAoaGRscgAAAAAAAAAAcGljdAAAAAAAAAAAAAAAAGxpYmF2aWYAAAAADnBpdG0AAAAAAAEAAAAeaWxvYwAAAABEAAABAAEAAAABAAABGgAAAB0AAAAoaWluZgAAAAAAAQAAABppbmZlAgAAAAAAAQAAYXYwMUNvbG9yAAAAAGppcHJwAAAAS2lwY28AAAAUaXNwZQAAAAAAAAABAAAAAQAAABBwaXhpAAAAAAMICAgAAAAMYXYxQ4EgAAAAAAATY29scm5jbHgAAQANAAYAAAAAF2lwbWEAAAAAAAAAAQABBAECgwQAAAAlbWRhdBIACgg4AAaAaDQyFDIWAAEAAC+nNvHlUR4=",
}

var (
	probeOnce      sync.Once
	probeSupported []Format
)

// ProbeDecoders reports which formats this process can decode, always
// including JPEG. The result is computed once.
func ProbeDecoders() []Format {
	probeOnce.Do(func() {
		supported := []Format{JPEG}
		for f, encoded := range probes {
			if decodesToOnePixel(encoded) {
				supported = append(supported, f)
			}
		}
		sort.Slice(supported, func(i, j int) bool {
			return rank(supported[i]) < rank(supported[j])
		})
		probeSupported = supported
	})
	return append([]Format(nil), probeSupported...)
}

func decodesToOnePixel(encoded string) bool {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return false
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return false
	}
	return cfg.Width == 1 && cfg.Height == 1
}

func rank(f Format) int {
	for i, candidate := range preference {
		if candidate == f {
			return i
		}
	}
	return len(preference)
}
