// MTL material library parser for the OBJ text format.
package formats

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// TextureLoader resolves a texture file path to a renderer texture
// handle. Handle 0 means the texture is unavailable; loaders must not
// treat that as fatal. A nil loader leaves every material untextured.
type TextureLoader func(path string) uint32

// Material holds the surface properties declared by an MTL record.
// Color channels are RGBA.
type Material struct {
	Name         string
	Ambient      [4]float32
	Diffuse      [4]float32
	Specular     [4]float32
	Emission     [4]float32
	Shininess    float32 // 0-128 after import rescale
	Transparency float32 // 1 = opaque
	TexturePath  string
	TextureID    uint32 // 0 = no texture bound
}

// NewMaterial returns a material with the standard default appearance:
// dim gray ambient, light gray diffuse, white specular, no emission.
func NewMaterial(name string) *Material {
	return &Material{
		Name:         name,
		Ambient:      [4]float32{0.2, 0.2, 0.2, 1},
		Diffuse:      [4]float32{0.8, 0.8, 0.8, 1},
		Specular:     [4]float32{1, 1, 1, 1},
		Emission:     [4]float32{0, 0, 0, 1},
		Shininess:    32,
		Transparency: 1,
	}
}

// MaterialTable maps material names to records. A lookup miss means no
// material is applied and the renderer falls back to its default
// appearance.
type MaterialTable map[string]*Material

// Get returns the named material, or nil and false when absent.
func (t MaterialTable) Get(name string) (*Material, bool) {
	m, ok := t[name]
	return m, ok
}

// ParseMTL reads a material library file and merges its records into
// table. Texture paths are resolved relative to the MTL file's own
// directory and passed through textures; a failed texture load leaves
// handle 0 and is not an error.
//
// An unreadable file is reported to the caller, who normally proceeds
// with zero materials rather than aborting the document load.
func ParseMTL(path string, table MaterialTable, textures TextureLoader) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening MTL file: %w", err)
	}
	defer f.Close()

	dir := filepath.Dir(path)
	var current *Material

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		directive, rest := splitDirective(line)

		if directive == "newmtl" {
			name := firstField(rest)
			if name == "" {
				current = nil
				continue
			}
			current = NewMaterial(name)
			table[name] = current
			continue
		}

		// Everything else only applies inside a newmtl block.
		if current == nil {
			continue
		}

		switch directive {
		case "Ka":
			setRGB(&current.Ambient, rest)
		case "Kd":
			setRGB(&current.Diffuse, rest)
		case "Ks":
			setRGB(&current.Specular, rest)
		case "Ke":
			setRGB(&current.Emission, rest)
		case "Ns":
			// OBJ shininess lives in 0-1000, GL in 0-128.
			if v, ok := parseFloat(firstField(rest)); ok {
				s := v * 128.0 / 1000.0
				if s > 128 {
					s = 128
				}
				current.Shininess = s
			}
		case "d", "Tr":
			if v, ok := parseFloat(firstField(rest)); ok {
				if directive == "Tr" {
					v = 1 - v
				}
				current.Transparency = v
				current.Diffuse[3] = v
				current.Ambient[3] = v
			}
		case "map_Kd":
			if rest == "" {
				continue
			}
			current.TexturePath = rest
			if textures != nil {
				current.TextureID = textures(filepath.Join(dir, rest))
			}
		}
	}

	return scanner.Err()
}

// splitDirective returns the first whitespace-delimited token of a
// line and the trimmed remainder.
func splitDirective(line string) (directive, rest string) {
	line = strings.TrimSpace(line)
	i := strings.IndexAny(line, " \t")
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimSpace(line[i:])
}

func firstField(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func parseFloat(s string) (float32, bool) {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, false
	}
	return float32(v), true
}

// setRGB parses up to three floats into the color's RGB channels,
// leaving alpha untouched.
func setRGB(color *[4]float32, rest string) {
	fields := strings.Fields(rest)
	for i := 0; i < 3 && i < len(fields); i++ {
		if v, ok := parseFloat(fields[i]); ok {
			color[i] = v
		}
	}
}
