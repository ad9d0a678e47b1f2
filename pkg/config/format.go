package config

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies a declaration encoding.
type Format string

const (
	FormatAuto Format = ""
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath derives the format from a file extension. Unknown
// extensions return FormatAuto.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	default:
		return FormatAuto
	}
}

// ParseFormat resolves a user-supplied format name.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return FormatAuto, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", goerr.Wrap(ErrUnsupportedFormat, "cannot parse format", goerr.V(FormatKey, raw))
	}
}

func isDeclarationFile(path string) bool {
	return FormatFromPath(path) != FormatAuto
}

// decode fills out from data. In auto mode each attempt decodes into a
// fresh document so a failed attempt leaves nothing behind.
func decode(data []byte, format Format, out *documentFile) error {
	switch format {
	case FormatJSON:
		return json.Unmarshal(data, out)
	case FormatYAML:
		return yaml.Unmarshal(data, out)
	case FormatTOML:
		return toml.Unmarshal(data, out)
	case FormatAuto:
		for _, candidate := range []Format{FormatJSON, FormatYAML, FormatTOML} {
			var doc documentFile
			if err := decode(data, candidate, &doc); err == nil {
				*out = doc
				return nil
			}
		}
		return goerr.Wrap(ErrUnsupportedFormat, "invalid JSON, YAML or TOML")
	default:
		return goerr.Wrap(ErrUnsupportedFormat, "unknown format", goerr.V(FormatKey, string(format)))
	}
}

func encode(value any, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(value, "", "  ")
	case FormatTOML:
		return toml.Marshal(value)
	case FormatYAML, FormatAuto:
		return yaml.Marshal(value)
	default:
		return nil, goerr.Wrap(ErrUnsupportedFormat, "unknown format", goerr.V(FormatKey, string(format)))
	}
}
