package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/oarkflow/lastrelease/internal/config"
	"github.com/oarkflow/lastrelease/internal/release"
)

// render writes rel to w in the given format.
func render(w io.Writer, rel release.Release, format string) error {
	switch format {
	case config.FormatJSON:
		return json.NewEncoder(w).Encode(rel)
	case config.FormatYAML:
		data, err := yaml.Marshal(rel)
		if err != nil {
			return fmt.Errorf("failed to marshal release: %w", err)
		}
		_, err = w.Write(data)
		return err
	case "", config.FormatText:
		if rel.IsZero() {
			return nil
		}
		_, err := fmt.Fprintf(w, "tag:     %s\nversion: %s\ncommit:  %s\n", rel.GitTag, rel.Version, rel.GitHead)
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
