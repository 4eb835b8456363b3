package gateways

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/ochairo/playport/internal/domain/entities"
)

// ExpandTemplate substitutes {key} placeholders with vars[key]
func ExpandTemplate(template string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// expandURL substitutes placeholders with path-escaped values
func expandURL(template string, vars map[string]string) string {
	escaped := make(map[string]string, len(vars))
	for k, v := range vars {
		escaped[k] = url.PathEscape(v)
	}
	return ExpandTemplate(template, escaped)
}

// fileNameFor picks the on-disk name of an artifact: the configured template if
// any, else the last URL path segment
func fileNameFor(template, downloadURL string, vars map[string]string) (string, error) {
	name := ""
	if template != "" {
		name = ExpandTemplate(template, vars)
	} else if u, err := url.Parse(downloadURL); err == nil {
		name = path.Base(u.Path)
	}
	return checkFileName(name)
}

// checkFileName rejects names that would escape the target directory
func checkFileName(name string) (string, error) {
	if name == "" || name == "." || name == "/" || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return "", entities.NewError(entities.KindParse, "derive file name", fmt.Errorf("unusable file name %q", name))
	}
	return name, nil
}
