// Package menufile reads menu files used to bulk-import foods into the dashboard.
//
// Two formats are supported: YAML (.yaml, .yml) and JSON with comments (.json, .jsonc).
// A file holds either a bare list of foods or a document with a "foods" key, which is
// the layout of a json-server db.json fixture.
package menufile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/platterhq/platter/domain"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for files whose extension is not a known menu format.
var ErrUnsupportedFormat = errors.New("unsupported menu format")

// maxFetchSize caps the body read by Fetch.
const maxFetchSize = 4 << 20

// document is the json-server layout: {"foods": [...]}.
type document struct {
	Foods []domain.FoodInput `json:"foods" yaml:"foods"`
}

// Read loads the menu file at name, choosing the decoder from its extension.
func Read(name string) ([]domain.FoodInput, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("reading menu file %s: %w", name, err)
	}
	foods, err := Parse(data, filepath.Ext(name))
	if err != nil {
		return nil, fmt.Errorf("parsing menu file %s: %w", name, err)
	}
	return foods, nil
}

// Fetch downloads a menu file over HTTP. The format is taken from the extension of
// the URL path, falling back to the response Content-Type.
func Fetch(ctx context.Context, client *http.Client, rawURL string) ([]domain.FoodInput, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", rawURL, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("getting %s: unexpected status %s", rawURL, res.Status)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxFetchSize))
	if err != nil {
		return nil, fmt.Errorf("reading resp body: %w", err)
	}

	ext := path.Ext(req.URL.Path)
	if ext == "" {
		ext = extFromContentType(res.Header.Get("Content-Type"))
	}
	foods, err := Parse(body, ext)
	if err != nil {
		return nil, fmt.Errorf("parsing menu from %s: %w", rawURL, err)
	}
	return foods, nil
}

// Parse decodes data as the format named by ext (with or without the leading dot).
func Parse(data []byte, ext string) ([]domain.FoodInput, error) {
	var (
		foods []domain.FoodInput
		err   error
	)
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "yaml", "yml":
		foods, err = parseYAML(data)
	case "json", "jsonc":
		foods, err = parseJSON(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}

	for i, food := range foods {
		if strings.TrimSpace(food.Name) == "" {
			return nil, fmt.Errorf("food %d: missing name", i)
		}
	}
	return foods, nil
}

func parseJSON(data []byte) ([]domain.FoodInput, error) {
	data = bytes.TrimSpace(jsonc.ToJSON(data))
	if len(data) == 0 {
		return nil, nil
	}

	if data[0] == '[' {
		var foods []domain.FoodInput
		if err := json.Unmarshal(data, &foods); err != nil {
			return nil, fmt.Errorf("unmarshalling json: %w", err)
		}
		return foods, nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshalling json: %w", err)
	}
	return doc.Foods, nil
}

func parseYAML(data []byte) ([]domain.FoodInput, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	root := node.Content[0]
	if root.Kind == yaml.SequenceNode {
		var foods []domain.FoodInput
		if err := root.Decode(&foods); err != nil {
			return nil, fmt.Errorf("decoding yaml list: %w", err)
		}
		return foods, nil
	}

	var doc document
	if err := root.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding yaml document: %w", err)
	}
	return doc.Foods, nil
}

func extFromContentType(contentType string) string {
	switch {
	case strings.Contains(contentType, "yaml"):
		return "yaml"
	case strings.Contains(contentType, "json"):
		return "json"
	}
	return ""
}
