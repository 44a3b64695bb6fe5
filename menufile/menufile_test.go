package menufile

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/platterhq/platter/domain"
)

var wantMenu = []domain.FoodInput{
	{Name: "Ao molho", Image: "molho.png", Price: "19.90", Description: "Macarrão ao molho"},
	{Name: "Veggie", Image: "veggie.png", Price: "21.90", Description: "Legumes"},
}

const yamlList = `
- name: Ao molho
  image: molho.png
  price: "19.90"
  description: Macarrão ao molho
- name: Veggie
  image: veggie.png
  price: "21.90"
  description: Legumes
`

const jsoncDocument = `{
  // fixture exported from the dev server
  "foods": [
    {"id": 1, "name": "Ao molho", "image": "molho.png", "price": "19.90", "description": "Macarrão ao molho", "available": true},
    {"id": 2, "name": "Veggie", "image": "veggie.png", "price": "21.90", "description": "Legumes", "available": false},
  ]
}`

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		data string
		ext  string
	}{
		{name: "should parse a yaml list", data: yamlList, ext: ".yaml"},
		{name: "should parse a yaml document", data: "foods:\n" + indent(yamlList), ext: "yml"},
		{name: "should parse a jsonc document", data: jsoncDocument, ext: ".jsonc"},
		{
			name: "should parse a json list",
			data: `[{"name":"Ao molho","image":"molho.png","price":"19.90","description":"Macarrão ao molho"},
			        {"name":"Veggie","image":"veggie.png","price":"21.90","description":"Legumes"}]`,
			ext: ".JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.data), tt.ext)
			if err != nil {
				t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
			}

			if !reflect.DeepEqual(wantMenu, got) {
				t.Fatalf("\nwanted:\n%v\ngot:\n%v", wantMenu, got)
			}
		})
	}

	t.Run("should reject an unknown extension", func(t *testing.T) {
		_, err := Parse([]byte("name,price"), ".csv")

		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", ErrUnsupportedFormat, err)
		}
	})

	t.Run("should report the index of a food without a name", func(t *testing.T) {
		_, err := Parse([]byte(`[{"name":"Ok"},{"price":"1.00"}]`), ".json")

		if err == nil || !strings.Contains(err.Error(), "food 1") {
			t.Fatalf("\nwanted:\nerror for food 1\ngot:\n%v", err)
		}
	})

	t.Run("should return nothing for an empty file", func(t *testing.T) {
		got, err := Parse([]byte("  "), ".json")
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		if len(got) != 0 {
			t.Fatalf("\nwanted:\n0 foods\ngot:\n%d", len(got))
		}
	})
}

func TestRead(t *testing.T) {
	t.Run("should read a file from disk", func(t *testing.T) {
		name := filepath.Join(t.TempDir(), "menu.yaml")
		if err := os.WriteFile(name, []byte(yamlList), 0644); err != nil {
			t.Fatalf("writing menu file: %v", err)
		}

		got, err := Read(name)
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		if !reflect.DeepEqual(wantMenu, got) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", wantMenu, got)
		}
	})

	t.Run("should fail for a missing file", func(t *testing.T) {
		_, err := Read(filepath.Join(t.TempDir(), "missing.yaml"))

		if !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", os.ErrNotExist, err)
		}
	})
}

func TestFetch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/menu.jsonc", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(jsoncDocument))
	})
	mux.HandleFunc("/menu", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.Write([]byte(yamlList))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	t.Run("should use the extension of the url", func(t *testing.T) {
		got, err := Fetch(context.Background(), server.Client(), server.URL+"/menu.jsonc")
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		if !reflect.DeepEqual(wantMenu, got) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", wantMenu, got)
		}
	})

	t.Run("should fall back to the content type", func(t *testing.T) {
		got, err := Fetch(context.Background(), server.Client(), server.URL+"/menu")
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		if !reflect.DeepEqual(wantMenu, got) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", wantMenu, got)
		}
	})

	t.Run("should fail on a non 200 status", func(t *testing.T) {
		_, err := Fetch(context.Background(), server.Client(), server.URL+"/missing.yaml")

		if err == nil || !strings.Contains(err.Error(), "404") {
			t.Fatalf("\nwanted:\n404 error\ngot:\n%v", err)
		}
	})
}

func indent(s string) string {
	lines := strings.Split(strings.Trim(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n") + "\n"
}
