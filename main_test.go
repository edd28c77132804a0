package main

import (
	"bytes"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pdbogen/mkelem/dom"
	"github.com/pdbogen/mkelem/types"
)

func TestAttrFlags(t *testing.T) {
	a := &attrFlags{}
	for _, v := range []string{"href=/x", "target=_blank", "href=/y", "disabled"} {
		if err := a.Set(v); err != nil {
			t.Fatal(err)
		}
	}
	want := types.Attrs{{Key: "href", Value: "/y"}, {Key: "target", Value: "_blank"}, {Key: "disabled"}}
	if diff := cmp.Diff(want, a.attrs); diff != "" {
		t.Errorf("attrs mismatch (-want +got):\n%s", diff)
	}
	if err := a.Set("=x"); err == nil {
		t.Error("got nil error for attribute without a name")
	}
}

func TestLoadSpecFlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	specFile := filepath.Join(dir, "spec.json")
	if err := ioutil.WriteFile(specFile, []byte(`{"Name":"a","Attributes":{"href":"/old","title":"t"},"Content":"old"}`), 0644); err != nil {
		t.Fatal(err)
	}
	contentFile := filepath.Join(dir, "content.html")
	if err := ioutil.WriteFile(contentFile, []byte("<b>new</b>"), 0644); err != nil {
		t.Fatal(err)
	}

	ignored := "ignored"
	spec, err := loadSpec(specFile, "", types.Attrs{{Key: "href", Value: "/new"}}, &ignored, contentFile)
	if err != nil {
		t.Fatal(err)
	}
	want := types.Spec{
		Name:       "a",
		Attributes: types.Attrs{{Key: "href", Value: "/new"}, {Key: "title", Value: "t"}},
		Content:    "<b>new</b>",
	}
	if diff := cmp.Diff(want, spec); diff != "" {
		t.Errorf("spec mismatch (-want +got):\n%s", diff)
	}

	x := "x"
	if _, err := loadSpec("", "", nil, &x, ""); err == nil {
		t.Error("got nil error for a spec without a name")
	}
}

func TestLoadSpecEmptyContentClearsFile(t *testing.T) {
	specFile := filepath.Join(t.TempDir(), "spec.json")
	if err := ioutil.WriteFile(specFile, []byte(`{"Name":"p","Content":"from file"}`), 0644); err != nil {
		t.Fatal(err)
	}

	spec, err := loadSpec(specFile, "", nil, nil, "")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := spec.Content, "from file"; got != want {
		t.Errorf("without -content got Content = %q, want %q", got, want)
	}

	empty := ""
	spec, err = loadSpec(specFile, "", nil, &empty, "")
	if err != nil {
		t.Fatal(err)
	}
	if spec.Content != "" {
		t.Errorf("with empty -content got Content = %q, want empty", spec.Content)
	}
}

func TestRun(t *testing.T) {
	var out bytes.Buffer
	spec := types.Spec{Name: "span", Attributes: types.Attrs{{Key: "id", Value: "x"}}, Content: "hello"}
	if err := run(spec, "", "", &out); err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "<span id=\"x\">hello</span>\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	err := run(types.Spec{Name: "no good"}, "", "", &out)
	if !errors.Is(err, dom.ErrInvalidCharacter) {
		t.Errorf("got err = %v, want InvalidCharacterError", err)
	}
}

func TestRunInto(t *testing.T) {
	target := filepath.Join(t.TempDir(), "page.html")
	if err := ioutil.WriteFile(target, []byte(`<html><body><main></main></body></html>`), 0644); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	spec := types.Spec{Name: "p", Content: "added"}
	if err := run(spec, target, "main", &out); err != nil {
		t.Fatal(err)
	}
	if want := "<main><p>added</p></main>"; !strings.Contains(out.String(), want) {
		t.Errorf("output %q does not contain %q", out.String(), want)
	}

	out.Reset()
	img := types.Spec{Name: "img", Attributes: types.Attrs{{Key: "src", Value: "a.png"}}, Content: "<b>x</b>"}
	if err := run(img, target, "main", &out); err != nil {
		t.Fatal(err)
	}
	if want := `<main><img src="a.png"/></main>`; !strings.Contains(out.String(), want) {
		t.Errorf("output %q does not contain %q", out.String(), want)
	}

	if err := run(spec, filepath.Join(os.TempDir(), "does-not-exist.html"), "main", &out); err == nil {
		t.Error("got nil error for a missing target file")
	}
}
