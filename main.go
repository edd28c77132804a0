package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/pdbogen/mkelem/dom"
	"github.com/pdbogen/mkelem/elem"
	log2 "github.com/pdbogen/mkelem/log"
	"github.com/pdbogen/mkelem/page"
	"github.com/pdbogen/mkelem/types"
)

var log = log2.Log

// attrFlags collects repeated -attr key=value flags.
type attrFlags struct {
	attrs types.Attrs
}

func (a *attrFlags) String() string {
	var parts []string
	for _, attr := range a.attrs {
		parts = append(parts, attr.Key+"="+attr.Value)
	}
	return strings.Join(parts, ",")
}

func (a *attrFlags) Set(value string) error {
	attr := types.ParseAttr(value)
	if attr.Key == "" {
		return fmt.Errorf("attribute %q has no name", value)
	}
	a.attrs.Set(attr.Key, attr.Value)
	return nil
}

func readInput(name string) ([]byte, error) {
	if name == "-" {
		return ioutil.ReadAll(os.Stdin)
	}
	return ioutil.ReadFile(name)
}

// loadSpec reads specFile, if any, and applies the flags over it. A nil content means -content was not given; an
// empty one clears the content from specFile.
func loadSpec(specFile, name string, attrs types.Attrs, content *string, contentFile string) (types.Spec, error) {
	var spec types.Spec
	if specFile != "" {
		specJson, err := readInput(specFile)
		if err != nil {
			return spec, fmt.Errorf("reading spec %q: %w", specFile, err)
		}
		if err := json.Unmarshal(specJson, &spec); err != nil {
			return spec, fmt.Errorf("parsing spec %q: %w", specFile, err)
		}
	}

	if name != "" {
		spec.Name = name
	}
	for _, attr := range attrs {
		spec.Attributes.Set(attr.Key, attr.Value)
	}
	if contentFile != "" {
		c, err := readInput(contentFile)
		if err != nil {
			return spec, fmt.Errorf("reading content %q: %w", contentFile, err)
		}
		spec.Content = string(c)
	} else if content != nil {
		spec.Content = *content
	}

	if spec.Name == "" {
		return spec, fmt.Errorf("an element name is required; use -name or -spec")
	}
	return spec, nil
}

func loadPage(into string) (*page.Page, error) {
	if strings.HasPrefix(into, "http://") || strings.HasPrefix(into, "https://") {
		return page.Open(into)
	}
	f, err := os.Open(into)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return page.Read(f)
}

// run builds the element and writes either it or the page it was attached to.
func run(spec types.Spec, into, selector string, out io.Writer) error {
	el, err := elem.Build(dom.NewDocument(), spec)
	if err != nil {
		return fmt.Errorf("creating <%s>: %w", spec.Name, err)
	}

	if into == "" {
		markup, err := elem.Render(el)
		if err != nil {
			return fmt.Errorf("rendering <%s>: %w", spec.Name, err)
		}
		_, err = fmt.Fprintln(out, markup)
		return err
	}

	pg, err := loadPage(into)
	if err != nil {
		return fmt.Errorf("loading %q: %w", into, err)
	}
	n, err := pg.Attach(selector, el)
	if err != nil {
		return err
	}
	log.Infof("attached <%s> to %d element(s) in %q", spec.Name, n, into)

	markup, err := pg.HTML()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, markup)
	return err
}

func main() {
	attrs := &attrFlags{}
	name := flag.String("name", "", "tag name of the element to create")
	flag.Var(attrs, "attr", "attribute as key=value; may be repeated")
	content := flag.String("content", "", "markup to parse as the element's children")
	contentFile := flag.String("content-file", "", "read the element's markup from this file, or - for stdin")
	specFile := flag.String("spec", "", "read a JSON element spec ({\"Name\", \"Attributes\", \"Content\"}) from this file, or - for stdin")
	into := flag.String("into", "", "URL or file of a document to attach the element to")
	selector := flag.String("select", "body", "with -into, attach the element to every element matching this selector")
	outName := flag.String("out", "", "file to which output should be written; default is stdout")
	loglevel := flag.String("loglevel", "info", "set to DEBUG for more logging, or INFO or ERROR for less")
	flag.Parse()

	if err := log2.SetLevel(*loglevel); err != nil {
		log.Fatalf("could not parse log level %q: %s", *loglevel, err)
	}

	var contentFlag *string
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "content" {
			contentFlag = content
		}
	})

	spec, err := loadSpec(*specFile, *name, attrs.attrs, contentFlag, *contentFile)
	if err != nil {
		log.Fatal(err)
	}
	log.Debugf("spec: %+v", spec)

	var out io.Writer = os.Stdout
	if *outName != "" {
		outFile, err := os.OpenFile(*outName, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(0644))
		if err != nil {
			log.Fatalf("opening %q for writing: %s", *outName, err)
		}
		defer outFile.Close()
		out = outFile
	}

	if err := run(spec, *into, *selector, out); err != nil {
		log.Fatal(err)
	}
}
