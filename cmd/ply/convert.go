package main

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/kr/pretty"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/panyam/plists"
)

var extensions = map[string]string{
	"openstep": ".plist",
	"xml":      ".plist",
	"json":     ".json",
	"yaml":     ".yaml",
	"pretty":   ".txt",
}

// convert writes tree to w in the named format. Every format but pretty
// ends with a newline.
func convert(w io.Writer, tree interface{}, format string, indent string) error {
	switch format {
	case "openstep", "xml":
		f := plists.OpenStepFormat
		if format == "xml" {
			f = plists.XMLFormat
		}
		doc, err := plists.Marshal(tree, f, plists.Indent(indent))
		if err != nil {
			return err
		}
		if len(doc) > 0 && doc[len(doc)-1] != '\n' {
			doc = append(doc, '\n')
		}
		_, err = w.Write(doc)
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", indent)
		return enc.Encode(plists.Native(tree))
	case "yaml":
		doc, err := yaml.Marshal(plists.Native(tree))
		if err != nil {
			return err
		}
		_, err = w.Write(doc)
		return err
	case "pretty":
		_, err := pretty.Fprintf(w, "%# v\n", tree)
		return err
	}
	return errors.Errorf("unknown output format %q", format)
}

// lookupKeypath walks a slash-separated path of dictionary keys and array
// indices down from tree. An empty path or "/" selects tree itself.
func lookupKeypath(tree interface{}, keypath string) (interface{}, error) {
	cur := tree
	for _, seg := range strings.Split(keypath, "/") {
		if seg == "" {
			continue
		}

		switch node := cur.(type) {
		case *plists.Dict:
			v, ok := node.Get(seg)
			if !ok {
				return nil, errors.Errorf("no key %q at %s", seg, keypath)
			}
			cur = v
		case []interface{}:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return nil, errors.Errorf("no index %q at %s", seg, keypath)
			}
			cur = node[i]
		default:
			return nil, errors.Errorf("cannot descend into %v at %q", node, seg)
		}
	}
	return cur, nil
}
