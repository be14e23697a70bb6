// Package reqfile reads request descriptions from YAML files.
//
// A request file names the context entries, an optional batch and the
// requests to add:
//
//	context:
//	  authToken: {_content: "0_abc"}
//	batch:
//	  namespace: urn:zimbra
//	  onerror: continue
//	requests:
//	  - name: GetInfoRequest
//	    namespace: urn:zimbraAccount
//	    content: {sections: mbox}
//
// Mappings are decoded into markup.Pairs so that elements and attributes
// are written in file order and repeated keys are kept. Scalars are kept as
// written.
package reqfile

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sirosfoundation/go-zimbra/pkg/markup"
	"github.com/sirosfoundation/go-zimbra/pkg/request"
)

// File is a parsed request file
type File struct {
	Context  any
	Batch    *Batch
	Requests []Entry
}

// Batch describes the BatchRequest wrapper. OnError defaults to continue.
type Batch struct {
	Namespace      string `yaml:"namespace"`
	OnError        string `yaml:"onerror"`
	FirstRequestID *int   `yaml:"firstRequestId"`
}

// Entry is one request to add
type Entry struct {
	Name      string
	Namespace string
	Content   any
}

type rawFile struct {
	Context  yaml.Node  `yaml:"context"`
	Batch    *Batch     `yaml:"batch"`
	Requests []rawEntry `yaml:"requests"`
}

type rawEntry struct {
	Name      string    `yaml:"name"`
	Namespace string    `yaml:"namespace"`
	Content   yaml.Node `yaml:"content"`
}

// Load reads a request file
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading request file: %w", err)
	}
	return Parse(data)
}

// Parse reads a request file from YAML data
func Parse(data []byte) (*File, error) {
	var raw rawFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing request file: %w", err)
	}

	ctx, err := decode(&raw.Context)
	if err != nil {
		return nil, fmt.Errorf("context: %w", err)
	}
	if ctx != nil {
		if _, ok := ctx.(markup.Pairs); !ok {
			return nil, errors.New("context: must be a mapping")
		}
	}

	f := &File{Context: ctx, Batch: raw.Batch}
	for i, r := range raw.Requests {
		if r.Name == "" {
			return nil, fmt.Errorf("requests[%d]: name is required", i)
		}
		content, err := decode(&r.Content)
		if err != nil {
			return nil, fmt.Errorf("requests[%d] %s: %w", i, r.Name, err)
		}
		f.Requests = append(f.Requests, Entry{
			Name:      r.Name,
			Namespace: r.Namespace,
			Content:   content,
		})
	}
	return f, nil
}

// Apply adds the file's context, batch and requests to doc and returns the
// ids assigned to batched requests (nil entries outside batch mode).
func (f *File) Apply(doc *request.Document) ([]*int, error) {
	if f.Context != nil {
		if err := doc.SetContextParams(f.Context); err != nil {
			return nil, err
		}
	}

	if f.Batch != nil {
		onError := request.OnErrorContinue
		if f.Batch.OnError != "" {
			var err error
			if onError, err = request.ParseOnError(f.Batch.OnError); err != nil {
				return nil, err
			}
		}
		var opts []request.BatchOption
		if f.Batch.FirstRequestID != nil {
			opts = append(opts, request.WithFirstRequestID(*f.Batch.FirstRequestID))
		}
		if err := doc.BeginBatch(f.Batch.Namespace, onError, opts...); err != nil {
			return nil, err
		}
	}

	ids := make([]*int, 0, len(f.Requests))
	for _, r := range f.Requests {
		id, err := doc.AddRequest(r.Name, r.Content, r.Namespace)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// decode converts a YAML node into markup.Pairs, slices and strings.
func decode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return decode(n.Content[0])
	case yaml.AliasNode:
		return decode(n.Alias)
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return nil, nil
		}
		return n.Value, nil
	case yaml.SequenceNode:
		items := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := decode(c)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	case yaml.MappingNode:
		m := make(markup.Pairs, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
			}
			v, err := decode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m = append(m, markup.KV(k.Value, v))
		}
		return m, nil
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node", n.Line)
}
