package metadata

import (
	"encoding/json"
	"strings"
)

// Package is a flattened view of the most commonly used metadata fields.
type Package struct {
	Name           string            `json:"name" yaml:"name"`
	Version        string            `json:"version" yaml:"version"`
	Summary        string            `json:"summary,omitempty" yaml:"summary,omitempty"`
	License        string            `json:"license,omitempty" yaml:"license,omitempty"`
	Author         string            `json:"author,omitempty" yaml:"author,omitempty"`
	HomePage       string            `json:"home_page,omitempty" yaml:"home_page,omitempty"`
	RequiresPython string            `json:"requires_python,omitempty" yaml:"requires_python,omitempty"`
	RequiresDist   []string          `json:"requires_dist,omitempty" yaml:"requires_dist,omitempty"`
	ProvidesExtra  []string          `json:"provides_extra,omitempty" yaml:"provides_extra,omitempty"`
	ProjectURLs    map[string]string `json:"project_urls,omitempty" yaml:"project_urls,omitempty"`
}

// Package converts the document into a [Package].
// Author falls back to Author-email, and HomePage to a Project-URL labelled
// "Homepage".
func (m *Metadata) Package() *Package {
	p := &Package{
		Name:           m.Name(),
		Version:        m.Version(),
		Summary:        m.Summary(),
		License:        m.License(),
		Author:         m.Get(HeaderAuthor),
		HomePage:       m.Get(HeaderHomePage),
		RequiresPython: m.RequiresPython(),
		RequiresDist:   m.RequiresDist(),
		ProvidesExtra:  m.ProvidesExtra(),
	}
	if p.Author == "" {
		p.Author = m.Get(HeaderAuthorEmail)
	}

	urls := m.ProjectURLs()
	if len(urls) > 0 {
		p.ProjectURLs = urls
	}
	if p.HomePage == "" {
		for label, url := range urls {
			if strings.EqualFold(label, "homepage") {
				p.HomePage = url
				break
			}
		}
	}
	return p
}

// document is the serialized form. Fields stay a list so repeated headers
// keep their order.
type document struct {
	Fields []Field `json:"fields" yaml:"fields"`
	Body   string  `json:"body,omitempty" yaml:"body,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (m *Metadata) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.document())
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	var d document
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	m.fields, m.Body = d.Fields, d.Body
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (m *Metadata) MarshalYAML() (any, error) {
	return m.document(), nil
}

func (m *Metadata) document() document {
	fields := m.Fields()
	if fields == nil {
		fields = []Field{}
	}
	return document{Fields: fields, Body: m.Body}
}
