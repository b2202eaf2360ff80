package pages

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var defaultContent []byte

// Content is the marketing copy rendered by the pages.
type Content struct {
	Brand    string    `yaml:"brand"`
	Hero     Hero      `yaml:"hero"`
	Features []Feature `yaml:"features"`
}

type Hero struct {
	Heading    string `yaml:"heading"`
	Subheading string `yaml:"subheading"`
	CTA        Link   `yaml:"cta"`
}

type Link struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

type Feature struct {
	Icon  string `yaml:"icon"`
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

// ParseContent decodes a content document. Unknown keys and icons that have
// no SVG are rejected.
func ParseContent(raw []byte) (*Content, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var c Content
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Content) validate() error {
	if c.Brand == "" {
		return errors.New("content: brand is required")
	}
	if c.Hero.Heading == "" {
		return errors.New("content: hero.heading is required")
	}
	for i, f := range c.Features {
		if f.Title == "" {
			return fmt.Errorf("content: features[%d].title is required", i)
		}
		if _, ok := icons[f.Icon]; !ok {
			return fmt.Errorf("content: features[%d] has unknown icon %q", i, f.Icon)
		}
	}
	return nil
}
