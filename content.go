package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Project struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Tech        []string `yaml:"tech"`
	Link        string   `yaml:"link"`
}

type ContactInfo struct {
	Phone    string `yaml:"phone"`
	Email    string `yaml:"email"`
	LinkedIn string `yaml:"linkedin"`
	GitHub   string `yaml:"github"`
}

// Content is the copy rendered into the page sections.
type Content struct {
	Name       string      `yaml:"name"`
	Title      string      `yaml:"title"`
	Tagline    string      `yaml:"tagline"`
	About      string      `yaml:"about"`
	TechStack  []string    `yaml:"tech_stack"`
	Projects   []Project   `yaml:"projects"`
	GitHubUser string      `yaml:"github_user"`
	Contact    ContactInfo `yaml:"contact"`
	Footer     string      `yaml:"footer"`
}

func defaultContent() Content {
	return Content{
		Name:       HeroName,
		Title:      HeroTitle,
		Tagline:    HeroTagline,
		About:      AboutMe,
		TechStack:  TechStack,
		Projects:   Projects,
		GitHubUser: GitHubUser,
		Contact: ContactInfo{
			Phone:    ContactPhone,
			Email:    ContactEmail,
			LinkedIn: ContactLinkedIn,
			GitHub:   ContactGitHub,
		},
		Footer: FooterText,
	}
}

// loadContent returns the built-in copy, overlaid with path when it is set.
// Fields missing from the file keep their defaults.
func loadContent(path string) (Content, error) {
	c := defaultContent()
	if path == "" {
		return c, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read content: %w", err)
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("parse content %s: %w", path, err)
	}
	return c, nil
}
