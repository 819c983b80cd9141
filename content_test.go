package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadContentDefaults(t *testing.T) {
	c, err := loadContent("")
	require.NoError(t, err)
	assert.Equal(t, HeroName, c.Name)
	assert.Equal(t, ContactEmail, c.Contact.Email)
	assert.NotEmpty(t, c.Projects)
}

func TestLoadContentOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: Someone Else
tech_stack: [Go, SQLite]
contact:
  email: someone@example.com
`), 0o600))

	c, err := loadContent(path)
	require.NoError(t, err)
	assert.Equal(t, "Someone Else", c.Name)
	assert.Equal(t, []string{"Go", "SQLite"}, c.TechStack)
	assert.Equal(t, "someone@example.com", c.Contact.Email)
	assert.Equal(t, ContactPhone, c.Contact.Phone)
	assert.Equal(t, AboutMe, c.About)
}

func TestLoadContentErrors(t *testing.T) {
	_, err := loadContent(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: [unterminated"), 0o600))
	_, err = loadContent(path)
	assert.Error(t, err)
}
