package i18n

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"i18ntpl/internal/domain"
)

func TestNewEmbeddedCatalog(t *testing.T) {
	c := NewEmbeddedCatalog("en", nil)

	assert.Equal(t, []language.Tag{language.English, language.French}, c.Languages())

	en, ok := c.Messages(language.English)
	require.True(t, ok)
	assert.Equal(t, "Value.", en["key"])
	assert.Equal(t, "Good morning {{name}}!", en["greeting.morning"])
	assert.Equal(t, "Here's the family:\n{{{**template}}}", en["inject_template_for_array"])
	assert.Equal(t, "{{{greeting.morning}}} Your cart holds {{cart.count}} \\{items\\}.", en["cart.summary"])

	fr, ok := c.Messages(language.French)
	require.True(t, ok)
	assert.Equal(t, "Bonjour {{name}}.", fr["hello"])
}

func TestCatalog_AddMessageFile(t *testing.T) {
	tests := []struct {
		name string
		file string
		buf  string
		tag  language.Tag
		want map[string]string
	}{
		{
			name: "toml",
			file: "active.de.toml",
			buf:  "hello = \"Hallo {{name}}.\"\n[nested]\nbye = \"Tschüss\"\n",
			tag:  language.German,
			want: map[string]string{"hello": "Hallo {{name}}.", "nested.bye": "Tschüss"},
		},
		{
			name: "yaml",
			file: "es.yaml",
			buf:  "hello: \"Hola {{name}}.\"\nnested:\n  bye: Adiós\n",
			tag:  language.Spanish,
			want: map[string]string{"hello": "Hola {{name}}.", "nested.bye": "Adiós"},
		},
		{
			name: "json",
			file: "active.it.json",
			buf:  `{"hello": "Ciao {{name}}.", "nested": {"bye": "Ciao"}}`,
			tag:  language.Italian,
			want: map[string]string{"hello": "Ciao {{name}}.", "nested.bye": "Ciao"},
		},
		{
			name: "message with plural forms keeps other",
			file: "active.en.toml",
			buf:  "[items]\none = \"one item\"\nother = \"{{count}} items\"\n",
			tag:  language.English,
			want: map[string]string{"items": "{{count}} items"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCatalog("en", nil)
			require.NoError(t, c.AddMessageFile(tt.file, []byte(tt.buf)))

			got, ok := c.Messages(tt.tag)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCatalog_AddMessageFileErrors(t *testing.T) {
	c := NewCatalog("en", nil)

	err := c.AddMessageFile("active.en.ini", []byte("a=b"))
	assert.True(t, errors.Is(err, domain.ErrUnknownFormat))

	err = c.AddMessageFile("active.en.toml", []byte("not = [valid"))
	assert.Error(t, err)

	assert.Empty(t, c.Languages())
}

func TestCatalog_AddMessagesMerges(t *testing.T) {
	c := NewCatalog("en", nil)
	require.NoError(t, c.AddMessages("en", map[string]string{"a": "1", "b": "2"}))

	before, _ := c.Messages(language.English)
	require.NoError(t, c.AddMessages("en", map[string]string{"b": "3", "c": "4"}))

	after, ok := c.Messages(language.English)
	require.True(t, ok)
	assert.Equal(t, map[string]string{"a": "1", "b": "3", "c": "4"}, after)
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, before, "handed out dictionaries are not mutated")
	assert.Len(t, c.Languages(), 1)

	err := c.AddMessages("not a locale!", map[string]string{"x": "y"})
	assert.True(t, errors.Is(err, domain.ErrUnsupportedLanguage))
}

func TestCatalog_AddValue(t *testing.T) {
	c := NewCatalog("en", nil)
	require.NoError(t, c.AddValue("fr", map[string]any{
		"menu": map[string]any{"open": "Ouvrir", "items": []any{"Un", "Deux"}},
	}))

	fr, ok := c.Messages(language.French)
	require.True(t, ok)
	assert.Equal(t, map[string]string{
		"menu.open":    "Ouvrir",
		"menu.items.0": "Un",
		"menu.items.1": "Deux",
	}, fr)

	err := c.AddValue("fr", map[string]any{"bad": func() {}})
	assert.Error(t, err)
}

func TestCatalog_Match(t *testing.T) {
	c := NewEmbeddedCatalog("en", nil)

	tag, ok := c.Match("fr")
	require.True(t, ok)
	assert.Equal(t, language.French, tag)

	tag, ok = c.Match("en-US")
	require.True(t, ok)
	assert.Equal(t, language.English, tag)

	_, ok = c.Match("ja")
	assert.False(t, ok)

	_, ok = c.Match("???")
	assert.False(t, ok)

	_, ok = NewCatalog("en", nil).Match("en")
	assert.False(t, ok)
}

func TestNewCatalog_InvalidDefault(t *testing.T) {
	c := NewCatalog("###", nil)
	assert.Equal(t, language.English, c.DefaultLanguage())
}
