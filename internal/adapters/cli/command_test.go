package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"i18ntpl/internal/application"
	"i18ntpl/internal/domain"
	"i18ntpl/internal/infrastructure/i18n"
	"i18ntpl/pkg/templater"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	catalog := i18n.NewEmbeddedCatalog("en", nil)
	svc, err := application.NewTranslationService(catalog, "en", []string{"en", "fr"}, 0, nil)
	require.NoError(t, err)

	cmd := NewRootCommand(svc, nil)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), err
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "json data",
			args: []string{"render", "hello", "--data", `{"name":"John"}`},
			want: "Hello John.\n",
		},
		{
			name: "french",
			args: []string{"render", "hello", "-l", "fr", "-d", `{"name":"Jean"}`},
			want: "Bonjour Jean.\n",
		},
		{
			name: "toml data",
			args: []string{"render", "greeting.morning", "-f", "toml", "-d", `name = "Ann"`},
			want: "Good morning Ann!\n",
		},
		{
			name: "yaml data with pointer",
			args: []string{"render", "greeting.by_time", "-f", "yaml", "-d", "name: Ann\nperiod: greeting.evening\n"},
			want: "Good evening Ann!\n",
		},
		{
			name: "escaped braces and numbers",
			args: []string{"render", "cart.summary", "-d", `{"name":"Bo","cart":{"count":3}}`},
			want: "Good morning Bo! Your cart holds 3 {items}.\n",
		},
		{
			name: "missing data placeholder",
			args: []string{"render", "hello"},
			want: "Hello ['EN'](D - 'name').\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, "", tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_Strict(t *testing.T) {
	_, err := run(t, "", "render", "hello", "--strict")
	require.Error(t, err)
	assert.ErrorIs(t, err, templater.ErrUnknownField)
	assert.Equal(t, "Unknown field: `The field `name` does not exist in data.`", err.Error())
}

func TestRender_Stdin(t *testing.T) {
	got, err := run(t, `{"name":"Stdin"}`, "render", "hello", "-d", "-")
	require.NoError(t, err)
	assert.Equal(t, "Hello Stdin.\n", got)
}

func TestRender_BadInput(t *testing.T) {
	_, err := run(t, "", "render", "hello", "-d", "{")
	assert.ErrorContains(t, err, "invalid json data")

	_, err = run(t, "", "render", "hello", "-f", "xml", "-d", "<a/>")
	assert.ErrorContains(t, err, "unknown data format")

	_, err = run(t, "", "render", "hello", "-l", "ja")
	assert.ErrorIs(t, err, domain.ErrUnsupportedLanguage)

	_, err = run(t, "", "render")
	assert.Error(t, err)
}

func TestEval(t *testing.T) {
	got, err := run(t, "", "eval", `{{{hello}}} \{{{*k}}\}`, "-d", `{"name":"Eve","k":"key"}`)
	require.NoError(t, err)
	assert.Equal(t, "Hello Eve. {Value.}\n", got)

	got, err = run(t, "", "eval", "{{who}}")
	require.NoError(t, err)
	assert.Equal(t, "[MISSING_DATA_KEY: `who`]\n", got)

	_, err = run(t, "", "eval", "{{who}}", "--strict")
	assert.ErrorIs(t, err, templater.ErrUnknownField)

	_, err = run(t, "", "eval", "{{who}")
	assert.ErrorIs(t, err, templater.ErrMissingCurvyBracket)
}

func TestFlatten(t *testing.T) {
	got, err := run(t, "", "flatten", "-d", `{"b":[1,{"c":true}],"a":"x"}`)
	require.NoError(t, err)
	assert.Equal(t, "a=x\nb.0=1\nb.1.c=true\n", got)

	got, err = run(t, "a:\n  b: 2.5\n", "flatten", "-f", "yaml", "-d", "-")
	require.NoError(t, err)
	assert.Equal(t, "a.b=2.5\n", got)
}

func TestFlatten_YAMLNonStringKeys(t *testing.T) {
	got, err := run(t, "", "flatten", "-f", "yaml", "-d", "items:\n  1: a\n  2: b\n")
	require.NoError(t, err)
	assert.Equal(t, "items.1=a\nitems.2=b\n", got)

	got, err = run(t, "", "render", "hello", "-f", "yaml", "-d", "name: Ann\n7: seven\n")
	require.NoError(t, err)
	assert.Equal(t, "Hello Ann.\n", got)

	got, err = run(t, "", "eval", "{{items.2}}", "--strict", "-f", "yaml", "-d", "items:\n  2: b\n")
	require.NoError(t, err)
	assert.Equal(t, "b\n", got)
}

func TestFlatten_NoData(t *testing.T) {
	got, err := run(t, "", "flatten")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLanguages(t *testing.T) {
	got, err := run(t, "", "languages")
	require.NoError(t, err)
	assert.Equal(t, "* en\n  fr\n", got)

	got, err = run(t, "", "languages", "--lang", "fr-FR")
	require.NoError(t, err)
	assert.Equal(t, "  en\n* fr\n", got)
}

func TestDecodeData(t *testing.T) {
	v, err := decodeData([]byte("  "), formatJSON)
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = decodeData([]byte("[cart]\ncount = 2\n"), formatTOML)
	require.NoError(t, err)
	flat, err := templater.Flatten(v)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"cart.count": "2"}, flat)

	v, err = decodeData([]byte("items:\n  1: a\n  2: b\n"), formatYAML)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"items.1": "a", "items.2": "b"}, templater.FlattenValue(v))

	_, err = decodeData([]byte("a = "), formatTOML)
	assert.ErrorContains(t, err, "invalid toml data")

	_, err = decodeData([]byte("a: [\n"), formatYAML)
	assert.ErrorContains(t, err, "invalid yaml data")
}
