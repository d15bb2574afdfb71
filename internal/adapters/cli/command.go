package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"i18ntpl/internal/ports/input"
	"i18ntpl/pkg/templater"
)

// dataFlags are shared by every command that takes a data document.
type dataFlags struct {
	data   string
	format string
}

func (f *dataFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.data, "data", "d", "", "data document, or - to read it from stdin")
	cmd.Flags().StringVarP(&f.format, "data-format", "f", formatJSON, "data document format: json, toml or yaml")
}

// load reads, decodes and flattens the data document. Decoded trees go
// through FlattenValue since YAML mappings with non-string keys do not
// survive a JSON round trip.
func (f *dataFlags) load(cmd *cobra.Command) (map[string]string, error) {
	buf, err := readData(f.data, cmd.InOrStdin())
	if err != nil {
		return nil, err
	}
	tree, err := decodeData(buf, f.format)
	if err != nil {
		return nil, err
	}
	if tree == nil {
		return map[string]string{}, nil
	}
	return templater.FlattenValue(tree), nil
}

// NewRootCommand builds the i18ntpl command tree on top of a translation use case.
func NewRootCommand(translator input.TranslationUseCase, logger *zap.Logger) *cobra.Command {
	if logger == nil {
		logger = zap.NewNop()
	}

	var lang string
	root := &cobra.Command{
		Use:           "i18ntpl",
		Short:         "Resolve curly-brace translation templates",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if lang == "" {
				return nil
			}
			if err := translator.SetLanguage(lang); err != nil {
				return err
			}
			logger.Debug("language selected", zap.String("lang", translator.CurrentLanguage()))
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&lang, "lang", "l", "", "language to render with (defaults to I18N_DEFAULT_LANGUAGE)")

	root.AddCommand(
		newRenderCommand(translator),
		newEvalCommand(translator),
		newFlattenCommand(),
		newLanguagesCommand(translator),
	)
	return root
}

func newRenderCommand(translator input.TranslationUseCase) *cobra.Command {
	var flags dataFlags
	var strict bool
	cmd := &cobra.Command{
		Use:   "render <key>",
		Short: "Render a catalog message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := flags.load(cmd)
			if err != nil {
				return err
			}
			var out string
			if strict {
				out, err = translator.Render(args[0], data, templater.Options{})
				if err != nil {
					return err
				}
			} else {
				out = translator.TemplateMap(args[0], data)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on missing keys instead of printing placeholders")
	return cmd
}

func newEvalCommand(translator input.TranslationUseCase) *cobra.Command {
	var flags dataFlags
	var strict bool
	cmd := &cobra.Command{
		Use:   "eval <template>",
		Short: "Resolve an inline template against the active language",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := flags.load(cmd)
			if err != nil {
				return err
			}
			opts := templater.SafeOptions()
			if strict {
				opts = templater.Options{}
			}
			out, err := translator.Eval(args[0], data, opts)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on missing keys instead of printing placeholders")
	return cmd
}

func newFlattenCommand() *cobra.Command {
	var flags dataFlags
	cmd := &cobra.Command{
		Use:   "flatten",
		Short: "Print the flat key=value view of a data document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flat, err := flags.load(cmd)
			if err != nil {
				return err
			}
			keys := make([]string, 0, len(flat))
			for k := range flat {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", k, flat[k]); err != nil {
					return err
				}
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newLanguagesCommand(translator input.TranslationUseCase) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the supported languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			current := translator.CurrentLanguage()
			for _, lang := range translator.SupportedLanguages() {
				mark := " "
				if lang == current {
					mark = "*"
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", mark, lang); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
