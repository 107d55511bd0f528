package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ZaguanLabs/golingo"
	"github.com/ZaguanLabs/golingo/payload"
	"github.com/spf13/cobra"
)

func newTextCmd(a *app) *cobra.Command {
	var lf localeFlags
	cmd := &cobra.Command{
		Use:   "text [file]",
		Short: "Localize plain text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := a.readInput(args)
			if err != nil {
				return err
			}
			engine, err := a.engine(cmd)
			if err != nil {
				return err
			}
			out, err := engine.LocalizeText(cmd.Context(), string(input), lf.params(), a.progress())
			if err != nil {
				return err
			}
			return a.writeOutput(lf.output, []byte(out))
		},
	}
	lf.register(cmd)
	return cmd
}

func newBatchCmd(a *app) *cobra.Command {
	var (
		source  string
		targets []string
		fast    bool
	)
	cmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "Localize text into several locales at once",
		Long:  `Localize text into every --target locale concurrently. Prints one "locale: text" line per target.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := a.readInput(args)
			if err != nil {
				return err
			}
			engine, err := a.engine(cmd)
			if err != nil {
				return err
			}

			locales := make([]golingo.LocaleCode, len(targets))
			for i, t := range targets {
				locales[i] = golingo.LocaleCode(strings.TrimSpace(t))
			}
			results, err := engine.BatchLocalizeText(cmd.Context(), string(input), golingo.BatchLocalizeTextParams{
				SourceLocale:  golingo.LocaleCode(source),
				TargetLocales: locales,
				Fast:          fast,
			})
			if err != nil {
				return err
			}
			for i, out := range results {
				fmt.Fprintf(a.stdout, "%s: %s\n", locales[i], out)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&source, "source", "s", "", "Source locale (empty to auto-detect)")
	cmd.Flags().StringSliceVarP(&targets, "target", "t", nil, "Target locales (repeat or comma-separate)")
	cmd.Flags().BoolVar(&fast, "fast", false, "Trade quality for speed")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}

func newObjectCmd(a *app) *cobra.Command {
	var lf localeFlags
	cmd := &cobra.Command{
		Use:   "object [file.json]",
		Short: "Localize the string values of a flat JSON object",
		Long:  `Localize the top-level string values of a JSON object. Key order is preserved; non-string values are dropped.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := a.readInput(args)
			if err != nil {
				return err
			}
			src := payload.New(0)
			if err := json.Unmarshal(input, src); err != nil {
				return fmt.Errorf("parsing JSON object: %w", err)
			}

			engine, err := a.engine(cmd)
			if err != nil {
				return err
			}
			progress := a.progress()
			out, err := engine.LocalizePayload(cmd.Context(), src, lf.params(), func(percent int, _, _ *payload.Payload) {
				if progress != nil {
					progress(percent)
				}
			})
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return err
			}
			return a.writeOutput(lf.output, append(data, '\n'))
		},
	}
	lf.register(cmd)
	return cmd
}

func newChatCmd(a *app) *cobra.Command {
	var lf localeFlags
	cmd := &cobra.Command{
		Use:   "chat [file.json]",
		Short: "Localize a chat transcript",
		Long:  `Localize a JSON array of {"name": ..., "text": ...} messages. Speaker names are kept.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := a.readInput(args)
			if err != nil {
				return err
			}
			var chat []golingo.ChatMessage
			if err := json.Unmarshal(input, &chat); err != nil {
				return fmt.Errorf("parsing chat: %w", err)
			}

			engine, err := a.engine(cmd)
			if err != nil {
				return err
			}
			out, err := engine.LocalizeChat(cmd.Context(), chat, lf.params(), a.progress())
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return err
			}
			return a.writeOutput(lf.output, append(data, '\n'))
		},
	}
	lf.register(cmd)
	return cmd
}

func newHTMLCmd(a *app) *cobra.Command {
	var lf localeFlags
	cmd := &cobra.Command{
		Use:   "html [file.html]",
		Short: "Localize an HTML document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := a.readInput(args)
			if err != nil {
				return err
			}
			engine, err := a.engine(cmd)
			if err != nil {
				return err
			}
			out, err := engine.LocalizeHTML(cmd.Context(), string(input), lf.params(), a.progress())
			if err != nil {
				return err
			}
			return a.writeOutput(lf.output, []byte(out))
		},
	}
	lf.register(cmd)
	return cmd
}

func newRecognizeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "recognize [file]",
		Short: "Detect the locale of text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := a.readInput(args)
			if err != nil {
				return err
			}
			engine, err := a.engine(cmd)
			if err != nil {
				return err
			}
			locale, err := engine.RecognizeLocale(cmd.Context(), string(input))
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, locale)
			return nil
		},
	}
}

func newWhoAmICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the account behind the API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.engine(cmd)
			if err != nil {
				return err
			}
			identity, err := engine.WhoAmI(cmd.Context())
			if err != nil {
				return err
			}
			if identity == nil {
				return fmt.Errorf("not authenticated")
			}
			fmt.Fprintf(a.stdout, "%s (%s)\n", identity.Email, identity.ID)
			return nil
		},
	}
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "%s %s\n", golingo.Name, version)
			if commit != "unknown" && commit != "" {
				fmt.Fprintf(a.stdout, "  commit:  %s\n", commit)
			}
			if buildDate != "unknown" && buildDate != "" {
				fmt.Fprintf(a.stdout, "  built:   %s\n", buildDate)
			}
		},
	}
}
