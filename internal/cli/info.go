package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jisj/bookxmp/internal/document"
	"github.com/jisj/bookxmp/pkg/bookxmp"
)

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Show the document information header",
		Long: `Show the document information header (title, author, dates...).
The header is readable even when the metadata packet is encrypted.`,
		Args: requireArgs("paris.yaml", "file"),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			doc, err := s.open(args[0])
			if err != nil {
				return err
			}
			defer doc.Close()

			info, err := doc.DocumentInfo()
			if err != nil && !errors.Is(err, bookxmp.ErrMalformedDate) {
				return err
			}
			fmt.Fprintln(s.out, s.styles.Heading.Render(args[0]))
			for _, f := range document.AllInfoFields {
				fmt.Fprintln(s.out, s.styles.Field(string(f), labelWidth, info.Get(f)))
			}
			for _, f := range document.AllInfoFields {
				if _, ok := info.Unparsed[f]; ok {
					fmt.Fprintln(s.out, s.styles.Warning.Render(fmt.Sprintf("%s is not a valid date", f)))
				}
			}
			if doc.IsMetadataEncrypted() {
				fmt.Fprintln(s.out, s.styles.Warning.Render("Metadata are encrypted"))
			}
			return nil
		},
	}
	cmd.AddCommand(newInfoSetCmd())
	return cmd
}

func newInfoSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <file> <Field=Value>...",
		Short: "Set document information fields",
		Long: fmt.Sprintf(`Set one or more document information fields. An empty value clears
the field. Dates accept RFC 3339 or YYYY-MM-DD.

Fields: %s`, infoFieldNames()),
		Example: `  bookxmp info set paris.yaml Subject="Orchestral score" ModDate=2024-05-01`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return requireArgs("paris.yaml Subject=Score", "file", "Field=Value")(cmd, args)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			var (
				info   document.Info
				fields []document.InfoField
			)
			for _, a := range args[1:] {
				name, value, ok := strings.Cut(a, "=")
				if !ok {
					return fmt.Errorf("invalid argument %q: expected Field=Value", a)
				}
				f, err := document.ParseInfoField(name)
				if err != nil {
					return fmt.Errorf("invalid argument: %w (fields: %s)", err, infoFieldNames())
				}
				if err := info.Set(f, value); err != nil {
					return err
				}
				fields = append(fields, f)
			}

			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			doc, err := s.open(path)
			if err != nil {
				return err
			}
			defer doc.Close()

			if err := doc.SetDocumentInfo(info, fields...); err != nil {
				return err
			}
			if err := doc.SaveAs(path); err != nil {
				return err
			}
			s.done("Updated %d info field(s) in %s", len(fields), path)
			return nil
		},
	}
}

func infoFieldNames() string {
	names := make([]string, len(document.AllInfoFields))
	for i, f := range document.AllInfoFields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
