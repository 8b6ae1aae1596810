package cli

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Show the book metadata of a document",
		Example: `  bookxmp show paris.yaml
  bookxmp show paris.yaml --json`,
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

			book, err := doc.Book()
			if err != nil {
				return err
			}
			view, err := readBook(book)
			if err != nil {
				return err
			}

			if asJSON {
				data, err := json.MarshalIndent(view, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode book: %w", err)
				}
				fmt.Fprintln(s.out, string(data))
				return nil
			}
			renderBook(s.out, s.styles, args[0], view)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the book as JSON")
	return cmd
}
