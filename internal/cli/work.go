package cli

import (
	"github.com/spf13/cobra"
)

func newWorkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "work",
		Short: "Manage the works of a book",
	}
	cmd.AddCommand(newWorkAddCmd())
	return cmd
}

func newWorkAddCmd() *cobra.Command {
	var flags recordFlags

	cmd := &cobra.Command{
		Use:   "add <file>",
		Short: "Append a work to a book",
		Example: `  bookxmp work add suites.yaml --title "Suite No. 1" --key G-dur \
      --catalog-number "BWV 1007" --author "Johann Sebastian Bach"`,
		Args: requireArgs("suites.yaml --title \"Suite No. 1\"", "file"),
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
			work, err := book.AddWork()
			if err != nil {
				return err
			}
			if err := flags.apply(work, s.cfg.Language); err != nil {
				return err
			}
			works, err := book.Works()
			if err != nil {
				return err
			}
			if err := doc.SaveAs(args[0]); err != nil {
				return err
			}
			s.done("Added work %d to %s", len(works), args[0])
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
