package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jisj/bookxmp/internal/document"
	"github.com/jisj/bookxmp/internal/host"
)

func newInitCmd() *cobra.Command {
	var (
		flags recordFlags
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init <file>",
		Short: "Create a sidecar document with book metadata",
		Long: `Create a new sidecar document holding a metadata packet for one book.

A fresh library identifier is generated unless --id is given. The document
information header is filled from the title, the first author and the
configured producer.`,
		Example: `  bookxmp init paris.yaml --title "An American In Paris" --lang en \
      --genre music --genre music_sheets --author "George Gershwin"`,
		Args: requireArgs("paris.yaml --title \"An American In Paris\"", "file"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, args[0], &flags, force)
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func runInit(cmd *cobra.Command, path string, flags *recordFlags, force bool) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	if _, err := s.fs.Stat(path); err == nil && !force {
		return fmt.Errorf("invalid argument: %s already exists (use --force to overwrite)", path)
	}

	if flags.id == "" {
		flags.id = uuid.NewString()
	}

	info := map[string]string{
		host.InfoTitle:        flags.title,
		host.InfoProducer:     s.cfg.Producer,
		host.InfoCreationDate: time.Now().UTC().Format(time.RFC3339),
	}
	if len(flags.authors) > 0 {
		if name, _, err := parseAuthorArg(flags.authors[0]); err == nil {
			info[host.InfoAuthor] = name
		}
	}

	doc, err := document.New(s.loader().New(info), s.logger)
	if err != nil {
		return err
	}
	defer doc.Close()

	book, err := doc.Book()
	if err != nil {
		return err
	}
	if err := flags.apply(book, s.cfg.Language); err != nil {
		return err
	}
	if err := doc.SaveAs(path); err != nil {
		return err
	}

	s.done("Created %s (%s)", path, flags.id)
	return nil
}
