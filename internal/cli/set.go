package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jisj/bookxmp/internal/schema"
)

// editable is a Book or a Work: readable and writable.
type editable interface {
	recordReader
	recordWriter
}

// setFields lists the field names accepted by `set`.
var setFields = []string{
	"title", "id", "date", "genre", "author",
	"key", "instruments", "catalog-number", "arranged-by",
}

const propPrefix = "prop."

func newSetCmd() *cobra.Command {
	var (
		work int
		lang string
	)

	cmd := &cobra.Command{
		Use:   "set <file> <field> <value>",
		Short: "Set one metadata field of a book or work",
		Long: fmt.Sprintf(`Set one field of the book, or of a work with --work N (1-based).

Fields: %s
genre and author append to their list; author takes NAME or NAME=UUID.
prop.<Name> sets a custom book property.`, strings.Join(setFields, ", ")),
		Example: `  bookxmp set paris.yaml title "Ein Amerikaner in Paris" --lang de
  bookxmp set paris.yaml key F-dur --work 1
  bookxmp set paris.yaml prop.Publisher "New World Music"`,
		Args: requireArgs("paris.yaml title \"An American In Paris\"", "file", "field", "value"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(cmd, args[0], args[1], args[2], work, lang)
		},
	}
	cmd.Flags().IntVar(&work, "work", 0, "Edit the Nth work instead of the book (1-based)")
	cmd.Flags().StringVar(&lang, "lang", "", "Language for title (default: keep the current one)")
	return cmd
}

func runSet(cmd *cobra.Command, path, field, value string, work int, lang string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	doc, err := s.open(path)
	if err != nil {
		return err
	}
	defer doc.Close()

	book, err := doc.Book()
	if err != nil {
		return err
	}

	if name, ok := strings.CutPrefix(field, propPrefix); ok {
		if work > 0 {
			return fmt.Errorf("invalid argument: custom properties apply to the book only")
		}
		if name == "" {
			return fmt.Errorf("invalid argument: empty property name")
		}
		err = book.SetProperties(map[string]string{name: value})
	} else {
		var target editable = book
		if work > 0 {
			works, err := book.Works()
			if err != nil {
				return err
			}
			if work > len(works) {
				return fmt.Errorf("invalid argument --work %d: book has %d works", work, len(works))
			}
			target = works[work-1]
		} else if work < 0 {
			return fmt.Errorf("invalid argument --work %d: works are numbered from 1", work)
		}
		err = setField(target, field, value, lang)
	}
	if err != nil {
		return err
	}

	modified, err := doc.Modified()
	if err != nil {
		return err
	}
	if !modified {
		s.logger.Info("%s unchanged", path)
		return nil
	}
	if err := doc.SaveAs(path); err != nil {
		return err
	}
	s.done("Updated %s in %s", field, path)
	return nil
}

func setField(r editable, field, value, lang string) error {
	switch field {
	case "title":
		if lang != "" {
			return r.SetLocalizedTitle(value, lang)
		}
		return r.SetTitle(value)
	case "id":
		id, err := parseUUIDArg("id", value)
		if err != nil {
			return err
		}
		return r.SetIdentifier(id)
	case "date":
		t, err := parseDateArg(value)
		if err != nil {
			return err
		}
		return r.SetDateCreated(t)
	case "genre":
		return r.AddGenre(value)
	case "author":
		name, id, err := parseAuthorArg(value)
		if err != nil {
			return err
		}
		_, err = r.AddAuthor(name, id)
		return err
	case "key", "instruments", "catalog-number", "arranged-by":
		return setMusicField(r, field, value)
	}
	return fmt.Errorf("invalid argument: unknown field %q (fields: %s, %s<Name>)",
		field, strings.Join(setFields, ", "), propPrefix)
}

func setMusicField(r editable, field, value string) error {
	m, err := r.Music()
	if err != nil {
		return err
	}
	v, err := m.Values()
	if err != nil {
		return err
	}
	switch field {
	case "key":
		v.Key = value
	case "instruments":
		v.Instruments = value
	case "catalog-number":
		v.CatalogNumber = value
	case "arranged-by":
		v.ArrangedBy = value
	}
	return r.SetMusic(v)
}

var _ editable = (*schema.Book)(nil)
var _ editable = (*schema.Work)(nil)
