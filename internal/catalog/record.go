package catalog

import (
	"fmt"

	"github.com/jisj/bookxmp/internal/checksum"
	"github.com/jisj/bookxmp/internal/schema"
	"github.com/jisj/bookxmp/pkg/bookxmp"
)

// RecordFromBook builds a catalog record for book, whose serialized form is
// packet. The book must carry an identifier.
func RecordFromBook(book *schema.Book, packet []byte) (Record, error) {
	id, ok, err := book.Identifier()
	if err != nil {
		return Record{}, err
	}
	if !ok {
		return Record{}, fmt.Errorf("book has no identifier: %w", bookxmp.ErrNilIdentifier)
	}

	title, err := book.Title()
	if err != nil {
		return Record{}, err
	}
	genres, err := book.Genres()
	if err != nil {
		return Record{}, err
	}

	authors, err := book.Authors()
	if err != nil {
		return Record{}, err
	}
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		name, err := a.Name()
		if err != nil {
			return Record{}, err
		}
		names = append(names, name)
	}

	works, err := book.Works()
	if err != nil {
		return Record{}, err
	}

	return Record{
		ID:        id,
		Title:     title,
		Genres:    genres,
		Authors:   names,
		WorkCount: len(works),
		Packet:    string(packet),
		Checksum:  checksum.New().CalculateNormalized(packet),
	}, nil
}
