package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jisj/bookxmp/internal/xmp"
)

func newDumpCmd() *cobra.Command {
	var packet bool

	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print the raw metadata tree of a document",
		Long: `Print every schema and property of the metadata packet, including
schemas written by other tools. With --packet the serialized RDF/XML packet
is printed instead.`,
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

			meta, err := doc.Metadata()
			if err != nil {
				return err
			}
			if packet {
				data, err := xmp.Serialize(meta)
				if err != nil {
					return err
				}
				fmt.Fprint(s.out, string(data))
				return nil
			}
			fmt.Fprint(s.out, meta.Dump())
			return nil
		},
	}
	cmd.Flags().BoolVar(&packet, "packet", false, "Print the serialized packet")
	return cmd
}
