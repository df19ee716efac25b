package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wippyai/typeguard"
	"github.com/wippyai/typeguard/schema"
)

func newDescribeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe SCHEMA...",
		Short: "Print the canonical signature of each schema",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				d, err := schema.Load(path)
				if err != nil {
					return err
				}
				fmt.Fprintln(a.out, a.styles.title.Render(path))
				describe(a.out, a.styles, d)
			}
			return nil
		},
	}
}

// describe prints the signature, the kind, the default value and, for
// records and tuples, one line per member.
func describe(w io.Writer, st styles, d typeguard.Descriptor) {
	fmt.Fprintf(w, "  %s\n", st.typ.Render(d.String()))
	fmt.Fprintf(w, "  kind:    %s\n", d.Kind())
	fmt.Fprintf(w, "  default: %s\n", formatValue(d.Initialize()))
	writeMembers(w, st, d, "  ")
}

func writeMembers(w io.Writer, st styles, d typeguard.Descriptor, indent string) {
	switch t := d.(type) {
	case *typeguard.RecordType:
		keys := t.Keys()
		width := 0
		for _, k := range keys {
			width = max(width, len(k))
		}
		fmt.Fprintf(w, "%sfields:\n", indent)
		for _, k := range keys {
			f, _ := t.Field(k)
			pad := strings.Repeat(" ", width-len(k))
			fmt.Fprintf(w, "%s  %s%s  %s\n", indent, st.key.Render(k), pad, st.typ.Render(f.String()))
		}
	case *typeguard.TupleType:
		fmt.Fprintf(w, "%spositions:\n", indent)
		for i, item := range t.Items() {
			fmt.Fprintf(w, "%s  %d  %s\n", indent, i, st.typ.Render(item.String()))
		}
	case *typeguard.UnionType:
		fmt.Fprintf(w, "%smembers:\n", indent)
		for _, m := range t.Members() {
			fmt.Fprintf(w, "%s  %s\n", indent, st.typ.Render(m.String()))
		}
	case *typeguard.TypedFunction:
		fmt.Fprintf(w, "%soverloads:\n", indent)
		for _, o := range t.Overloads() {
			fmt.Fprintf(w, "%s  %s\n", indent, st.typ.Render(o.String()))
		}
	}
}
