package inspect

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	cliapp "github.com/DS-LIT/hrba-forms/cmd/app/cli"
	"github.com/DS-LIT/hrba-forms/internal/pkg/pdftext"
	"github.com/DS-LIT/hrba-forms/internal/render"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "validate a rendered PDF and print the text of every page",
		ArgsUsage: "<file.pdf|->",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("expect exactly one PDF file (or - for stdin)", 2)
			}
			data, err := cliapp.ReadInput(c.Args().First())
			if err != nil {
				return errors.Wrap(err, "failed to read PDF")
			}

			count, err := render.Verify(data)
			if err != nil {
				return err
			}
			pages, err := pdftext.Pages(data)
			if err != nil {
				return err
			}
			w := c.App.Writer
			fmt.Fprintf(w, "pages: %d\n", count)
			for i, text := range pages {
				fmt.Fprintf(w, "--- page %d ---\n%s\n", i+1, text)
			}
			return nil
		},
	}
}
