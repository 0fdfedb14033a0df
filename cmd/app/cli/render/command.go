package render

import (
	"os"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	cliapp "github.com/DS-LIT/hrba-forms/cmd/app/cli"
	"github.com/DS-LIT/hrba-forms/internal/infra"
	"github.com/DS-LIT/hrba-forms/internal/model"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "render a submission record (JSON) to PDF",
		ArgsUsage: "<record.json|->",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "kind",
				Usage:    "record kind: tribunal or reimbursement",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "strategy",
				Usage: "template or direct; defaults to HRBA_RENDER_STRATEGY",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "output path; defaults to the document's own file name",
			},
		},
		Action: run,
	}
}

// Decode parses a record of the given kind from its JSON form.
func Decode(kind string, data []byte) (model.Document, error) {
	var doc model.Document
	switch kind {
	case model.KindTribunal:
		doc = &model.TribunalReport{}
	case model.KindReimbursement:
		doc = &model.ReimbursementRequest{}
	default:
		return nil, errors.Errorf("unknown kind %q: expect %s or %s", kind, model.KindTribunal, model.KindReimbursement)
	}

	// accept both a bare record and the {"data": {...}} envelope
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && len(envelope.Data) > 0 {
		data = envelope.Data
	}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode record")
	}
	return doc, nil
}

func run(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("expect exactly one record file (or - for stdin)", 2)
	}

	conf, err := cliapp.Config()
	if err != nil {
		return err
	}
	if s := c.String("strategy"); s != "" {
		conf.RenderStrategy = s
	}

	data, err := cliapp.ReadInput(c.Args().First())
	if err != nil {
		return errors.Wrap(err, "failed to read record")
	}
	doc, err := Decode(c.String("kind"), data)
	if err != nil {
		return err
	}

	renderer, err := infra.Renderer(conf)
	if err != nil {
		return err
	}
	pdf, err := renderer.Render(c.Context, doc)
	if err != nil {
		return errors.Wrap(err, "failed to render record")
	}

	out := c.String("out")
	if out == "" {
		out = doc.Sheet().Filename
	}
	if err := os.WriteFile(out, pdf, 0o644); err != nil {
		return errors.Wrap(err, "failed to write PDF")
	}

	log.Info().
		Str("evt.name", "cli.render.written").
		Str("path", out).
		Int("bytes", len(pdf)).
		Msg("PDF written")
	return nil
}
