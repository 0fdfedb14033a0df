package submit

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	cliapp "github.com/DS-LIT/hrba-forms/cmd/app/cli"
	"github.com/DS-LIT/hrba-forms/internal/form"
	"github.com/DS-LIT/hrba-forms/internal/model"
	"github.com/DS-LIT/hrba-forms/internal/pkg/signature"
	"github.com/DS-LIT/hrba-forms/internal/portal"
	"github.com/DS-LIT/hrba-forms/internal/render"
)

const (
	padWidth  = 500
	padHeight = 200
)

func Command() *cli.Command {
	return &cli.Command{
		Name:      "submit",
		Usage:     "fill a form from a JSON object of field values and submit it to the API",
		ArgsUsage: "<values.json|->",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "form",
				Usage:    "form name: tribunal or reimbursement",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "strokes",
				Usage: "JSON file of signature strokes, each a list of {\"X\":..,\"Y\":..} points",
			},
			&cli.BoolFlag{
				Name:  "render-locally",
				Usage: "draw the PDF here and upload it to the forwarding endpoint instead of posting the record",
			},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("expect exactly one values file (or - for stdin)", 2)
	}

	conf, err := cliapp.Config()
	if err != nil {
		return err
	}

	schema, ok := form.Schemas(model.DefaultCatalog())[c.String("form")]
	if !ok {
		return errors.Errorf("unknown form %q", c.String("form"))
	}

	data, err := cliapp.ReadInput(c.Args().First())
	if err != nil {
		return errors.Wrap(err, "failed to read values")
	}
	f := form.New(schema)
	if err := Fill(f, data); err != nil {
		return err
	}

	session := &portal.Session{
		Form:   f,
		Client: portal.NewClientFromConfig(conf),
		Notifier: portal.NotifierFunc(func(kind portal.Notice, message string) {
			log.Info().
				Str("evt.name", "cli.submit.notice").
				Str("kind", string(kind)).
				Msg(message)
		}),
	}
	if path := c.String("strokes"); path != "" {
		pad, err := padFromFile(path)
		if err != nil {
			return err
		}
		session.Pad = pad
	}
	if c.Bool("render-locally") {
		session.Renderer = &render.DirectDraw{}
	}

	err = session.Submit(c.Context)
	var invalid *form.ValidationError
	if errors.As(err, &invalid) {
		for name, msg := range invalid.Fields {
			log.Warn().Str("field", name).Msg(msg)
		}
	}
	return err
}

// Fill sets every value of a JSON object on f. JSON arrays become string
// lists and numbers are kept as typed.
// Fill sets the decoded values in schema order, so drivers and mirrors
// resolve the same way whatever order the JSON object lists them in.
func Fill(f *form.Form, data []byte) error {
	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return errors.Wrap(err, "failed to decode values")
	}
	for name := range values {
		if _, ok := f.Schema().Field(name); !ok {
			return fmt.Errorf("%w: %s", form.ErrUnknownField, name)
		}
	}
	for _, field := range f.Schema().Fields {
		v, ok := values[field.Name]
		if !ok {
			continue
		}
		if list, ok := v.([]any); ok {
			items := make([]string, 0, len(list))
			for _, item := range list {
				s, ok := item.(string)
				if !ok {
					return errors.Errorf("%s: list items must be strings", field.Name)
				}
				items = append(items, s)
			}
			v = items
		}
		if err := f.Set(field.Name, v); err != nil {
			return err
		}
	}
	return nil
}

func padFromFile(path string) (*signature.Pad, error) {
	data, err := cliapp.ReadInput(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read strokes")
	}
	var strokes [][]signature.Point
	if err := json.Unmarshal(data, &strokes); err != nil {
		return nil, errors.Wrap(err, "failed to decode strokes")
	}
	pad := signature.NewPad(padWidth, padHeight, 1)
	for _, s := range strokes {
		pad.Stroke(s...)
	}
	return pad, nil
}
