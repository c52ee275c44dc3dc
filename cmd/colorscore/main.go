package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/SirPenguin555/Whats-That-Color/internal/colorspace"
	"github.com/SirPenguin555/Whats-That-Color/internal/model"
	"github.com/SirPenguin555/Whats-That-Color/internal/service"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:   "colorscore",
		Usage:  "score color descriptions offline with the heuristic scorer",
		Writer: out,
		Commands: []*cli.Command{
			scoreCommand(),
			colorCommand(),
			infoCommand(),
		},
	}
}

func scoreCommand() *cli.Command {
	return &cli.Command{
		Name:      "score",
		Usage:     "rate a description of a color or gradient",
		ArgsUsage: "<description>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "hex", Usage: "target color, #rrggbb"},
			&cli.StringFlag{Name: "dual", Usage: "gradient target, #rrggbb,#rrggbb"},
		},
		Action: func(c *cli.Context) error {
			target, err := targetFromFlags(c.String("hex"), c.String("dual"))
			if err != nil {
				return err
			}
			svc := service.NewScoringService(nil, nil, nil, nil)
			resp, err := svc.Score(c.Context, model.ScoreRequest{
				Description: strings.Join(c.Args().Slice(), " "),
				Target:      target,
			})
			if err != nil {
				return err
			}
			return printJSON(c.App.Writer, resp)
		},
	}
}

func colorCommand() *cli.Command {
	return &cli.Command{
		Name:  "color",
		Usage: "generate a color target",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "dual", Usage: "generate a two-color gradient"},
			&cli.StringFlag{Name: "previous", Usage: "color the new target must differ from"},
		},
		Action: func(c *cli.Context) error {
			if c.Bool("dual") {
				a, b := colorspace.DualColorPair(colorspace.DefaultMinDistance)
				return printJSON(c.App.Writer, model.Dual(a, b))
			}
			previous := c.String("previous")
			if previous == "" {
				return printJSON(c.App.Writer, model.Single(colorspace.RandomColor()))
			}
			if !colorspace.IsValidHex(previous) {
				return fmt.Errorf("invalid previous color %q", previous)
			}
			return printJSON(c.App.Writer, model.Single(colorspace.DifferentColor(previous)))
		},
	}
}

func infoCommand() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "classify a color",
		ArgsUsage: "<hex>",
		Action: func(c *cli.Context) error {
			hex := c.Args().First()
			if !strings.HasPrefix(hex, "#") {
				hex = "#" + hex
			}
			if !colorspace.IsValidHex(hex) {
				return fmt.Errorf("invalid color %q", c.Args().First())
			}
			return printJSON(c.App.Writer, colorspace.Describe(hex))
		},
	}
}

func targetFromFlags(hex, dual string) (model.ColorTarget, error) {
	switch {
	case hex != "" && dual != "":
		return model.ColorTarget{}, errors.New("use either --hex or --dual")
	case dual != "":
		a, b, ok := strings.Cut(dual, ",")
		a, b = strings.TrimSpace(a), strings.TrimSpace(b)
		if !ok || !colorspace.IsValidHex(a) || !colorspace.IsValidHex(b) {
			return model.ColorTarget{}, fmt.Errorf("invalid --dual %q, want #rrggbb,#rrggbb", dual)
		}
		return model.Dual(a, b), nil
	case hex != "":
		if !colorspace.IsValidHex(hex) {
			return model.ColorTarget{}, fmt.Errorf("invalid --hex %q", hex)
		}
		return model.Single(hex), nil
	default:
		return model.ColorTarget{}, errors.New("--hex or --dual is required")
	}
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
