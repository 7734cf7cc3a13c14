// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/recipe-optimizer/pkg/availability"
)

// availabilityReport describes a parsed availability statement.
type availabilityReport struct {
	Text      string   `json:"text" yaml:"text"`
	Rule      string   `json:"rule" yaml:"rule"`
	Mode      string   `json:"mode" yaml:"mode"`
	Countries []string `json:"countries" yaml:"countries"`
	Country   string   `json:"country,omitempty" yaml:"country,omitempty"`
	Available *bool    `json:"available,omitempty" yaml:"available,omitempty"`
}

func availabilityCmd() *cli.Command {
	return &cli.Command{
		Name:                  "availability",
		EnableShellCompletion: true,
		Usage:                 "Parse an availability statement",
		ArgsUsage:             "TEXT",
		Description: `Parse catalog availability text ("ALL", "ALL except A, B", "Only A, B")
and optionally check it against --country.

Examples
  optctl availability "ALL except China, Japan" --country Germany
  optctl availability Only Malaysia, Singapore`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "country",
				Usage: "Report whether the rule allows this country",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			text := strings.Join(cmd.Args().Slice(), " ")
			if strings.TrimSpace(text) == "" {
				return errors.New("availability text is required")
			}

			report, err := newAvailabilityReport(text, cmd.String("country"))
			if err != nil {
				return err
			}

			return writeOutput(ctx, cmd, outFormat, report)
		},
	}
}

func newAvailabilityReport(text, country string) (*availabilityReport, error) {
	rule, err := availability.Parse(text)
	if err != nil {
		return nil, err
	}

	r := &availabilityReport{
		Text:      text,
		Rule:      rule.String(),
		Countries: rule.Countries(),
	}
	switch rule.(type) {
	case availability.IncludeList:
		r.Mode = "include"
	default:
		r.Mode = "exclude"
	}
	if r.Countries == nil {
		r.Countries = []string{}
	}

	if country != "" {
		ok := availability.IsAvailable(rule, country)
		r.Country = country
		r.Available = &ok
	}
	return r, nil
}
