package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"
)

func docIdArg(c *cli.Context) (int, error) {
	if c.NArg() != 1 {
		return 0, errors.New("requires exactly one doc id argument")
	}

	id, err := strconv.Atoi(c.Args().First())
	if err != nil {
		return 0, fmt.Errorf("invalid doc id %q: %w", c.Args().First(), err)
	}
	return id, nil
}
