package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rninformatics/battlesnake-utils/api"
	"github.com/rninformatics/battlesnake-utils/game"
)

// loadState decodes a webhook payload from path ("-" is stdin). A non-empty
// you switches the ego snake.
func loadState(path, you string) (*game.State, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open snapshot: %w", err)
		}
		defer f.Close()
		r = f
	}

	st, err := api.DecodeState(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if you == "" {
		return st, nil
	}
	clone, ok := st.CloneAs(you)
	if !ok {
		return nil, fmt.Errorf("%s: no snake with id %q", path, you)
	}
	return clone, nil
}
