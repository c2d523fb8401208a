package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/trialviz/axisgoat/internal/axis"
	"github.com/trialviz/axisgoat/internal/metadata"
	"github.com/trialviz/axisgoat/internal/resolve"
	"github.com/trialviz/axisgoat/internal/store"
)

// withStore opens the database, executes the function, and handles cleanup.
func withStore(fn func(*store.SQLiteStore) error) error {
	s, err := store.Open(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer s.Close()

	return fn(s)
}

// withResolver is withStore for commands that only query the engine.
func withResolver(fn func(*resolve.Resolver) error) error {
	return withStore(func(s *store.SQLiteStore) error {
		return fn(resolve.New(s, log))
	})
}

// parseRequest builds a request from <study> <view> arguments and the
// --axis flag value.
func parseRequest(study, view, axisName string) (resolve.Request, error) {
	v, err := axis.ParseViewID(view)
	if err != nil {
		return resolve.Request{}, err
	}
	a, err := metadata.ParseAxis(axisName)
	if err != nil {
		return resolve.Request{}, err
	}
	return resolve.Request{Study: study, View: v, Axis: a}, nil
}

func notFound(err error, what string) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%s not found", what)
	}
	return err
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
