// Package resolve runs the axis engine against study metadata held in a
// store. It is the layer shared by the CLI and the HTTP server.
package resolve

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sourcegraph/conc/pool"

	"github.com/trialviz/axisgoat/internal/axis"
	"github.com/trialviz/axisgoat/internal/metadata"
	"github.com/trialviz/axisgoat/internal/store"
)

// Request addresses one axis of one view of a study.
type Request struct {
	Study string
	View  axis.ViewID
	Axis  metadata.Axis
}

func (r Request) String() string {
	return fmt.Sprintf("%s/%s/%s", r.Study, r.View, r.Axis)
}

// Default is the pre-selected option of an axis. Legacy views only carry
// Value; every other view carries Option.
type Default struct {
	View   axis.ViewID             `json:"view"`
	Axis   metadata.Axis           `json:"axis"`
	Option *axis.DisplayableOption `json:"option,omitempty"`
	Value  string                  `json:"value,omitempty"`
}

// Label is what a selector shows for the default.
func (d Default) Label() string {
	if d.Option != nil {
		return d.Option.DisplayLabel
	}
	return d.Value
}

type Resolver struct {
	store store.Store
	log   *slog.Logger
}

func New(s store.Store, log *slog.Logger) *Resolver {
	return &Resolver{store: s, log: log}
}

func (r *Resolver) load(ctx context.Context, req Request) (*store.Study, metadata.View, error) {
	study, err := r.store.GetStudy(ctx, req.Study)
	if err != nil {
		return nil, metadata.View{}, err
	}
	if !study.HasView(req.View) {
		return nil, metadata.View{}, fmt.Errorf("view %s of %s: %w", req.View, req.Study, store.ErrNotFound)
	}
	v, err := r.store.GetViewMetadata(ctx, req.Study, req.View)
	if err != nil {
		return nil, metadata.View{}, err
	}
	return study, v, nil
}

// Options lists the selectable options of an axis. Legacy views list their
// raw values.
func (r *Resolver) Options(ctx context.Context, req Request) ([]axis.DisplayableOption, error) {
	_, v, err := r.load(ctx, req)
	if err != nil {
		return nil, err
	}

	if axis.PolicyFor(req.View).Legacy {
		legacy := v.Legacy(req.Axis)
		out := make([]axis.DisplayableOption, 0, len(legacy))
		for _, o := range legacy {
			out = append(out, axis.DisplayableOption{DisplayLabel: o.Value, GroupByKey: o.Value})
		}
		return out, nil
	}

	catalog := v.Catalog(req.Axis)
	if req.Axis == metadata.AxisY && axis.PolicyFor(req.View).Trellised() {
		if opts := axis.ExpandWithTrellis(catalog.Options); len(opts) > 0 {
			return opts, nil
		}
	}
	return axis.Expand(catalog, req.View), nil
}

// Default resolves the pre-selected option of an axis.
func (r *Resolver) Default(ctx context.Context, req Request) (Default, error) {
	study, v, err := r.load(ctx, req)
	if err != nil {
		return Default{}, err
	}

	d := resolveDefault(req.View, req.Axis, study.Ongoing, v)
	r.log.Debug("resolved default", "request", req.String(), "label", d.Label())
	return d, nil
}

func resolveDefault(view axis.ViewID, a metadata.Axis, ongoing bool, v metadata.View) Default {
	d := Default{View: view, Axis: a}

	if axis.PolicyFor(view).Legacy {
		if a == metadata.AxisY {
			d.Value = axis.DefaultLegacyY(view, v.LegacyY)
		} else {
			d.Value = axis.DefaultLegacyX(view, ongoing, v.LegacyX).Value
		}
		return d
	}

	var opt axis.DisplayableOption
	if a == metadata.AxisY {
		opt = axis.DefaultY(view, v.Y)
	} else {
		opt = axis.DefaultX(view, ongoing, v.X)
	}
	d.Option = &opt
	return d
}

// Reconcile restores a persisted selection against the current metadata.
func (r *Resolver) Reconcile(ctx context.Context, req Request, selected axis.SelectedOption) (axis.DisplayableOption, error) {
	_, v, err := r.load(ctx, req)
	if err != nil {
		return axis.DisplayableOption{}, err
	}
	return axis.Reconcile(selected, v.Catalog(req.Axis), req.View), nil
}

// ViewDefaults holds both axis defaults of one view.
type ViewDefaults struct {
	View axis.ViewID `json:"view"`
	X    Default     `json:"x"`
	Y    Default     `json:"y"`
}

// StudyDefaults resolves the defaults of every view imported for study,
// running at most workers resolutions at a time. Results follow view order.
func (r *Resolver) StudyDefaults(ctx context.Context, studyName string, workers int) ([]ViewDefaults, error) {
	study, err := r.store.GetStudy(ctx, studyName)
	if err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = 1
	}

	results := make([]ViewDefaults, len(study.Views))
	p := pool.New().WithMaxGoroutines(workers).WithContext(ctx).WithCancelOnError()

	for i, view := range study.Views {
		i, view := i, view
		p.Go(func(ctx context.Context) error {
			v, err := r.store.GetViewMetadata(ctx, studyName, view)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", view, err)
			}
			results[i] = ViewDefaults{
				View: view,
				X:    resolveDefault(view, metadata.AxisX, study.Ongoing, v),
				Y:    resolveDefault(view, metadata.AxisY, study.Ongoing, v),
			}
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}

	r.log.Info("resolved study defaults", "study", studyName, "views", len(results), "workers", workers)
	return results, nil
}
