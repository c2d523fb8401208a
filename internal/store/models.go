package store

import (
	"time"

	"github.com/trialviz/axisgoat/internal/axis"
)

type Study struct {
	ID        int64
	Name      string
	Ongoing   bool
	Views     []axis.ViewID // Views with imported metadata, in view order
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasView reports whether metadata was imported for view.
func (s *Study) HasView(view axis.ViewID) bool {
	for _, v := range s.Views {
		if v == view {
			return true
		}
	}
	return false
}
