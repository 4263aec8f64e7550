package run

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/wavefall/internal/model"
)

var ErrRouteNotFound = errors.New("route not found")

// RoutingCatalog maps content and stage steps to stages and waves.
type RoutingCatalog interface {
	StageID(contentID string, step int) (string, bool)
	WaveID(stageID string, step int) (string, bool)
}

// Router walks content → stage → wave. Steps are committed to the run state
// only when a lookup succeeds.
type Router struct {
	catalog RoutingCatalog
	state   *model.RunState
}

// NewRouter creates a router over state.
func NewRouter(catalog RoutingCatalog, state *model.RunState) *Router {
	return &Router{catalog: catalog, state: state}
}

// ResolveStart resolves the wave at the state's content and stage steps.
func (r *Router) ResolveStart() (stageID, waveID string, err error) {
	s := r.state
	contentStep, stageStep := max(1, s.ContentStep), max(1, s.StageStep)

	stageID, ok := r.catalog.StageID(s.ContentID, contentStep)
	if !ok {
		return "", "", fmt.Errorf("content %q step %d: %w", s.ContentID, contentStep, ErrRouteNotFound)
	}
	waveID, ok = r.catalog.WaveID(stageID, stageStep)
	if !ok {
		return "", "", fmt.Errorf("stage %q step %d: %w", stageID, stageStep, ErrRouteNotFound)
	}

	s.ContentStep = contentStep
	s.StageStep = stageStep
	s.StageID = stageID
	return stageID, waveID, nil
}

// ResolveNext resolves the wave after the current one: the next step of the
// same stage, else step 1 of the next content stage. ok is false when the
// content is exhausted, which means victory.
func (r *Router) ResolveNext() (stageID, waveID string, ok bool) {
	s := r.state

	if waveID, ok := r.catalog.WaveID(s.StageID, s.StageStep+1); ok {
		s.StageStep++
		return s.StageID, waveID, true
	}

	nextStage, ok := r.catalog.StageID(s.ContentID, s.ContentStep+1)
	if !ok {
		return "", "", false
	}
	waveID, ok = r.catalog.WaveID(nextStage, 1)
	if !ok {
		slog.Warn("stage has no first wave", "contentID", s.ContentID, "stageID", nextStage)
		return "", "", false
	}

	s.ContentStep++
	s.StageStep = 1
	s.StageID = nextStage
	slog.Info("stage advanced", "contentID", s.ContentID, "step", s.ContentStep, "stageID", nextStage)
	return nextStage, waveID, true
}
