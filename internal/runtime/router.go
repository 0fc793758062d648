package runtime

import (
	"fmt"

	"github.com/aretw0/vista/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// DecisionKind is the outcome of routing an interaction.
type DecisionKind string

const (
	DecisionNavigate   DecisionKind = "navigate"
	DecisionOpenDialog DecisionKind = "open_dialog"
	// DecisionUnhandled covers audio hotspots, which have no playback semantics yet.
	DecisionUnhandled DecisionKind = "unhandled"
)

// Decision tells the engine what a selected interaction does.
type Decision struct {
	Kind   DecisionKind
	Target domain.SceneID // DecisionNavigate
	Index  int            // DecisionOpenDialog
}

// goToSceneParams mirrors the params of a go-to-scene action.
// The target is authored either as a number or as a numeric string.
type goToSceneParams struct {
	NextSceneID *int `mapstructure:"nextSceneId"`
}

// Router classifies and routes interactions.
type Router struct{}

// NewRouter creates a new router.
func NewRouter() *Router {
	return &Router{}
}

// Classify turns authoring params into a tagged Interaction.
// Payloads without a parsable library, or go-to-scene actions without an
// integer target, are classified as KindMalformed.
func (r *Router) Classify(index int, params domain.InteractionParams) domain.Interaction {
	in := domain.Interaction{
		Index:    index,
		Kind:     domain.KindMalformed,
		Label:    params.Label,
		Title:    params.Action.Title,
		Position: params.Position,
		Params:   params.Action.Params,
	}

	lib, err := domain.ParseLibrary(params.Action.Library)
	if err != nil {
		return in
	}
	in.Library = lib

	switch lib.MachineName {
	case domain.MachineGoToScene:
		target, err := decodeTarget(params.Action.Params)
		if err != nil {
			return in
		}
		in.Kind = domain.KindGoToScene
		in.Target = target
	case domain.MachineAudio:
		in.Kind = domain.KindAudio
	default:
		in.Kind = domain.KindGeneric
	}
	return in
}

// Resolve decides what selecting interactions[index] does.
func (r *Router) Resolve(interactions []domain.Interaction, index int) (Decision, error) {
	if index < 0 || index >= len(interactions) {
		return Decision{}, fmt.Errorf("%w: index %d of %d", domain.ErrInteractionNotFound, index, len(interactions))
	}

	in := interactions[index]
	switch in.Kind {
	case domain.KindGoToScene:
		return Decision{Kind: DecisionNavigate, Target: in.Target}, nil
	case domain.KindAudio:
		return Decision{Kind: DecisionUnhandled}, nil
	case domain.KindMalformed:
		return Decision{}, fmt.Errorf("%w: interaction %d", domain.ErrMalformedAction, index)
	default:
		return Decision{Kind: DecisionOpenDialog, Index: index}, nil
	}
}

func decodeTarget(raw map[string]any) (domain.SceneID, error) {
	var p goToSceneParams
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &p,
	})
	if err != nil {
		return 0, err
	}
	if err := decoder.Decode(raw); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrMalformedAction, err)
	}
	if p.NextSceneID == nil {
		return 0, fmt.Errorf("%w: missing nextSceneId", domain.ErrMalformedAction)
	}
	return domain.SceneID(*p.NextSceneID), nil
}
