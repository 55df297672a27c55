package domain

import (
	"errors"
	"fmt"
)

// Mode is the brewing station currently in use.
type Mode string

const (
	ModeCoffee   Mode = "coffee"
	ModeMatcha   Mode = "matcha"
	ModeEspresso Mode = "espresso"
)

// Action is a single step the barista performs at the station.
type Action string

const (
	ActionGrind     Action = "GRIND"
	ActionAddWater  Action = "ADD_WATER"
	ActionStir      Action = "STIR"
	ActionPlunge    Action = "PLUNGE"
	ActionSift      Action = "SIFT"
	ActionWhisk     Action = "WHISK"
	ActionTamp      Action = "TAMP"
	ActionPullShot  Action = "PULL_SHOT"
	ActionSteamMilk Action = "STEAM_MILK"
	ActionPour      Action = "POUR"
)

// BeanType tags the beans that went into the current brew.
type BeanType string

const (
	BeanNone     BeanType = ""
	BeanStandard BeanType = "STD"
	BeanPremium  BeanType = "PRM"
)

// Sound is a cue name for the audio collaborator.
type Sound string

const (
	SoundSuccess Sound = "success"
	SoundError   Sound = "error"
	SoundChime   Sound = "chime"
	SoundAction  Sound = "action"
	SoundGrind   Sound = "grind"
	SoundPour    Sound = "pour"
	SoundTrash   Sound = "trash"
)

var (
	ErrUnknownMode    = errors.New("unknown brewing mode")
	ErrModeLocked     = errors.New("brewing mode is locked")
	ErrBrewInProgress = errors.New("finish or trash the current brew first")
	ErrWrongStep      = errors.New("wrong brewing step")
	ErrBrewComplete   = errors.New("drink is already ready")
	ErrNotReady       = errors.New("drink is not ready yet")
)

// RecipeStep is one transition of a recipe.
type RecipeStep struct {
	Action  Action
	Message string
	Sound   Sound
	// Cost returns the supplies consumed for the given bean choice. Nil means free.
	Cost func(bean BeanType) map[Resource]int
	// Bean returns the tag stored after the step, or BeanNone to leave it unchanged.
	Bean func(requested BeanType) BeanType
}

// Recipe is the linear sequence of steps for one mode.
type Recipe struct {
	Mode    Mode
	Label   string
	Upgrade string // upgrade that unlocks the mode; empty when always available
	Steps   []RecipeStep
}

// ReadyStep is the step counter value at which the drink can be served.
func (r Recipe) ReadyStep() int { return len(r.Steps) }

func fixed(r Resource, qty int) func(BeanType) map[Resource]int {
	return func(BeanType) map[Resource]int { return map[Resource]int{r: qty} }
}

var recipes = map[Mode]Recipe{
	ModeCoffee: {
		Mode:  ModeCoffee,
		Label: "AeroPress",
		Steps: []RecipeStep{
			{
				Action: ActionGrind, Message: "Beans ground.", Sound: SoundGrind,
				Cost: func(b BeanType) map[Resource]int {
					if b == BeanPremium {
						return map[Resource]int{ResourceBeansPremium: 20}
					}
					return map[Resource]int{ResourceBeansStandard: 20}
				},
				Bean: func(b BeanType) BeanType {
					if b == BeanPremium {
						return BeanPremium
					}
					return BeanStandard
				},
			},
			{Action: ActionAddWater, Message: "Water added.", Sound: SoundPour, Cost: fixed(ResourceWater, 250)},
			{Action: ActionStir, Message: "Stirred the grounds.", Sound: SoundAction},
			{Action: ActionPlunge, Message: "Plunged! Coffee is ready.", Sound: SoundAction, Cost: fixed(ResourceFilters, 1)},
		},
	},
	ModeMatcha: {
		Mode:    ModeMatcha,
		Label:   "Matcha Bowl",
		Upgrade: UpgradeMatcha,
		Steps: []RecipeStep{
			{Action: ActionSift, Message: "Sifted the matcha powder.", Sound: SoundAction, Cost: fixed(ResourceMatchaPowder, 5)},
			{Action: ActionAddWater, Message: "Added hot water.", Sound: SoundPour, Cost: fixed(ResourceWater, 100)},
			{Action: ActionWhisk, Message: "Whisked to perfection!", Sound: SoundChime},
		},
	},
	ModeEspresso: {
		Mode:    ModeEspresso,
		Label:   "Espresso Machine",
		Upgrade: UpgradeEspresso,
		Steps: []RecipeStep{
			{
				Action: ActionGrind, Message: "Ground 18g for Espresso.", Sound: SoundGrind,
				Cost: fixed(ResourceBeansPremium, 18),
				Bean: func(BeanType) BeanType { return BeanPremium },
			},
			{Action: ActionTamp, Message: "Tamped the grounds firmly.", Sound: SoundAction},
			{Action: ActionPullShot, Message: "Pulled a rich shot.", Sound: SoundAction, Cost: fixed(ResourceWater, 50)},
			{Action: ActionSteamMilk, Message: "Steamed silky milk.", Sound: SoundAction, Cost: fixed(ResourceMilk, 100)},
			{Action: ActionPour, Message: "Poured latte art.", Sound: SoundAction},
		},
	},
}

// RecipeFor returns the recipe of a mode.
func RecipeFor(m Mode) (Recipe, bool) {
	r, ok := recipes[m]
	return r, ok
}

// Modes lists the modes in menu order.
func Modes() []Mode { return []Mode{ModeCoffee, ModeMatcha, ModeEspresso} }

// BrewingState is the barista's position in the active recipe.
type BrewingState struct {
	Mode     Mode     `json:"mode"`
	Step     int      `json:"step"`
	BeanType BeanType `json:"beanType,omitempty"`
}

// NewBrewingState is an idle AeroPress.
func NewBrewingState() BrewingState {
	return BrewingState{Mode: ModeCoffee}
}

// Ready reports whether the current drink can be served.
func (b BrewingState) Ready() bool {
	r, ok := recipes[b.Mode]
	return ok && b.Step == r.ReadyStep()
}

// Expected returns the next action the recipe wants, if any.
func (b BrewingState) Expected() (Action, bool) {
	r, ok := recipes[b.Mode]
	if !ok || b.Step < 0 || b.Step >= len(r.Steps) {
		return "", false
	}
	return r.Steps[b.Step].Action, true
}

// InRange reports whether Step is a position the recipe can be at.
func (b BrewingState) InRange() bool {
	r, ok := recipes[b.Mode]
	return ok && b.Step >= 0 && b.Step <= r.ReadyStep()
}

// Reset clears progress and the bean tag, keeping the mode.
func (b *BrewingState) Reset() {
	b.Step = 0
	b.BeanType = BeanNone
}

// SwitchMode changes the station. Progress is never silently discarded:
// an unfinished or unserved brew must be trashed first.
func (b *BrewingState) SwitchMode(m Mode) error {
	if _, ok := recipes[m]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMode, m)
	}
	if b.Step != 0 {
		return ErrBrewInProgress
	}
	b.Mode = m
	b.Reset()
	return nil
}

// StepResult describes a successful brewing transition.
type StepResult struct {
	Step  RecipeStep
	Cost  map[Resource]int
	Ready bool
}

// Advance performs action against inv. On any error neither the brewing state
// nor the inventory is modified. When consume is false supplies are checked
// against nothing and left untouched (infinite resources).
func (b *BrewingState) Advance(action Action, bean BeanType, inv Inventory, consume bool) (StepResult, error) {
	r, ok := recipes[b.Mode]
	if !ok {
		return StepResult{}, fmt.Errorf("%w: %q", ErrUnknownMode, b.Mode)
	}
	if b.Step < 0 {
		return StepResult{}, fmt.Errorf("%w: step %d", ErrWrongStep, b.Step)
	}
	if b.Step >= r.ReadyStep() {
		return StepResult{}, ErrBrewComplete
	}
	step := r.Steps[b.Step]
	if step.Action != action {
		return StepResult{}, fmt.Errorf("%w: expected %s, got %s", ErrWrongStep, step.Action, action)
	}

	var cost map[Resource]int
	if step.Cost != nil {
		cost = step.Cost(bean)
	}
	if consume && len(cost) > 0 {
		if err := inv.Consume(cost); err != nil {
			return StepResult{}, err
		}
	}

	b.Step++
	if step.Bean != nil {
		b.BeanType = step.Bean(bean)
	}
	return StepResult{Step: step, Cost: cost, Ready: b.Step == r.ReadyStep()}, nil
}
