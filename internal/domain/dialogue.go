package domain

import (
	"fmt"
)

// EffectType selects how a dialogue choice changes the game.
type EffectType string

const (
	EffectReputation EffectType = "reputation"
	EffectPatience   EffectType = "patience"
	EffectTips       EffectType = "tips"
	EffectUpsell     EffectType = "upsell"
	EffectCustom     EffectType = "custom"
)

// Custom dialogue actions.
const (
	CustomRefillOffer     = "refill_offer"
	CustomMusicCompliment = "music_compliment"
	CustomPhotoOp         = "photo_op"
)

// Effect is the scripted consequence of a dialogue choice.
type Effect struct {
	Type         EffectType `json:"type"`
	Value        float64    `json:"value,omitempty"`
	Chance       float64    `json:"chance,omitempty"`
	Satisfaction int        `json:"satisfaction,omitempty"`
	Action       string     `json:"action,omitempty"`
}

// DialogueChoice is one selectable line.
type DialogueChoice struct {
	Text     string `json:"text"`
	Effect   Effect `json:"effect"`
	Response string `json:"response"`
}

// DialogueScript is the conversation material for one archetype.
type DialogueScript struct {
	Greetings []string
	Choices   []DialogueChoice
}

// Dialogue is an open conversation awaiting the player's choice.
type Dialogue struct {
	CustomerID string           `json:"customerId"`
	Greeting   string           `json:"greeting"`
	Choices    []DialogueChoice `json:"choices"`
}

var (
	// SmallTalkEffect is the quick friendly chat.
	SmallTalkEffect = Effect{Type: EffectReputation, Value: 1, Satisfaction: 5}
	// QuickUpsellEffect is the pastry pitch offered to every customer.
	QuickUpsellEffect = Effect{Type: EffectUpsell, Chance: 0.4, Value: 3, Satisfaction: 2}
)

const (
	upsellFailPatience     = 10
	upsellFailSatisfaction = 5
)

var dialogueScripts = map[Archetype]DialogueScript{
	ArchetypeStudent: {
		Greetings: []string{"Hey, I'm in a rush.", "Do you have Wi-Fi?", "I need caffeine, stat.", "Got an exam in an hour!", "Is this place quiet enough to study?"},
		Choices: []DialogueChoice{
			{Text: "Study hard!", Effect: Effect{Type: EffectPatience, Value: 10, Satisfaction: 5}, Response: "Thanks, I'm trying!"},
			{Text: "Need a snack?", Effect: Effect{Type: EffectUpsell, Chance: 0.4, Value: 3, Satisfaction: 3}, Response: "Maybe a muffin..."},
			{Text: "Quiet day?", Effect: Effect{Type: EffectReputation, Value: 1, Satisfaction: 2}, Response: "I hope so."},
			{Text: "Free refill?", Effect: Effect{Type: EffectCustom, Action: CustomRefillOffer, Satisfaction: 10}, Response: "Really? You're a lifesaver!"},
			{Text: "Good luck!", Effect: Effect{Type: EffectPatience, Value: 15, Satisfaction: 8}, Response: "Thanks! I'll need it."},
		},
	},
	ArchetypeHipster: {
		Greetings: []string{"Is this single origin?", "I only drink oat milk.", "Cool vibe here.", "Love the aesthetic.", "Do you roast your own beans?"},
		Choices: []DialogueChoice{
			{Text: "It's artisanal.", Effect: Effect{Type: EffectReputation, Value: 2, Satisfaction: 8}, Response: "Nice, I respect that."},
			{Text: "Try the Matcha?", Effect: Effect{Type: EffectUpsell, Chance: 0.7, Value: 5, Satisfaction: 5}, Response: "Ooh, matcha sounds good."},
			{Text: "Vinyl is better.", Effect: Effect{Type: EffectPatience, Value: 15, Satisfaction: 12}, Response: "Finally, someone gets it."},
			{Text: "Check out my playlist.", Effect: Effect{Type: EffectCustom, Action: CustomMusicCompliment, Satisfaction: 10}, Response: "This track is fire."},
			{Text: "Locally sourced.", Effect: Effect{Type: EffectReputation, Value: 3, Satisfaction: 10}, Response: "That's what I like to hear!"},
		},
	},
	ArchetypeTourist: {
		Greetings: []string{"Wow, so cute!", "Where is the park?", "Can I take a photo?", "This is so charming!", "Is this a local favorite?"},
		Choices: []DialogueChoice{
			{Text: "Welcome!", Effect: Effect{Type: EffectTips, Value: 2, Satisfaction: 8}, Response: "You're so kind! Here's a tip."},
			{Text: "Buy a souvenir?", Effect: Effect{Type: EffectUpsell, Chance: 0.5, Value: 10, Satisfaction: 4}, Response: "Oh, a mug? Sure!"},
			{Text: "Park is nearby.", Effect: Effect{Type: EffectReputation, Value: 1, Satisfaction: 6}, Response: "Thanks for the info!"},
			{Text: "Say cheese!", Effect: Effect{Type: EffectCustom, Action: CustomPhotoOp, Satisfaction: 12}, Response: "*Click* Perfect shot!"},
			{Text: "Try our special!", Effect: Effect{Type: EffectUpsell, Chance: 0.6, Value: 4, Satisfaction: 5}, Response: "When in Rome, right?"},
		},
	},
	ArchetypeRegular: {
		Greetings: []string{"The usual, please.", "Good to see you.", "How's business?", "Another day, another coffee.", "You know what I like."},
		Choices: []DialogueChoice{
			{Text: "On the house.", Effect: Effect{Type: EffectReputation, Value: 5, Satisfaction: 15}, Response: "You're the best! I'll tell everyone."},
			{Text: "Try something new?", Effect: Effect{Type: EffectUpsell, Chance: 0.3, Value: 4, Satisfaction: 3}, Response: "I trust you. Surprise me."},
			{Text: "Busy day.", Effect: Effect{Type: EffectPatience, Value: 20, Satisfaction: 5}, Response: "Take your time, I'm good."},
			{Text: "How's work?", Effect: Effect{Type: EffectPatience, Value: 10, Satisfaction: 7}, Response: "Same old, same old. Thanks for asking!"},
		},
	},
	ArchetypeCritic: {
		Greetings: []string{"Impress me.", "I'm writing a review.", "Is this sanitary?", "I've had better.", "Show me what you've got."},
		Choices: []DialogueChoice{
			{Text: "We use best beans.", Effect: Effect{Type: EffectReputation, Value: 3, Satisfaction: 5}, Response: "We shall see."},
			{Text: "Complimentary water?", Effect: Effect{Type: EffectPatience, Value: 15, Satisfaction: 3}, Response: "Hmph. Acceptable."},
			{Text: "No photos please.", Effect: Effect{Type: EffectReputation, Value: -2, Satisfaction: -10}, Response: "Excuse me? I am a journalist!"},
			{Text: "Fresh roasted today.", Effect: Effect{Type: EffectReputation, Value: 4, Satisfaction: 8}, Response: "Interesting. Continue."},
		},
	},
	ArchetypeDefault: {
		Greetings: []string{"Hello.", "One coffee.", "Nice weather.", "Good morning!", "Smells great in here."},
		Choices: []DialogueChoice{
			{Text: "How are you?", Effect: Effect{Type: EffectReputation, Value: 1, Satisfaction: 4}, Response: "I'm good, thanks."},
			{Text: "Want a pastry?", Effect: Effect{Type: EffectUpsell, Chance: 0.3, Value: 3, Satisfaction: 2}, Response: "No thanks."},
			{Text: "Nice outfit.", Effect: Effect{Type: EffectPatience, Value: 5, Satisfaction: 6}, Response: "Oh, thank you!"},
			{Text: "Beautiful day!", Effect: Effect{Type: EffectPatience, Value: 8, Satisfaction: 5}, Response: "It really is!"},
		},
	},
}

// ScriptFor returns the dialogue script of an archetype, falling back to default.
func ScriptFor(a Archetype) DialogueScript {
	if s, ok := dialogueScripts[a]; ok {
		return s
	}
	return dialogueScripts[ArchetypeDefault]
}

var (
	smallTalkSunny = []string{"Lovely weather we're having!", "I really like the vibe here.", "It's been a long week, this helps!", "Your coffee is the best in town.", "Thanks for chatting with me!", "This place is so cozy."}
	smallTalkRainy = []string{"Lovely to have a warm drink on a rainy day!", "The rain makes coffee taste even better.", "Thanks for brightening up my gloomy day.", "Your coffee warms my soul on days like this."}
	upsellYes      = []string{"Ooh, that looks delicious! I'll take one.", "Sure, why not?", "You twisted my arm!", "Actually, yes, I'll treat myself!"}
	upsellNo       = []string{"No thanks, just the drink.", "I'm watching my calories.", "Maybe next time.", "Not today, thanks though!"}
)

// SmallTalkLines returns the replies a customer may give to small talk.
func SmallTalkLines(w Weather) []string {
	if w == WeatherRainy {
		return smallTalkRainy
	}
	return smallTalkSunny
}

// UpsellLines returns the replies to a quick upsell attempt.
func UpsellLines(accepted bool) []string {
	if accepted {
		return upsellYes
	}
	return upsellNo
}

// EffectOutcome reports what an applied effect did.
type EffectOutcome struct {
	Messages []string
	Success  bool // false only for a rejected upsell
	Sound    Sound
	Income   float64
}

// SatisfactionFeedback describes the customer's reaction to a satisfaction change.
func SatisfactionFeedback(delta int) (string, Sound) {
	switch {
	case delta > 8:
		return "Customer seems very happy!", SoundChime
	case delta > 0:
		return "Customer is pleased.", SoundChime
	case delta < -5:
		return "Customer looks annoyed...", SoundError
	case delta < 0:
		return "Customer seems a bit put off.", SoundError
	default:
		return "", ""
	}
}

// ApplyEffect mutates s according to e. roll is a uniform draw in [0,1) used
// only by upsells. Reputation stays non-negative and satisfaction within 0..100.
func ApplyEffect(s *State, e Effect, roll float64) EffectOutcome {
	out := EffectOutcome{Success: true}
	cust := s.CurrentCustomer

	if e.Satisfaction != 0 && cust != nil {
		cust.AdjustSatisfaction(e.Satisfaction)
		if msg, snd := SatisfactionFeedback(e.Satisfaction); msg != "" {
			out.Messages = append(out.Messages, msg)
			out.Sound = snd
		}
	}

	switch e.Type {
	case EffectReputation:
		s.Stats.AdjustReputation(int(e.Value))
		out.Messages = append(out.Messages, fmt.Sprintf("%+d Rep (Total: %d)", int(e.Value), s.Stats.Reputation))
	case EffectPatience:
		if cust != nil {
			cust.AddPatience(e.Value)
			out.Messages = append(out.Messages, fmt.Sprintf("%+.0f Patience", e.Value))
		}
	case EffectTips:
		s.Cash += e.Value
		s.Stats.RecordExtra(e.Value, true)
		out.Income = e.Value
		out.Sound = SoundChime
		out.Messages = append(out.Messages, fmt.Sprintf("Got a $%.2f tip! (Total: $%.2f)", e.Value, s.Cash))
	case EffectUpsell:
		if roll < e.Chance {
			s.Cash += e.Value
			s.Stats.RecordExtra(e.Value, false)
			out.Income = e.Value
			out.Sound = SoundChime
			out.Messages = append(out.Messages, fmt.Sprintf("Upsell successful! +$%.2f", e.Value))
		} else {
			out.Success = false
			out.Sound = SoundError
			out.Messages = append(out.Messages, "Upsell attempt failed - customer not interested")
			if cust != nil {
				cust.AddPatience(-upsellFailPatience)
				cust.AdjustSatisfaction(-upsellFailSatisfaction)
			}
		}
	case EffectCustom:
		applyCustom(s, e.Action, &out)
	}
	return out
}

func applyCustom(s *State, action string, out *EffectOutcome) {
	cust := s.CurrentCustomer
	switch action {
	case CustomRefillOffer:
		out.Messages = append(out.Messages, "Offered free refill. Customer is happy!")
		if cust != nil {
			cust.AddPatience(30)
			cust.AdjustSatisfaction(10)
		}
	case CustomMusicCompliment:
		out.Messages = append(out.Messages, "Vibing with the customer. +3 Rep")
		s.Stats.AdjustReputation(3)
		out.Sound = SoundSuccess
		if cust != nil {
			cust.AdjustSatisfaction(5)
		}
	case CustomPhotoOp:
		out.Messages = append(out.Messages, "Posed for a photo. +5 Rep!")
		s.Stats.AdjustReputation(5)
		out.Sound = SoundChime
	}
}
