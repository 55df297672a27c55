package app

import (
	"fmt"

	"chillista/internal/domain"
)

// Talk opens the conversation menu for the waiting customer.
func (s *Service) Talk(st *domain.State) ([]Event, error) {
	c := st.CurrentCustomer
	if c == nil {
		return nil, domain.ErrNoCustomer
	}
	script := domain.ScriptFor(c.Archetype)
	d := domain.Dialogue{
		CustomerID: c.ID,
		Greeting:   s.pick(script.Greetings),
		Choices:    append([]domain.DialogueChoice(nil), script.Choices...),
	}
	st.Dialogue = &d
	c.ConversationCount++
	return []Event{{
		Kind:    EventDialogueOpened,
		Tone:    ToneSystem,
		Message: fmt.Sprintf("%s: %q", c.Name, d.Greeting),
		Payload: DialogueOpenedPayload{Dialogue: d},
	}}, nil
}

// Choose applies the selected dialogue option and closes the menu.
func (s *Service) Choose(st *domain.State, index int) ([]Event, error) {
	c := st.CurrentCustomer
	if c == nil {
		return nil, domain.ErrNoCustomer
	}
	if st.Dialogue == nil || st.Dialogue.CustomerID != c.ID {
		return nil, domain.ErrNoDialogueChoices
	}
	if index < 0 || index >= len(st.Dialogue.Choices) {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidChoice, index)
	}
	choice := st.Dialogue.Choices[index]
	st.Dialogue = nil
	return s.converse(st, choice.Effect, choice.Response), nil
}

// SmallTalk is the quick friendly chat: a little reputation and goodwill.
func (s *Service) SmallTalk(st *domain.State) ([]Event, error) {
	if st.CurrentCustomer == nil {
		return nil, domain.ErrNoCustomer
	}
	st.Dialogue = nil
	return s.converse(st, domain.SmallTalkEffect, s.pick(domain.SmallTalkLines(st.Weather))), nil
}

// Upsell pitches a pastry. Failure costs patience and satisfaction.
func (s *Service) Upsell(st *domain.State) ([]Event, error) {
	if st.CurrentCustomer == nil {
		return nil, domain.ErrNoCustomer
	}
	st.Dialogue = nil
	return s.converse(st, domain.QuickUpsellEffect, ""), nil
}

func (s *Service) converse(st *domain.State, effect domain.Effect, line string) []Event {
	speaker := st.CurrentCustomer.Name
	out := domain.ApplyEffect(st, effect, s.rng.Float64())
	if effect.Type == domain.EffectUpsell && line == "" {
		line = s.pick(domain.UpsellLines(out.Success))
	}

	tone := ToneSystem
	switch {
	case !out.Success || effect.Satisfaction < 0:
		tone = ToneError
	case effect.Satisfaction > 0:
		tone = ToneSuccess
	}

	events := []Event{{
		Kind:    EventDialogueResponse,
		Tone:    tone,
		Sound:   out.Sound,
		Message: fmt.Sprintf("%s: %q", speaker, line),
		Payload: DialogueResponsePayload{
			Speaker:  speaker,
			Line:     line,
			Feedback: out.Messages,
			Success:  out.Success,
			Income:   out.Income,
		},
	}}
	if st.CurrentCustomer.HasLeft() {
		events = append(events, s.walkout(st)...)
	}
	return append(events, s.unlocks(st)...)
}
