package types

import (
	"slices"
)

// Handler is the persisted state of the action queue of one inbound packet.
// It is saved before every sub-call and loaded again when the sub-call
// returns.
type Handler struct {
	CounterpartyEndpoint Endpoint `json:"counterparty_endpoint"`
	LocalEndpoint        Endpoint `json:"local_endpoint"`
	Controller           string   `json:"controller"`
	HostAccount          string   `json:"host_account,omitempty"`
	Traces               []Trace  `json:"traces"`
	CurrentAction        *Action  `json:"current_action,omitempty"`

	// PendingActions holds the remaining actions in reverse order, so the
	// next action is always the last element.
	PendingActions []Action       `json:"pending_actions"`
	Results        []ActionResult `json:"results"`
}

// NewHandler creates the handler state for the given actions.
func NewHandler(src, dest Endpoint, controller, hostAccount string, actions []Action, traces []Trace) Handler {
	pending := slices.Clone(actions)
	slices.Reverse(pending)

	return Handler{
		CounterpartyEndpoint: src,
		LocalEndpoint:        dest,
		Controller:           controller,
		HostAccount:          hostAccount,
		Traces:               traces,
		PendingActions:       pending,
		Results:              []ActionResult{},
	}
}

// PopAction removes the next action from the queue and marks it as current.
// It returns false once the queue is exhausted.
func (h *Handler) PopAction() (Action, bool) {
	if len(h.PendingActions) == 0 {
		h.CurrentAction = nil
		return Action{}, false
	}

	last := len(h.PendingActions) - 1
	action := h.PendingActions[last]
	h.PendingActions = h.PendingActions[:last]
	h.CurrentAction = &action

	return action, true
}

// AddResult appends the outcome of the current action.
func (h *Handler) AddResult(result ActionResult) {
	h.Results = append(h.Results, result)
}

// TraceOf returns the trace the packet declared for the denom.
func (h Handler) TraceOf(denom string) (TraceItem, bool) {
	return FindTrace(h.Traces, denom)
}
