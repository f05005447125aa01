package entities

// EventKind is the provider-independent meaning of a webhook event, resolved once at
// parse time.
type EventKind int

const (
	EventKindUnrecognized EventKind = iota
	EventKindCaptured
	EventKindFailed
)

func (k EventKind) String() string {
	switch k {
	case EventKindCaptured:
		return "captured"
	case EventKindFailed:
		return "failed"
	default:
		return "unrecognized"
	}
}

// LookupBy names the key used to resolve the payment targeted by a transition.
type LookupBy int

const (
	LookupByOrderID LookupBy = iota + 1
	LookupBySessionID
	LookupByConfirmationID
)

func (l LookupBy) String() string {
	switch l {
	case LookupByOrderID:
		return "order_id"
	case LookupBySessionID:
		return "session_id"
	case LookupByConfirmationID:
		return "confirmation_id"
	default:
		return "unknown"
	}
}

// LookupKey resolves to at most one Payment. Provider is ignored for LookupByOrderID.
type LookupKey struct {
	By       LookupBy
	Provider Provider
	Value    string
}

func ByOrderID(orderID string) LookupKey {
	return LookupKey{By: LookupByOrderID, Value: orderID}
}

func BySessionID(provider Provider, sessionID string) LookupKey {
	return LookupKey{By: LookupBySessionID, Provider: provider, Value: sessionID}
}

func ByConfirmationID(provider Provider, confirmationID string) LookupKey {
	return LookupKey{By: LookupByConfirmationID, Provider: provider, Value: confirmationID}
}

// ProviderEvent is a parsed webhook event. RawType keeps the provider's own tag, which
// is the only information carried by an unrecognized event.
type ProviderEvent struct {
	Provider       Provider
	EventID        string
	RawType        string
	Kind           EventKind
	Target         LookupKey
	ConfirmationID string
}
