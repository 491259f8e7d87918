package order

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusExpired  Status = "expired"
	StatusFailed   Status = "failed"
)

// Pending is the only non-terminal state; every legal transition starts there.
var validNext = map[Status]map[Status]bool{
	StatusPending:  {StatusApproved: true, StatusExpired: true, StatusFailed: true},
	StatusApproved: {},
	StatusExpired:  {},
	StatusFailed:   {},
}

func (s Status) IsTerminal() bool {
	return s != StatusPending
}

func (s Status) CanTransition(to Status) bool {
	return validNext[s][to]
}

func (s Status) String() string {
	return string(s)
}

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusExpired, StatusFailed:
		return Status(s), true
	default:
		return "", false
	}
}

// ItemKind discriminates what an order delivers: a one-shot digital product
// or a time-boxed access pass.
type ItemKind string

const (
	KindProduct ItemKind = "product"
	KindPass    ItemKind = "pass"
)

func (k ItemKind) String() string {
	return string(k)
}

func ParseItemKind(s string) (ItemKind, bool) {
	switch ItemKind(s) {
	case KindProduct, KindPass:
		return ItemKind(s), true
	default:
		return "", false
	}
}
