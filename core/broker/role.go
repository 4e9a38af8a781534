package broker

// Role is fixed when a connection is established.
type Role uint8

const (
	RoleSubscriber Role = iota
	RolePublisher
)

// DefaultPublishPath is the request path that marks a publisher.
const DefaultPublishPath = "/publisher"

func (r Role) String() string {
	switch r {
	case RolePublisher:
		return "publisher"
	default:
		return "subscriber"
	}
}

// Classify returns RolePublisher when target equals publishPath exactly and
// RoleSubscriber for everything else, including empty or malformed targets.
func Classify(target, publishPath string) Role {
	if target == publishPath {
		return RolePublisher
	}
	return RoleSubscriber
}
