package ports

import "devtree/internal/domain"

// DeviceQueryService is the device enumeration capability of the host
// platform. Failures are reported as domain.ConfigRet values (possibly
// wrapped); FirstChild and NextSibling return domain.CRNoSuchDevNode when
// the chain has no more nodes.
type DeviceQueryService interface {
	// DeviceIDListSize returns the buffer capacity, in characters, needed
	// for the unfiltered device identifier list
	DeviceIDListSize() (int, error)

	// DeviceIDList fetches the unfiltered identifier list into a buffer of
	// the given capacity. The packed multi-string is split at the boundary;
	// the terminating empty string is not part of the result.
	DeviceIDList(capacity int) ([]string, error)

	// Locate finds the node for id, or the tree root when id is empty.
	// With phantom set, devices not currently present are located too.
	Locate(id string, phantom bool) (domain.DevInst, error)

	// Tree navigation
	FirstChild(node domain.DevInst) (domain.DevInst, error)
	NextSibling(node domain.DevInst) (domain.DevInst, error)

	// DeviceID returns the identifier of node. It must fail with
	// domain.CRBufferSmall rather than truncate when the identifier does
	// not fit in capacity characters plus terminator.
	DeviceID(node domain.DevInst, capacity int) (string, error)

	// Status returns the DN_* status flags and problem code of node
	Status(node domain.DevInst) (domain.Status, domain.Problem, error)

	// Property reads a registry property of node. A property the device
	// does not have fails with domain.CRNoSuchValue; a value stored with an
	// unexpected registry type fails with domain.CRWrongType.
	Property(node domain.DevInst, prop domain.Property) (domain.PropertyValue, error)
}
