// Package memory implements ports.DeviceQueryService over an in-memory
// device tree. It backs snapshot replay and the test suites.
package memory

import (
	"sync"

	"devtree/internal/adapters/cfgmgr"
	"devtree/internal/domain"
	"devtree/internal/ports"
)

// Device describes one node of the in-memory tree
type Device struct {
	ID       string    `yaml:"id"`
	Status   uint32    `yaml:"status,omitempty"`
	Problem  uint32    `yaml:"problem,omitempty"`
	Phantom  bool      `yaml:"phantom,omitempty"`
	Children []*Device `yaml:"children,omitempty"`

	Properties *Properties `yaml:"properties,omitempty"`

	// Injected failures, 0 for none
	IDError       uint32 `yaml:"id_error,omitempty"`
	StatusError   uint32 `yaml:"status_error,omitempty"`
	ChildError    uint32 `yaml:"child_error,omitempty"`
	SiblingError  uint32 `yaml:"sibling_error,omitempty"`
	PropertyError uint32 `yaml:"property_error,omitempty"`
}

// CallCounts records how often each query was made
type CallCounts struct {
	ListSize    int
	List        int
	Locate      int
	FirstChild  int
	NextSibling int
	DeviceID    int
	Status      int
	Property    int
}

// Total returns the number of queries of any kind
func (c CallCounts) Total() int {
	return c.ListSize + c.List + c.Locate + c.FirstChild + c.NextSibling + c.DeviceID + c.Status + c.Property
}

type node struct {
	device   *Device
	handle   domain.DevInst
	parent   *node
	children []*node
	index    int // position among the parent's children
}

// Service implements ports.DeviceQueryService
type Service struct {
	nodes    []*node // nodes[h-1] has handle h
	byID     map[string]*node
	unlisted []string

	listSizeErr domain.ConfigRet
	listErr     domain.ConfigRet
	rootErr     domain.ConfigRet

	mu    sync.Mutex
	calls CallCounts
}

// Ensure Service implements DeviceQueryService
var _ ports.DeviceQueryService = (*Service)(nil)

// Option configures the Service
type Option func(*Service)

// WithListSizeError makes DeviceIDListSize fail with cr
func WithListSizeError(cr domain.ConfigRet) Option {
	return func(s *Service) {
		s.listSizeErr = cr
	}
}

// WithListError makes DeviceIDList fail with cr
func WithListError(cr domain.ConfigRet) Option {
	return func(s *Service) {
		s.listErr = cr
	}
}

// WithRootError makes locating the root fail with cr
func WithRootError(cr domain.ConfigRet) Option {
	return func(s *Service) {
		s.rootErr = cr
	}
}

// WithUnlisted appends identifiers to the device list that cannot be
// located in the tree
func WithUnlisted(ids ...string) Option {
	return func(s *Service) {
		s.unlisted = append(s.unlisted, ids...)
	}
}

// NewService creates a Service for the tree under root. Handles are
// assigned in pre-order starting at 1 for root. A nil root gives an empty
// service whose root cannot be located.
func NewService(root *Device, opts ...Option) *Service {
	s := &Service{
		byID: make(map[string]*node),
	}
	if root != nil {
		s.add(root, nil, 0)
	} else {
		s.rootErr = domain.CRNoSuchDevNode
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) add(d *Device, parent *node, index int) {
	n := &node{
		device: d,
		handle: domain.DevInst(len(s.nodes) + 1),
		parent: parent,
		index:  index,
	}
	s.nodes = append(s.nodes, n)
	if parent != nil {
		parent.children = append(parent.children, n)
	}
	if _, dup := s.byID[d.ID]; !dup {
		s.byID[d.ID] = n
	}
	for i, child := range d.Children {
		s.add(child, n, i)
	}
}

// Calls returns a copy of the query counters
func (s *Service) Calls() CallCounts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Handle returns the handle assigned to the device with the given id
func (s *Service) Handle(id string) (domain.DevInst, bool) {
	n, ok := s.byID[id]
	if !ok {
		return 0, false
	}
	return n.handle, true
}

func (s *Service) count(field *int) {
	s.mu.Lock()
	*field++
	s.mu.Unlock()
}

func (s *Service) lookup(h domain.DevInst) (*node, error) {
	if h == 0 || int(h) > len(s.nodes) {
		return nil, domain.CRInvalidDevNode
	}
	return s.nodes[h-1], nil
}

func (s *Service) listed() []string {
	ids := make([]string, 0, len(s.nodes)+len(s.unlisted))
	for _, n := range s.nodes {
		ids = append(ids, n.device.ID)
	}
	return append(ids, s.unlisted...)
}

// DeviceIDListSize returns the packed size of every identifier in the tree
// plus the unlisted ones
func (s *Service) DeviceIDListSize() (int, error) {
	s.count(&s.calls.ListSize)
	if s.listSizeErr != domain.CRSuccess {
		return 0, s.listSizeErr
	}
	return cfgmgr.MultiSZSize(s.listed()), nil
}

// DeviceIDList packs the identifiers into a buffer of capacity characters
// and splits it again, as the platform boundary does
func (s *Service) DeviceIDList(capacity int) ([]string, error) {
	s.count(&s.calls.List)
	if s.listErr != domain.CRSuccess {
		return nil, s.listErr
	}
	buf := cfgmgr.PackMultiSZ(s.listed())
	if capacity < len(buf) {
		return nil, domain.CRBufferSmall
	}
	return cfgmgr.SplitMultiSZ(buf), nil
}

// Locate finds a device by identifier, or the root for an empty id
func (s *Service) Locate(id string, phantom bool) (domain.DevInst, error) {
	s.count(&s.calls.Locate)
	if id == "" {
		if s.rootErr != domain.CRSuccess {
			return 0, s.rootErr
		}
		if len(s.nodes) == 0 {
			return 0, domain.CRNoSuchDevNode
		}
		return s.nodes[0].handle, nil
	}
	n, ok := s.byID[id]
	if !ok {
		return 0, domain.CRNoSuchDevNode
	}
	if n.device.Phantom && !phantom {
		return 0, domain.CRNoSuchDevNode
	}
	return n.handle, nil
}

// FirstChild returns the first child of h
func (s *Service) FirstChild(h domain.DevInst) (domain.DevInst, error) {
	s.count(&s.calls.FirstChild)
	n, err := s.lookup(h)
	if err != nil {
		return 0, err
	}
	if n.device.ChildError != 0 {
		return 0, domain.ConfigRet(n.device.ChildError)
	}
	if len(n.children) == 0 {
		return 0, domain.CRNoSuchDevInst
	}
	return n.children[0].handle, nil
}

// NextSibling returns the sibling following h
func (s *Service) NextSibling(h domain.DevInst) (domain.DevInst, error) {
	s.count(&s.calls.NextSibling)
	n, err := s.lookup(h)
	if err != nil {
		return 0, err
	}
	if n.device.SiblingError != 0 {
		return 0, domain.ConfigRet(n.device.SiblingError)
	}
	if n.parent == nil {
		return 0, domain.CRNoSuchDevInst
	}
	siblings := n.parent.children
	if n.index+1 >= len(siblings) {
		return 0, domain.CRNoSuchDevInst
	}
	return siblings[n.index+1].handle, nil
}

// DeviceID returns the identifier of h, failing with CR_BUFFER_SMALL when
// it does not fit in capacity characters plus terminator
func (s *Service) DeviceID(h domain.DevInst, capacity int) (string, error) {
	s.count(&s.calls.DeviceID)
	n, err := s.lookup(h)
	if err != nil {
		return "", err
	}
	if n.device.IDError != 0 {
		return "", domain.ConfigRet(n.device.IDError)
	}
	if cfgmgr.UTF16Len(n.device.ID) > capacity {
		return "", domain.CRBufferSmall
	}
	return n.device.ID, nil
}

// Status returns the status and problem code of h. Phantom devices report
// CR_NO_SUCH_DEVINST like the platform does.
func (s *Service) Status(h domain.DevInst) (domain.Status, domain.Problem, error) {
	s.count(&s.calls.Status)
	n, err := s.lookup(h)
	if err != nil {
		return 0, 0, err
	}
	if n.device.StatusError != 0 {
		return 0, 0, domain.ConfigRet(n.device.StatusError)
	}
	if n.device.Phantom {
		return 0, 0, domain.CRNoSuchDevInst
	}
	return domain.Status(n.device.Status), domain.Problem(n.device.Problem), nil
}

// Property returns a registry property of h. Properties the device does
// not carry fail with CR_NO_SUCH_VALUE.
func (s *Service) Property(h domain.DevInst, prop domain.Property) (domain.PropertyValue, error) {
	s.count(&s.calls.Property)
	n, err := s.lookup(h)
	if err != nil {
		return domain.PropertyValue{Property: prop}, err
	}
	if n.device.PropertyError != 0 {
		return domain.PropertyValue{Property: prop}, domain.ConfigRet(n.device.PropertyError)
	}
	return n.device.Properties.value(prop)
}
