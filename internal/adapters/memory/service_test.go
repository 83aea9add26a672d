package memory

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devtree/internal/domain"
)

func sampleTree() *Device {
	return &Device{
		ID:     `HTREE\ROOT\0`,
		Status: 0x0180000a,
		Children: []*Device{
			{ID: "A", Status: 0x0180200a, Children: []*Device{{ID: "C"}}},
			{ID: "B", Phantom: true},
		},
	}
}

func TestService_Navigation(t *testing.T) {
	svc := NewService(sampleTree())

	root, err := svc.Locate("", true)
	require.NoError(t, err)
	assert.Equal(t, domain.DevInst(1), root)

	a, err := svc.FirstChild(root)
	require.NoError(t, err)
	id, err := svc.DeviceID(a, domain.DefaultIDCapacity)
	require.NoError(t, err)
	assert.Equal(t, "A", id)

	c, err := svc.FirstChild(a)
	require.NoError(t, err)
	_, err = svc.FirstChild(c)
	assert.ErrorIs(t, err, domain.CRNoSuchDevNode)
	_, err = svc.NextSibling(c)
	assert.ErrorIs(t, err, domain.CRNoSuchDevNode)

	b, err := svc.NextSibling(a)
	require.NoError(t, err)
	id, err = svc.DeviceID(b, domain.DefaultIDCapacity)
	require.NoError(t, err)
	assert.Equal(t, "B", id)

	_, err = svc.NextSibling(b)
	assert.ErrorIs(t, err, domain.CRNoSuchDevNode)
	_, err = svc.NextSibling(root)
	assert.ErrorIs(t, err, domain.CRNoSuchDevNode)
}

func TestService_Locate(t *testing.T) {
	svc := NewService(sampleTree())

	_, err := svc.Locate("B", false)
	assert.ErrorIs(t, err, domain.CRNoSuchDevNode, "phantom device needs the phantom flag")

	h, err := svc.Locate("B", true)
	require.NoError(t, err)
	want, _ := svc.Handle("B")
	assert.Equal(t, want, h)

	h, err = svc.Locate("missing", true)
	assert.ErrorIs(t, err, domain.CRNoSuchDevNode)
	assert.Equal(t, domain.DevInst(0), h)
}

func TestService_Status(t *testing.T) {
	svc := NewService(sampleTree())

	a, _ := svc.Handle("A")
	status, problem, err := svc.Status(a)
	require.NoError(t, err)
	assert.Equal(t, domain.Status(0x0180200a), status)
	assert.Equal(t, domain.ProblemNone, problem)

	b, _ := svc.Handle("B")
	_, _, err = svc.Status(b)
	assert.ErrorIs(t, err, domain.CRNoSuchDevInst)

	_, _, err = svc.Status(0)
	assert.ErrorIs(t, err, domain.CRInvalidDevNode)
}

func TestService_DeviceIDCapacity(t *testing.T) {
	long := strings.Repeat("X", 300)
	svc := NewService(&Device{ID: `HTREE\ROOT\0`, Children: []*Device{{ID: long}}})
	h, _ := svc.Handle(long)

	_, err := svc.DeviceID(h, 299)
	assert.ErrorIs(t, err, domain.CRBufferSmall)

	id, err := svc.DeviceID(h, 300)
	require.NoError(t, err)
	assert.Equal(t, long, id)
}

func TestService_DeviceIDList(t *testing.T) {
	svc := NewService(sampleTree(), WithUnlisted(`SWD\GONE\1`))

	size, err := svc.DeviceIDListSize()
	require.NoError(t, err)

	_, err = svc.DeviceIDList(size - 1)
	assert.ErrorIs(t, err, domain.CRBufferSmall)

	ids, err := svc.DeviceIDList(size)
	require.NoError(t, err)
	assert.Equal(t, []string{`HTREE\ROOT\0`, "A", "C", "B", `SWD\GONE\1`}, ids)

	calls := svc.Calls()
	assert.Equal(t, 1, calls.ListSize)
	assert.Equal(t, 2, calls.List)
	assert.Equal(t, 3, calls.Total())
}

func TestService_InjectedErrors(t *testing.T) {
	svc := NewService(sampleTree(),
		WithListSizeError(domain.CRFailure),
		WithListError(domain.CRRegistryError),
		WithRootError(domain.CRAccessDenied),
	)

	_, err := svc.DeviceIDListSize()
	assert.ErrorIs(t, err, domain.CRFailure)
	_, err = svc.DeviceIDList(1024)
	assert.ErrorIs(t, err, domain.CRRegistryError)
	_, err = svc.Locate("", true)
	assert.ErrorIs(t, err, domain.CRAccessDenied)
}

func TestNewService_NilRoot(t *testing.T) {
	svc := NewService(nil)

	_, err := svc.Locate("", true)
	assert.ErrorIs(t, err, domain.CRNoSuchDevNode)

	size, err := svc.DeviceIDListSize()
	require.NoError(t, err)
	ids, err := svc.DeviceIDList(size)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestNewService_NilRootClearedError(t *testing.T) {
	svc := NewService(nil, WithRootError(domain.CRSuccess))

	_, err := svc.Locate("", true)
	assert.ErrorIs(t, err, domain.CRNoSuchDevNode)
	_, err = svc.Locate("", false)
	assert.ErrorIs(t, err, domain.CRNoSuchDevNode)
}

func TestService_Property(t *testing.T) {
	flags := uint32(0x40)
	svc := NewService(&Device{
		ID: `HTREE\ROOT\0`,
		Children: []*Device{
			{ID: "A", Properties: &Properties{
				FriendlyName: "Hub",
				UpperFilters: []string{"f1", "f2"},
				ConfigFlags:  &flags,
			}},
			{ID: "B", PropertyError: uint32(domain.CRRegistryError)},
		},
	})

	a, _ := svc.Handle("A")
	v, err := svc.Property(a, domain.PropFriendlyName)
	require.NoError(t, err)
	assert.Equal(t, "Hub", v.Text)

	v, err = svc.Property(a, domain.PropUpperFilters)
	require.NoError(t, err)
	assert.Equal(t, "f1, f2", v.String())

	v, err = svc.Property(a, domain.PropConfigFlags)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x40), v.DWord)

	_, err = svc.Property(a, domain.PropCapabilities)
	assert.ErrorIs(t, err, domain.CRNoSuchValue)

	b, _ := svc.Handle("B")
	_, err = svc.Property(b, domain.PropFriendlyName)
	assert.ErrorIs(t, err, domain.CRRegistryError)

	_, err = svc.Property(99, domain.PropFriendlyName)
	assert.ErrorIs(t, err, domain.CRInvalidDevNode)

	assert.Equal(t, 6, svc.Calls().Property)
}

func TestService_SiblingError(t *testing.T) {
	tree := sampleTree()
	tree.Children[0].SiblingError = uint32(domain.CRFailure)
	svc := NewService(tree)

	a, _ := svc.Handle("A")
	_, err := svc.NextSibling(a)
	assert.ErrorIs(t, err, domain.CRFailure)

	c, _ := svc.Handle("C")
	_, err = svc.NextSibling(c)
	assert.ErrorIs(t, err, domain.CRNoSuchDevInst)
}
