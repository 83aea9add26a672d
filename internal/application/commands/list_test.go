package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devtree/internal/adapters/memory"
	"devtree/internal/application"
	"devtree/internal/domain"
)

func TestListDevicesCommand_Execute(t *testing.T) {
	svc := memory.NewService(wideTree())
	c := &capture{}

	stats, err := NewListDevicesCommand(svc, newInspector(svc, c), nop).Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 11, stats.Identifiers)
	assert.Equal(t, 11, stats.Located)
	assert.Equal(t, 11, stats.Records)
	assert.Equal(t, 11, svc.Calls().Locate, "one locate attempt per identifier")
	assert.Len(t, c.records(), 11)
	assert.Empty(t, c.errLines())

	// identifier line precedes its record
	assert.Contains(t, c.out.String(), "HTREE\\ROOT\\0\nDevice 1: HTREE\\ROOT\\0 (status=0; problem=0)\n")
}

func TestListDevicesCommand_UnlocatableIdentifier(t *testing.T) {
	svc := memory.NewService(&memory.Device{ID: `HTREE\ROOT\0`}, memory.WithUnlisted(`SWD\GONE\1`))
	c := &capture{}

	stats, err := NewListDevicesCommand(svc, newInspector(svc, c), nop).Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Identifiers)
	assert.Equal(t, 1, stats.Located)
	assert.Contains(t, c.out.String(), "SWD\\GONE\\1 (error 13)\n")
	// inspection is still attempted with the invalid node
	assert.Equal(t, 2, svc.Calls().DeviceID)
	assert.Equal(t, []string{"DeviceID(node 0, capacity 256) returned 5 (CR_INVALID_DEVNODE)"}, c.errLines())
}

func TestListDevicesCommand_PhantomDevice(t *testing.T) {
	svc := memory.NewService(&memory.Device{
		ID:       `HTREE\ROOT\0`,
		Children: []*memory.Device{{ID: `USB\OLD\1`, Phantom: true}},
	})
	c := &capture{}

	stats, err := NewListDevicesCommand(svc, newInspector(svc, c), nop).Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Located, "phantom devices are located")
	assert.Equal(t, 2, stats.Records)
	assert.Contains(t, c.records(), "Device 2: USB\\OLD\\1 (status=-1; problem=-1)")
}

func TestListDevicesCommand_HardFailureSkipsOnlyThatRecord(t *testing.T) {
	svc := memory.NewService(&memory.Device{
		ID: `HTREE\ROOT\0`,
		Children: []*memory.Device{
			{ID: "A"},
			{ID: "B", IDError: uint32(domain.CRFailure)},
			{ID: "C"},
		},
	})
	c := &capture{}

	stats, err := NewListDevicesCommand(svc, newInspector(svc, c), nop).Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Identifiers)
	assert.Equal(t, 3, stats.Records)
	assert.Equal(t, []string{`HTREE\ROOT\0`, "A", "C"}, recordIDs(t, c.records()))
}

func TestListDevicesCommand_EmptyList(t *testing.T) {
	svc := memory.NewService(nil)
	c := &capture{}

	stats, err := NewListDevicesCommand(svc, newInspector(svc, c), nop).Execute(context.Background())
	require.NoError(t, err)

	assert.Zero(t, stats.Records)
	assert.Empty(t, c.out.String())
	assert.Empty(t, c.err.String())
}

func TestListDevicesCommand_FetchFailures(t *testing.T) {
	tests := []struct {
		name    string
		opt     memory.Option
		wantOp  string
		wantErr domain.ConfigRet
	}{
		{
			name:    "size query fails",
			opt:     memory.WithListSizeError(domain.CRRegistryError),
			wantOp:  "DeviceIDListSize",
			wantErr: domain.CRRegistryError,
		},
		{
			name:    "list fetch fails",
			opt:     memory.WithListError(domain.CROutOfMemory),
			wantOp:  "DeviceIDList",
			wantErr: domain.CROutOfMemory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := memory.NewService(wideTree(), tt.opt)
			c := &capture{}

			_, err := NewListDevicesCommand(svc, newInspector(svc, c), nop).Execute(context.Background())

			var qerr *application.QueryError
			require.True(t, errors.As(err, &qerr))
			assert.Equal(t, tt.wantOp, qerr.Op)
			assert.Equal(t, tt.wantErr, qerr.Code())
			assert.Empty(t, c.out.String())
			assert.Equal(t, []string{qerr.Error()}, c.errLines())
			assert.Zero(t, svc.Calls().Locate)
		})
	}
}
