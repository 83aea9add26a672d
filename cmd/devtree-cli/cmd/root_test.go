package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devtree/internal/adapters/memory"
	"devtree/internal/application"
	"devtree/internal/domain"
	"devtree/internal/ports"
)

type result struct {
	out   string
	err   string
	built int
}

func sampleTree() *memory.Device {
	return &memory.Device{
		ID: `HTREE\ROOT\0`,
		Children: []*memory.Device{
			{ID: `ROOT\ACPI_HAL\0000`, Status: 0x0180200a, Children: []*memory.Device{
				{ID: `ACPI_HAL\PNP0C08\0`, Status: 0x0180200a},
			}},
			{ID: `ROOT\DISABLED\0000`, Status: 0x01802400, Problem: uint32(domain.ProblemDisabled)},
		},
	}
}

func execute(t *testing.T, svc *memory.Service, args ...string) (result, error) {
	t.Helper()

	var res result
	orig := newService
	newService = func(zerolog.Logger) (ports.DeviceQueryService, error) {
		res.built++
		return svc, nil
	}
	t.Cleanup(func() { newService = orig })

	idCapacity = domain.DefaultIDCapacity

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--log-level", "error"}, args...))

	err := rootCmd.Execute()
	res.out = out.String()
	res.err = errOut.String()
	return res, err
}

func TestRoot_DefaultsToList(t *testing.T) {
	for _, args := range [][]string{nil, {"list"}} {
		svc := memory.NewService(sampleTree())
		res, err := execute(t, svc, args...)
		require.NoError(t, err)

		assert.Equal(t, 1, res.built)
		assert.Contains(t, res.out, "HTREE\\ROOT\\0\nDevice 1: HTREE\\ROOT\\0 (status=0; problem=0)\n")
		assert.Contains(t, res.out, "Device 4: ROOT\\DISABLED\\0000 (status=1802400; problem=22)")
		assert.Equal(t, 4, svc.Calls().Locate, "every identifier is located")
	}
}

func TestRoot_Recurse(t *testing.T) {
	svc := memory.NewService(sampleTree())
	res, err := execute(t, svc, "recurse")
	require.NoError(t, err)

	assert.Equal(t, "Device 2: ROOT\\ACPI_HAL\\0000 (status=180200a; problem=0)\n"+
		"Device 3: ACPI_HAL\\PNP0C08\\0 (status=180200a; problem=0)\n"+
		"Device 4: ROOT\\DISABLED\\0000 (status=1802400; problem=22)\n", res.out)
	assert.Empty(t, res.err)
}

func TestRoot_InvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"unknown mode", []string{"bogus"}, application.ErrUnknownMode},
		{"mode is case sensitive", []string{"LIST"}, application.ErrUnknownMode},
		{"two modes", []string{"list", "recurse"}, application.ErrTooManyArguments},
		{"extra argument", []string{"recurse", "extra"}, application.ErrTooManyArguments},
		{"tree is not a mode", []string{"tree"}, application.ErrUnknownMode},
		{"export is not a mode", []string{"export"}, application.ErrUnknownMode},
		{"no help command", []string{"help"}, application.ErrUnknownMode},
		{"search with query", []string{"search", "usb"}, application.ErrTooManyArguments},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := memory.NewService(sampleTree())
			res, err := execute(t, svc, tt.args...)

			assert.ErrorIs(t, err, tt.want)
			assert.Zero(t, res.built, "service must not be constructed")
			assert.Zero(t, svc.Calls().Total())
			assert.Empty(t, res.out)
		})
	}
}

func TestRoot_FetchFailureStillSucceeds(t *testing.T) {
	svc := memory.NewService(sampleTree(), memory.WithListSizeError(domain.CROutOfMemory))
	res, err := execute(t, svc, "list")
	require.NoError(t, err)

	assert.Empty(t, res.out)
	assert.Contains(t, res.err, "CR_OUT_OF_MEMORY")
}

func TestRoot_RootNotFoundStillSucceeds(t *testing.T) {
	svc := memory.NewService(sampleTree(), memory.WithRootError(domain.CRNoSuchDevNode))
	res, err := execute(t, svc, "recurse")
	require.NoError(t, err)

	assert.Empty(t, res.out)
	assert.Contains(t, res.err, "Locate(root, phantom)")
}

func TestRoot_IDCapacity(t *testing.T) {
	svc := memory.NewService(sampleTree())
	res, err := execute(t, svc, "--id-capacity", "12", "recurse")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(res.err), "\n")
	assert.Len(t, lines, 3, "every identifier is longer than 12 characters")
	assert.Empty(t, res.out)
}

func TestRoot_InvalidIDCapacity(t *testing.T) {
	svc := memory.NewService(sampleTree())
	res, err := execute(t, svc, "--id-capacity", "0")

	assert.Error(t, err)
	assert.Zero(t, res.built)
}

func TestRoot_HasNoSubcommands(t *testing.T) {
	assert.False(t, rootCmd.HasSubCommands(), "every word but list and recurse is a usage error")
}
