package cli_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repostate/cmd/cli"
)

func TestNewApplication(t *testing.T) {
	t.Parallel()

	application := cli.NewApplication()
	require.NotNil(t, application)
}

func TestApplicationExecutesHelp(t *testing.T) {
	originalArguments := os.Args
	t.Cleanup(func() { os.Args = originalArguments })
	os.Args = []string{"repostate", "--help"}

	require.NoError(t, cli.NewApplication().Execute())
}
