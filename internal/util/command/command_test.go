package command_test

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iqlusioninc/crates-sub000/internal/util/command"
)

func TestNewSubcommandGroup(t *testing.T) {
	child := &cobra.Command{Use: "child", Run: func(*cobra.Command, []string) {}}
	group := command.NewSubcommandGroup("group", child)

	require.Equal(t, "group", group.Use)
	assert.True(t, group.HasSubCommands())

	found, _, err := group.Find([]string{"child"})
	require.NoError(t, err)
	assert.Equal(t, child, found)
}
