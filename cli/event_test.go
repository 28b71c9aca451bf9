package cli

import (
	"context"
	"testing"

	"github.com/evfl-tools/go-evfl/editor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventSetParents(t *testing.T) {
	assert, require := assert.New(t), require.New(t)

	e := mustCreateEditor(t)
	defer e.Shutdown()

	mustCreateEventFlow(t, e, "quest.json")

	t.Run("set switch cases", func(t *testing.T) {
		mustExecute(t, e, []string{
			"event",
			"set-parents",
			"--event",
			"Dismiss",
			"--switch-case",
			"CheckMood=1",
			"--switch-case",
			"CheckMood=2",
		})

		links, err := e.GetParentLinks(context.Background(), editor.GetParentLinksCmd{
			EventFlowName: "quest",
			ChildId:       4,
		})
		require.NoError(err, "failed to get parent links")

		assert.Equal([]editor.ParentLink{
			{ParentId: 2, Type: editor.LinkSwitchCase, CaseValue: 1},
			{ParentId: 2, Type: editor.LinkSwitchCase, CaseValue: 2},
		}, links)
	})

	t.Run("set fork branches", func(t *testing.T) {
		mustExecute(t, e, []string{
			"event",
			"set-parents",
			"--event",
			"SpawnItem",
			"--fork-branch",
			"PrepareRewards",
			"--fork-branch",
			"PrepareRewards",
		})

		links, err := e.GetParentLinks(context.Background(), editor.GetParentLinksCmd{
			EventFlowName: "quest",
			ChildId:       6,
		})
		require.NoError(err, "failed to get parent links")

		assert.Len(links, 2)
	})

	t.Run("set next with confirmed overwrite", func(t *testing.T) {
		mustExecute(t, e, []string{
			"event",
			"set-parents",
			"--event",
			"Dismiss",
			"--next",
			"GreetPlayer",
			"--yes",
		})

		links, err := e.GetParentLinks(context.Background(), editor.GetParentLinksCmd{
			EventFlowName: "quest",
			ChildId:       4,
		})
		require.NoError(err, "failed to get parent links")

		assert.Equal([]editor.ParentLink{
			{ParentId: 1, Type: editor.LinkNext},
		}, links)
	})

	t.Run("returns error when overwrite is not confirmed", func(t *testing.T) {
		rootCmd := newRootCmd(&Cli{e: e, workerId: program})
		rootCmd.PersistentPostRun = nil

		rootCmd.SetArgs([]string{
			"event",
			"set-parents",
			"--event",
			"CheckMood",
			"--next",
			"GreetPlayer",
		})

		// GreetPlayer now points at Dismiss
		err := rootCmd.Execute()
		require.Error(err)

		editorErr, ok := err.(editor.Error)
		require.True(ok, "expected editor error, but got %T", err)
		assert.Equal(editor.ErrorOverwriteDeclined, editorErr.Type)
	})

	t.Run("returns error when event is unknown", func(t *testing.T) {
		rootCmd := newRootCmd(&Cli{e: e, workerId: program})
		rootCmd.PersistentPostRun = nil

		rootCmd.SetArgs([]string{
			"event",
			"parents",
			"--event",
			"Unknown",
		})

		assert.Error(rootCmd.Execute())
	})
}

func TestEventList(t *testing.T) {
	e := mustCreateEditor(t)
	defer e.Shutdown()

	mustCreateEventFlow(t, e, "quest.json")

	mustExecute(t, e, []string{"event", "list"})
	mustExecute(t, e, []string{"event", "list", "--actor", "Npc"})
	mustExecute(t, e, []string{"event", "list", "--type", "SWITCH"})
	mustExecute(t, e, []string{"event", "parents", "--event", "RewardsReady"})
}
