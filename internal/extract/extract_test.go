package extract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/morsezoo/internal/archive"
)

func TestScratch_CreateAndClose(t *testing.T) {
	parent := filepath.Join(t.TempDir(), "postprocessing")

	s, err := NewScratch(parent, "pg-")
	require.NoError(t, err)

	info, err := os.Stat(s.Dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, parent, filepath.Dir(s.Dir))

	require.NoError(t, os.WriteFile(s.Path("out.txt"), []byte("x"), 0o644))

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	_, err = os.Stat(s.Dir)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestScratch_Unique(t *testing.T) {
	parent := t.TempDir()
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		s, err := NewScratch(parent, "x-")
		require.NoError(t, err)
		assert.False(t, seen[s.Dir], "duplicate scratch dir %s", s.Dir)
		seen[s.Dir] = true
	}
}

func TestScratch_CreateFails(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	_, err := NewScratch(file, "x-")
	assert.Error(t, err)
}

func testPermutation() archive.Permutation {
	return archive.Permutation{
		Name:      "2D_Example_perm1",
		Dir:       "/archive/2D_Example/2D_Example_perm1",
		ToolInput: "/archive/2D_Example/2D_Example_perm1/database.mdb",
		Text:      "/archive/2D_Example/2D_Example_perm1/2D_Example_perm1.txt",
	}
}

func TestTools_Command(t *testing.T) {
	tools := DefaultTools("/opt/tools")
	perm := testPermutation()

	cmd, err := tools.Command(Job{Kind: KindMorseSet, Permutation: perm, MGCC: 3, INCC: 1}, "/tmp/s1")
	require.NoError(t, err)

	assert.Equal(t, Command{
		Path: filepath.Join("/opt/tools", "extractMorseSetMGCC.sh"),
		Args: []string{
			"/tmp/s1",
			perm.ToolInput,
			perm.Dir + string(filepath.Separator),
			"2D_Example_perm1.txt",
			"3",
			"1",
		},
		Dir: "/tmp/s1",
	}, cmd)

	cmd, err = tools.Command(Job{Kind: KindParameterGraphView, Permutation: perm, MGCC: 0}, "/tmp/s2")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/opt/tools", "seeParameterGraphMGCC.sh"), cmd.Path)
	assert.Len(t, cmd.Args, 5)
}

func TestTools_CommandRejects(t *testing.T) {
	tools := DefaultTools("/opt/tools")
	perm := testPermutation()

	_, err := tools.Command(Job{Kind: "bogus", Permutation: perm}, "/tmp")
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = tools.Command(Job{Kind: KindMorseGraph, Permutation: perm, MGCC: -1}, "/tmp")
	assert.ErrorIs(t, err, ErrNegativeIndex)

	tools.MorseGraph = ""
	_, err = tools.Command(Job{Kind: KindMorseGraph, Permutation: perm}, "/tmp")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestJob_Artifact(t *testing.T) {
	perm := testPermutation()

	testCases := []struct {
		job  Job
		want string
	}{
		{Job{Kind: KindMorseGraph, Permutation: perm, MGCC: 2}, "2D_Example_perm1_MGCC_2.tgz"},
		{Job{Kind: KindParameterGraph, Permutation: perm, MGCC: 2}, "2D_Example_perm1_ParameterGraph_MGCC_2.tgz"},
		{Job{Kind: KindMorseSet, Permutation: perm, MGCC: 2, INCC: 5}, "2D_Example_perm1_MGCC_2_INCC_5.tgz"},
		{Job{Kind: KindParameterGraphView, Permutation: perm, MGCC: 2}, ""},
	}

	for _, tc := range testCases {
		t.Run(string(tc.job.Kind), func(t *testing.T) {
			assert.Equal(t, tc.want, tc.job.Artifact())
		})
	}
}

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestExecRunner_Run(t *testing.T) {
	dir := t.TempDir()
	script := writeScript(t, dir, "tool.sh", `echo "$5" > "$1/mgcc.txt"; echo done`)

	out, err := ExecRunner{}.Run(context.Background(), Command{
		Path: script,
		Args: []string{dir, "in.mdb", "perm/", "perm.txt", "7"},
		Dir:  dir,
	})
	require.NoError(t, err)
	assert.Equal(t, "done\n", string(out))

	data, err := os.ReadFile(filepath.Join(dir, "mgcc.txt"))
	require.NoError(t, err)
	assert.Equal(t, "7\n", string(data))
}

func TestExecRunner_Failure(t *testing.T) {
	dir := t.TempDir()
	script := writeScript(t, dir, "fail.sh", `echo "bad input" >&2; exit 3`)

	_, err := ExecRunner{}.Run(context.Background(), Command{Path: script, Dir: dir})
	require.Error(t, err)

	var runErr *RunError
	require.ErrorAs(t, err, &runErr)
	assert.Equal(t, "bad input\n", runErr.Output)
}

func TestExecRunner_Timeout(t *testing.T) {
	dir := t.TempDir()
	script := writeScript(t, dir, "slow.sh", `exec sleep 5`)

	start := time.Now()
	_, err := ExecRunner{Timeout: 50 * time.Millisecond}.Run(context.Background(), Command{Path: script, Dir: dir})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 4*time.Second)
}
