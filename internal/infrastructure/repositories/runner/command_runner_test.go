//go:build unit

package runner_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/projectwizard/internal/infrastructure/repositories/runner"
)

func TestExecCommandRunner(t *testing.T) {
	t.Parallel()

	t.Run("should capture both streams and the exit code", func(t *testing.T) {
		t.Parallel()

		// given
		r := runner.NewExecCommandRunner()

		// when
		result, err := r.Run(context.Background(), "sh",
			[]string{"-c", "echo out; echo err 1>&2; exit 3"}, runner.CommandOptions{})

		// then
		require.NoError(t, err)
		assert.Equal(t, 3, result.ExitCode)
		assert.Equal(t, "out\n", result.Stdout)
		assert.Equal(t, "err\n", result.Stderr)
		assert.Equal(t, "out\n\nerr\n", result.Combined())
	})

	t.Run("should feed stdin and honor the working directory", func(t *testing.T) {
		t.Parallel()

		// given
		r := runner.NewExecCommandRunner()
		dir := t.TempDir()

		// when
		result, err := r.Run(context.Background(), "sh",
			[]string{"-c", "cat; pwd"}, runner.CommandOptions{Dir: dir, Stdin: "hello\n"})

		// then
		require.NoError(t, err)
		assert.Equal(t, 0, result.ExitCode)
		assert.Contains(t, result.Stdout, "hello\n")
		assert.Contains(t, result.Stdout, dir)
	})

	t.Run("should return an error when the binary does not exist", func(t *testing.T) {
		t.Parallel()

		// given
		r := runner.NewExecCommandRunner()

		// when
		_, err := r.Run(context.Background(), "definitely-not-a-real-binary", nil, runner.CommandOptions{})

		// then
		require.Error(t, err)
	})

	t.Run("should return the context error when cancelled", func(t *testing.T) {
		t.Parallel()

		// given
		r := runner.NewExecCommandRunner()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// when
		_, err := r.Run(ctx, "sh", []string{"-c", "sleep 5"}, runner.CommandOptions{})

		// then
		require.ErrorIs(t, err, context.Canceled)
	})
}
