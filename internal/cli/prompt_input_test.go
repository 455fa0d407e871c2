package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptYesNo_Answers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input      string
		defaultYes bool
		want       bool
	}{
		{input: "y\n", want: true},
		{input: "YES\r", want: true},
		{input: " yes \r\n", want: true},
		{input: "n\n", defaultYes: true, want: false},
		{input: "nope\n", want: false},
		{input: "\n", want: false},
		{input: "\r", defaultYes: true, want: true},
		{input: "", defaultYes: true, want: false},
	}

	for _, tc := range tests {
		var out bytes.Buffer
		got := promptYesNoWithDefaultIO(strings.NewReader(tc.input), &out, "Overwrite? ", tc.defaultYes)
		assert.Equal(t, tc.want, got, "input=%q defaultYes=%v", tc.input, tc.defaultYes)
		assert.Equal(t, "Overwrite? ", out.String())
	}
}

func TestPromptYesNo_DefaultsToNo(t *testing.T) {
	t.Parallel()

	assert.False(t, promptYesNoIO(strings.NewReader("\n"), nil, ""))
	assert.True(t, promptYesNoIO(strings.NewReader("y\n"), nil, ""))
}

func TestReadPromptLine_StopsAtFirstLineEnding(t *testing.T) {
	t.Parallel()

	r := strings.NewReader("Read chapter 3\rnext")
	got, err := readPromptLine(r)
	require.NoError(t, err)
	assert.Equal(t, "Read chapter 3", got)

	rest, err := readPromptLine(r)
	require.NoError(t, err)
	assert.Equal(t, "next", rest)

	_, err = readPromptLine(r)
	assert.Error(t, err)
}

func TestReadLines_SplitsOnAnyLineEnding(t *testing.T) {
	t.Parallel()

	var got []string
	for line := range readLines(context.Background(), strings.NewReader("one\r\ntwo\n\nthree\rfour")) {
		got = append(got, line)
	}
	assert.Equal(t, []string{"one", "two", "", "three", "four"}, got)
}

func TestReadLines_StopsWhenCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	lines := readLines(ctx, strings.NewReader("a\nb\nc\n"))
	assert.Equal(t, "a", <-lines)
	cancel()

	for range lines {
	}
}
