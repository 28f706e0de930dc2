package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func stubTerminal(t *testing.T, terminal bool, pw []byte, err error) {
	t.Helper()
	origRead, origIs := readPassword, isTerminal
	isTerminal = func(int) bool { return terminal }
	readPassword = func(int) ([]byte, error) { return pw, err }
	t.Cleanup(func() {
		readPassword = origRead
		isTerminal = origIs
	})
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("  hello world \n"), "Name?", &out)
	require.NoError(t, err)
	require.Equal(t, "hello world", got)
	require.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	require.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	require.ErrorIs(t, err, io.EOF)
}

func TestGetPassword_Terminal(t *testing.T) {
	stubTerminal(t, true, []byte("s3cret"), nil)
	var out bytes.Buffer
	pw, err := GetPassword(rdr(""), "Password", &out)
	require.NoError(t, err)
	require.Equal(t, []byte("s3cret"), pw)
	require.Equal(t, "Password: \n", out.String())
}

func TestGetPassword_TerminalError(t *testing.T) {
	stubTerminal(t, true, nil, errors.New("boom"))
	var out bytes.Buffer
	_, err := GetPassword(rdr(""), "Password", &out)
	require.Error(t, err)
}

func TestGetPassword_PipedInput(t *testing.T) {
	stubTerminal(t, false, nil, errors.New("must not be called"))
	var out bytes.Buffer
	pw, err := GetPassword(rdr("piped\nnext\n"), "Password", &out)
	require.NoError(t, err)
	require.Equal(t, []byte("piped"), pw)
}

func TestGetConfirmation(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{" yes \n", true},
		{"n\n", false},
		{"\n", false},
		{"sure\n", false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		got, err := GetConfirmation(rdr(tt.in), "Delete?", &out)
		require.NoError(t, err)
		require.Equal(t, tt.want, got, tt.in)
		require.Equal(t, "Delete? [y/N]: ", out.String())
	}

	_, err := GetConfirmation(rdr(""), "Delete?", &bytes.Buffer{})
	require.ErrorIs(t, err, io.EOF)
}
