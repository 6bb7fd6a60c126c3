package dovecotpw_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/crampw/dovecotpw"
)

type fakePrompter struct {
	answers []string
	labels  []string
	err     error
}

func (fp *fakePrompter) Prompt(label string) ([]byte, error) {
	fp.labels = append(fp.labels, label)

	if fp.err != nil {
		return nil, fp.err
	}

	ans := fp.answers[0]
	fp.answers = fp.answers[1:]

	return []byte(ans), nil
}

func ptr(s string) *string { return &s }

func TestSource_Read_explicit_password_wins(t *testing.T) {
	t.Parallel()

	src := dovecotpw.Source{
		Password: ptr("flag"),
		File:     "/nonexistent",
		Stdin:    strings.NewReader("stdin\n"),
	}

	got, err := src.Read()

	require.NoError(t, err)
	assert.Equal(t, "flag", got)
}

func TestSource_Read_explicit_empty_password(t *testing.T) {
	t.Parallel()

	src := dovecotpw.Source{
		Password: ptr(""),
		Stdin:    strings.NewReader("stdin\n"),
	}

	got, err := src.Read()

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSource_Read_file_first_line(t *testing.T) {
	t.Parallel()

	pa := writeTemp(t, "pw.txt", "s3cret\r\nignored\n")

	got, err := dovecotpw.Source{File: pa}.Read()

	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)
}

func TestSource_Read_missing_file(t *testing.T) {
	t.Parallel()

	_, err := dovecotpw.Source{File: "/nonexistent/pw"}.Read()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading password")
}

func TestSource_Read_prompter_confirms(t *testing.T) {
	t.Parallel()

	fp := &fakePrompter{answers: []string{"test", "test"}}

	got, err := dovecotpw.Source{Prompter: fp}.Read()

	require.NoError(t, err)
	assert.Equal(t, "test", got)
	assert.Equal(
		t,
		[]string{"Enter new password: ", "Retype new password: "},
		fp.labels,
	)
}

func TestSource_Read_prompter_mismatch(t *testing.T) {
	t.Parallel()

	fp := &fakePrompter{answers: []string{"test", "tset"}}

	_, err := dovecotpw.Source{Prompter: fp}.Read()

	require.ErrorIs(t, err, dovecotpw.ErrPasswordMismatch)
}

func TestSource_Read_prompter_error(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	fp := &fakePrompter{err: boom}

	_, err := dovecotpw.Source{Prompter: fp}.Read()

	require.ErrorIs(t, err, boom)
}

func TestSource_Read_stdin_without_newline(t *testing.T) {
	t.Parallel()

	src := dovecotpw.Source{Stdin: strings.NewReader("piped")}

	got, err := src.Read()

	require.NoError(t, err)
	assert.Equal(t, "piped", got)
}

func TestSource_Read_no_source(t *testing.T) {
	t.Parallel()

	_, err := dovecotpw.Source{}.Read()

	require.ErrorIs(t, err, dovecotpw.ErrNoPassword)
}
