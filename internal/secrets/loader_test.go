package secrets

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeParams struct {
	val   string
	err   error
	names []string
}

func (f *fakeParams) Token(_ context.Context, name string) (string, error) {
	f.names = append(f.names, name)
	return f.val, f.err
}

func TestLoad_InlineValue(t *testing.T) {
	v, err := Load(context.Background(), Source{Name: "openai api key", Value: "  sk-inline \n"}, nil)
	require.NoError(t, err)
	require.Equal(t, "sk-inline", v)
}

func TestLoad_FileWinsOverValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	require.NoError(t, os.WriteFile(path, []byte("sk-file\n"), 0o600))

	v, err := Load(context.Background(), Source{Value: "sk-inline", File: path}, nil)
	require.NoError(t, err)
	require.Equal(t, "sk-file", v)
}

func TestLoad_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	require.NoError(t, os.WriteFile(path, []byte("  "), 0o600))

	_, err := Load(context.Background(), Source{File: path}, nil)
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(context.Background(), Source{File: filepath.Join(t.TempDir(), "nope")}, nil)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotConfigured)
}

func TestLoad_Parameter(t *testing.T) {
	params := &fakeParams{val: "sk-ssm"}
	v, err := Load(context.Background(), Source{Parameter: "/portfolio/openai-token"}, params)
	require.NoError(t, err)
	require.Equal(t, "sk-ssm", v)
	require.Equal(t, []string{"/portfolio/openai-token"}, params.names)
}

func TestLoad_ParameterError(t *testing.T) {
	_, err := Load(context.Background(), Source{Parameter: "/p"}, &fakeParams{err: errors.New("throttled")})
	require.ErrorContains(t, err, "throttled")
}

func TestLoad_ParameterWithoutStore(t *testing.T) {
	_, err := Load(context.Background(), Source{Parameter: "/p"}, nil)
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestLoad_NothingConfigured(t *testing.T) {
	_, err := Load(context.Background(), Source{Name: "gemini api key"}, nil)
	require.ErrorIs(t, err, ErrNotConfigured)
	require.Contains(t, err.Error(), "gemini api key")
}
