// SPDX-License-Identifier: MIT
package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/modelmatrix/config"
	"github.com/katalvlaran/modelmatrix/design"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	c := config.Default()
	require.NoError(t, c.Validate())
	o, err := c.Options()
	require.NoError(t, err)
	d := design.DefaultOptions()
	require.Equal(t, d.IncludeIntercept, o.IncludeIntercept)
	require.Equal(t, d.InterceptName, o.InterceptName)
	require.Equal(t, d.Contrast, o.Contrast)
	require.Equal(t, config.ColorAuto, c.Color)
}

func TestReadYAML(t *testing.T) {
	t.Parallel()

	c, err := config.ReadYAML(strings.NewReader("contrast: helmert\nparallel: 3\ncolor: never\n"))
	require.NoError(t, err)
	require.Equal(t, "helmert", c.Contrast)
	require.Equal(t, 3, c.Parallel)
	require.True(t, c.Intercept, "missing keys keep defaults")

	o, err := c.Options()
	require.NoError(t, err)
	require.Equal(t, design.Helmert, o.Contrast)
	require.Equal(t, 3, o.Parallel)

	c, err = config.ReadYAML(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, config.Default(), c)
}

func TestReadTOML(t *testing.T) {
	t.Parallel()

	src := "intercept = false\nclean_names = false\ncontrast = \"sum\"\ncolor = \"always\"\n"
	c, err := config.ReadTOML(strings.NewReader(src))
	require.NoError(t, err)
	require.False(t, c.Intercept)
	require.False(t, c.CleanNames)
	require.True(t, c.UseColor(nil))

	o, err := c.Options()
	require.NoError(t, err)
	require.Equal(t, design.Sum, o.Contrast)
}

func TestInvalid(t *testing.T) {
	t.Parallel()

	bad := []struct {
		read func(string) error
		src  string
	}{
		{yamlErr, "contrast: polynomial\n"},
		{yamlErr, "colour: auto\n"},
		{yamlErr, "color: sometimes\n"},
		{yamlErr, "parallel: -2\n"},
		{yamlErr, "intercept_name: \"\"\n"},
		{yamlErr, "parallel: [1\n"},
		{tomlErr, "verbose = true\n"},
		{tomlErr, "contrast = \n"},
	}
	for _, tc := range bad {
		require.ErrorIs(t, tc.read(tc.src), config.ErrConfig, tc.src)
	}
}

func yamlErr(src string) error {
	_, err := config.ReadYAML(strings.NewReader(src))
	return err
}

func tomlErr(src string) error {
	_, err := config.ReadTOML(strings.NewReader(src))
	return err
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
		return p
	}

	c, err := config.Load(write("a.yml", "parallel: 2\n"))
	require.NoError(t, err)
	require.Equal(t, 2, c.Parallel)

	c, err = config.Load(write("b.toml", "parallel = 5\n"))
	require.NoError(t, err)
	require.Equal(t, 5, c.Parallel)

	_, err = config.Load(write("c.json", "{}"))
	require.ErrorIs(t, err, config.ErrConfig)

	_, err = config.Load(filepath.Join(dir, "none.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestUseColor(t *testing.T) {
	t.Parallel()

	c := config.Default()
	c.Color = config.ColorNever
	require.False(t, c.UseColor(os.Stdout))

	c.Color = config.ColorAuto
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()
	require.False(t, c.UseColor(f), "regular files are not terminals")
}
