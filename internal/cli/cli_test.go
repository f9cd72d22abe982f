package cli

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hierarchyConfig = "../../examples/hierarchy/reflect.yaml"

// run executes a fresh command tree with logs sent to a temp file.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCmd()

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(append(args, "--"+logFileFlagName, filepath.Join(t.TempDir(), "reflectgen.log")))

	err := cmd.Execute()

	return out.String(), errOut.String(), err
}

func TestGenCmd_DryRun(t *testing.T) {
	out, _, err := run(t, "gen", "--dry-run", hierarchyConfig)
	require.NoError(t, err)

	assert.Contains(t, out, "reflect_gen.go\n// Code generated by reflectgen. DO NOT EDIT.")
	assert.Contains(t, out, "var hierarchyRegistry = reflection.MustRegistry[Hierarchy]")
	assert.NotContains(t, out, "wrote ")
}

func TestGenCmd_MissingConfig(t *testing.T) {
	out, _, err := run(t, "gen", "--dry-run", "testdata/missing.yaml")
	require.Error(t, err)
	assert.Empty(t, out)
}

func TestCheckCmd_Hierarchy(t *testing.T) {
	out, errOut, err := run(t, "check", hierarchyConfig)
	require.NoError(t, err, errOut)

	for _, path := range []string{"s.field", "t.1", "e.Named@field", "x.container.field", "b.data.field", "h.field", "meta.labels"} {
		assert.Contains(t, out, "path Hierarchy."+path+": ok")
	}

	assert.NotContains(t, out, "out of date")
	assert.Empty(t, errOut)
}

func TestKeysCmd_JSON(t *testing.T) {
	out, _, err := run(t, "keys", "--json", hierarchyConfig)
	require.NoError(t, err)

	var rows []keyRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))

	assert.Contains(t, rows, keyRow{Type: "Struct", Key: "field", Const: "StructField", Field: "field", FieldTyp: "uint"})
	assert.Contains(t, rows, keyRow{Type: "Struct", Key: "hidden", Field: "hidden", Flags: []string{"hidden"}})
	assert.Contains(t, rows, keyRow{
		Type:     "B",
		Key:      "data",
		Const:    "BData",
		Field:    "data",
		FieldTyp: "*Struct",
		Flags:    []string{"deref", "pointer"},
	})
	assert.Contains(t, rows, keyRow{Type: "Handle", Field: "target", Flags: []string{"transparent"}})
	assert.Contains(t, rows, keyRow{
		Type:     "Enum",
		Key:      "Named@field",
		Const:    "EnumNamedField",
		Field:    "Named.field",
		FieldTyp: "uint",
	})
}

func TestKeysCmd_Table(t *testing.T) {
	out, _, err := run(t, "keys", hierarchyConfig)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[0], "Type")
	assert.Contains(t, lines[0], "Field Type")
	assert.Contains(t, out, "EnumNamedField")
	assert.Contains(t, out, "DerefContainer[Struct]")
}

func TestConfigArgs(t *testing.T) {
	assert.Equal(t, []string{"reflect.yaml"}, configArgs(nil))
	assert.Equal(t, []string{"a.yaml", "b.yaml"}, configArgs([]string{"a.yaml", "b.yaml"}))
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{" WARN ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"-4", slog.LevelDebug},
		{"nonsense", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.value, slog.LevelInfo))
		})
	}
}

func TestVersionCmd_Output(t *testing.T) {
	cmd := newVersionCmd()

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())

	output := out.String()
	if strings.Contains(output, "version: unknown") {
		return
	}

	assert.Contains(t, output, "tool version")
	assert.Contains(t, output, "go version")
}
