package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

const lootFilter = `# My filter

# Chaos
Show # Currency
    SetTextColor 255 0 0
    BaseType "Chaos Orb"

# Section: Gear

Hide
    SetTextColor 255 0 0
    SetBorderColor 0 0 255
`

func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeFilter(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func executeCommand(args ...string) (stdout, stderr string, err error) {
	color.NoColor = true

	root := newRootCmd()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)

	err = root.Execute()
	return out.String(), errOut.String(), err
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestNewThenShow(t *testing.T) {
	home := setupHome(t)
	path := filepath.Join(home, "filters", "fresh.filter")

	stdout, _, err := executeCommand("new", path, "--description", "Fresh start")
	require.NoError(t, err)
	require.Contains(t, stdout, "Created "+path)
	require.Equal(t, "# Fresh start\n\nShow\n", readFile(t, path))

	_, _, err = executeCommand("new", path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Use --force")

	stdout, _, err = executeCommand("show", path)
	require.NoError(t, err)
	require.Contains(t, stdout, "Fresh start")
	require.Contains(t, stdout, "INDEX")
	require.Contains(t, stdout, "(no description)")
}

func TestShowTableAndJSON(t *testing.T) {
	home := setupHome(t)
	path := writeFilter(t, home, "loot.filter", lootFilter)

	stdout, _, err := executeCommand("show", path)
	require.NoError(t, err)
	require.Contains(t, stdout, "My filter")
	require.Contains(t, stdout, "Currency")
	require.Contains(t, stdout, "text=#ff0000")
	require.Contains(t, stdout, "border=#0000ff")

	stdout, _, err = executeCommand("show", path, "--sections")
	require.NoError(t, err)
	require.Contains(t, stdout, "Gear")
	require.NotContains(t, stdout, "Chaos")

	stdout, _, err = executeCommand("show", path, "--json")
	require.NoError(t, err)

	var payload struct {
		Count  int `json:"count"`
		Blocks []struct {
			Index       int               `json:"index"`
			Kind        string            `json:"kind"`
			Action      string            `json:"action"`
			Group       string            `json:"group"`
			Description string            `json:"description"`
			Colors      map[string]string `json:"colors"`
			Items       int               `json:"items"`
		} `json:"blocks"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &payload))
	require.Equal(t, 3, payload.Count)
	require.Equal(t, "rule", payload.Blocks[0].Kind)
	require.Equal(t, "Show", payload.Blocks[0].Action)
	require.Equal(t, "Currency", payload.Blocks[0].Group)
	require.Equal(t, "Chaos", payload.Blocks[0].Description)
	require.Equal(t, 2, payload.Blocks[0].Items)
	require.Equal(t, "section", payload.Blocks[1].Kind)
	require.Equal(t, "Gear", payload.Blocks[1].Description)
	require.Equal(t, "#0000ff", payload.Blocks[2].Colors["border"])
}

func TestValidateReportsEveryFile(t *testing.T) {
	home := setupHome(t)
	good := writeFilter(t, home, "good.filter", lootFilter)
	empty := writeFilter(t, home, "empty.filter", "# only a header\n")
	broken := writeFilter(t, home, "broken.filter", "    SetTextColor 1 2 3\n")

	stdout, _, err := executeCommand("validate", good)
	require.NoError(t, err)
	require.Contains(t, stdout, "✓ "+good)

	stdout, _, err = executeCommand("validate", good, empty, broken)
	require.Error(t, err)
	require.Contains(t, err.Error(), "2 of 3 scripts are invalid")
	require.Contains(t, stdout, "✓ "+good)
	require.Contains(t, stdout, "✗ "+empty)
	require.Contains(t, stdout, "A script must have at least one block")
	require.Contains(t, stdout, "✗ "+broken)
	require.Contains(t, stdout, "broken.filter:1")
}

func TestReplaceColorsDryRunLeavesFileAlone(t *testing.T) {
	home := setupHome(t)
	path := writeFilter(t, home, "loot.filter", lootFilter)

	stdout, _, err := executeCommand("replace-colors", path, "--text", "#ff0000:#00ff00", "--dry-run")
	require.NoError(t, err)
	require.Contains(t, stdout, "-    SetTextColor 255 0 0")
	require.Contains(t, stdout, "+    SetTextColor 0 255 0")
	require.Contains(t, stdout, "2 blocks would change")
	require.Equal(t, lootFilter, readFile(t, path))
}

func TestReplaceColorsRequiresEveryRequestedKind(t *testing.T) {
	home := setupHome(t)
	path := writeFilter(t, home, "loot.filter", lootFilter)

	stdout, _, err := executeCommand("replace-colors", path, "--text", "ff0000:00ff00", "--border", "#0000ff:#000000")
	require.NoError(t, err)
	require.Contains(t, stdout, "Replaced colors in 1 blocks")

	content := readFile(t, path)
	require.Contains(t, content, "Show # Currency\n    SetTextColor 255 0 0")
	require.Contains(t, content, "Hide\n    SetTextColor 0 255 0\n    SetBorderColor 0 0 0")
}

func TestReplaceColorsFromRecipe(t *testing.T) {
	home := setupHome(t)
	path := writeFilter(t, home, "loot.filter", lootFilter)
	recipe := writeFilter(t, home, "recipe.toml", "name = \"green\"\n\n[text]\nold = \"#ff0000\"\nnew = \"#00ff00\"\n")

	stdout, _, err := executeCommand("replace-colors", path, "--recipe", recipe)
	require.NoError(t, err)
	require.Contains(t, stdout, "Replaced colors in 2 blocks")
	require.NotContains(t, readFile(t, path), "SetTextColor 255 0 0")
}

func TestReplaceColorsNeedsARequest(t *testing.T) {
	home := setupHome(t)
	path := writeFilter(t, home, "loot.filter", lootFilter)

	_, _, err := executeCommand("replace-colors", path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no replacement requested")

	_, _, err = executeCommand("replace-colors", path, "--text", "red:green")
	require.Error(t, err)
	require.Contains(t, err.Error(), "OLD:NEW")
}

func TestBlockAddMoveRemove(t *testing.T) {
	home := setupHome(t)
	path := writeFilter(t, home, "loot.filter", lootFilter)

	stdout, _, err := executeCommand("block", "add-section", path, "--after", "0", "--description", "Maps")
	require.NoError(t, err)
	require.Contains(t, stdout, "Added section at index 1")

	stdout, _, err = executeCommand("block", "add", path)
	require.NoError(t, err)
	require.Contains(t, stdout, "Added block at index 4")

	stdout, _, err = executeCommand("block", "move", path, "4", "--to", "top")
	require.NoError(t, err)
	require.Contains(t, stdout, "Moved block 4 to index 0")

	stdout, _, err = executeCommand("block", "move", path, "0", "--to", "up")
	require.NoError(t, err)
	require.Contains(t, stdout, "already at the top")

	_, _, err = executeCommand("block", "move", path, "0", "--to", "sideways")
	require.Error(t, err)

	_, _, err = executeCommand("block", "remove", path, "0")
	require.Error(t, err)
	require.Contains(t, err.Error(), "--force")

	_, _, err = executeCommand("block", "remove", path, "0", "--force")
	require.NoError(t, err)

	_, _, err = executeCommand("block", "remove", path, "9", "--force")
	require.Error(t, err)
	require.Contains(t, err.Error(), "filtration show")

	content := readFile(t, path)
	require.True(t, strings.HasPrefix(content, "# My filter\n\n# Chaos\nShow # Currency"))
	require.Contains(t, content, "# Section: Maps\n\n# Section: Gear")
}

func TestBlockCopyPasteAcrossFiles(t *testing.T) {
	home := setupHome(t)
	source := writeFilter(t, home, "source.filter", lootFilter)
	target := writeFilter(t, home, "target.filter", "Hide\n")

	stdout, _, err := executeCommand("block", "paste", target)
	require.NoError(t, err)
	require.Contains(t, stdout, "nothing pasted")

	_, _, err = executeCommand("block", "copy", source, "0")
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(home, ".filtration", "clipboard.filter"))

	stdout, _, err = executeCommand("block", "paste", target)
	require.NoError(t, err)
	require.Contains(t, stdout, "Pasted block at index 1")
	require.Equal(t, "Hide\n\n# Chaos\nShow # Currency\n    SetTextColor 255 0 0\n    BaseType \"Chaos Orb\"\n", readFile(t, target))
}

func TestSaveAs(t *testing.T) {
	home := setupHome(t)
	path := writeFilter(t, home, "loot.filter", lootFilter)
	copyPath := filepath.Join(home, "copies", "loot-copy.filter")

	stdout, _, err := executeCommand("save-as", path, copyPath)
	require.NoError(t, err)
	require.Contains(t, stdout, "Saved "+copyPath)
	require.Equal(t, lootFilter, readFile(t, copyPath))
	require.Equal(t, lootFilter, readFile(t, path))
}

func TestInvalidSettingsFile(t *testing.T) {
	home := setupHome(t)
	path := writeFilter(t, home, "loot.filter", lootFilter)
	settings := writeFilter(t, home, "config.yaml", "clipboard_path: /tmp/clip.filter\nlog:\n  level: loud\n")

	_, _, err := executeCommand("show", path, "--config", settings)
	require.Error(t, err)
	require.Contains(t, err.Error(), "loading settings")
	require.Contains(t, err.Error(), "log.level")
}

func TestScriptDirectoryResolvesRelativePaths(t *testing.T) {
	home := setupHome(t)
	dir := filepath.Join(home, "filters")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	writeFilter(t, dir, "loot.filter", lootFilter)
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".filtration"), 0o755))
	writeFilter(t, filepath.Join(home, ".filtration"), "config.yaml", "script_directory: ~/filters\n")

	stdout, _, err := executeCommand("show", "loot.filter")
	require.NoError(t, err)
	require.Contains(t, stdout, "Gear")
}

func TestVerboseLogsToStderr(t *testing.T) {
	home := setupHome(t)
	path := writeFilter(t, home, "loot.filter", lootFilter)

	_, stderr, err := executeCommand("show", path, "-v")
	require.NoError(t, err)
	require.Contains(t, stderr, "script opened")
	require.Contains(t, stderr, "correlation_id")
}

func TestRecentListsOpenedScripts(t *testing.T) {
	home := setupHome(t)
	path := writeFilter(t, home, "loot.filter", lootFilter)

	stdout, _, err := executeCommand("recent")
	require.NoError(t, err)
	require.Contains(t, stdout, "No scripts opened yet.")

	_, _, err = executeCommand("show", path)
	require.NoError(t, err)

	stdout, _, err = executeCommand("recent")
	require.NoError(t, err)
	require.Contains(t, stdout, "just now")
	require.Contains(t, stdout, "My filter")
	require.Contains(t, stdout, path)

	stdout, _, err = executeCommand("recent", "--json")
	require.NoError(t, err)
	var payload struct {
		Entries []struct {
			Path     string `json:"path"`
			Blocks   int    `json:"blocks"`
			Sections int    `json:"sections"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &payload))
	require.Len(t, payload.Entries, 1)
	require.Equal(t, 3, payload.Entries[0].Blocks)
	require.Equal(t, 1, payload.Entries[0].Sections)

	_, _, err = executeCommand("recent", "--forget", path)
	require.NoError(t, err)
	stdout, _, err = executeCommand("recent")
	require.NoError(t, err)
	require.Contains(t, stdout, "No scripts opened yet.")
}
